package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [collection...]",
	Short: "Check collections for errors",
	Long: `Load collections without sending anything and report schema errors
and references to undefined variables. With no arguments every collection
in the collection directory is checked.

Examples:
  wave validate
  wave validate users auth`,
	ValidArgsFunction: completeCollectionArgs,
	RunE:              validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		var err error
		if names, err = sess.store.List(); err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no collections found in %s", sess.store.Dir())
		}
	}

	hasErrors := false
	for _, name := range names {
		coll, err := sess.store.Load(name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", name, err)
			hasErrors = true
			continue
		}

		problems := coll.Check()
		if len(problems) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d requests)\n", name, len(coll.Requests))
			continue
		}
		hasErrors = true
		fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s:\n", name)
		for _, p := range problems {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", p)
		}
	}

	if hasErrors {
		return errValidation
	}
	return nil
}
