package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [collection]",
	Short: "List collections or the requests in one",
	Long: `List the collections in the collection directory, or the requests
defined in one collection.

Examples:
  wave list
  wave list users`,
	Args:              usageArgs(cobra.MaximumNArgs(1)),
	ValidArgsFunction: completeCollectionArgs,
	RunE:              listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return listRequests(cmd, args[0])
	}

	names, err := sess.store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No collections in %s\n", sess.store.Dir())
		return nil
	}

	for _, name := range names {
		coll, err := sess.store.Load(name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error loading %s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d requests)\n", name, len(coll.Requests))
	}
	return nil
}

func listRequests(cmd *cobra.Command, name string) error {
	coll, err := sess.store.Load(name)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, req := range coll.Requests {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", req.Method, req.Name, req.URL)
	}
	return tw.Flush()
}
