package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/wave/packages/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/config"
	"github.com/abdul-hamid-achik/wave/packages/override"
)

var collectionCmd = &cobra.Command{
	Use:     "collection <collection> <request> [params...]",
	Aliases: []string{"c"},
	Short:   "Send a request stored in a collection",
	Long: `Send a named request from <dir>/<collection>.yaml.

${name} placeholders are filled from the collection's variables and
${env:NAME} from the environment. Parameters override the stored headers
and body fields by key.`,
	Example: `  wave collection users "Get User"
  wave c users "Create User" Authorization:Bearer456 age=31
  wave c auth Login --form remember=false`,
	Args:              usageArgs(cobra.MinimumNArgs(2)),
	ValidArgsFunction: completeCollectionArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens := args[2:]
		if formFlag {
			tokens = append([]string{override.FormFlag}, tokens...)
		}
		result, err := sess.runner.RunCollection(cmd.Context(), args[0], args[1], tokens)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

func init() {
	collectionCmd.Flags().SetInterspersed(false)
	addOutputFlags(collectionCmd)
	collectionCmd.Flags().BoolVar(&formFlag, "form", false, "Send body fields as application/x-www-form-urlencoded")
}

// completeCollectionArgs completes collection names, then request names.
func completeCollectionArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	store := collection.NewStore(config.ResolveDir(dirFlag))

	switch len(args) {
	case 0:
		names, err := store.List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		coll, err := store.Load(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return filterPrefix(coll.RequestNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
