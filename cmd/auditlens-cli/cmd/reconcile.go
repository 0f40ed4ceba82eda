package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"auditlens/internal/application/commands"
	"auditlens/internal/logging"
)

var reconcileAll bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <group-id>... | --all",
	Short: "Match declared files on disk and load their records",
	Long: `Reconcile log groups: list each group's directory, match the files its
manifest declares and parse the matched files into records.

A group is only updated when every matched file parses. Group ids may be
shortened to any unique prefix.

Examples:
  auditlens-cli reconcile 3f2a9c1e
  auditlens-cli reconcile --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := args
		if reconcileAll {
			if len(args) > 0 {
				return errors.New("--all does not take group ids")
			}
			ids = nil
			for _, g := range st.Snapshot().LogGroups {
				ids = append(ids, g.LogGroupID)
			}
			if len(ids) == 0 {
				fmt.Println("No log groups")
				return nil
			}
		}
		if len(ids) == 0 {
			return errors.New("pass group ids or --all")
		}

		var errs []error
		for _, id := range ids {
			ctx := logging.WithOperation(cmd.Context(), "reconcile")

			rc := commands.NewReconcileCommand(st, lister, decoder, id)
			rc.Workers = workers()
			result, err := rc.Execute(ctx)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
				continue
			}
			fmt.Println(result.Message)
		}
		return errors.Join(errs...)
	},
}

func init() {
	reconcileCmd.Flags().BoolVarP(&reconcileAll, "all", "a", false, "reconcile every group")
	rootCmd.AddCommand(reconcileCmd)
}
