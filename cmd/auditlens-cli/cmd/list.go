package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"auditlens/internal/application/commands"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported log groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := commands.NewListGroupsCommand(st).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println("No log groups")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDIRECTORY\tRECONCILED\tRECORDS")
		for _, g := range groups {
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\n", g.ID, g.DirectoryPath, g.Reconciled, g.Files, g.Records)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
