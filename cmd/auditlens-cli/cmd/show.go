package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"auditlens/internal/application"
	"auditlens/internal/application/commands"
)

var showRecords bool

var showCmd = &cobra.Command{
	Use:   "show <group-id>",
	Short: "Show a log group and its files",
	Long: `Show a log group's manifest, directory and declared files.

With --records the parsed records of every reconciled file are printed to
stdout as JSON lines instead, each tagged with its file name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := commands.NewShowGroupCommand(st, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if showRecords {
			enc := json.NewEncoder(os.Stdout)
			for _, f := range g.Files {
				for _, rec := range f.Data {
					if err := enc.Encode(map[string]any{"file": f.Name, "record": rec}); err != nil {
						return err
					}
				}
			}
			return nil
		}

		fmt.Printf("ID:        %s\n", g.LogGroupID)
		fmt.Printf("Manifest:  %s\n", g.ManifestPath)
		fmt.Printf("Directory: %s\n\n", g.DirectoryPath)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tHASH\tSTATUS\tRECORDS\tPATH")
		for _, f := range g.Files {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", f.Name, f.Hash, application.FileStatus(f), len(f.Data), f.Path)
		}
		return w.Flush()
	},
}

func init() {
	showCmd.Flags().BoolVarP(&showRecords, "records", "r", false, "print records as JSON lines")
	rootCmd.AddCommand(showCmd)
}
