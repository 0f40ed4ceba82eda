package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"auditlens/internal/adapters/filesystem"
	"auditlens/internal/adapters/tui"
	"auditlens/internal/application/commands"
	"auditlens/internal/logging"
)

var pickFiles bool

var importCmd = &cobra.Command{
	Use:   "import [path|glob|dir]...",
	Short: "Import audit manifests",
	Long: `Import audit manifests into the store.

Arguments may be manifest files, directories (every manifest directly inside
is imported) or glob patterns (** matches across directories). Re-importing
a manifest already in the store keeps its group id and reconciled records.

Examples:
  auditlens-cli import /var/log/app/run1-audit.json
  auditlens-cli import '/var/log/**/*-audit.json'
  auditlens-cli import --pick`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithOperation(cmd.Context(), "import")

		var (
			result *commands.IngestResult
			err    error
		)

		if pickFiles {
			if len(args) > 0 {
				return errors.New("--pick does not take arguments")
			}
			pick := commands.NewImportPickedCommand(tui.NewPicker(""), st, decoder)
			pick.Workers = workers()
			result, err = pick.Execute(ctx)
		} else {
			if len(args) == 0 {
				return errors.New("nothing to import: pass manifest paths or --pick")
			}
			paths, expandErr := filesystem.ExpandManifests(args)
			if expandErr != nil {
				return expandErr
			}
			if len(paths) == 0 {
				return errors.New("no manifests matched")
			}
			ingest := commands.NewIngestCommand(st, decoder, paths)
			ingest.Workers = workers()
			result, err = ingest.Execute(ctx)
		}
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, g := range result.Groups {
			fmt.Printf("  %s  %s  (%d files)\n", g.LogGroupID, g.ManifestPath, len(g.Files))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVarP(&pickFiles, "pick", "p", false, "choose manifests in an interactive file picker")
	rootCmd.AddCommand(importCmd)
}
