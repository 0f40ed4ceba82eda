package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"auditlens/internal/adapters/watcher"
	"auditlens/internal/application/commands"
)

var watchInitial bool

var watchCmd = &cobra.Command{
	Use:   "watch [group-id]...",
	Short: "Reconcile groups whenever their directories change",
	Long: `Watch the directories of the given groups (all groups by default) and
keep them reconciled. A changed manifest is imported again; any other
changed file reconciles the groups in its directory. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := commands.NewWatchCommand(st, lister, decoder, watcher.New(cfg.WatchDebounce), args)
		w.Workers = workers()
		w.Initial = watchInitial
		w.OnEvent = printWatchEvent
		return w.Execute(cmd.Context())
	},
}

func printWatchEvent(ev commands.WatchEvent) {
	switch {
	case ev.Err != nil && ev.Path == "":
		fmt.Printf("error: %v\n", ev.Err)
	case ev.Err != nil:
		fmt.Printf("%s: %v\n", ev.Path, ev.Err)
	case ev.Reconcile != nil:
		fmt.Println(ev.Reconcile.Message)
	case ev.Ingest != nil:
		fmt.Println(ev.Ingest.Message)
	}
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitial, "initial", true, "reconcile every watched group before waiting for changes")
	rootCmd.AddCommand(watchCmd)
}
