package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"auditlens/internal/adapters/filesystem"
	"auditlens/internal/bootstrap"
	"auditlens/internal/config"
	"auditlens/internal/store"
)

var (
	overrides bootstrap.Overrides

	cfg     *config.Config
	st      *store.Store
	lister  = filesystem.NewLister()
	decoder = filesystem.NewDecoder()
)

var rootCmd = &cobra.Command{
	Use:   "auditlens-cli",
	Short: "Import and reconcile audit-log manifests",
	Long: `auditlens-cli imports audit manifests (*-audit.json) into a persistent
store and reconciles the log files they declare against the files found
next to them on disk.

Plain files are parsed as one JSON record per line; .gz files are
decompressed first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, st, err = bootstrap.Open(overrides, os.Stderr)
		return err
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if st != nil {
		if closeErr := st.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to save state: %w", closeErr)
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&overrides.ConfigPath, "config", "c", "", "config file (.json, .jsonc, .yaml); default $"+config.ConfigEnv)
	rootCmd.PersistentFlags().StringVar(&overrides.StatePath, "state", "", "state database (default "+config.DefaultStatePath()+")")
	rootCmd.PersistentFlags().StringVarP(&overrides.Session, "session", "s", "", "state session name (default \"default\")")
	rootCmd.PersistentFlags().StringVar(&overrides.LogLevel, "log-level", "", "debug, info, warn or error")
}

// workers returns the configured worker bound
func workers() int {
	return cfg.Workers
}
