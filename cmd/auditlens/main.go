package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"auditlens/internal/adapters/editor"
	"auditlens/internal/adapters/filesystem"
	"auditlens/internal/adapters/tui"
	"auditlens/internal/bootstrap"
	"auditlens/internal/config"
	"auditlens/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var o bootstrap.Overrides
	var startDir string

	flags := pflag.NewFlagSet("auditlens", pflag.ContinueOnError)
	flags.StringVarP(&o.ConfigPath, "config", "c", "", "config file (.json, .jsonc, .yaml); default $"+config.ConfigEnv)
	flags.StringVar(&o.StatePath, "state", "", "state database")
	flags.StringVarP(&o.Session, "session", "s", "", "state session name")
	flags.StringVar(&o.LogLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVarP(&startDir, "dir", "d", "", "directory the import picker starts in")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := bootstrap.LoadConfig(o)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; logs go next to the state database
	logPath := filepath.Join(filepath.Dir(cfg.StatePath), "auditlens.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logging.Setup(cfg.LogLevel, cfg.LogFormat, logFile)

	st, err := bootstrap.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app := tui.NewApp(ctx, tui.Deps{
		Store:    st,
		Lister:   filesystem.NewLister(),
		Decoder:  filesystem.NewDecoder(),
		Editor:   editor.NewOpener(),
		Workers:  cfg.Workers,
		StartDir: startDir,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return st.Close()
}
