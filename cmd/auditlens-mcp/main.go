package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"auditlens/internal/adapters/filesystem"
	mcpadapter "auditlens/internal/adapters/mcp"
	"auditlens/internal/bootstrap"
	"auditlens/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "auditlens-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var o bootstrap.Overrides

	flags := pflag.NewFlagSet("auditlens-mcp", pflag.ContinueOnError)
	flags.StringVarP(&o.ConfigPath, "config", "c", "", "config file (.json, .jsonc, .yaml); default $"+config.ConfigEnv)
	flags.StringVar(&o.StatePath, "state", "", "state database")
	flags.StringVarP(&o.Session, "session", "s", "", "state session name")
	flags.StringVar(&o.LogLevel, "log-level", "", "debug, info, warn or error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	// stdout carries the protocol; logs go to stderr
	cfg, st, err := bootstrap.Open(o, os.Stderr)
	if err != nil {
		return err
	}
	defer st.Close()

	mcpServer := server.NewMCPServer(
		"auditlens-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	deps := mcpadapter.Deps{
		Store:   st,
		Lister:  filesystem.NewLister(),
		Decoder: filesystem.NewDecoder(),
		Workers: cfg.Workers,
	}
	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		return err
	}
	return st.Close()
}
