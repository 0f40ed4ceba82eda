package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"auditlens/internal/application/commands"
	"auditlens/internal/ports"
)

// Deps are the collaborators the tools operate on
type Deps struct {
	Store   ports.LogGroupStore
	Lister  ports.DirectoryLister
	Decoder ports.FormatDecoder
	Workers int
}

// RegisterWriteTools adds the tools that change the log group store.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(ingestTool(), ingestHandler(deps))
	s.AddTool(reconcileTool(), reconcileHandler(deps))
	s.AddTool(resetTool(), resetHandler(deps))
}

// --- ingest ---

func ingestTool() mcp.Tool {
	return mcp.NewTool("ingest",
		mcp.WithDescription("Import audit manifests (*-audit.json). A manifest whose auditLog matches an existing group replaces that group's file list. Either all manifests are imported or none."),
		mcp.WithArray("paths",
			mcp.Description("Paths of manifest files, relative ones resolve against the server's working directory"),
			mcp.Required(),
			mcp.WithStringItems(),
		),
	)
}

func ingestHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		paths := req.GetStringSlice("paths", nil)

		cmd := commands.NewIngestCommand(deps.Store, deps.Decoder, paths)
		cmd.Workers = deps.Workers
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		msg := result.Message
		for _, g := range result.Groups {
			msg += fmt.Sprintf("\n%s  %s  %d files", g.LogGroupID, g.DirectoryPath, len(g.Files))
		}
		return mcp.NewToolResultText(msg), nil
	}
}

// --- reconcile ---

func reconcileTool() mcp.Tool {
	return mcp.NewTool("reconcile",
		mcp.WithDescription("Match a log group's declared files against its directory and parse the matched ones (plain or gzip, newline-delimited JSON)."),
		mcp.WithString("group_id",
			mcp.Description("Log group id or a unique prefix of it"),
			mcp.Required(),
		),
	)
}

func reconcileHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("group_id", "")

		cmd := commands.NewReconcileCommand(deps.Store, deps.Lister, deps.Decoder, id)
		cmd.Workers = deps.Workers
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- reset ---

func resetTool() mcp.Tool {
	return mcp.NewTool("reset",
		mcp.WithDescription("Remove every log group. Requires confirm=true."),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true"),
			mcp.Required(),
		),
	)
}

func resetHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !req.GetBool("confirm", false) {
			return toolError(fmt.Errorf("reset requires confirm=true"))
		}

		result, err := commands.NewResetCommand(deps.Store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}
