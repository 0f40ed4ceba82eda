package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"auditlens/internal/application"
	"auditlens/internal/application/commands"
	"auditlens/internal/domain"
)

const defaultRecordLimit = 100

// RegisterReadTools adds the read-only log group tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(listGroupsTool(), listGroupsHandler(deps))
	s.AddTool(showGroupTool(), showGroupHandler(deps))
}

// --- list_groups ---

func listGroupsTool() mcp.Tool {
	return mcp.NewTool("list_groups",
		mcp.WithDescription("List imported log groups with their directory and how many declared files have been reconciled."),
	)
}

func listGroupsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		groups, err := commands.NewListGroupsCommand(deps.Store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(groups, formatSummary)
	}
}

// --- show_group ---

func showGroupTool() mcp.Tool {
	return mcp.NewTool("show_group",
		mcp.WithDescription("Show the declared files of a log group. With records=true also returns parsed records as JSON lines."),
		mcp.WithString("group_id",
			mcp.Description("Log group id or a unique prefix of it"),
			mcp.Required(),
		),
		mcp.WithBoolean("records",
			mcp.Description("Include parsed records"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum records to return (default 100)"),
		),
	)
}

func showGroupHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("group_id", "")
		if id == "" {
			return toolError(fmt.Errorf("group_id is required"))
		}

		group, err := commands.NewShowGroupCommand(deps.Store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %s\n", group.LogGroupID, group.DirectoryPath)
		for _, f := range group.Files {
			fmt.Fprintf(&sb, "  %-10s %6d  %s\n", application.FileStatus(f), len(f.Data), f.Name)
		}

		if req.GetBool("records", false) {
			limit := req.GetInt("limit", defaultRecordLimit)
			if err := writeRecords(&sb, *group, limit); err != nil {
				return toolError(err)
			}
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func writeRecords(sb *strings.Builder, g domain.LogGroup, limit int) error {
	n := 0
	for _, f := range g.Files {
		for _, rec := range f.Data {
			if limit > 0 && n >= limit {
				fmt.Fprintf(sb, "... truncated at %d records\n", limit)
				return nil
			}
			line, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encoding record of %s: %w", f.Name, err)
			}
			sb.Write(line)
			sb.WriteByte('\n')
			n++
		}
	}
	return nil
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No log groups."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatSummary(g commands.GroupSummary) string {
	return fmt.Sprintf("%s  %s  %d/%d files  %d records", g.ID, g.DirectoryPath, g.Reconciled, g.Files, g.Records)
}
