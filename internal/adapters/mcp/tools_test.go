package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"auditlens/internal/adapters/filesystem"
	"auditlens/internal/store"
)

func setupDeps(t *testing.T) (Deps, string) {
	t.Helper()

	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	write("run-audit.json", `{"auditLog":"run","files":[{"name":"app.log","hash":"h1"}]}`)
	write("app.log", "{\"level\":\"info\",\"msg\":\"hello\"}\n")

	s := store.New(nil)
	t.Cleanup(func() { s.Close() })

	return Deps{
		Store:   s,
		Lister:  filesystem.NewLister(),
		Decoder: filesystem.NewDecoder(),
		Workers: 2,
	}, dir
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text, result.IsError
}

func TestTools_IngestReconcileShow(t *testing.T) {
	deps, dir := setupDeps(t)

	out, isErr := call(t, ingestHandler(deps), map[string]any{
		"paths": []any{filepath.Join(dir, "run-audit.json")},
	})
	if isErr {
		t.Fatalf("ingest failed: %s", out)
	}
	if !strings.Contains(out, "1 new") {
		t.Errorf("unexpected ingest output %q", out)
	}

	id := deps.Store.Snapshot().LogGroups[0].LogGroupID

	out, isErr = call(t, reconcileHandler(deps), map[string]any{"group_id": id})
	if isErr {
		t.Fatalf("reconcile failed: %s", out)
	}
	if !strings.Contains(out, "1 record(s)") {
		t.Errorf("unexpected reconcile output %q", out)
	}

	out, isErr = call(t, showGroupHandler(deps), map[string]any{"group_id": id, "records": true})
	if isErr {
		t.Fatalf("show failed: %s", out)
	}
	if !strings.Contains(out, "reconciled") || !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("unexpected show output %q", out)
	}

	out, _ = call(t, listGroupsHandler(deps), nil)
	if !strings.Contains(out, "1/1 files") {
		t.Errorf("unexpected list output %q", out)
	}
}

func TestTools_Errors(t *testing.T) {
	deps, dir := setupDeps(t)

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]any
		errMsg  string
	}{
		{"ingest without paths", ingestHandler(deps), map[string]any{}, "manifest paths"},
		{"ingest missing file", ingestHandler(deps), map[string]any{"paths": []any{filepath.Join(dir, "x-audit.json")}}, "cannot read"},
		{"reconcile unknown group", reconcileHandler(deps), map[string]any{"group_id": "nope"}, "log group not found"},
		{"show without id", showGroupHandler(deps), map[string]any{}, "group_id is required"},
		{"reset without confirm", resetHandler(deps), map[string]any{}, "confirm=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, isErr := call(t, tt.handler, tt.args)
			if !isErr {
				t.Fatalf("expected tool error, got %q", out)
			}
			if !strings.Contains(out, tt.errMsg) {
				t.Errorf("expected %q in %q", tt.errMsg, out)
			}
		})
	}
}

func TestTools_Reset(t *testing.T) {
	deps, dir := setupDeps(t)
	call(t, ingestHandler(deps), map[string]any{"paths": []any{filepath.Join(dir, "run-audit.json")}})

	out, isErr := call(t, resetHandler(deps), map[string]any{"confirm": true})
	if isErr {
		t.Fatalf("reset failed: %s", out)
	}
	if len(deps.Store.Snapshot().LogGroups) != 0 {
		t.Error("expected empty store")
	}
}
