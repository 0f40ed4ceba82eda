package commands

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"auditlens/internal/application"
	"auditlens/internal/domain"
)

func TestIngestCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "one manifest",
			paths:   []string{"/logs/a-audit.json"},
			wantErr: false,
		},
		{
			name:    "no paths",
			paths:   nil,
			wantErr: true,
			errMsg:  "at least one of manifest paths",
		},
		{
			name:    "blank path",
			paths:   []string{""},
			wantErr: true,
			errMsg:  "is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &IngestCommand{Paths: tt.paths}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				var valErr *application.ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIngestCommand_NewGroup(t *testing.T) {
	env := setupEnv(t)
	path := env.write(t, "run1-audit.json", manifest("run1", "a.log:h1", "b.log:h2"))

	res := env.ingest(t, path)

	if res.Created != 1 || res.Updated != 0 {
		t.Errorf("expected 1 created, got created=%d updated=%d", res.Created, res.Updated)
	}

	snap := env.store.Snapshot()
	if len(snap.LogGroups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(snap.LogGroups))
	}
	g := snap.LogGroups[0]
	if g.LogGroupID == "" {
		t.Error("expected an assigned group id")
	}
	if g.DirectoryPath != env.dir {
		t.Errorf("DirectoryPath = %s, want %s", g.DirectoryPath, env.dir)
	}
	if len(g.Files) != 2 || g.Files[0].Reconciled() || g.Files[1].Reconciled() {
		t.Errorf("expected 2 unreconciled files, got %+v", g.Files)
	}
}

func TestIngestCommand_Idempotent(t *testing.T) {
	env := setupEnv(t)
	path := env.write(t, "run1-audit.json", manifest("run1", "a.log:h1"))

	first := env.ingest(t, path)
	before := env.store.Snapshot()
	second := env.ingest(t, path)
	after := env.store.Snapshot()

	if second.Updated != 1 || second.Created != 0 {
		t.Errorf("expected re-import to update, got created=%d updated=%d", second.Created, second.Updated)
	}
	if first.Groups[0].LogGroupID != second.Groups[0].LogGroupID {
		t.Error("re-import changed the group id")
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("re-import changed state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestIngestCommand_DistinctContentAppends(t *testing.T) {
	env := setupEnv(t)
	a := env.write(t, "a-audit.json", manifest("run-a", "a.log:h1"))
	b := env.write(t, "b-audit.json", manifest("run-b", "b.log:h2"))

	res := env.ingest(t, a, b)

	if res.Created != 2 {
		t.Errorf("expected 2 created, got %d", res.Created)
	}
	snap := env.store.Snapshot()
	if len(snap.LogGroups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(snap.LogGroups))
	}
	if snap.LogGroups[0].AuditLog != "run-a" || snap.LogGroups[1].AuditLog != "run-b" {
		t.Error("groups not in input order")
	}
}

func TestIngestCommand_AllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		second  func(env *testEnv, t *testing.T) string
		wantErr error
	}{
		{
			name: "malformed manifest",
			second: func(env *testEnv, t *testing.T) string {
				return env.write(t, "bad-audit.json", "{not json")
			},
			wantErr: domain.ErrMalformedManifest,
		},
		{
			name: "missing manifest",
			second: func(env *testEnv, t *testing.T) string {
				return filepath.Join(env.dir, "missing-audit.json")
			},
			wantErr: domain.ErrIORead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupEnv(t)
			good := env.write(t, "good-audit.json", manifest("good", "a.log:h1"))

			_, err := NewIngestCommand(env.store, env.decoder, []string{good, tt.second(env, t)}).Execute(t.Context())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if n := len(env.store.Snapshot().LogGroups); n != 0 {
				t.Errorf("expected no groups after failed ingest, got %d", n)
			}
		})
	}
}

func TestIngestCommand_IOErrorPropagatesUnchanged(t *testing.T) {
	env := setupEnv(t)
	missing := filepath.Join(env.dir, "missing-audit.json")

	_, err := NewIngestCommand(env.store, env.decoder, []string{missing}).Execute(t.Context())

	var ioErr *domain.IOReadError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOReadError, got %v", err)
	}
	if ioErr.Path != missing {
		t.Errorf("expected path %s, got %s", missing, ioErr.Path)
	}
}

func TestIngestCommand_ReimportCarriesDataForward(t *testing.T) {
	env := setupEnv(t)
	env.write(t, "a.log", "{\"n\":1}\n")
	path := env.write(t, "run-audit.json", manifest("run", "a.log:h1"))

	res := env.ingest(t, path)
	env.reconcile(t, res.Groups[0].LogGroupID)

	// The logger rotated: the manifest now declares a second file
	env.write(t, "run-audit.json", manifest("run", "a.log:h1", "b.log:h2"))
	env.ingest(t, path)

	g := env.store.Snapshot().LogGroups[0]
	if len(g.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(g.Files))
	}
	if len(g.Files[0].Data) != 1 {
		t.Errorf("expected prior data kept for h1, got %v", g.Files[0].Data)
	}
	if g.Files[0].Path != filepath.Join(env.dir, "a.log") {
		t.Errorf("expected prior path kept, got %q", g.Files[0].Path)
	}
	if g.Files[1].Reconciled() {
		t.Error("new file must start unreconciled")
	}
}

func TestIngestCommand_PrettyPrintedManifest(t *testing.T) {
	env := setupEnv(t)
	path := env.write(t, "pretty-audit.json", `{
  "keep": {"days": false, "amount": 5},
  "auditLog": "pretty",
  "files": [
    {"date": 1700000000000, "name": "app.log", "hash": "h1"}
  ],
  "hashType": "md5"
}
`)

	res := env.ingest(t, path)
	g := res.Groups[0]
	if g.Files[0].Date != 1700000000000 {
		t.Errorf("Date = %d", g.Files[0].Date)
	}
	if g.Attributes["hashType"] != "md5" {
		t.Errorf("expected hashType attribute, got %v", g.Attributes)
	}
}

func TestIngestCommand_RelativePathResolved(t *testing.T) {
	env := setupEnv(t)
	env.write(t, "run-audit.json", manifest("run", "a.log:h1"))
	t.Chdir(env.dir)

	res := env.ingest(t, "run-audit.json")

	g := res.Groups[0]
	if g.DirectoryPath != env.dir {
		t.Errorf("expected directory %s, got %s", env.dir, g.DirectoryPath)
	}
	if g.ManifestPath != filepath.Join(env.dir, "run-audit.json") {
		t.Errorf("expected absolute manifest path, got %s", g.ManifestPath)
	}
}
