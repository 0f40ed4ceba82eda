package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"auditlens/internal/adapters/filesystem"
	"auditlens/internal/store"
)

type testEnv struct {
	dir     string
	store   *store.Store
	lister  *filesystem.Lister
	decoder *filesystem.Decoder
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	s := store.New(nil)
	t.Cleanup(func() { s.Close() })

	return &testEnv{
		dir:     t.TempDir(),
		store:   s,
		lister:  filesystem.NewLister(),
		decoder: filesystem.NewDecoder(),
	}
}

func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func (e *testEnv) writeGzip(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("failed to compress %s: %v", name, err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish %s: %v", name, err)
	}
	return path
}

// manifest builds a single-line manifest declaring name:hash pairs
func manifest(auditLog string, files ...string) string {
	var parts []string
	for _, f := range files {
		name, hash, _ := strings.Cut(f, ":")
		parts = append(parts, `{"name":"`+name+`","hash":"`+hash+`"}`)
	}
	return `{"auditLog":"` + auditLog + `","files":[` + strings.Join(parts, ",") + `]}` + "\n"
}

func (e *testEnv) ingest(t *testing.T, paths ...string) *IngestResult {
	t.Helper()
	res, err := NewIngestCommand(e.store, e.decoder, paths).Execute(t.Context())
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	return res
}

func (e *testEnv) reconcile(t *testing.T, id string) *ReconcileResult {
	t.Helper()
	res, err := NewReconcileCommand(e.store, e.lister, e.decoder, id).Execute(t.Context())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	return res
}
