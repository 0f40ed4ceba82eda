package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// scriptedWatcher sends fixed paths and then waits for cancellation
type scriptedWatcher struct {
	paths []string
	dirs  []string
}

func (w *scriptedWatcher) Watch(ctx context.Context, dirs []string, out chan<- string) error {
	w.dirs = dirs
	for _, p := range w.paths {
		select {
		case out <- p:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWatchCommand_ReconcilesOnChange(t *testing.T) {
	env, id := setupReconcile(t)
	w := &scriptedWatcher{paths: []string{filepath.Join(env.dir, "worker.log")}}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	events := make(chan WatchEvent, 4)
	cmd := NewWatchCommand(env.store, env.lister, env.decoder, w, nil)
	cmd.OnEvent = func(ev WatchEvent) {
		events <- ev
		cancel()
	}

	if err := cmd.Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := <-events
	if ev.Err != nil {
		t.Fatalf("reconcile failed: %v", ev.Err)
	}
	if ev.Reconcile == nil || ev.Reconcile.GroupID != id {
		t.Errorf("expected reconcile of %s, got %+v", id, ev)
	}
	if len(w.dirs) != 1 || w.dirs[0] != env.dir {
		t.Errorf("expected to watch %s, got %v", env.dir, w.dirs)
	}
	if env.store.Snapshot().LogGroups[0].ReconciledCount() != 2 {
		t.Error("expected files reconciled after the change")
	}
}

func TestWatchCommand_ManifestChangeReingests(t *testing.T) {
	env, _ := setupReconcile(t)
	path := filepath.Join(env.dir, "run-audit.json")
	env.write(t, "run-audit.json", manifest("run", "logs/app.log:h-app", "worker.log:h-worker", "new.log:h-new"))
	w := &scriptedWatcher{paths: []string{path}}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	var got []WatchEvent
	cmd := NewWatchCommand(env.store, env.lister, env.decoder, w, nil)
	cmd.OnEvent = func(ev WatchEvent) {
		got = append(got, ev)
		if ev.Reconcile != nil || ev.Err != nil {
			cancel()
		}
	}

	if err := cmd.Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 || got[0].Ingest == nil || got[1].Reconcile == nil {
		t.Fatalf("expected ingest then reconcile, got %+v", got)
	}
	files := env.store.Snapshot().LogGroups[0].Files
	if len(files) != 3 || files[2].Hash != "h-new" {
		t.Errorf("expected the re-ingested file list, got %+v", files)
	}
}

func TestWatchCommand_NothingToWatch(t *testing.T) {
	env := setupEnv(t)

	err := NewWatchCommand(env.store, env.lister, env.decoder, &scriptedWatcher{}, nil).Execute(t.Context())
	if err == nil {
		t.Error("expected error when no groups exist")
	}
}
