package commands

import (
	"context"
	"errors"
	"path/filepath"

	"auditlens/internal/application"
	"auditlens/internal/domain"
	"auditlens/internal/logging"
	"auditlens/internal/ports"
)

// WatchEvent reports the outcome of handling one changed path
type WatchEvent struct {
	Path      string
	Ingest    *IngestResult
	Reconcile *ReconcileResult
	Err       error
}

// WatchCommand keeps groups reconciled while their directories change.
// A changed manifest is re-ingested; any other changed file triggers a
// reconcile of the groups living in its directory.
type WatchCommand struct {
	store    ports.LogGroupStore
	lister   ports.DirectoryLister
	decoder  ports.FormatDecoder
	watcher  ports.DirectoryWatcher
	GroupIDs []string // empty watches every group
	Initial  bool     // reconcile every watched group before waiting
	Workers  int
	OnEvent  func(WatchEvent)
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(store ports.LogGroupStore, lister ports.DirectoryLister, decoder ports.FormatDecoder, watcher ports.DirectoryWatcher, groupIDs []string) *WatchCommand {
	return &WatchCommand{
		store:    store,
		lister:   lister,
		decoder:  decoder,
		watcher:  watcher,
		GroupIDs: groupIDs,
		Workers:  DefaultWorkers,
	}
}

// Execute blocks until ctx is cancelled or the watcher fails
func (c *WatchCommand) Execute(ctx context.Context) error {
	ids, dirs, err := c.watched()
	if err != nil {
		return err
	}

	ctx = logging.WithOperation(ctx, "watch")
	logger := logging.FromContext(ctx)
	logger.Info("watching directories", "dirs", dirs, "groups", len(ids))

	if c.Initial {
		for _, id := range ids {
			c.reconcile(ctx, "", id)
		}
	}

	events := make(chan string, 64)
	errc := make(chan error, 1)
	go func() {
		errc <- c.watcher.Watch(ctx, dirs, events)
	}()

	for {
		select {
		case path := <-events:
			c.handle(ctx, path, ids)
		case err := <-errc:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// watched resolves the groups to follow and their distinct directories
func (c *WatchCommand) watched() ([]string, []string, error) {
	snap := c.store.Snapshot()

	var groups []domain.LogGroup
	if len(c.GroupIDs) == 0 {
		groups = snap.LogGroups
	} else {
		for _, id := range c.GroupIDs {
			g, err := ResolveGroup(snap, id)
			if err != nil {
				return nil, nil, err
			}
			groups = append(groups, g)
		}
	}

	if len(groups) == 0 {
		return nil, nil, &application.ValidationError{
			Field:   "groupID",
			Message: "no log groups to watch; import a manifest first",
		}
	}

	var ids, dirs []string
	seen := make(map[string]bool)
	for _, g := range groups {
		ids = append(ids, g.LogGroupID)
		if !seen[g.DirectoryPath] {
			seen[g.DirectoryPath] = true
			dirs = append(dirs, g.DirectoryPath)
		}
	}
	return ids, dirs, nil
}

func (c *WatchCommand) handle(ctx context.Context, path string, ids []string) {
	follow := make(map[string]bool, len(ids))
	for _, id := range ids {
		follow[id] = true
	}
	watchAll := len(c.GroupIDs) == 0

	if application.IsManifest(path) {
		ingest := NewIngestCommand(c.store, c.decoder, []string{path})
		ingest.Workers = c.Workers
		res, err := ingest.Execute(ctx)
		c.emit(WatchEvent{Path: path, Ingest: res, Err: err})
		if err != nil {
			return
		}
		for _, g := range res.Groups {
			if watchAll || follow[g.LogGroupID] {
				c.reconcile(ctx, path, g.LogGroupID)
			}
		}
		return
	}

	dir := filepath.Dir(path)
	for _, g := range c.store.Snapshot().LogGroups {
		if g.DirectoryPath != dir {
			continue
		}
		if watchAll || follow[g.LogGroupID] {
			c.reconcile(ctx, path, g.LogGroupID)
		}
	}
}

func (c *WatchCommand) reconcile(ctx context.Context, path, id string) {
	cmd := NewReconcileCommand(c.store, c.lister, c.decoder, id)
	cmd.Workers = c.Workers
	res, err := cmd.Execute(ctx)
	c.emit(WatchEvent{Path: path, Reconcile: res, Err: err})
}

func (c *WatchCommand) emit(ev WatchEvent) {
	if c.OnEvent != nil {
		c.OnEvent(ev)
	}
}
