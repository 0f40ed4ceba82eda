package commands

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"auditlens/internal/application"
	"auditlens/internal/domain"
	"auditlens/internal/logging"
	"auditlens/internal/ports"
)

// ReconcileResult describes what one reconcile pass did
type ReconcileResult struct {
	GroupID   string
	Matched   int
	Unmatched int
	Records   int
	Files     []domain.LogGroupFile
	Message   string
}

// ReconcileCommand matches a group's declared files against its directory,
// decodes the matched ones and commits their records. Nothing is committed
// unless every matched file decodes.
type ReconcileCommand struct {
	store   ports.LogGroupStore
	lister  ports.DirectoryLister
	decoder ports.FormatDecoder
	GroupID string
	Workers int
}

// NewReconcileCommand creates a new ReconcileCommand
func NewReconcileCommand(store ports.LogGroupStore, lister ports.DirectoryLister, decoder ports.FormatDecoder, groupID string) *ReconcileCommand {
	return &ReconcileCommand{
		store:   store,
		lister:  lister,
		decoder: decoder,
		GroupID: groupID,
		Workers: DefaultWorkers,
	}
}

// Validate checks that a group is named
func (c *ReconcileCommand) Validate() error {
	return application.ValidateRequired("groupID", c.GroupID)
}

type decodeJob struct {
	file  domain.LogGroupFile
	entry domain.ClassifiedEntry
}

// Execute runs the reconcile command
func (c *ReconcileCommand) Execute(ctx context.Context) (*ReconcileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	group, err := ResolveGroup(c.store.Snapshot(), c.GroupID)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithOperation(ctx, "reconcile")
	logger := logging.WithFields(ctx, "group_id", group.LogGroupID)
	logger.Info("reconcile started", "directory", group.DirectoryPath, "files", len(group.Files))

	entries, err := c.lister.ListDir(ctx, group.DirectoryPath)
	if err != nil {
		logger.Warn("reconcile aborted", "error", err)
		return nil, err
	}
	listing := domain.ClassifyEntries(entries)

	var jobs []decodeJob
	for _, f := range group.Files {
		entry, ok := domain.MatchEntry(f, listing)
		if !ok {
			logger.Debug("no entry for declared file", "file", f.Name)
			continue
		}
		logger.Debug("declared file matched", "file", f.Name, "entry", entry.Name, "kind", entry.Kind)
		jobs = append(jobs, decodeJob{file: f, entry: entry})
	}

	decoded, err := c.decodeAll(ctx, jobs)
	if err != nil {
		logger.Warn("reconcile aborted", "error", err)
		return nil, err
	}

	working := append([]domain.LogGroupFile(nil), group.Files...)
	records := 0
	for _, f := range decoded {
		if !domain.ReplaceFile(working, f) {
			return nil, fmt.Errorf("%w: file %s (hash %s) missing from group %s",
				application.ErrInvariant, f.Name, f.Hash, group.LogGroupID)
		}
		records += len(f.Data)
	}

	err = c.store.Update(func(st *domain.State) error {
		i := domain.FindGroup(st.LogGroups, group.LogGroupID)
		if i < 0 {
			return fmt.Errorf("%w: %s", domain.ErrLogGroupNotFound, group.LogGroupID)
		}
		for _, f := range decoded {
			st.LogGroups[i].Files = domain.UpsertFile(st.LogGroups[i].Files, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	unmatched := len(group.Files) - len(jobs)
	logger.Info("reconcile finished", "matched", len(jobs), "unmatched", unmatched, "records", records)

	return &ReconcileResult{
		GroupID:   group.LogGroupID,
		Matched:   len(jobs),
		Unmatched: unmatched,
		Records:   records,
		Files:     working,
		Message: fmt.Sprintf("Reconciled %s: %d file(s) matched, %d unmatched, %d record(s)",
			group.LogGroupID, len(jobs), unmatched, records),
	}, nil
}

// decodeAll reads and parses every job concurrently. The first failure
// cancels the rest.
func (c *ReconcileCommand) decodeAll(ctx context.Context, jobs []decodeJob) ([]domain.LogGroupFile, error) {
	out := make([]domain.LogGroupFile, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(c.Workers))

	for i, job := range jobs {
		g.Go(func() error {
			records, err := c.decodeEntry(gctx, job.entry)
			if err != nil {
				return &domain.FileDecodeError{Name: job.file.Name, Err: err}
			}
			f := job.file
			f.Data = records
			f.Path = job.entry.Path
			out[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ReconcileCommand) decodeEntry(ctx context.Context, entry domain.ClassifiedEntry) ([]domain.Record, error) {
	var (
		text string
		err  error
	)
	switch entry.Kind {
	case domain.EntryCompressed:
		text, err = c.decoder.Decompress(ctx, entry.Path)
	default:
		text, err = c.decoder.ReadText(ctx, entry.Path)
	}
	if err != nil {
		return nil, err
	}
	return domain.ParseRecords(text)
}
