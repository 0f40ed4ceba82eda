package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"auditlens/internal/application"
	"auditlens/internal/domain"
	"auditlens/internal/logging"
	"auditlens/internal/ports"
)

// DefaultWorkers bounds concurrent file reads when no limit is configured
const DefaultWorkers = 4

// IngestResult contains the groups touched by an ingest, in input order
type IngestResult struct {
	Groups  []domain.LogGroup
	Created int
	Updated int
	Message string
}

// IngestCommand imports audit manifests into the store. Either every
// manifest is merged or, on the first read or decode failure, none is.
type IngestCommand struct {
	store   ports.LogGroupStore
	decoder ports.FormatDecoder
	Paths   []string
	Workers int
}

// NewIngestCommand creates a new IngestCommand
func NewIngestCommand(store ports.LogGroupStore, decoder ports.FormatDecoder, paths []string) *IngestCommand {
	return &IngestCommand{
		store:   store,
		decoder: decoder,
		Paths:   paths,
		Workers: DefaultWorkers,
	}
}

// Validate checks that there is something to ingest
func (c *IngestCommand) Validate() error {
	return application.ValidatePaths("paths", c.Paths)
}

// Execute runs the ingest command
func (c *IngestCommand) Execute(ctx context.Context) (*IngestResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ctx = logging.WithOperation(ctx, "ingest")
	logger := logging.FromContext(ctx)
	logger.Info("ingest started", "manifests", len(c.Paths))

	decoded, err := c.readManifests(ctx)
	if err != nil {
		logger.Warn("ingest aborted", "error", err)
		return nil, err
	}

	var (
		touched          []domain.LogGroup
		created, updated int
	)
	err = c.store.Update(func(st *domain.State) error {
		touched = touched[:0]
		created, updated = 0, 0

		for _, g := range decoded {
			g.LogGroupID = uuid.NewString()

			var replaced bool
			st.LogGroups, g, replaced = domain.UpsertGroup(st.LogGroups, g)
			if replaced {
				updated++
				logger.Debug("manifest replaces group", "group_id", g.LogGroupID, "manifest", g.ManifestPath)
			} else {
				created++
				logger.Debug("manifest creates group", "group_id", g.LogGroupID, "manifest", g.ManifestPath)
			}
			touched = append(touched, g)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store log groups: %w", err)
	}

	logger.Info("ingest finished", "created", created, "updated", updated)

	return &IngestResult{
		Groups:  touched,
		Created: created,
		Updated: updated,
		Message: fmt.Sprintf("Imported %d manifest(s): %d new, %d updated", len(decoded), created, updated),
	}, nil
}

// readManifests reads and decodes every path concurrently. Results keep
// input order. Relative paths are resolved against the working directory.
func (c *IngestCommand) readManifests(ctx context.Context) ([]domain.LogGroup, error) {
	decoded := make([]domain.LogGroup, len(c.Paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(c.Workers))

	for i, path := range c.Paths {
		g.Go(func() error {
			path, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", c.Paths[i], err)
			}
			text, err := c.decoder.ReadText(gctx, path)
			if err != nil {
				return err
			}
			group, err := domain.DecodeManifest(path, text)
			if err != nil {
				return err
			}
			decoded[i] = group
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decoded, nil
}

func workerLimit(n int) int {
	if n <= 0 {
		return DefaultWorkers
	}
	return n
}
