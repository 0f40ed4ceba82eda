package commands

import (
	"context"

	"auditlens/internal/application"
	"auditlens/internal/ports"
)

// ImportPickedCommand asks the user for files and ingests the manifests
// among them
type ImportPickedCommand struct {
	picker  ports.FilePicker
	store   ports.LogGroupStore
	decoder ports.FormatDecoder
	Workers int
}

// NewImportPickedCommand creates a new ImportPickedCommand
func NewImportPickedCommand(picker ports.FilePicker, store ports.LogGroupStore, decoder ports.FormatDecoder) *ImportPickedCommand {
	return &ImportPickedCommand{
		picker:  picker,
		store:   store,
		decoder: decoder,
		Workers: DefaultWorkers,
	}
}

// Execute runs the picker and ingests the chosen manifests. A cancelled
// pick or a selection without manifests imports nothing.
func (c *ImportPickedCommand) Execute(ctx context.Context) (*IngestResult, error) {
	picked, err := c.picker.PickFiles(ctx)
	if err != nil {
		return nil, err
	}

	manifests := FilterManifests(picked)
	if len(manifests) == 0 {
		return &IngestResult{Message: "No manifests selected"}, nil
	}

	ingest := NewIngestCommand(c.store, c.decoder, manifests)
	ingest.Workers = c.Workers
	return ingest.Execute(ctx)
}

// FilterManifests keeps the paths that name audit manifests, in order
func FilterManifests(paths []string) []string {
	var out []string
	for _, p := range paths {
		if application.IsManifest(p) {
			out = append(out, p)
		}
	}
	return out
}
