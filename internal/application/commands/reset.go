package commands

import (
	"context"
	"fmt"

	"auditlens/internal/logging"
	"auditlens/internal/ports"
)

// ResetResult contains the result of clearing the store
type ResetResult struct {
	Removed int
	Message string
}

// ResetCommand removes every log group
type ResetCommand struct {
	store ports.LogGroupStore
}

// NewResetCommand creates a new ResetCommand
func NewResetCommand(store ports.LogGroupStore) *ResetCommand {
	return &ResetCommand{store: store}
}

// Execute runs the reset command
func (c *ResetCommand) Execute(ctx context.Context) (*ResetResult, error) {
	removed := len(c.store.Snapshot().LogGroups)

	if err := c.store.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset store: %w", err)
	}

	logging.FromContext(ctx).Info("store reset", "removed", removed)

	return &ResetResult{
		Removed: removed,
		Message: fmt.Sprintf("Removed %d log group(s)", removed),
	}, nil
}
