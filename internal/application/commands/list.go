package commands

import (
	"context"
	"fmt"
	"strings"

	"auditlens/internal/application"
	"auditlens/internal/domain"
	"auditlens/internal/ports"
)

// GroupSummary is one line of a group listing
type GroupSummary struct {
	ID            string
	DirectoryPath string
	ManifestPath  string
	Files         int
	Reconciled    int
	Records       int
}

// Summarize builds the listing line for g
func Summarize(g domain.LogGroup) GroupSummary {
	return GroupSummary{
		ID:            g.LogGroupID,
		DirectoryPath: g.DirectoryPath,
		ManifestPath:  g.ManifestPath,
		Files:         len(g.Files),
		Reconciled:    g.ReconciledCount(),
		Records:       g.RecordCount(),
	}
}

// ListGroupsCommand lists every log group in store order
type ListGroupsCommand struct {
	store ports.LogGroupStore
}

// NewListGroupsCommand creates a new ListGroupsCommand
func NewListGroupsCommand(store ports.LogGroupStore) *ListGroupsCommand {
	return &ListGroupsCommand{store: store}
}

// Execute runs the list groups command
func (c *ListGroupsCommand) Execute(ctx context.Context) ([]GroupSummary, error) {
	snap := c.store.Snapshot()
	out := make([]GroupSummary, 0, len(snap.LogGroups))
	for _, g := range snap.LogGroups {
		out = append(out, Summarize(g))
	}
	return out, nil
}

// ShowGroupCommand returns one group with its files and records
type ShowGroupCommand struct {
	store   ports.LogGroupStore
	GroupID string
}

// NewShowGroupCommand creates a new ShowGroupCommand
func NewShowGroupCommand(store ports.LogGroupStore, groupID string) *ShowGroupCommand {
	return &ShowGroupCommand{
		store:   store,
		GroupID: groupID,
	}
}

// Execute runs the show group command
func (c *ShowGroupCommand) Execute(ctx context.Context) (*domain.LogGroup, error) {
	if err := application.ValidateRequired("groupID", c.GroupID); err != nil {
		return nil, err
	}
	g, err := ResolveGroup(c.store.Snapshot(), c.GroupID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ResolveGroup finds a group by exact id, or by an id prefix that names
// exactly one group.
func ResolveGroup(st domain.State, id string) (domain.LogGroup, error) {
	if i := domain.FindGroup(st.LogGroups, id); i >= 0 {
		return st.LogGroups[i], nil
	}

	var found []domain.LogGroup
	for _, g := range st.LogGroups {
		if strings.HasPrefix(g.LogGroupID, id) {
			found = append(found, g)
		}
	}

	switch len(found) {
	case 0:
		return domain.LogGroup{}, fmt.Errorf("%w: %s", domain.ErrLogGroupNotFound, id)
	case 1:
		return found[0], nil
	default:
		return domain.LogGroup{}, &application.ValidationError{
			Field:   "groupID",
			Message: fmt.Sprintf("prefix %q matches %d groups", id, len(found)),
		}
	}
}
