package commands

import (
	"errors"
	"testing"

	"auditlens/internal/application"
	"auditlens/internal/domain"
)

func TestListGroupsCommand(t *testing.T) {
	env, id := setupReconcile(t)
	env.reconcile(t, id)

	groups, err := NewListGroupsCommand(env.store).Execute(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.ID != id || g.Files != 3 || g.Reconciled != 2 || g.Records != 5 {
		t.Errorf("unexpected summary %+v", g)
	}
}

func TestShowGroupCommand(t *testing.T) {
	env, id := setupReconcile(t)

	g, err := NewShowGroupCommand(env.store, id).Execute(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.LogGroupID != id || len(g.Files) != 3 {
		t.Errorf("unexpected group %+v", g)
	}

	if _, err := NewShowGroupCommand(env.store, "").Execute(t.Context()); err == nil {
		t.Error("expected validation error for empty id")
	}
}

func TestResolveGroup(t *testing.T) {
	st := domain.State{LogGroups: []domain.LogGroup{
		{LogGroupID: "abc-1"},
		{LogGroupID: "abc-2"},
		{LogGroupID: "def"},
	}}

	tests := []struct {
		name    string
		id      string
		want    string
		wantErr error
	}{
		{name: "exact", id: "def", want: "def"},
		{name: "unique prefix", id: "abc-2", want: "abc-2"},
		{name: "short unique prefix", id: "d", want: "def"},
		{name: "unknown", id: "zzz", wantErr: domain.ErrLogGroupNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ResolveGroup(st, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.LogGroupID != tt.want {
				t.Errorf("resolved %s, want %s", g.LogGroupID, tt.want)
			}
		})
	}

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := ResolveGroup(st, "abc")
		var valErr *application.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})
}
