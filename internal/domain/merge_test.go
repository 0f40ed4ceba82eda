package domain

import "testing"

func TestUpsertGroup(t *testing.T) {
	groups := []LogGroup{
		{LogGroupID: "a", AuditLog: "/logs/a-audit.json"},
		{LogGroupID: "b", AuditLog: map[string]any{"path": "/logs/b"}, Files: []LogGroupFile{
			{Name: "old.log", Hash: "1", Path: "/logs/b/old.log", Data: []Record{{"n": 1.0}}},
			{Name: "dropped.log", Hash: "2", Data: []Record{}},
		}},
	}

	t.Run("replaces deep-equal content in place", func(t *testing.T) {
		in := append([]LogGroup(nil), groups...)
		out, stored, replaced := UpsertGroup(in, LogGroup{
			LogGroupID: "b2",
			AuditLog:   map[string]any{"path": "/logs/b"},
			Files:      []LogGroupFile{{Name: "renamed.log", Hash: "1"}, {Name: "new.log", Hash: "3"}},
		})

		if !replaced {
			t.Fatal("expected a replacement")
		}
		if len(out) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(out))
		}
		if out[1].LogGroupID != "b" || stored.LogGroupID != "b" {
			t.Errorf("expected position 1 to keep id b, got %s", out[1].LogGroupID)
		}
		files := out[1].Files
		if len(files) != 2 || files[0].Name != "renamed.log" {
			t.Fatalf("expected the new file list, got %+v", files)
		}
		if len(files[0].Data) != 1 || files[0].Path != "/logs/b/old.log" {
			t.Errorf("expected data and path carried forward, got %+v", files[0])
		}
		if files[1].Reconciled() {
			t.Error("new hash must start unreconciled")
		}
	})

	t.Run("appends new content", func(t *testing.T) {
		in := append([]LogGroup(nil), groups...)
		out, stored, replaced := UpsertGroup(in, LogGroup{LogGroupID: "c", AuditLog: "/logs/c-audit.json"})

		if replaced {
			t.Error("expected an append")
		}
		if len(out) != 3 {
			t.Fatalf("expected 3 groups, got %d", len(out))
		}
		if out[2].LogGroupID != "c" || stored.LogGroupID != "c" {
			t.Errorf("expected appended group c, got %s", out[2].LogGroupID)
		}
	})

	t.Run("first match wins", func(t *testing.T) {
		in := []LogGroup{
			{LogGroupID: "x", AuditLog: "same", DirectoryPath: "/old"},
			{LogGroupID: "y", AuditLog: "same"},
		}
		out, _, _ := UpsertGroup(in, LogGroup{LogGroupID: "z", AuditLog: "same", DirectoryPath: "/new"})

		if out[0].LogGroupID != "x" || out[0].DirectoryPath != "/new" || out[1].LogGroupID != "y" {
			t.Errorf("expected x replaced in place, got %+v", out)
		}
	})
}

func TestUpsertFile(t *testing.T) {
	files := []LogGroupFile{
		{Name: "a.log", Hash: "1"},
		{Name: "b.log", Hash: "2"},
	}

	files = UpsertFile(files, LogGroupFile{Name: "a.log", Hash: "1", Data: []Record{{"m": "x"}}})
	if len(files) != 2 {
		t.Fatalf("expected 2 files after replace, got %d", len(files))
	}
	if !files[0].Reconciled() {
		t.Error("expected files[0] to carry data")
	}

	files = UpsertFile(files, LogGroupFile{Name: "c.log", Hash: "3"})
	if len(files) != 3 || files[2].Hash != "3" {
		t.Errorf("expected c.log appended, got %+v", files)
	}
}

func TestReplaceFile(t *testing.T) {
	files := []LogGroupFile{{Name: "a.log", Hash: "1"}}

	if !ReplaceFile(files, LogGroupFile{Name: "a.log", Hash: "1", Data: []Record{}}) {
		t.Error("expected replace of existing hash to succeed")
	}
	if files[0].Data == nil {
		t.Error("expected data to be set")
	}
	if ReplaceFile(files, LogGroupFile{Name: "z.log", Hash: "9"}) {
		t.Error("expected replace of unknown hash to fail")
	}
}

func TestStateClone_Isolated(t *testing.T) {
	original := State{LogGroups: []LogGroup{
		{LogGroupID: "a", Files: []LogGroupFile{{Name: "a.log", Hash: "1"}}},
	}}

	clone := original.Clone()
	clone.LogGroups[0].Files[0].Data = []Record{}
	clone.LogGroups[0].DirectoryPath = "/changed"

	if original.LogGroups[0].Files[0].Data != nil {
		t.Error("clone shares files with original")
	}
	if original.LogGroups[0].DirectoryPath != "" {
		t.Error("clone shares groups with original")
	}
}
