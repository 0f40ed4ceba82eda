package codec

import (
	"bytes"
	"reflect"
	"testing"

	"auditlens/internal/domain"
)

func sampleState() domain.State {
	return domain.State{LogGroups: []domain.LogGroup{
		{
			LogGroupID:    "g1",
			DirectoryPath: "/logs",
			ManifestPath:  "/logs/run-audit.json",
			AuditLog:      map[string]any{"id": "run", "tags": []any{"a", "b"}},
			Attributes:    map[string]any{"hashType": "md5"},
			Files: []domain.LogGroupFile{
				{
					Name: "a.log",
					Hash: "h1",
					Date: 1700000000000,
					Path: "/logs/a.log",
					Data: []domain.Record{
						{"level": "info", "n": float64(2), "nested": map[string]any{"ok": true}},
					},
				},
				{Name: "b.log", Hash: "h2"},
				{Name: "c.log", Hash: "h3", Data: []domain.Record{}},
			},
		},
	}}
}

func TestRoundTrip(t *testing.T) {
	in := sampleState()

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out domain.State
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %#v\nout: %#v", in, out)
	}
}

func TestRoundTrip_KeepsReconciledDistinction(t *testing.T) {
	data, err := Marshal(sampleState())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out domain.State
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	files := out.LogGroups[0].Files
	if files[1].Reconciled() {
		t.Error("unreconciled file came back with data")
	}
	if !files[2].Reconciled() {
		t.Error("reconciled file with zero records came back unreconciled")
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	a, err := Marshal(sampleState())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	b, err := Marshal(sampleState())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("expected identical encodings for equal states")
	}
}
