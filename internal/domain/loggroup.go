package domain

// Record is one parsed line of a log file
type Record map[string]any

// LogGroup represents one imported audit session
type LogGroup struct {
	LogGroupID    string         `cbor:"logGroupId" json:"logGroupId"`
	DirectoryPath string         `cbor:"directoryPath" json:"directoryPath"`
	ManifestPath  string         `cbor:"manifestPath" json:"manifestPath"`
	AuditLog      any            `cbor:"auditLog" json:"auditLog"` // content identity
	Attributes    map[string]any `cbor:"attributes,omitempty" json:"attributes,omitempty"`
	Files         []LogGroupFile `cbor:"files" json:"files"`
}

// LogGroupFile represents one log file declared by a manifest.
// Data is nil until the file has been reconciled.
type LogGroupFile struct {
	Name string   `cbor:"name" json:"name"`
	Hash string   `cbor:"hash" json:"hash"`
	Date int64    `cbor:"date,omitempty" json:"date,omitempty"` // ms since epoch
	Path string   `cbor:"path,omitempty" json:"path,omitempty"`
	Data []Record `cbor:"data" json:"data"`
}

// Reconciled reports whether the file carries parsed records
func (f LogGroupFile) Reconciled() bool {
	return f.Data != nil
}

// DirectoryEntry is one entry of a directory listing. Never persisted.
type DirectoryEntry struct {
	Name string
	Path string
}

// State is the full value owned by the log group store
type State struct {
	LogGroups []LogGroup `cbor:"logGroups" json:"logGroups"`
}

// Clone returns a copy whose group and file slices can be modified without
// affecting s. Records are shared; they are never mutated after parsing.
func (s State) Clone() State {
	if s.LogGroups == nil {
		return State{}
	}
	groups := make([]LogGroup, len(s.LogGroups))
	for i, g := range s.LogGroups {
		groups[i] = g.Clone()
	}
	return State{LogGroups: groups}
}

// Clone returns a copy of g with its own Files slice
func (g LogGroup) Clone() LogGroup {
	if g.Files != nil {
		files := make([]LogGroupFile, len(g.Files))
		copy(files, g.Files)
		g.Files = files
	}
	return g
}

// ReconciledCount returns how many of the group's files carry records
func (g LogGroup) ReconciledCount() int {
	n := 0
	for _, f := range g.Files {
		if f.Reconciled() {
			n++
		}
	}
	return n
}

// RecordCount returns the total number of parsed records in the group
func (g LogGroup) RecordCount() int {
	n := 0
	for _, f := range g.Files {
		n += len(f.Data)
	}
	return n
}
