package domain

import "strings"

const (
	// ManifestSuffix marks audit manifest files
	ManifestSuffix = "-audit.json"
	// CompressedSuffix marks gzip-compressed log files
	CompressedSuffix = ".gz"
)

// EntryKind classifies a directory entry by how it must be decoded
type EntryKind int

const (
	EntryPlainLog EntryKind = iota
	EntryCompressed
	EntryManifest
)

func (k EntryKind) String() string {
	switch k {
	case EntryPlainLog:
		return "plain"
	case EntryCompressed:
		return "compressed"
	case EntryManifest:
		return "manifest"
	default:
		return "unknown"
	}
}

// Classify determines the kind of a directory entry from its name.
// Suffix tests are case-insensitive; the compressed suffix wins over the
// manifest suffix.
func Classify(name string) EntryKind {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, CompressedSuffix):
		return EntryCompressed
	case strings.HasSuffix(lower, ManifestSuffix):
		return EntryManifest
	default:
		return EntryPlainLog
	}
}

// IsManifest reports whether a file name carries the manifest suffix
func IsManifest(name string) bool {
	return Classify(name) == EntryManifest
}

// BaseName returns the last path segment of a declared file name.
// Both '/' and '\' separate segments since manifests may come from
// either platform.
func BaseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

// LogicalName returns the name an entry is compared under, and false for
// entries that can never match a declared log file.
func LogicalName(entryName string) (string, bool) {
	switch Classify(entryName) {
	case EntryCompressed:
		return entryName[:len(entryName)-len(CompressedSuffix)], true
	case EntryPlainLog:
		return entryName, true
	default:
		return "", false
	}
}

// ClassifiedEntry is a directory entry with its kind computed once
type ClassifiedEntry struct {
	DirectoryEntry
	Kind    EntryKind
	Logical string
}

// ClassifyEntries computes kinds for a listing, keeping listing order
func ClassifyEntries(entries []DirectoryEntry) []ClassifiedEntry {
	out := make([]ClassifiedEntry, 0, len(entries))
	for _, e := range entries {
		logical, _ := LogicalName(e.Name)
		out = append(out, ClassifiedEntry{
			DirectoryEntry: e,
			Kind:           Classify(e.Name),
			Logical:        logical,
		})
	}
	return out
}

// MatchEntry finds the directory entry holding a declared file.
// Entries are scanned in order and the first match wins.
func MatchEntry(file LogGroupFile, entries []ClassifiedEntry) (ClassifiedEntry, bool) {
	target := BaseName(file.Name)
	for _, e := range entries {
		if e.Kind == EntryManifest {
			continue
		}
		if e.Logical == target {
			return e, true
		}
	}
	return ClassifiedEntry{}, false
}
