package domain

import "reflect"

// SameContent reports whether two audit log values are deep-equal
func SameContent(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// FindGroup returns the index of the group with the given id, or -1
func FindGroup(groups []LogGroup, id string) int {
	for i, g := range groups {
		if g.LogGroupID == id {
			return i
		}
	}
	return -1
}

// FindGroupByContent returns the index of the first group whose AuditLog
// is deep-equal to auditLog, or -1
func FindGroupByContent(groups []LogGroup, auditLog any) int {
	for i, g := range groups {
		if SameContent(g.AuditLog, auditLog) {
			return i
		}
	}
	return -1
}

// UpsertGroup replaces the first group with the same AuditLog content in
// place, or appends g when none exists. A replaced group keeps its id, and
// files declaring a hash the old group already had keep their parsed data
// and matched path. Returns the stored group and whether it replaced one.
func UpsertGroup(groups []LogGroup, g LogGroup) ([]LogGroup, LogGroup, bool) {
	i := FindGroupByContent(groups, g.AuditLog)
	if i < 0 {
		return append(groups, g), g, false
	}

	prior := groups[i]
	g.LogGroupID = prior.LogGroupID
	g.Files = append([]LogGroupFile(nil), g.Files...)
	for k := range g.Files {
		if j := FindFile(prior.Files, g.Files[k].Hash); j >= 0 {
			g.Files[k].Data = prior.Files[j].Data
			g.Files[k].Path = prior.Files[j].Path
		}
	}
	groups[i] = g
	return groups, g, true
}

// FindFile returns the index of the file with the given hash, or -1
func FindFile(files []LogGroupFile, hash string) int {
	for i, f := range files {
		if f.Hash == hash {
			return i
		}
	}
	return -1
}

// UpsertFile replaces the file with the same hash in place, or appends f
func UpsertFile(files []LogGroupFile, f LogGroupFile) []LogGroupFile {
	if i := FindFile(files, f.Hash); i >= 0 {
		files[i] = f
		return files
	}
	return append(files, f)
}

// ReplaceFile replaces the file with the same hash in place.
// Returns false when no such file exists.
func ReplaceFile(files []LogGroupFile, f LogGroupFile) bool {
	i := FindFile(files, f.Hash)
	if i < 0 {
		return false
	}
	files[i] = f
	return true
}
