package application

import "auditlens/internal/domain"

// Re-export domain types for use by adapters
type (
	LogGroup     = domain.LogGroup
	LogGroupFile = domain.LogGroupFile
	Record       = domain.Record
	State        = domain.State
)

// Re-export error kinds so front ends can classify failures
var (
	ErrMalformedManifest    = domain.ErrMalformedManifest
	ErrLogGroupNotFound     = domain.ErrLogGroupNotFound
	ErrDirectoryUnavailable = domain.ErrDirectoryUnavailable
	ErrFileDecodeFailed     = domain.ErrFileDecodeFailed
	ErrRecordSyntax         = domain.ErrRecordSyntax
	ErrIORead               = domain.ErrIORead
)

// IsManifest reports whether a path names an audit manifest
func IsManifest(path string) bool {
	return domain.IsManifest(domain.BaseName(path))
}

// FileStatus describes a declared file for display
func FileStatus(f LogGroupFile) string {
	if !f.Reconciled() {
		return "pending"
	}
	return "reconciled"
}
