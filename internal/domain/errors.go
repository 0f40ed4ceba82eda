package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds surfaced by ingest and reconcile
var (
	ErrMalformedManifest    = errors.New("malformed manifest")
	ErrLogGroupNotFound     = errors.New("log group not found")
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	ErrFileDecodeFailed     = errors.New("file decode failed")
	ErrRecordSyntax         = errors.New("record syntax error")
	ErrIORead               = errors.New("io read error")
)

// ManifestError reports a manifest that could not be turned into a log group
type ManifestError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ManifestError) Error() string {
	msg := fmt.Sprintf("malformed manifest %s", e.Path)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ManifestError) Is(target error) bool {
	return target == ErrMalformedManifest
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// DirectoryError reports a directory the lister could not enumerate
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory unavailable %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Is(target error) bool {
	return target == ErrDirectoryUnavailable
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// FileDecodeError reports a matched log file that failed to read or parse
type FileDecodeError struct {
	Name string
	Err  error
}

func (e *FileDecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.Name, e.Err)
}

func (e *FileDecodeError) Is(target error) bool {
	return target == ErrFileDecodeFailed
}

func (e *FileDecodeError) Unwrap() error {
	return e.Err
}

// RecordSyntaxError identifies the first line that is not a JSON object.
// Line is 1-based.
type RecordSyntaxError struct {
	Line int
	Err  error
}

func (e *RecordSyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordSyntaxError) Is(target error) bool {
	return target == ErrRecordSyntax
}

func (e *RecordSyntaxError) Unwrap() error {
	return e.Err
}

// IOReadError reports a file that could not be read or decompressed
type IOReadError struct {
	Path string
	Err  error
}

func (e *IOReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *IOReadError) Is(target error) bool {
	return target == ErrIORead
}

func (e *IOReadError) Unwrap() error {
	return e.Err
}
