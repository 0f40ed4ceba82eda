package domain

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// DecodeManifest turns the text of an audit manifest into a log group
// without an id. The manifest must carry an auditLog value and a files
// array whose entries have a string name and hash.
func DecodeManifest(path, text string) (LogGroup, error) {
	obj, err := manifestObject(text)
	if err != nil {
		return LogGroup{}, &ManifestError{Path: path, Err: err}
	}

	auditLog, ok := obj["auditLog"]
	if !ok || auditLog == nil {
		return LogGroup{}, &ManifestError{Path: path, Reason: "missing auditLog"}
	}

	rawFiles, ok := obj["files"].([]any)
	if !ok {
		return LogGroup{}, &ManifestError{Path: path, Reason: "files must be an array"}
	}

	files := make([]LogGroupFile, 0, len(rawFiles))
	for i, raw := range rawFiles {
		entry, ok := raw.(map[string]any)
		if !ok {
			return LogGroup{}, &ManifestError{Path: path, Reason: fmt.Sprintf("files[%d] is not an object", i)}
		}
		name, _ := entry["name"].(string)
		hash, _ := entry["hash"].(string)
		if name == "" || hash == "" {
			return LogGroup{}, &ManifestError{Path: path, Reason: fmt.Sprintf("files[%d] needs a name and a hash", i)}
		}
		f := LogGroupFile{Name: name, Hash: hash}
		if date, ok := entry["date"].(float64); ok {
			f.Date = int64(date)
		}
		// Hashes stay unique: a repeated hash replaces the earlier entry
		files = UpsertFile(files, f)
	}

	var attrs map[string]any
	for k, v := range obj {
		if k == "auditLog" || k == "files" {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]any)
		}
		attrs[k] = v
	}

	return LogGroup{
		DirectoryPath: filepath.Dir(path),
		ManifestPath:  path,
		AuditLog:      auditLog,
		Attributes:    attrs,
		Files:         files,
	}, nil
}

// manifestObject extracts the single JSON object a manifest holds. Line
// parsing comes first; pretty-printed manifests span several lines and
// fall back to decoding the whole document.
func manifestObject(text string) (map[string]any, error) {
	records, err := ParseRecords(text)
	if err == nil && len(records) == 1 {
		return records[0], nil
	}

	var obj map[string]any
	if jsonErr := json.Unmarshal([]byte(text), &obj); jsonErr == nil && obj != nil {
		return obj, nil
	}

	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("expected one manifest object, found %d records", len(records))
}
