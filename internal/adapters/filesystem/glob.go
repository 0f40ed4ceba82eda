package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"auditlens/internal/domain"
)

// ExpandManifests resolves command-line arguments to absolute manifest
// paths. Arguments containing glob metacharacters are expanded with
// doublestar (so logs/**/*-audit.json recurses) and only manifest names
// are kept. A literal directory contributes the manifests directly inside
// it; other literal arguments are taken as given. Duplicates are dropped,
// first occurrence wins.
func ExpandManifests(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	add := func(p string) error {
		abs, err := filepath.Abs(expandHome(p))
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
		return nil
	}

	for _, arg := range args {
		if !hasMeta(arg) {
			if info, err := os.Stat(expandHome(arg)); err == nil && info.IsDir() {
				manifests, err := ManifestsIn(arg)
				if err != nil {
					return nil, err
				}
				for _, m := range manifests {
					if err := add(m); err != nil {
						return nil, err
					}
				}
				continue
			}
			if err := add(arg); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(expandHome(arg), doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("failed to expand pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			if !domain.IsManifest(filepath.Base(m)) {
				continue
			}
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// ManifestsIn lists the manifest files directly inside dir
func ManifestsIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(expandHome(dir))
	if err != nil {
		return nil, &domain.DirectoryError{Path: dir, Err: err}
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && domain.IsManifest(e.Name()) {
			out = append(out, filepath.Join(expandHome(dir), e.Name()))
		}
	}
	return out, nil
}

func hasMeta(p string) bool {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
