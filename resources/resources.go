// Package resources locates the on-disk files this repository's tooling
// reads and writes: the CLI's default cache file and nothing else. Snapshot
// bytes themselves are opaque and carried entirely in memory or via
// whatever io.Writer/io.Reader the caller supplies to save/load.
package resources

import (
	"os"
	"path/filepath"
)

// defaultDir is the directory name used to namespace files belonging to
// this project underneath a resource root.
const defaultDir = ".zwinder"

// JoinPath builds a path, rooted at defaultDir, out of the supplied path
// elements. Empty elements are dropped rather than producing doubled
// separators. It never resolves an absolute location itself; callers that
// need a real filesystem path should combine it with a root directory (see
// CacheFilePath).
func JoinPath(pathElements ...string) (string, error) {
	elements := make([]string, 0, len(pathElements)+1)
	elements = append(elements, defaultDir)
	for _, e := range pathElements {
		if e == "" {
			continue
		}
		elements = append(elements, e)
	}
	return filepath.Join(elements...), nil
}

// CacheFilePath returns the absolute path to a named cache file under the
// current user's home directory, e.g. ~/.zwinder/cache/<name>.
func CacheFilePath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	rel, err := JoinPath("cache", name)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, rel), nil
}
