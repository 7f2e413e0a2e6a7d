package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// storeMarkers identify a directory holding a docsense store.
var storeMarkers = []string{"documents.json", "documents.db", "docsense.yaml", "docsense.toml"}

// FindRoot looks upwards from startDir for a directory containing a store
// marker (an index file, a database or a config file) and returns its
// absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, marker := range storeMarkers {
			if hasFile(dir, marker) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
