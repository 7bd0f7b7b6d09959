package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conneroisu/lwcswitch/internal/types"
)

// ListCandidates returns the immediate entries of directory followed by the
// immediate entries of its __tests__ folder, if one exists. Entries are not
// filtered by type; folders are dropped later by the name rules. It never
// recurses further and returns an empty slice when directory cannot be read.
func ListCandidates(directory string) []string {
	candidates, _ := listCandidates(directory)
	return candidates
}

// listCandidates is ListCandidates with the main read error exposed for
// logging. A missing or unreadable __tests__ folder is not an error.
func listCandidates(directory string) ([]string, error) {
	entries, err := readEntries(directory)
	if err != nil {
		return []string{}, err
	}

	testsDir := filepath.Join(directory, types.TestsDirName)
	tests, err := readEntries(testsDir)
	if err != nil {
		return entries, nil
	}

	return append(entries, tests...), nil
}

// readEntries lists one folder. os.ReadDir returns entries sorted by name,
// which makes the candidate order independent of the platform.
func readEntries(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(directory, entry.Name()))
	}
	return paths, nil
}

// isNotExist reports whether err means the path is simply absent.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
