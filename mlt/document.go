package mlt

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Shotcut names backup copies by appending the save timestamp to the stem,
// e.g. "show - 2024-03-01T09-15-30.mlt".
var backupStamp = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2}`)

// FindProject resolves a path to a single project file. A file path is
// accepted as-is when it carries the .mlt extension. A directory is searched
// for .mlt files, backup copies are filtered out, and the first remaining
// file in lexical order is returned.
func FindProject(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("mlt: %w", err)
	}

	if !info.IsDir() {
		if strings.EqualFold(filepath.Ext(path), ".mlt") {
			return path, nil
		}
		return "", fmt.Errorf("mlt: %s is not a project file", path)
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.mlt"))
	if err != nil {
		return "", fmt.Errorf("mlt: %w", err)
	}
	sort.Strings(matches)

	for _, m := range matches {
		stem := strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
		if !backupStamp.MatchString(stem) {
			return m, nil
		}
	}
	return "", fmt.Errorf("mlt: no project file in %s", path)
}
