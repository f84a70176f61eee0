// Package music places background songs into the free regions of a Shotcut
// project timeline.
//
// A run reads the project tree once, computes placements in memory, mutates
// the tree, and saves at the very end. Nothing is persisted between runs
// except the project file itself.
package music

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"undertone/mlt"
	"undertone/timecode"
)

// Song is one audio clip in the project's resource pool. Immutable after
// discovery.
type Song struct {
	ID         string
	Name       string
	Length     time.Duration
	Path       string
	Properties map[string]string
}

func (s *Song) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, timecode.Format(s.Length))
}

// FindSongs returns every chain node whose resource lives under one of the
// music roots. A chain missing its id, resource or a parseable out timecode
// is not a song and is skipped.
func FindSongs(root *mlt.Node, musicRoots []string) []*Song {
	var songs []*Song
	for _, item := range root.FindAll("chain") {
		props := item.Properties()
		resource := props["resource"]
		if resource == "" || !underAny(resource, musicRoots) {
			continue
		}
		id := item.Attr("id")
		if id == "" {
			continue
		}
		length, err := timecode.ParseStrict(item.Attr("out"))
		if err != nil {
			continue
		}

		base := filepath.Base(resource)
		songs = append(songs, &Song{
			ID:         id,
			Name:       strings.TrimSuffix(base, filepath.Ext(base)),
			Length:     length,
			Path:       resource,
			Properties: props,
		})
	}
	return songs
}

func underAny(path string, roots []string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func songsByID(songs []*Song) map[string]*Song {
	m := make(map[string]*Song, len(songs))
	for _, s := range songs {
		m[s.ID] = s
	}
	return m
}
