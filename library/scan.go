// Package library lists the audio files under the configured music roots,
// with ID3 tags where available, so users can see which files qualify as
// songs before opening the editor.
package library

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// Entry is one audio file found under a music root.
type Entry struct {
	Path   string
	Title  string
	Artist string
}

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".opus": true,
}

// Scan walks the music roots and returns every audio file, in walk order.
// MP3 files get their title and artist from ID3 tags; files without usable
// tags fall back to the filename.
func Scan(roots []string) ([]Entry, error) {
	var entries []Entry
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !audioExts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			entries = append(entries, tagged(path))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func tagged(path string) Entry {
	base := filepath.Base(path)
	entry := Entry{
		Path:  path,
		Title: strings.TrimSuffix(base, filepath.Ext(base)),
	}

	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return entry
	}
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return entry
	}
	defer tag.Close()

	if title := strings.TrimSpace(tag.Title()); title != "" {
		entry.Title = title
	}
	entry.Artist = strings.TrimSpace(tag.Artist())
	return entry
}
