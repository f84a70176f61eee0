package music

import (
	"fmt"
	"time"

	"undertone/mlt"
	"undertone/timecode"
)

// GetOrCreateTrack returns the playlist whose shotcut:name matches name. If
// no such track exists one is synthesized: it takes the next numeric playlist
// id, sits immediately before the main tractor, and the tractor gains a track
// reference right after the reference to the highest-numbered playlist.
func GetOrCreateTrack(root *mlt.Node, name string) (*mlt.Node, error) {
	maxID := 0
	for _, track := range root.FindAll("playlist") {
		if id := mlt.NumericID(track); id > maxID {
			maxID = id
		}
		if trackName, _ := track.Property("shotcut:name"); trackName == name {
			return track, nil
		}
	}

	main, err := MainTractor(root)
	if err != nil {
		return nil, err
	}

	pid := fmt.Sprintf("playlist%d", maxID+1)
	playlist := mlt.NewNode("playlist", "id", pid)
	playlist.SetProperty("shotcut:video", "1")
	playlist.SetProperty("shotcut:name", name)

	root.InsertBefore(playlist, main)
	registerTrack(main, pid, fmt.Sprintf("playlist%d", maxID))

	return playlist, nil
}

// registerTrack inserts a <track producer=.../> reference into the tractor
// after the reference to the previously highest-numbered playlist. If that
// reference is missing the new one goes after the last track child, so the
// composition always renders the new playlist.
func registerTrack(main *mlt.Node, pid, after string) {
	ref := mlt.NewNode("track", "producer", pid)

	if prev := main.FindByAttr("track", "producer", after); prev != nil {
		main.InsertAt(main.Index(prev)+1, ref)
		return
	}

	last := -1
	for i, c := range main.Children {
		if c.Tag == "track" {
			last = i
		}
	}
	if last >= 0 {
		main.InsertAt(last+1, ref)
		return
	}
	main.Append(ref)
}

// TrackTimeline walks a track's blank/entry sequence and returns the absolute
// start offset of every placed song. An entry whose producer does not resolve
// against the song set means the project file is corrupt.
func TrackTimeline(track *mlt.Node, songs []*Song) ([]Placement, error) {
	byID := songsByID(songs)

	var timeline []Placement
	var now time.Duration
	for _, item := range track.Children {
		switch item.Tag {
		case "blank":
			now += timecode.Parse(item.Attr("length"))
		case "entry":
			producer := item.Attr("producer")
			song, ok := byID[producer]
			if !ok {
				return nil, fmt.Errorf("music: track %q entry references unknown producer %q",
					track.Attr("id"), producer)
			}
			timeline = append(timeline, Placement{At: now, Song: song})
			now += timecode.Parse(item.Attr("out"))
		}
	}
	return timeline, nil
}

// ExistingSongs returns the songs already placed on a track, in timeline
// order. These are excluded from selection to keep song use unique.
func ExistingSongs(track *mlt.Node, songs []*Song) ([]*Song, error) {
	timeline, err := TrackTimeline(track, songs)
	if err != nil {
		return nil, err
	}
	used := make([]*Song, len(timeline))
	for i, p := range timeline {
		used[i] = p.Song
	}
	return used, nil
}
