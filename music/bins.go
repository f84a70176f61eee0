package music

import (
	"time"

	"undertone/mlt"
)

// Bin is a contiguous free interval of the timeline, derived from a marker
// minus the padded footprint of songs already on the track.
type Bin struct {
	Start time.Duration
	End   time.Duration
}

func (b Bin) Length() time.Duration { return b.End - b.Start }

// FreeBins subtracts the track's current placements, each widened by padding
// on both sides, from every marker region. Remainders shorter than the
// shortest available song can never be filled and are dropped. The caller
// must pass a non-empty song pool.
func FreeBins(track *mlt.Node, markers []Marker, songs []*Song, padding time.Duration) ([]Bin, error) {
	shortest := songs[0].Length
	for _, s := range songs[1:] {
		if s.Length < shortest {
			shortest = s.Length
		}
	}

	timeline, err := TrackTimeline(track, songs)
	if err != nil {
		return nil, err
	}

	var free []Bin
	for _, m := range markers {
		bins := []Bin{{Start: m.Start, End: m.End}}

		for _, p := range timeline {
			start := p.At - padding
			end := p.At + p.Song.Length + padding

			var next []Bin
			for _, b := range bins {
				if b.End <= start || b.Start >= end {
					next = append(next, b)
					continue
				}
				if b.Start <= start {
					next = append(next, Bin{Start: b.Start, End: start})
				}
				if b.End >= end {
					next = append(next, Bin{Start: end, End: b.End})
				}
			}
			bins = next
		}

		free = append(free, bins...)
	}

	kept := free[:0]
	for _, b := range free {
		if b.Length() >= shortest {
			kept = append(kept, b)
		}
	}
	return kept, nil
}
