package music

import (
	"log/slog"
	"math/rand/v2"
	"sort"
	"time"

	"undertone/timecode"
)

// Placement commits a song to an absolute timeline offset.
type Placement struct {
	At   time.Duration
	Song *Song
}

// PackBin greedily selects songs from the pool to fill a bin of the given
// capacity. Up to three shuffled passes are made over the pool; a song is
// taken when it still fits on top of the running total, which reserves a
// minimum gap after every selected song. Once the parallel max-gap total
// reaches capacity the fit is treated as exact and the remaining slack as
// zero. Otherwise the leftover slack is returned for the caller to judge
// fit quality.
func PackBin(rng *rand.Rand, capacity time.Duration, pool []*Song, minGap, maxGap time.Duration) ([]*Song, time.Duration) {
	var placed []*Song
	chosen := make(map[string]bool)
	var totalMin, totalMax time.Duration

	order := make([]*Song, len(pool))
	copy(order, pool)

	for pass := 0; pass < 3; pass++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, song := range order {
			if chosen[song.ID] {
				continue
			}
			if totalMin+song.Length <= capacity {
				placed = append(placed, song)
				chosen[song.ID] = true
				totalMin += song.Length + minGap
				totalMax += song.Length + maxGap
			}
			if totalMax >= capacity {
				return placed, 0
			}
		}
	}

	return placed, capacity - totalMin
}

// InsertSongs fills the free bins, smallest first, with songs from the pool.
// Each bin gets the best of five independent PackBin trials, judged by
// leftover slack. Selected songs leave the pool so no song is placed twice
// across the whole run. Within a bin the selection is reshuffled and laid out
// with uniform spacing: the slack is split evenly across the gaps before,
// between and after the songs.
func InsertSongs(log *slog.Logger, rng *rand.Rand, bins []Bin, songs, used []*Song, minGap, maxGap time.Duration) []Placement {
	usedIDs := make(map[string]bool)
	for _, s := range used {
		usedIDs[s.ID] = true
	}
	var remaining []*Song
	for _, s := range songs {
		if !usedIDs[s.ID] {
			remaining = append(remaining, s)
		}
	}

	order := make([]Bin, len(bins))
	copy(order, bins)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Length() < order[j].Length() })

	type filledBin struct {
		bin   Bin
		songs []*Song
	}
	var filled []filledBin

	for _, bin := range order {
		var best []*Song
		var bestSlack time.Duration
		for trial := 0; trial < 5; trial++ {
			selection, slack := PackBin(rng, bin.Length(), remaining, minGap, maxGap)
			if trial == 0 || slack < bestSlack {
				best, bestSlack = selection, slack
			}
		}

		if len(best) == 0 {
			log.Debug("no songs fit bin",
				slog.String("start", timecode.Format(bin.Start)),
				slog.String("end", timecode.Format(bin.End)))
			continue
		}

		log.Debug("filled bin",
			slog.String("start", timecode.Format(bin.Start)),
			slog.String("end", timecode.Format(bin.End)),
			slog.Int("songs", len(best)))

		for _, s := range best {
			usedIDs[s.ID] = true
		}
		kept := remaining[:0]
		for _, s := range remaining {
			if !usedIDs[s.ID] {
				kept = append(kept, s)
			}
		}
		remaining = kept

		filled = append(filled, filledBin{bin: bin, songs: best})
	}

	if len(filled) == 0 {
		return nil
	}

	var placements []Placement
	for _, f := range filled {
		var total time.Duration
		for _, s := range f.songs {
			total += s.Length
		}

		gap := (f.bin.Length() - total) / time.Duration(len(f.songs)+1)
		rng.Shuffle(len(f.songs), func(i, j int) { f.songs[i], f.songs[j] = f.songs[j], f.songs[i] })

		now := f.bin.Start + gap
		for _, s := range f.songs {
			placements = append(placements, Placement{At: now, Song: s})
			now += s.Length + gap
		}
	}

	sort.SliceStable(placements, func(i, j int) bool { return placements[i].At < placements[j].At })
	return placements
}
