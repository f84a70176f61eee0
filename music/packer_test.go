package music

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1))
}

func TestPackBinCapacityLaw(t *testing.T) {
	// With a pool far smaller than capacity the early exit never fires, so
	// the leftover slack must satisfy the exact reservation formula:
	// sum(lengths) + count*minGap + slack == capacity.
	pool := []*Song{
		testSong("chain0", "a", 10*time.Second),
		testSong("chain1", "b", 15*time.Second),
	}
	capacity := 100 * time.Second
	minGap := 2 * time.Second

	selected, slack := PackBin(testRand(), capacity, pool, minGap, 5*time.Second)
	require.Len(t, selected, 2)

	var total time.Duration
	for _, s := range selected {
		total += s.Length
	}
	assert.Equal(t, capacity, total+time.Duration(len(selected))*minGap+slack)
}

func TestPackBinNeverSelectsTwice(t *testing.T) {
	pool := []*Song{
		testSong("chain0", "a", 5*time.Second),
		testSong("chain1", "b", 5*time.Second),
	}

	selected, _ := PackBin(testRand(), time.Hour, pool, time.Second, 2*time.Second)
	seen := make(map[string]bool)
	for _, s := range selected {
		assert.False(t, seen[s.ID], "song %s selected twice", s.ID)
		seen[s.ID] = true
	}
	assert.Len(t, selected, 2)
}

func TestPackBinEarlyExitReportsZeroSlack(t *testing.T) {
	// One 50s song with maxGap 20s overshoots the 60s bin on the running
	// max total, which counts as a perfect fit.
	pool := []*Song{testSong("chain0", "a", 50*time.Second)}

	selected, slack := PackBin(testRand(), 60*time.Second, pool, 2*time.Second, 20*time.Second)
	require.Len(t, selected, 1)
	assert.Equal(t, time.Duration(0), slack)
}

func TestPackBinNothingFits(t *testing.T) {
	pool := []*Song{testSong("chain0", "a", 2*time.Minute)}

	selected, slack := PackBin(testRand(), 30*time.Second, pool, time.Second, 5*time.Second)
	assert.Empty(t, selected)
	assert.Equal(t, 30*time.Second, slack)
}

func TestInsertSongsEqualGapLayout(t *testing.T) {
	// Spec scenario: one 60s bin, songs of 20s and 25s, 15s of slack split
	// into three equal 5s gaps (before, between, after).
	songs := []*Song{
		testSong("chain0", "a", 20*time.Second),
		testSong("chain1", "b", 25*time.Second),
	}
	bins := []Bin{{Start: 0, End: 60 * time.Second}}

	placements := InsertSongs(discardLogger(), testRand(), bins, songs, nil, 2*time.Second, 5*time.Second)
	require.Len(t, placements, 2)

	first, second := placements[0], placements[1]
	assert.Equal(t, 5*time.Second, first.At)
	assert.Equal(t, first.At+first.Song.Length+5*time.Second, second.At)
	assert.Equal(t, 60*time.Second, second.At+second.Song.Length+5*time.Second)
}

func TestInsertSongsNoOverlap(t *testing.T) {
	var songs []*Song
	for i, length := range []time.Duration{11, 17, 23, 8, 31, 14} {
		songs = append(songs, testSong(
			string(rune('a'+i)), string(rune('a'+i)), length*time.Second))
	}
	bins := []Bin{
		{Start: 0, End: 70 * time.Second},
		{Start: 90 * time.Second, End: 150 * time.Second},
	}

	placements := InsertSongs(discardLogger(), testRand(), bins, songs, nil, 2*time.Second, 6*time.Second)
	require.NotEmpty(t, placements)

	for i := 1; i < len(placements); i++ {
		prev, cur := placements[i-1], placements[i]
		assert.LessOrEqual(t, prev.At+prev.Song.Length, cur.At,
			"placements %d and %d overlap", i-1, i)
	}
}

func TestInsertSongsNoReuseAcrossBins(t *testing.T) {
	songs := []*Song{
		testSong("chain0", "a", 20*time.Second),
		testSong("chain1", "b", 25*time.Second),
	}
	// Two bins that could each hold everything.
	bins := []Bin{
		{Start: 0, End: 2 * time.Minute},
		{Start: 3 * time.Minute, End: 5 * time.Minute},
	}

	placements := InsertSongs(discardLogger(), testRand(), bins, songs, nil, 2*time.Second, 5*time.Second)
	seen := make(map[string]bool)
	for _, p := range placements {
		assert.False(t, seen[p.Song.ID], "song %s placed twice", p.Song.ID)
		seen[p.Song.ID] = true
	}
}

func TestInsertSongsExcludesUsed(t *testing.T) {
	songs := []*Song{
		testSong("chain0", "a", 20*time.Second),
		testSong("chain1", "b", 25*time.Second),
	}
	bins := []Bin{{Start: 0, End: 2 * time.Minute}}

	placements := InsertSongs(discardLogger(), testRand(), bins, songs, songs[:1], 2*time.Second, 5*time.Second)
	require.Len(t, placements, 1)
	assert.Equal(t, "chain1", placements[0].Song.ID)
}

func TestInsertSongsPlacementsInsideBins(t *testing.T) {
	songs := []*Song{
		testSong("chain0", "a", 20*time.Second),
		testSong("chain1", "b", 25*time.Second),
		testSong("chain2", "c", 15*time.Second),
	}
	bins := []Bin{
		{Start: 10 * time.Second, End: 40 * time.Second},
		{Start: 60 * time.Second, End: 120 * time.Second},
	}

	placements := InsertSongs(discardLogger(), testRand(), bins, songs, nil, 2*time.Second, 5*time.Second)
	for _, p := range placements {
		inside := false
		for _, b := range bins {
			if p.At >= b.Start && p.At+p.Song.Length <= b.End {
				inside = true
				break
			}
		}
		assert.True(t, inside, "placement at %s not inside any bin", p.At)
	}
}

func TestInsertSongsNothingFits(t *testing.T) {
	songs := []*Song{testSong("chain0", "a", 2*time.Minute)}
	bins := []Bin{{Start: 0, End: 30 * time.Second}}

	placements := InsertSongs(discardLogger(), testRand(), bins, songs, nil, time.Second, 5*time.Second)
	assert.Empty(t, placements)
}

func TestInsertSongsSortedByStart(t *testing.T) {
	songs := []*Song{
		testSong("chain0", "a", 20*time.Second),
		testSong("chain1", "b", 25*time.Second),
		testSong("chain2", "c", 15*time.Second),
	}
	bins := []Bin{
		{Start: 4 * time.Minute, End: 5 * time.Minute},
		{Start: 0, End: 60 * time.Second},
	}

	placements := InsertSongs(discardLogger(), testRand(), bins, songs, nil, 2*time.Second, 5*time.Second)
	for i := 1; i < len(placements); i++ {
		assert.LessOrEqual(t, placements[i-1].At, placements[i].At)
	}
}
