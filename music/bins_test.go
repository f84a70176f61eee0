package music

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"undertone/mlt"
)

func musicTrack(placements ...[2]string) *mlt.Node {
	track := mlt.NewNode("playlist", "id", "playlist1")
	track.SetProperty("shotcut:name", "Music")
	for _, p := range placements {
		track.Append(
			mlt.NewNode("blank", "length", p[0]),
			mlt.NewNode("entry", "producer", "chain0", "in", "00:00:00.000", "out", p[1]),
		)
	}
	return track
}

func TestFreeBinsSplitsAroundOccupied(t *testing.T) {
	// Marker 0s-100s, one song at 40s for 10s, padding 5s: the exclusion
	// zone is 35s-55s, leaving exactly (0,35) and (55,100).
	songs := []*Song{testSong("chain0", "first", 10*time.Second)}
	track := musicTrack([2]string{"00:00:40.000", "00:00:10.000"})
	markers := []Marker{{Start: 0, End: 100 * time.Second}}

	bins, err := FreeBins(track, markers, songs, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, []Bin{
		{Start: 0, End: 35 * time.Second},
		{Start: 55 * time.Second, End: 100 * time.Second},
	}, bins)
}

func TestFreeBinsDropsShortRemainders(t *testing.T) {
	// The song at 22s leaves a 17s remainder at the front of the first
	// marker, too short for the 20s song; only the second marker survives.
	songs := []*Song{testSong("chain0", "first", 20*time.Second)}
	track := musicTrack([2]string{"00:00:22.000", "00:00:20.000"})
	markers := []Marker{
		{Start: 0, End: 30 * time.Second},
		{Start: 60 * time.Second, End: 90 * time.Second},
	}

	bins, err := FreeBins(track, markers, songs, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, []Bin{{Start: 60 * time.Second, End: 90 * time.Second}}, bins)
}

func TestFreeBinsEmptyTrack(t *testing.T) {
	songs := []*Song{testSong("chain0", "first", 10*time.Second)}
	markers := []Marker{{Start: 10 * time.Second, End: 50 * time.Second}}

	bins, err := FreeBins(musicTrack(), markers, songs, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, []Bin{{Start: 10 * time.Second, End: 50 * time.Second}}, bins)
}

func TestFreeBinsOccupiedSwallowsMarker(t *testing.T) {
	// A song covering the whole marker leaves nothing.
	songs := []*Song{testSong("chain0", "first", 30*time.Second)}
	track := musicTrack([2]string{"00:00:05.000", "00:00:30.000"})
	markers := []Marker{{Start: 10 * time.Second, End: 30 * time.Second}}

	bins, err := FreeBins(track, markers, songs, 5*time.Second)
	require.NoError(t, err)
	assert.Empty(t, bins)
}

func TestFreeBinsMultipleMarkers(t *testing.T) {
	songs := []*Song{testSong("chain0", "first", 10*time.Second)}
	markers := []Marker{
		{Start: 0, End: 30 * time.Second},
		{Start: 60 * time.Second, End: 90 * time.Second},
	}

	bins, err := FreeBins(musicTrack(), markers, songs, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, []Bin{
		{Start: 0, End: 30 * time.Second},
		{Start: 60 * time.Second, End: 90 * time.Second},
	}, bins)
}
