package music

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"undertone/mlt"
	"undertone/timecode"
)

// WritePlacements rebuilds a track's blank/entry sequence from the merged set
// of new and pre-existing placements. Boundaries come out monotonically
// increasing and contiguous: each entry is preceded by a blank covering the
// distance from the previous entry's end. The track's gain filter, if any,
// is moved back to the end of the child list because the renderer requires
// filters after the timeline content.
func WritePlacements(track *mlt.Node, placements, existing []Placement) {
	all := make([]Placement, 0, len(placements)+len(existing))
	all = append(all, existing...)
	all = append(all, placements...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].At < all[j].At })

	track.RemoveAll("blank")
	track.RemoveAll("entry")

	var now time.Duration
	for _, p := range all {
		blank := mlt.NewNode("blank", "length", timecode.Format(p.At-now))
		entry := mlt.NewNode("entry",
			"producer", p.Song.ID,
			"in", "00:00:00.000",
			"out", timecode.Format(p.Song.Length))
		track.Append(blank, entry)
		now = p.At + p.Song.Length
	}

	if filter := track.Find("filter"); filter != nil {
		track.Remove(filter)
		track.Append(filter)
	}
}

// EnsureGainFilter attaches a volume-reduction filter to the track, replacing
// any filter already there. The new filter id extends the contiguous run of
// filter ids starting at zero; ids past a numbering gap are ignored, so a
// hole in the sequence is reused before the global maximum.
func EnsureGainFilter(root, track *mlt.Node, length time.Duration, gain int) *mlt.Node {
	// Remove before scanning so a replaced filter's id is free for reuse.
	if existing := track.Find("filter"); existing != nil {
		track.Remove(existing)
	}

	filters := root.Descendants("filter")
	sort.SliceStable(filters, func(i, j int) bool {
		return mlt.NumericID(filters[i]) < mlt.NumericID(filters[j])
	})
	next := len(filters)
	for i, f := range filters {
		if mlt.NumericID(f) != i {
			next = i
			break
		}
	}

	filter := mlt.NewNode("filter",
		"id", fmt.Sprintf("filter%d", next),
		"out", timecode.Format(length))
	filter.SetProperty("window", "75")
	filter.SetProperty("max_gain", "20dB")
	filter.SetProperty("level", strconv.Itoa(gain))
	filter.SetProperty("channel_mask", "-1")
	filter.SetProperty("mlt_service", "volume")
	filter.SetProperty("filter", "audioGain")

	track.Append(filter)
	return filter
}

// EnsureBlendTransitions guarantees the tractor composites the track against
// the rest of the timeline: one audio mix and one video blend transition with
// the track on the b side. A matching transition is rewritten in place,
// keeping its id and position; otherwise a new one is appended under the next
// unused transition id.
func EnsureBlendTransitions(main, track *mlt.Node) error {
	bTrack := -1
	for i, ref := range main.FindAll("track") {
		if ref.Attr("producer") == track.Attr("id") {
			bTrack = i
			break
		}
	}
	if bTrack < 0 {
		return fmt.Errorf("music: tractor has no track reference for %q", track.Attr("id"))
	}

	ensureTransition(main, bTrack, "mix",
		"always_active", "1",
		"sum", "1")
	ensureTransition(main, bTrack, "frei0r.cairoblend",
		"threads", "0",
		"disable", "0")
	return nil
}

func ensureTransition(main *mlt.Node, bTrack int, service string, extra ...string) {
	b := strconv.Itoa(bTrack)

	apply := func(t *mlt.Node) {
		t.SetProperty("a_track", "0")
		t.SetProperty("b_track", b)
		t.SetProperty("mlt_service", service)
		for i := 0; i+1 < len(extra); i += 2 {
			t.SetProperty(extra[i], extra[i+1])
		}
	}

	for _, t := range main.FindAll("transition") {
		svc, _ := t.Property("mlt_service")
		side, _ := t.Property("b_track")
		if svc == service && side == b {
			apply(t)
			return
		}
	}

	next := 0
	for _, t := range main.FindAll("transition") {
		if id := mlt.NumericID(t); id >= next {
			next = id + 1
		}
	}
	t := mlt.NewNode("transition", "id", fmt.Sprintf("transition%d", next))
	apply(t)
	main.Append(t)
}
