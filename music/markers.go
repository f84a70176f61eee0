package music

import (
	"fmt"
	"sort"
	"time"

	"undertone/mlt"
	"undertone/timecode"
)

// Marker is a region of the main timeline eligible for song placement.
type Marker struct {
	Start time.Duration
	End   time.Duration
}

func (m Marker) Length() time.Duration { return m.End - m.Start }

// MainTractor returns the tractor describing the project's own timeline: the
// one whose title matches the document title. Its absence means the file is
// not a Shotcut project.
func MainTractor(root *mlt.Node) (*mlt.Node, error) {
	title := root.Attr("title")
	for _, tr := range root.FindAll("tractor") {
		if tr.Attr("title") == title {
			return tr, nil
		}
	}
	return nil, fmt.Errorf("music: project has no tractor titled %q", title)
}

// FindMarkers reads the shotcut:markers block off the main tractor and pairs
// the marker timestamps into regions: sorted, then taken two at a time. An
// odd timestamp count is completed with the timeline's out point. A project
// without markers yields a single region spanning the whole timeline.
func FindMarkers(root *mlt.Node) ([]Marker, error) {
	main, err := MainTractor(root)
	if err != nil {
		return nil, err
	}

	inTime := timecode.Parse(attrOr(main, "in", "00:00:00.000"))
	outTime := timecode.Parse(attrOr(main, "out", "00:00:00.000"))

	var stamps []time.Duration
	if block := main.FindByAttr("properties", "name", "shotcut:markers"); block != nil {
		for _, node := range block.FindAll("properties") {
			if start, ok := node.Property("start"); ok {
				stamps = append(stamps, timecode.Parse(start))
			}
		}
	}

	if len(stamps) == 0 {
		return []Marker{{Start: inTime, End: outTime}}, nil
	}
	if len(stamps)%2 == 1 {
		stamps = append(stamps, outTime)
	}

	sort.Slice(stamps, func(i, j int) bool { return stamps[i] < stamps[j] })

	markers := make([]Marker, 0, len(stamps)/2)
	for i := 0; i+1 < len(stamps); i += 2 {
		markers = append(markers, Marker{Start: stamps[i], End: stamps[i+1]})
	}
	return markers, nil
}

// DeleteMarkers removes the whole marker block so consumed markers are not
// refilled on the next run.
func DeleteMarkers(root *mlt.Node) error {
	main, err := MainTractor(root)
	if err != nil {
		return err
	}
	if block := main.FindByAttr("properties", "name", "shotcut:markers"); block != nil {
		main.Remove(block)
	}
	return nil
}

func attrOr(n *mlt.Node, name, fallback string) string {
	if v := n.Attr(name); v != "" {
		return v
	}
	return fallback
}
