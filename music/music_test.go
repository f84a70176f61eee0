package music

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"undertone/mlt"
)

// demoProject is a trimmed Shotcut save: two song chains under /music, a
// video chain outside it, one video track, and a single marker starting at
// the timeline origin (completed by the out point into the region 0s-60s).
const demoProject = `<?xml version="1.0" standalone="no"?>
<mlt LC_NUMERIC="C" version="7.24.0" title="demo" producer="main_bin">
  <profile width="1920" height="1080" frame_rate_num="30"/>
  <playlist id="main_bin">
    <property name="xml_retain">1</property>
  </playlist>
  <chain id="chain0" out="00:00:20.000">
    <property name="resource">/music/first.mp3</property>
    <property name="mlt_service">avformat-novalidate</property>
  </chain>
  <chain id="chain1" out="00:00:25.000">
    <property name="resource">/music/second.mp3</property>
    <property name="mlt_service">avformat-novalidate</property>
  </chain>
  <chain id="chain2" out="00:01:00.000">
    <property name="resource">/footage/talk.mp4</property>
    <property name="mlt_service">avformat-novalidate</property>
  </chain>
  <playlist id="playlist0">
    <property name="shotcut:video">1</property>
    <property name="shotcut:name">V1</property>
    <entry producer="chain2" in="00:00:00.000" out="00:01:00.000"/>
  </playlist>
  <tractor id="tractor0" title="demo" in="00:00:00.000" out="00:01:00.000">
    <properties name="shotcut:markers">
      <properties name="0">
        <property name="text">music here</property>
        <property name="start">00:00:00.000</property>
        <property name="end">00:00:00.000</property>
      </properties>
    </properties>
    <track producer="main_bin" hide="both"/>
    <track producer="playlist0"/>
  </tractor>
</mlt>
`

func parseProject(t *testing.T, doc string) *mlt.Node {
	t.Helper()
	root, err := mlt.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSong(id, name string, length time.Duration) *Song {
	return &Song{ID: id, Name: name, Length: length, Path: "/music/" + name + ".mp3"}
}
