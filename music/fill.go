package music

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"undertone/mlt"
	"undertone/timecode"
)

// Recoverable run outcomes. These mean the user gave us nothing to work with,
// not that the project file is broken; callers convert them to a non-zero
// exit without a stack of context.
var (
	ErrNoProject     = errors.New("music: no project file found")
	ErrNoSongs       = errors.New("music: no eligible songs in the project")
	ErrNoMarkers     = errors.New("music: no marker positions to fill")
	ErrNoBins        = errors.New("music: no free interval is large enough for a song")
	ErrNothingPlaced = errors.New("music: no songs could be placed")
)

// Config collects everything a fill run needs. Rand and Logger are injectable
// so tests can pin the shuffle sequence and capture diagnostics.
type Config struct {
	Project   string
	MusicDirs []string
	MinGap    time.Duration
	MaxGap    time.Duration
	Gain      int
	TrackName string
	DryRun    bool
	Rand      *rand.Rand
	Logger    *slog.Logger
}

// Fill runs the whole placement pipeline: read the project, compute free
// bins, pack songs into them, rewrite the music track and save. On dry-run
// every step happens except the final save, so the log output matches a real
// run while the file on disk stays untouched.
func Fill(cfg Config) error {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	project, err := mlt.FindProject(cfg.Project)
	if err != nil {
		log.Error("could not find project file", slog.String("path", cfg.Project), slog.Any("error", err))
		return ErrNoProject
	}
	log.Debug("using project", slog.String("path", project))

	root, err := mlt.ParseFile(project)
	if err != nil {
		return err
	}
	main, err := MainTractor(root)
	if err != nil {
		return err
	}

	songs := FindSongs(root, cfg.MusicDirs)
	if len(songs) == 0 {
		log.Error("no eligible songs in the project", slog.Any("music", cfg.MusicDirs))
		return ErrNoSongs
	}
	log.Info("found songs", slog.Int("count", len(songs)))
	for _, s := range songs {
		log.Debug("song", slog.String("id", s.ID), slog.String("name", s.Name),
			slog.String("length", timecode.Format(s.Length)))
	}

	markers, err := FindMarkers(root)
	if err != nil {
		return err
	}
	if len(markers) == 0 {
		log.Error("no marker positions to fill")
		return ErrNoMarkers
	}
	log.Info("found marker regions", slog.Int("count", len(markers)))
	debugIntervals(log, "marker", markers)

	track, err := GetOrCreateTrack(root, cfg.TrackName)
	if err != nil {
		return err
	}

	EnsureGainFilter(root, track, timecode.Parse(attrOr(main, "out", "00:00:00.000")), cfg.Gain)
	if err := EnsureBlendTransitions(main, track); err != nil {
		return err
	}

	bins, err := FreeBins(track, markers, songs, cfg.MinGap)
	if err != nil {
		return err
	}
	if len(bins) == 0 {
		log.Error("no free interval is large enough for a song")
		return ErrNoBins
	}
	log.Info("found free bins", slog.Int("count", len(bins)))
	for _, b := range bins {
		log.Debug("bin", slog.String("start", timecode.Format(b.Start)),
			slog.String("end", timecode.Format(b.End)),
			slog.String("length", timecode.Format(b.Length())))
	}

	used, err := ExistingSongs(track, songs)
	if err != nil {
		return err
	}
	if len(used) > 0 {
		log.Debug("track already carries songs that will not be reused", slog.Int("count", len(used)))
	}

	existing, err := TrackTimeline(track, songs)
	if err != nil {
		return err
	}

	placements := InsertSongs(log, rng, bins, songs, used, cfg.MinGap, cfg.MaxGap)
	if len(placements) == 0 {
		log.Error("no songs could be placed in the free bins")
		return ErrNothingPlaced
	}
	log.Info("placed songs", slog.Int("count", len(placements)))
	for _, p := range placements {
		log.Debug("placement", slog.String("at", timecode.Format(p.At)),
			slog.String("song", p.Song.Name))
	}

	if err := DeleteMarkers(root); err != nil {
		return err
	}
	WritePlacements(track, placements, existing)

	if cfg.DryRun {
		log.Info("dry run, not saving", slog.String("path", project))
		return nil
	}
	if err := mlt.WriteFile(project, root); err != nil {
		return fmt.Errorf("music: saving project: %w", err)
	}
	log.Info("saved project", slog.String("path", project))
	return nil
}

func debugIntervals(log *slog.Logger, kind string, markers []Marker) {
	for _, m := range markers {
		log.Debug(kind, slog.String("start", timecode.Format(m.Start)),
			slog.String("end", timecode.Format(m.End)),
			slog.String("length", timecode.Format(m.Length())))
	}
}
