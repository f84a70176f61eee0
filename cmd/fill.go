package cmd

import (
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"undertone/music"
)

var (
	fillProject string
	fillMusic   []string
	fillMinGap  int
	fillMaxGap  int
	fillGain    int
	fillTrack   string
	fillDryRun  bool
	fillSeed    uint64
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill marker regions of a project with background music",
	Long: `Fill reads the project file (or the first non-backup .mlt file in a
directory), collects the song clips whose files live under the music roots,
and packs them into the marker regions not already covered by music on the
target track. Consumed markers are removed and the project is saved in place
unless --dry-run is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rng *rand.Rand
		if fillSeed != 0 {
			rng = rand.New(rand.NewPCG(fillSeed, 0))
		}

		return music.Fill(music.Config{
			Project:   fillProject,
			MusicDirs: fillMusic,
			MinGap:    time.Duration(fillMinGap) * time.Second,
			MaxGap:    time.Duration(fillMaxGap) * time.Second,
			Gain:      fillGain,
			TrackName: fillTrack,
			DryRun:    fillDryRun,
			Rand:      rng,
			Logger:    newLogger(),
		})
	},
}

func init() {
	fillCmd.Flags().StringVarP(&fillProject, "project", "p", ".", "project file or directory to search")
	fillCmd.Flags().StringArrayVarP(&fillMusic, "music", "m", nil, "music root directory (repeatable)")
	fillCmd.Flags().IntVar(&fillMinGap, "min-gap", 10, "minimum silence after each song, in seconds")
	fillCmd.Flags().IntVar(&fillMaxGap, "max-gap", 30, "maximum desired silence after each song, in seconds")
	fillCmd.Flags().IntVar(&fillGain, "gain", -20, "gain filter attenuation in dB")
	fillCmd.Flags().StringVar(&fillTrack, "track", "Music", "name of the track receiving songs")
	fillCmd.Flags().BoolVar(&fillDryRun, "dry-run", false, "compute and log placements without saving")
	fillCmd.Flags().Uint64Var(&fillSeed, "seed", 0, "random seed for song selection (0 picks one)")
	_ = fillCmd.MarkFlagRequired("music")
}
