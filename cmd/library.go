package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"undertone/library"
)

var libraryMusic []string

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the audio files under the music roots",
	Long: `Library scans the music root directories directly, without a project
file, and lists every audio file with its ID3 title and artist where tags are
present. Useful for checking which files qualify as songs before editing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := library.Scan(libraryMusic)
		if err != nil {
			return err
		}
		for _, e := range entries {
			line := e.Title
			if e.Artist != "" {
				line = e.Artist + " - " + e.Title
			}
			fmt.Printf("%s %s\n", labelStyle.Render(line), dimStyle.Render(e.Path))
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("%d files", len(entries))))
		return nil
	},
}

func init() {
	libraryCmd.Flags().StringArrayVarP(&libraryMusic, "music", "m", nil, "music root directory (repeatable)")
	_ = libraryCmd.MarkFlagRequired("music")
}
