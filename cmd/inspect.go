package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"undertone/mlt"
	"undertone/music"
	"undertone/timecode"
)

var (
	inspectProject string
	inspectMusic   []string
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show a project's tracks, songs and markers",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := mlt.FindProject(inspectProject)
		if err != nil {
			return err
		}
		root, err := mlt.ParseFile(project)
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render("Project"))
		fmt.Printf("  %s %s\n", labelStyle.Render("file:"), project)
		fmt.Printf("  %s %s\n", labelStyle.Render("title:"), root.Attr("title"))
		if main, err := music.MainTractor(root); err == nil {
			fmt.Printf("  %s %s -> %s\n", labelStyle.Render("span:"),
				main.Attr("in"), main.Attr("out"))
		}

		fmt.Println(headerStyle.Render("Tracks"))
		for _, track := range root.FindAll("playlist") {
			name, _ := track.Property("shotcut:name")
			if name == "" {
				continue
			}
			entries := len(track.FindAll("entry"))
			fmt.Printf("  %s %s %s\n", labelStyle.Render(name),
				dimStyle.Render(track.Attr("id")),
				fmt.Sprintf("(%d entries)", entries))
		}

		if len(inspectMusic) > 0 {
			songs := music.FindSongs(root, inspectMusic)
			fmt.Println(headerStyle.Render(fmt.Sprintf("Songs (%d)", len(songs))))
			for _, s := range songs {
				fmt.Printf("  %s %s %s\n", labelStyle.Render(s.Name),
					timecode.Format(s.Length), dimStyle.Render(s.ID))
			}
		}

		markers, err := music.FindMarkers(root)
		if err != nil {
			return err
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("Marker regions (%d)", len(markers))))
		for _, m := range markers {
			fmt.Printf("  %s -> %s %s\n", timecode.Format(m.Start), timecode.Format(m.End),
				dimStyle.Render(fmt.Sprintf("(%s)", timecode.Format(m.Length()))))
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectProject, "project", "p", ".", "project file or directory to search")
	inspectCmd.Flags().StringArrayVarP(&inspectMusic, "music", "m", nil, "music root directory (repeatable)")
}
