package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vizmo/internal/display"
	"vizmo/internal/export"
	"vizmo/internal/sleap"
	"vizmo/internal/videoid"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary <labels.slp.json>...",
	Short: "Print headline statistics for annotation projects",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		l, err := sleap.Load(path)
		if err != nil {
			return err
		}
		s := export.Summarize(l)

		if summaryJSON {
			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			continue
		}

		fmt.Println(display.TitleStyle.Render(path))
		fmt.Print(display.KV([][2]string{
			{"videos", strconv.Itoa(s.Videos)},
			{"skeletons", strconv.Itoa(s.Skeletons)},
			{"labeled frames", strconv.Itoa(s.LabeledFrames)},
			{"tracks", strconv.Itoa(s.Tracks)},
			{"instances", strconv.Itoa(s.TotalInstances)},
			{"labeled points", strconv.Itoa(s.TotalPoints)},
			{"instances/frame", fmt.Sprintf("%.2f (min %d, max %d)", s.AvgInstances, s.MinInstances, s.MaxInstances)},
		}))
		if len(s.VideoNames) > 0 {
			fmt.Println(display.KeyStyle.Render("  videos:"))
			fmt.Print(display.Bullets(display.InfoStyle, s.VideoNames))
		}
		for name, nodes := range s.NodesPerSkeleton {
			fmt.Printf("  %s %s\n", display.KeyStyle.Render("skeleton"), fmt.Sprintf("%s (%d nodes)", name, nodes))
		}
		// Flag identity problems early: a video we cannot name will end up
		// in the "unknown" bucket everywhere downstream.
		var unknowns []string
		for i := range l.Videos {
			if videoid.FromVideo(&l.Videos[i]) == videoid.Unknown {
				unknowns = append(unknowns, fmt.Sprintf("video %d has no resolvable filename", i))
			}
		}
		if len(unknowns) > 0 {
			fmt.Print(display.Bullets(display.WarnStyle, unknowns))
		}
		if len(args) > 1 {
			fmt.Println()
		}
	}
	return nil
}
