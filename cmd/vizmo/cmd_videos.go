package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vizmo/internal/display"
	"vizmo/internal/naming"
	"vizmo/internal/sleap"
	"vizmo/internal/videoid"
)

var videosJSON bool

var videosCmd = &cobra.Command{
	Use:   "videos <labels.slp.json>",
	Short: "Show how each video's filename record resolves",
	Long: `Videos lists every video in a project with the name and full path
recovered from its filename record, plus the experiment metadata parsed out
of the name. Useful when a project exported on another machine carries
serialized path objects or broken records.`,
	Args: cobra.ExactArgs(1),
	RunE: runVideos,
}

func init() {
	videosCmd.Flags().BoolVar(&videosJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(videosCmd)
}

func runVideos(cmd *cobra.Command, args []string) error {
	l, err := sleap.Load(args[0])
	if err != nil {
		return err
	}

	if videosJSON {
		infos := make([]videoid.Info, 0, len(l.Videos))
		for i := range l.Videos {
			infos = append(infos, videoid.Inspect(&l.Videos[i]))
		}
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for i := range l.Videos {
		info := videoid.Inspect(&l.Videos[i])
		title := fmt.Sprintf("video %d: %s", i, info.Name)
		if info.Name == videoid.Unknown {
			fmt.Println(display.ErrorStyle.Render(title))
		} else {
			fmt.Println(display.TitleStyle.Render(title))
		}

		pairs := [][2]string{{"kind", info.Kind}}
		if info.FullPath != "" {
			pairs = append(pairs, [2]string{"path", info.FullPath})
		}
		scan := naming.Parse(info.Name)
		if scan.Prefix != "" {
			pairs = append(pairs, [2]string{"prefix", scan.Prefix})
		}
		if scan.Treatment != "" {
			pairs = append(pairs, [2]string{"treatment", scan.Treatment})
		}
		if scan.Set != "" {
			pairs = append(pairs, [2]string{"set", scan.Set})
		}
		if scan.HasDay() {
			pairs = append(pairs, [2]string{"day", strconv.Itoa(scan.Day)})
		}
		if scan.Timestamp != "" {
			pairs = append(pairs, [2]string{"timestamp", scan.Timestamp})
		}
		if scan.Number != "" {
			pairs = append(pairs, [2]string{"number", scan.Number})
		}
		fmt.Print(display.KV(pairs))
	}
	return nil
}
