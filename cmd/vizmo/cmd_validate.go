package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"vizmo/internal/display"
	"vizmo/internal/roots"
	"vizmo/internal/sleap"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate <labels.slp.json>...",
	Short: "Check projects against the Series loading requirements",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		l, err := sleap.Load(path)
		if err != nil {
			return err
		}
		c := roots.Validate(l)

		if validateJSON {
			data, err := json.MarshalIndent(c, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			if !c.IsCompatible {
				failed++
			}
			continue
		}

		fmt.Println(display.TitleStyle.Render(path))
		verdict := display.SuccessStyle.Render("compatible")
		if !c.IsCompatible {
			verdict = display.ErrorStyle.Render("incompatible")
			failed++
		}
		fmt.Print(display.KV([][2]string{
			{"verdict", verdict},
			{"videos", strconv.Itoa(c.VideoCount)},
			{"frames", strconv.Itoa(c.FrameCount)},
			{"tracks", strconv.FormatBool(c.HasTracks)},
		}))

		names := make([]string, 0, len(c.Skeletons))
		for name := range c.Skeletons {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			info := c.Skeletons[name]
			fmt.Printf("  %s %s (%d nodes)\n", display.KeyStyle.Render("skeleton"), name, info.NodeCount)
		}

		fmt.Print(display.Bullets(display.ErrorStyle, c.Errors))
		fmt.Print(display.Bullets(display.WarnStyle, c.Warnings))
		if len(args) > 1 {
			fmt.Println()
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) incompatible", failed, len(args))
	}
	return nil
}
