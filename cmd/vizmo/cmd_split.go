package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vizmo/internal/display"
	"vizmo/internal/export"
	"vizmo/internal/roots"
	"vizmo/internal/sleap"
)

var (
	splitPrefix string
	splitSuffix string
)

var splitCmd = &cobra.Command{
	Use:   "split <labels.slp.json>",
	Short: "Split a multi-video project into one file per video",
	Long: `Split writes one single-video labels file per video into a fresh run
directory. The downstream Series loader expects exactly one video per file,
so multi-video projects must be split before phenotyping.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVar(&splitPrefix, "prefix", "", "prefix for output filenames")
	splitCmd.Flags().StringVar(&splitSuffix, "suffix", "", "suffix appended to the video name")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	l, err := sleap.Load(args[0])
	if err != nil {
		return err
	}

	runDir, err := export.RunDir(cfg.OutputDir, "output")
	if err != nil {
		return err
	}

	paths, dropped, err := roots.SaveSplit(l, runDir, splitPrefix, splitSuffix)
	recordRun("split", args, runDir, len(paths), err)
	if err != nil {
		return err
	}
	if dropped > 0 {
		logger.Warn("frames without a matching video were not written",
			zap.Int("frames", dropped))
		fmt.Println(display.WarnStyle.Render(fmt.Sprintf("%d frame(s) had no matching video and were dropped", dropped)))
	}

	videos := make([]string, 0, len(paths))
	for v := range paths {
		videos = append(videos, v)
	}
	sort.Strings(videos)
	for _, v := range videos {
		logger.Info("wrote split labels", zap.String("video", v), zap.String("path", paths[v]))
	}

	fmt.Println(display.SuccessStyle.Render(fmt.Sprintf("split into %d file(s) in %s", len(paths), runDir)))
	return nil
}
