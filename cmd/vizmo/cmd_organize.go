package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vizmo/internal/display"
	"vizmo/internal/organize"
)

var (
	organizeCopy   bool
	organizeDryRun bool
	organizeWatch  bool
	organizeDest   string
)

var organizeCmd = &cobra.Command{
	Use:   "organize <scan-dir> [dest-dir]",
	Short: "Sort raw scan images into per-day directories",
	Long: `Organize reads the day token out of each scan filename and moves the
file into a matching dayN directory under the destination. The destination
defaults to the scan directory itself. Scans without a recognizable day
token land in unsorted/. Existing files are never overwritten. With --watch,
organize keeps running and places new scans as the scanner writes them.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().BoolVar(&organizeCopy, "copy", false, "copy files instead of moving them")
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "report placements without touching files")
	organizeCmd.Flags().BoolVar(&organizeWatch, "watch", false, "keep watching the directory for new scans")
	organizeCmd.Flags().StringVar(&organizeDest, "dest", "", "destination root (defaults to the scan directory)")
	rootCmd.AddCommand(organizeCmd)
}

func runOrganize(cmd *cobra.Command, args []string) error {
	src := args[0]
	dest := organizeDest
	if len(args) == 2 {
		if dest != "" {
			return fmt.Errorf("destination given both as argument and --dest")
		}
		dest = args[1]
	}
	if dest == "" {
		dest = src
	}

	opts := organize.Options{
		Copy:   organizeCopy || cfg.Organize.Copy,
		DryRun: organizeDryRun,
	}
	org := organize.New(dest, opts, logger)

	if organizeWatch {
		if organizeDryRun {
			return fmt.Errorf("--watch and --dry-run are mutually exclusive")
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return organize.NewWatcher(org, src, logger).Run(ctx)
	}

	res, err := org.Run(src)
	moved := 0
	if res != nil {
		moved = len(res.Moves)
	}
	recordRun("organize", args, dest, moved, err)
	if err != nil {
		return err
	}

	verb := "moved"
	if opts.Copy {
		verb = "copied"
	}
	if opts.DryRun {
		verb = "would place"
	}
	for _, m := range res.Moves {
		fmt.Printf("  %s %s %s\n", display.KeyStyle.Render(m.Bucket), m.Source, display.InfoStyle.Render("-> "+m.Dest))
	}
	fmt.Println(display.SuccessStyle.Render(fmt.Sprintf(
		"%s %d file(s), %d unsorted, %d skipped", verb, len(res.Moves), res.Unsorted, res.Skipped)))
	return nil
}
