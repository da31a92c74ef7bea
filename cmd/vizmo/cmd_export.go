package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vizmo/internal/display"
	"vizmo/internal/export"
	"vizmo/internal/sleap"
)

var (
	exportPlainNames bool
	exportWorkers    int
)

var exportCmd = &cobra.Command{
	Use:   "export <labels.slp.json>...",
	Short: "Export labeled points to CSV tables",
	Long: `Export writes one CSV per input project into a fresh timestamped run
directory under the output base. Each row is a single labeled point with its
video, frame, instance, track and node identity. Missing points are omitted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportPlainNames, "plain-names", false, "name CSVs after inputs without frame/point metadata")
	exportCmd.Flags().IntVar(&exportWorkers, "workers", 4, "number of files to export concurrently")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	runDir, err := export.RunDir(cfg.OutputDir, "output")
	if err != nil {
		return err
	}
	logger.Info("export run directory created", zap.String("dir", runDir))

	metadataName := cfg.Export.MetadataName && !exportPlainNames
	now := time.Now()

	var (
		mu      sync.Mutex
		written []string
	)

	g := new(errgroup.Group)
	g.SetLimit(exportWorkers)
	for _, path := range args {
		path := path // go 1.21: keep per-iteration value inside the goroutine
		g.Go(func() error {
			l, err := sleap.Load(path)
			if err != nil {
				return err
			}
			rows := export.Rows(l)

			ext := filepath.Ext(path)
			stem := strings.TrimSuffix(filepath.Base(path), ext)
			stem = strings.TrimSuffix(stem, ".slp") // x.slp.json -> x
			out := filepath.Join(runDir, stem+".csv")
			if metadataName {
				out = export.MetadataName(out, len(l.LabeledFrames), len(rows), now)
			}

			if err := export.WriteCSV(rows, out); err != nil {
				return err
			}
			logger.Info("exported",
				zap.String("input", path),
				zap.String("csv", out),
				zap.Int("points", len(rows)))

			mu.Lock()
			written = append(written, out)
			mu.Unlock()
			return nil
		})
	}

	err = g.Wait()
	recordRun("export", args, runDir, len(written), err)
	if err != nil {
		return err
	}

	fmt.Println(display.SuccessStyle.Render(fmt.Sprintf("exported %d file(s) to %s", len(written), runDir)))
	return nil
}
