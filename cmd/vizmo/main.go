// Command vizmo inspects and exports pose-annotation projects from
// root-growth time-series experiments, and prepares them for the downstream
// root-phenotyping pipelines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vizmo/internal/config"
	"vizmo/internal/store"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	outDir  string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vizmo",
	Short: "vizmo - pose-annotation inspection and export for root phenotyping",
	Long: `vizmo loads pose-annotation projects (JSON interchange form), exports
their labeled points as CSV tables, splits multi-video projects into the
one-video-per-file layout the sleap-roots Series loader requires, and
organizes raw scanner output into per-day directories.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if outDir != "" {
			cfg.OutputDir = outDir
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		switch cfg.Logging.Level {
		case "debug":
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		case "warn":
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		case "error":
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "vizmo.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "override output base directory")
}

// recordRun books the invocation into the run registry. Registry failures
// are logged, never fatal: the artifacts on disk matter more than the
// bookkeeping.
func recordRun(command string, inputs []string, outputDir string, artifacts int, runErr error) {
	s, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Warn("run registry unavailable", zap.Error(err))
		return
	}
	defer s.Close()

	id, err := s.Begin(command, inputs, outputDir)
	if err != nil {
		logger.Warn("could not record run", zap.Error(err))
		return
	}
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	if err := s.Finish(id, artifacts, msg); err != nil {
		logger.Warn("could not finish run record", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
