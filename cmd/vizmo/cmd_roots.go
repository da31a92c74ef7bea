package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vizmo/internal/display"
	"vizmo/internal/export"
	"vizmo/internal/naming"
	"vizmo/internal/pipeline"
	"vizmo/internal/roots"
)

var (
	rootsPrimary []string
	rootsLateral []string
	rootsCrown   []string
	rootsMerge   bool

	combineDir     string
	combinePattern string
	combineCounts  string
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "Prepare annotation projects for the root-phenotyping pipelines",
}

var rootsPipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "Show which pipelines accept the given root-type combination",
	RunE:  runRootsPipelines,
}

var rootsPrepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Stage combined per-root-type label files for a pipeline run",
	Long: `Prepare writes one combined labels file per root type into a fresh run
directory, generates the expected plant counts sheet when the multiple-dicot
pipeline applies, and records a processing summary manifest.`,
	RunE: runRootsPrepare,
}

var rootsCombineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine per-series trait CSVs and merge in plant metadata",
	RunE:  runRootsCombine,
}

func init() {
	for _, c := range []*cobra.Command{rootsPipelinesCmd, rootsPrepareCmd} {
		c.Flags().StringSliceVar(&rootsPrimary, "primary", nil, "primary-root labels file (repeatable)")
		c.Flags().StringSliceVar(&rootsLateral, "lateral", nil, "lateral-root labels file (repeatable)")
		c.Flags().StringSliceVar(&rootsCrown, "crown", nil, "crown-root labels file (repeatable)")
	}

	rootsPrepareCmd.Flags().BoolVar(&rootsMerge, "merge", false, "merge multiple files of the same root type instead of keeping the first")

	rootsCombineCmd.Flags().StringVar(&combineDir, "dir", "", "directory holding *_all_plants_traits.csv files")
	rootsCombineCmd.Flags().StringVar(&combinePattern, "pattern", "", "override the trait CSV glob pattern")
	rootsCombineCmd.Flags().StringVar(&combineCounts, "counts", "", "expected plant counts CSV to merge in")
	_ = rootsCombineCmd.MarkFlagRequired("dir")

	rootsCmd.AddCommand(rootsPipelinesCmd, rootsPrepareCmd, rootsCombineCmd)
	rootCmd.AddCommand(rootsCmd)
}

// loadTypedInputs loads every --primary/--lateral/--crown file with its
// declared root type.
func loadTypedInputs() ([]pipeline.Input, error) {
	var inputs []pipeline.Input
	for rt, paths := range map[pipeline.RootType][]string{
		pipeline.RootPrimary: rootsPrimary,
		pipeline.RootLateral: rootsLateral,
		pipeline.RootCrown:   rootsCrown,
	} {
		for _, p := range paths {
			in, err := pipeline.LoadInput(p, rt)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, in)
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files given: use --primary, --lateral or --crown")
	}
	return inputs, nil
}

func runRootsPipelines(cmd *cobra.Command, args []string) error {
	inputs, err := loadTypedInputs()
	if err != nil {
		return err
	}

	present := pipeline.DetectRootTypes(inputs)
	summary := pipeline.FileSummary(inputs)
	for _, rt := range pipeline.RootTypes {
		if !present[rt] {
			continue
		}
		fmt.Println(display.TitleStyle.Render(string(rt)))
		fmt.Print(display.Bullets(display.InfoStyle, summary[rt]))
	}

	pipes := pipeline.CompatiblePipelines(present)
	if len(pipes) == 0 {
		fmt.Println(display.ErrorStyle.Render("no pipeline accepts this root type combination"))
		return fmt.Errorf("no compatible pipeline")
	}
	fmt.Println(display.TitleStyle.Render("compatible pipelines"))
	for _, p := range pipes {
		fmt.Print(display.KV([][2]string{{p.Name, p.Description}}))
	}
	return nil
}

func runRootsPrepare(cmd *cobra.Command, args []string) error {
	inputs, err := loadTypedInputs()
	if err != nil {
		return err
	}

	runDir, err := export.RunDir(cfg.OutputDir, "output")
	if err != nil {
		return err
	}

	prep, err := pipeline.PrepareSeries(inputs, runDir, rootsMerge, logger)
	if err != nil {
		recordRun("roots prepare", inputPaths(inputs), runDir, 0, err)
		return err
	}

	summary := pipeline.RunSummary{
		Timestamp:       time.Now().Format(time.RFC3339),
		OutputDirectory: runDir,
		InputFiles:      make(map[string]string, len(prep.Files)),
		PipelineUsed:    prep.Pipelines[0].Name,
	}
	for rt, path := range prep.Files {
		summary.InputFiles[string(rt)] = path
	}

	// The multiple-dicot pipeline reads plant counts from a sheet the
	// researcher corrects by hand; seed it with the annotated counts.
	if hasPipeline(prep.Pipelines, "MultipleDicotPipeline") {
		series := primarySeries(inputs, prep)
		countsPath, err := pipeline.WriteExpectedCounts(series, runDir)
		if err != nil {
			recordRun("roots prepare", inputPaths(inputs), runDir, len(prep.Files), err)
			return err
		}
		total := 0
		for _, s := range series {
			total += s.PlantCount()
		}
		summary.ExpectedCountsCSV = countsPath
		summary.ExpectedTotalPlants = total
		summary.SeriesProcessed = len(series)
		logger.Info("expected plant counts written",
			zap.String("path", countsPath),
			zap.Int("series", len(series)),
			zap.Int("total_plants", total))
	}

	if _, err := pipeline.WriteSummary(summary, runDir); err != nil {
		recordRun("roots prepare", inputPaths(inputs), runDir, len(prep.Files), err)
		return err
	}

	recordRun("roots prepare", inputPaths(inputs), runDir, len(prep.Files)+1, nil)

	fmt.Println(display.SuccessStyle.Render("prepared " + runDir))
	pairs := [][2]string{}
	for _, rt := range pipeline.RootTypes {
		if path, ok := prep.Files[rt]; ok {
			pairs = append(pairs, [2]string{string(rt), path})
		}
	}
	fmt.Print(display.KV(pairs))
	if len(prep.Skipped) > 0 {
		fmt.Print(display.Bullets(display.WarnStyle, prep.Skipped))
	}
	return nil
}

func runRootsCombine(cmd *cobra.Command, args []string) error {
	timestamp := time.Now().Format("20060102_150405")

	traits, traitsPath, err := pipeline.CombineTraitCSVs(combineDir, combinePattern, timestamp)
	if err != nil {
		recordRun("roots combine", []string{combineDir}, combineDir, 0, err)
		return err
	}
	if traits == nil {
		recordRun("roots combine", []string{combineDir}, combineDir, 0, nil)
		fmt.Println(display.WarnStyle.Render("no trait CSVs found in " + combineDir))
		return nil
	}
	logger.Info("combined trait csvs",
		zap.String("path", traitsPath),
		zap.Int("rows", len(traits.Rows)))
	artifacts := 1

	summary := pipeline.RunSummary{
		Timestamp:        time.Now().Format(time.RFC3339),
		OutputDirectory:  combineDir,
		SeriesProcessed:  distinctSeries(traits),
		SeriesSummaryCSV: traitsPath,
		SummaryColumns:   traits.Columns,
	}

	if combineCounts != "" {
		expected, err := pipeline.ReadTable(combineCounts)
		if err != nil {
			recordRun("roots combine", []string{combineDir}, combineDir, artifacts, err)
			return err
		}
		merged, mergedPath, err := pipeline.MergeWithExpected(traits, expected, combineDir, timestamp)
		if err != nil {
			recordRun("roots combine", []string{combineDir}, combineDir, artifacts, err)
			return err
		}
		artifacts++
		summary.ExpectedCountsCSV = combineCounts
		summary.SeriesSummaryCSV = mergedPath
		summary.SummaryColumns = merged.Columns
		logger.Info("merged with expected counts",
			zap.String("path", mergedPath),
			zap.Int("rows", len(merged.Rows)),
			zap.Int("columns", len(merged.Columns)))
	}

	if _, err := pipeline.WriteSummary(summary, combineDir); err != nil {
		recordRun("roots combine", []string{combineDir}, combineDir, artifacts, err)
		return err
	}
	artifacts++

	recordRun("roots combine", []string{combineDir}, combineDir, artifacts, nil)
	fmt.Println(display.SuccessStyle.Render(fmt.Sprintf("wrote %d artifact(s) in %s", artifacts, combineDir)))
	return nil
}

// distinctSeries counts the unique series names in a combined trait table.
func distinctSeries(t *pipeline.Table) int {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		seen[row["series_name"]] = true
	}
	return len(seen)
}

func hasPipeline(pipes []pipeline.Pipeline, name string) bool {
	for _, p := range pipes {
		if p.Name == name {
			return true
		}
	}
	return false
}

func inputPaths(inputs []pipeline.Input) []string {
	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = in.Path
	}
	return paths
}

// primarySeries derives one Series per video of the primary inputs. Series
// names come from the video filename, with container extensions stripped.
func primarySeries(inputs []pipeline.Input, prep *pipeline.Prepared) []pipeline.Series {
	var series []pipeline.Series
	for _, in := range inputs {
		if in.RootType != pipeline.RootPrimary {
			continue
		}
		perVideo, dropped := roots.SplitByVideo(in.Labels)
		if dropped > 0 {
			logger.Warn("frames without a matching video excluded from plant counts",
				zap.String("input", in.Path),
				zap.Int("frames", dropped))
		}
		for name, labels := range perVideo {
			series = append(series, pipeline.Series{
				Name:        naming.SeriesName(name, true),
				PrimaryPath: prep.Files[pipeline.RootPrimary],
				LateralPath: prep.Files[pipeline.RootLateral],
				Primary:     labels,
			})
		}
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Name < series[j].Name })
	return series
}
