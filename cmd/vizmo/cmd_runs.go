package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vizmo/internal/display"
	"vizmo/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent vizmo runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	s, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.Recent(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(display.KeyStyle.Render("no runs recorded yet"))
		return nil
	}

	for _, r := range runs {
		status := display.SuccessStyle.Render(r.Status)
		if r.Status != "ok" {
			status = display.ErrorStyle.Render(r.Status)
		}
		fmt.Printf("%s  %s  %s\n",
			display.KeyStyle.Render(r.StartedAt.Format(time.DateTime)),
			display.TitleStyle.Render(r.Command),
			status)
		fmt.Print(display.KV([][2]string{
			{"inputs", strings.Join(r.Inputs, ", ")},
			{"output", r.OutputDir},
			{"artifacts", fmt.Sprintf("%d", r.Artifacts)},
		}))
		if r.Error != "" {
			fmt.Print(display.Bullets(display.ErrorStyle, []string{r.Error}))
		}
	}
	return nil
}
