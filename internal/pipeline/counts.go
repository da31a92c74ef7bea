package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"vizmo/internal/naming"
	"vizmo/internal/sleap"
)

// ExpectedCountsFile is the filename the downstream MultipleDicotPipeline
// looks for.
const ExpectedCountsFile = "expected_plant_counts.csv"

// expectedCountsHeader mirrors the sheet the phenotyping package ingests,
// trailing filler columns included.
var expectedCountsHeader = []string{
	"plant_qr_code", "genotype", "replicate", "path",
	"qc_cylinder", "qc_code", "number_of_plants_cylinder",
	"primary_root_proofread", "lateral_root_proofread",
	"Unnamed: 9", "Unnamed: 10", "Unnamed: 11", "Unnamed: 12", "Instructions",
}

// Series is one per-video unit of downstream processing.
type Series struct {
	Name        string
	PrimaryPath string
	LateralPath string
	Primary     *sleap.Labels
}

// PlantCount returns the number of plants annotated in the series' primary
// labels: every instance is one plant.
func (s Series) PlantCount() int {
	if s.Primary == nil {
		return 0
	}
	return s.Primary.TotalInstances()
}

// WriteExpectedCounts writes expected_plant_counts.csv for the given series
// into dir and returns its path. Genotype and replicate are recovered from
// the series name.
func WriteExpectedCounts(series []Series, dir string) (string, error) {
	path := filepath.Join(dir, ExpectedCountsFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create expected counts csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(expectedCountsHeader); err != nil {
		return "", fmt.Errorf("write expected counts header: %w", err)
	}

	for _, s := range series {
		row := []string{
			s.Name,
			naming.Genotype(s.Name),
			strconv.Itoa(naming.Replicate(s.Name)),
			s.PrimaryPath,
			"0", // qc_cylinder
			"",  // qc_code
			strconv.Itoa(s.PlantCount()),
			s.PrimaryPath,
			s.LateralPath,
			"", "", "", "", "",
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write expected counts row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush expected counts csv: %w", err)
	}
	return path, f.Close()
}
