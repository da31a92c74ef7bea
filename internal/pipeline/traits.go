package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TraitCSVPattern matches the per-series trait files the downstream
// pipelines emit.
const TraitCSVPattern = "*_all_plants_traits.csv"

// Table is a small column-ordered CSV table; cells are kept as strings since
// trait columns vary per pipeline and are never computed on here.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// ReadTable loads a CSV file into a Table.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv: %s", filepath.Base(path))
	}

	t := &Table{Columns: records[0]}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Write saves the table as CSV.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// addColumn appends a column if not already present.
func (t *Table) addColumn(name string) {
	for _, c := range t.Columns {
		if c == name {
			return
		}
	}
	t.Columns = append(t.Columns, name)
}

// CombineTraitCSVs concatenates every per-series trait CSV in dir into one
// table, tagging each row with its series_name (derived from the filename),
// and writes series_summary_statistics_<timestamp>.csv. Returns nil with no
// error when dir holds no trait files.
func CombineTraitCSVs(dir, pattern, timestamp string) (*Table, string, error) {
	if pattern == "" {
		pattern = TraitCSVPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, "", fmt.Errorf("glob trait csvs: %w", err)
	}
	if len(matches) == 0 {
		return nil, "", nil
	}
	sort.Strings(matches)

	combined := &Table{}
	for _, m := range matches {
		t, err := ReadTable(m)
		if err != nil {
			return nil, "", err
		}
		series := strings.TrimSuffix(filepath.Base(m), ".csv")
		series = strings.TrimSuffix(series, "_all_plants_traits")
		for _, col := range t.Columns {
			combined.addColumn(col)
		}
		combined.addColumn("series_name")
		for _, row := range t.Rows {
			row["series_name"] = series
			combined.Rows = append(combined.Rows, row)
		}
	}

	out := filepath.Join(dir, fmt.Sprintf("series_summary_statistics_%s.csv", timestamp))
	if err := combined.Write(out); err != nil {
		return nil, "", err
	}
	return combined, out, nil
}

// metadataColumns lead the merged sheet so researchers see identity fields
// before the trait columns.
var metadataColumns = []string{
	"series_name", "plant_qr_code", "genotype", "replicate",
	"number_of_plants_cylinder", "primary_root_proofread", "lateral_root_proofread",
}

// MergeWithExpected left-joins the combined trait table against the expected
// plant counts sheet on series name, reorders metadata columns to the front,
// and writes final_series_summary_with_metadata_<timestamp>.csv.
func MergeWithExpected(traits, expected *Table, dir, timestamp string) (*Table, string, error) {
	byQR := make(map[string]map[string]string, len(expected.Rows))
	for _, row := range expected.Rows {
		byQR[row["plant_qr_code"]] = row
	}

	merged := &Table{}
	for _, col := range metadataColumns {
		merged.addColumn(col)
	}
	for _, col := range traits.Columns {
		merged.addColumn(col)
	}
	for _, col := range expected.Columns {
		merged.addColumn(col)
	}

	for _, row := range traits.Rows {
		out := make(map[string]string, len(merged.Columns))
		for k, v := range row {
			out[k] = v
		}
		if exp, ok := byQR[row["series_name"]]; ok {
			for k, v := range exp {
				if _, taken := out[k]; !taken {
					out[k] = v
				}
			}
		}
		merged.Rows = append(merged.Rows, out)
	}

	out := filepath.Join(dir, fmt.Sprintf("final_series_summary_with_metadata_%s.csv", timestamp))
	if err := merged.Write(out); err != nil {
		return nil, "", err
	}
	return merged, out, nil
}
