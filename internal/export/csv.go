package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteCSV writes rows to path with the standard header, creating parent
// directories as needed. Empty input still produces a header-only file.
func WriteCSV(rows []Row, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.record()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// MetadataName decorates a CSV path with frame/point counts and a timestamp:
// labels.csv -> labels_12frames_340pts_20250527_103422.csv.
func MetadataName(path string, nFrames, nPoints int, now time.Time) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	name := fmt.Sprintf("%s_%dframes_%dpts_%s%s", stem, nFrames, nPoints, now.Format("20060102_150405"), ext)
	return filepath.Join(dir, name)
}
