package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunDir creates a fresh timestamped output directory under base, e.g.
// output/output_20250527_103422_512301. The microsecond component makes
// collisions rare; a counter suffix resolves the remainder.
func RunDir(base, prefix string) (string, error) {
	if prefix == "" {
		prefix = "output"
	}
	stamp := time.Now().Format("20060102_150405_.000000")
	// Format has no microsecond-without-dot verb; splice the fraction in.
	stamp = stamp[:16] + stamp[17:]

	dir := filepath.Join(base, fmt.Sprintf("%s_%s", prefix, stamp))
	for counter := 1; ; counter++ {
		err := os.MkdirAll(filepath.Dir(dir), 0755)
		if err != nil {
			return "", fmt.Errorf("create output base: %w", err)
		}
		err = os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("create run directory: %w", err)
		}
		dir = filepath.Join(base, fmt.Sprintf("%s_%s_%d", prefix, stamp, counter))
	}
}
