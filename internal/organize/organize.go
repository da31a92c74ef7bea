// Package organize buckets raw scanner output into per-day directories
// using the metadata encoded in scan filenames.
package organize

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"vizmo/internal/naming"
)

// Options controls an organize run.
type Options struct {
	Copy   bool // copy instead of move
	DryRun bool // plan only, touch nothing
}

// Move describes one planned or executed file placement.
type Move struct {
	Source string
	Dest   string
	Bucket string
}

// Result reports what an organize run did (or, under DryRun, would do).
type Result struct {
	Moves    []Move
	Unsorted int // files that landed in the unsorted bucket
	Skipped  int // non-tif entries left alone
}

// Organizer places scan files into day buckets under a destination root.
type Organizer struct {
	dst  string
	opts Options
	log  *zap.Logger
}

// New returns an Organizer writing under dst.
func New(dst string, opts Options, log *zap.Logger) *Organizer {
	return &Organizer{dst: dst, opts: opts, log: log}
}

// Run organizes every .tif file directly under src.
func (o *Organizer) Run(src string) (*Result, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("read scan directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	res := &Result{}
	for _, name := range names {
		if !isTif(name) {
			res.Skipped++
			continue
		}
		mv, err := o.Place(filepath.Join(src, name))
		if err != nil {
			return res, err
		}
		res.Moves = append(res.Moves, mv)
		if mv.Bucket == "unsorted" {
			res.Unsorted++
		}
	}
	return res, nil
}

// Place buckets a single scan file by its parsed day. Destination
// collisions get a numeric suffix; nothing is ever overwritten.
func (o *Organizer) Place(src string) (Move, error) {
	bucket := naming.Parse(src).DayBucket()
	dest := filepath.Join(o.dst, bucket, filepath.Base(src))
	mv := Move{Source: src, Dest: dest, Bucket: bucket}

	if o.opts.DryRun {
		o.log.Info("would place scan",
			zap.String("src", src),
			zap.String("bucket", bucket))
		return mv, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return mv, fmt.Errorf("create bucket directory: %w", err)
	}
	dest, err := availableName(dest)
	if err != nil {
		return mv, err
	}
	mv.Dest = dest

	if o.opts.Copy {
		err = copyFile(src, dest)
	} else {
		err = moveFile(src, dest)
	}
	if err != nil {
		return mv, err
	}

	o.log.Info("placed scan",
		zap.String("src", src),
		zap.String("dest", dest),
		zap.Bool("copy", o.opts.Copy))
	return mv, nil
}

func isTif(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".tif" || ext == ".tiff"
}

// availableName returns path, or path with an " (n)" suffix before the
// extension when path already exists.
func availableName(path string) (string, error) {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return path, nil
	} else if err != nil {
		return "", fmt.Errorf("stat destination: %w", err)
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("stat destination: %w", err)
		}
	}
}

func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to copy+remove.
	if err := copyFile(src, dest); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy scan: %w", err)
	}
	return out.Close()
}
