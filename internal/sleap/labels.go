package sleap

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Video references the source footage of one or more labeled frames.
// Filename records vary wildly between exporters, hence FlexPath.
type Video struct {
	Filename FlexPath `json:"filename"`
	Backend  *Backend `json:"backend,omitempty"`
}

// Backend is the nested video reader record some exporters write instead of
// (or in addition to) the top-level filename.
type Backend struct {
	Filename FlexPath `json:"filename"`
}

// Skeleton names the tracked body parts and their connecting edges.
type Skeleton struct {
	Name  string   `json:"name"`
	Nodes []string `json:"nodes"`
	Edges [][2]int `json:"edges,omitempty"`
}

// Track identifies one subject across frames.
type Track struct {
	Name string `json:"name"`
}

// Point is a single labeled keypoint. Missing points are stored with NaN
// coordinates in memory and serialized as JSON nulls.
type Point struct {
	X       float64
	Y       float64
	Visible bool
}

// Missing reports whether the point has no usable coordinates.
func (p Point) Missing() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

type pointJSON struct {
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	Visible bool     `json:"visible"`
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pj pointJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	p.X, p.Y = math.NaN(), math.NaN()
	if pj.X != nil {
		p.X = *pj.X
	}
	if pj.Y != nil {
		p.Y = *pj.Y
	}
	p.Visible = pj.Visible
	return nil
}

func (p Point) MarshalJSON() ([]byte, error) {
	var pj pointJSON
	if !math.IsNaN(p.X) {
		x := p.X
		pj.X = &x
	}
	if !math.IsNaN(p.Y) {
		y := p.Y
		pj.Y = &y
	}
	pj.Visible = p.Visible
	return json.Marshal(pj)
}

// Instance is one subject's set of keypoints in a single frame. Skeleton and
// Track are indexes into the parent Labels; Track is -1 when untracked.
type Instance struct {
	Skeleton int     `json:"skeleton"`
	Track    int     `json:"track"`
	Points   []Point `json:"points"`
}

// LabeledFrame ties a set of instances to a frame of one video. Video is an
// index into Labels.Videos; -1 means the frame lost its video reference.
type LabeledFrame struct {
	Video     int        `json:"video"`
	FrameIdx  int        `json:"frame_idx"`
	Instances []Instance `json:"instances"`
}

// Labels is a whole annotation project.
type Labels struct {
	Videos        []Video           `json:"videos"`
	Skeletons     []Skeleton        `json:"skeletons"`
	Tracks        []Track           `json:"tracks,omitempty"`
	LabeledFrames []LabeledFrame    `json:"labeled_frames"`
	Provenance    map[string]string `json:"provenance,omitempty"`
}

// Load reads a labels project from a JSON file.
func Load(path string) (*Labels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	var l Labels
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse labels %s: %w", filepath.Base(path), err)
	}
	if err := l.check(); err != nil {
		return nil, fmt.Errorf("labels %s: %w", filepath.Base(path), err)
	}
	return &l, nil
}

// Save writes the labels project as indented JSON, creating parent
// directories as needed.
func (l *Labels) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create labels directory: %w", err)
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write labels: %w", err)
	}
	return nil
}

// check validates cross-references so later code can index without guards.
func (l *Labels) check() error {
	for i, lf := range l.LabeledFrames {
		if lf.Video >= len(l.Videos) {
			return fmt.Errorf("frame %d references video %d of %d", i, lf.Video, len(l.Videos))
		}
		for j, inst := range lf.Instances {
			if inst.Skeleton >= len(l.Skeletons) {
				return fmt.Errorf("frame %d instance %d references skeleton %d of %d", i, j, inst.Skeleton, len(l.Skeletons))
			}
			if inst.Track >= len(l.Tracks) {
				return fmt.Errorf("frame %d instance %d references track %d of %d", i, j, inst.Track, len(l.Tracks))
			}
		}
	}
	return nil
}

// VideoOf returns the video a frame points at, or nil when the reference is
// missing or out of range.
func (l *Labels) VideoOf(lf LabeledFrame) *Video {
	if lf.Video < 0 || lf.Video >= len(l.Videos) {
		return nil
	}
	return &l.Videos[lf.Video]
}

// SkeletonOf returns the skeleton of an instance, or nil when unset.
func (l *Labels) SkeletonOf(inst Instance) *Skeleton {
	if inst.Skeleton < 0 || inst.Skeleton >= len(l.Skeletons) {
		return nil
	}
	return &l.Skeletons[inst.Skeleton]
}

// TotalInstances counts instances across all labeled frames.
func (l *Labels) TotalInstances() int {
	n := 0
	for _, lf := range l.LabeledFrames {
		n += len(lf.Instances)
	}
	return n
}
