package pipeline

import (
	"fmt"
	"os"
	"strings"

	"vizmo/internal/sleap"
)

// LoadInput validates and loads one typed annotation file. Mirrors the
// checks researchers hit interactively: path exists, supported extension,
// parseable, and non-empty.
func LoadInput(path string, rootType RootType) (Input, error) {
	if path == "" {
		return Input{}, fmt.Errorf("no file path provided")
	}
	if _, err := ParseRootType(string(rootType)); err != nil {
		return Input{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return Input{}, fmt.Errorf("file not found: %s", path)
	}
	if !strings.HasSuffix(path, ".json") && !strings.HasSuffix(path, ".slp") {
		return Input{}, fmt.Errorf("not an annotation file: %s", path)
	}

	labels, err := sleap.Load(path)
	if err != nil {
		return Input{}, err
	}
	if len(labels.LabeledFrames) == 0 {
		return Input{}, fmt.Errorf("no labeled frames in %s", baseName(path))
	}

	return Input{Path: path, RootType: rootType, Labels: labels}, nil
}

// Combine merges the labels of all inputs into one project: the first
// skeleton wins, videos and tracks are deduplicated by identity of their
// records, frames are concatenated with re-pointed video indexes. Returns
// nil when no input carries frames.
func Combine(inputs []Input) *sleap.Labels {
	combined := &sleap.Labels{}
	videoKeys := make(map[string]int)
	trackKeys := make(map[string]int)

	for _, in := range inputs {
		if in.Labels == nil {
			continue
		}
		l := in.Labels

		if len(combined.Skeletons) == 0 && len(l.Skeletons) > 0 {
			combined.Skeletons = append(combined.Skeletons, l.Skeletons[0])
		}

		videoMap := make([]int, len(l.Videos))
		for i, v := range l.Videos {
			key := strings.Join(v.Filename.Values(), "|")
			if v.Backend != nil {
				key += "||" + strings.Join(v.Backend.Filename.Values(), "|")
			}
			idx, ok := videoKeys[key]
			if !ok {
				idx = len(combined.Videos)
				videoKeys[key] = idx
				combined.Videos = append(combined.Videos, v)
			}
			videoMap[i] = idx
		}

		trackMap := make([]int, len(l.Tracks))
		for i, t := range l.Tracks {
			idx, ok := trackKeys[t.Name]
			if !ok {
				idx = len(combined.Tracks)
				trackKeys[t.Name] = idx
				combined.Tracks = append(combined.Tracks, t)
			}
			trackMap[i] = idx
		}

		for _, lf := range l.LabeledFrames {
			if lf.Video >= 0 && lf.Video < len(videoMap) {
				lf.Video = videoMap[lf.Video]
			}
			instances := make([]sleap.Instance, len(lf.Instances))
			for i, inst := range lf.Instances {
				inst.Skeleton = 0
				if inst.Track >= 0 && inst.Track < len(trackMap) {
					inst.Track = trackMap[inst.Track]
				}
				instances[i] = inst
			}
			lf.Instances = instances
			combined.LabeledFrames = append(combined.LabeledFrames, lf)
		}
	}

	if len(combined.LabeledFrames) == 0 {
		return nil
	}
	return combined
}
