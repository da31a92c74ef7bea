// Package roots prepares annotation projects for the downstream
// root-phenotyping package, whose Series abstraction requires exactly one
// video per labels file.
package roots

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"vizmo/internal/sleap"
	"vizmo/internal/videoid"
)

// NamedVideo pairs a video index with its resolved name.
type NamedVideo struct {
	Name  string
	Index int
}

// Videos lists every video in the project with its resolved name, in
// project order.
func Videos(l *sleap.Labels) []NamedVideo {
	out := make([]NamedVideo, 0, len(l.Videos))
	for i := range l.Videos {
		out = append(out, NamedVideo{Name: videoid.FromVideo(&l.Videos[i]), Index: i})
	}
	return out
}

// SplitByVideo partitions a multi-video project into one Labels per video.
// Skeletons and tracks are shared across the partitions; labeled frames are
// re-pointed at each partition's single video. Provenance filenames are
// rewritten with the video name so saved splits stay traceable. Single-video
// and empty projects come back unchanged under their resolved name.
//
// Frames whose video reference matches no video cannot be assigned to any
// partition; the second return value counts them so callers can warn.
func SplitByVideo(l *sleap.Labels) (map[string]*sleap.Labels, int) {
	videos := Videos(l)

	if len(videos) <= 1 {
		name := videoid.Unknown
		if len(videos) == 1 {
			name = videos[0].Name
		}
		return map[string]*sleap.Labels{name: l}, 0
	}

	assigned := 0
	split := make(map[string]*sleap.Labels, len(videos))
	for _, v := range videos {
		part := &sleap.Labels{
			Videos:    []sleap.Video{l.Videos[v.Index]},
			Skeletons: l.Skeletons,
			Tracks:    l.Tracks,
		}
		for _, lf := range l.LabeledFrames {
			if lf.Video != v.Index {
				continue
			}
			lf.Video = 0
			part.LabeledFrames = append(part.LabeledFrames, lf)
			assigned++
		}
		if l.Provenance != nil {
			part.Provenance = make(map[string]string, len(l.Provenance))
			for k, val := range l.Provenance {
				part.Provenance[k] = val
			}
			if orig, ok := part.Provenance["filename"]; ok {
				ext := filepath.Ext(orig)
				stem := strings.TrimSuffix(filepath.Base(orig), ext)
				part.Provenance["filename"] = fmt.Sprintf("%s_%s%s", stem, v.Name, ext)
			}
		}
		split[v.Name] = part
	}
	return split, len(l.LabeledFrames) - assigned
}

// SaveSplit writes each video's labels to dir as
// <prefix><video><suffix>.slp.json and returns video name -> path, with
// deterministic write order, plus the count of frames no partition could
// claim.
func SaveSplit(l *sleap.Labels, dir, prefix, suffix string) (map[string]string, int, error) {
	split, dropped := SplitByVideo(l)

	names := make([]string, 0, len(split))
	for name := range split {
		names = append(names, name)
	}
	sort.Strings(names)

	saved := make(map[string]string, len(split))
	for _, name := range names {
		path := filepath.Join(dir, fmt.Sprintf("%s%s%s.slp.json", prefix, name, suffix))
		if err := split[name].Save(path); err != nil {
			return saved, dropped, fmt.Errorf("save split %q: %w", name, err)
		}
		saved[name] = path
	}
	return saved, dropped, nil
}
