package roots

import (
	"fmt"

	"vizmo/internal/sleap"
)

// SkeletonInfo summarizes one skeleton for the compatibility report.
type SkeletonInfo struct {
	NodeCount int      `json:"node_count"`
	NodeNames []string `json:"node_names"`
}

// Compatibility is the result of checking labels against the Series
// loading requirements of the phenotyping package.
type Compatibility struct {
	IsCompatible bool                    `json:"is_compatible"`
	Warnings     []string                `json:"warnings"`
	Errors       []string                `json:"errors"`
	VideoCount   int                     `json:"video_count"`
	FrameCount   int                     `json:"frame_count"`
	HasTracks    bool                    `json:"has_tracks"`
	Skeletons    map[string]SkeletonInfo `json:"skeleton_info"`
}

// Validate checks whether labels can be loaded as a Series. Errors mark the
// labels incompatible; warnings flag conditions the researcher should fix
// before running pipelines.
func Validate(l *sleap.Labels) Compatibility {
	r := Compatibility{
		IsCompatible: true,
		Skeletons:    make(map[string]SkeletonInfo),
	}

	if len(l.Videos) > 0 {
		r.VideoCount = len(l.Videos)
	} else {
		r.Errors = append(r.Errors, "no videos found in labels")
		r.IsCompatible = false
	}

	if len(l.LabeledFrames) > 0 {
		r.FrameCount = len(l.LabeledFrames)
	} else {
		r.Errors = append(r.Errors, "no labeled frames found")
		r.IsCompatible = false
	}

	if len(l.Skeletons) > 0 {
		for i, skel := range l.Skeletons {
			r.Skeletons[fmt.Sprintf("skeleton_%d", i)] = SkeletonInfo{
				NodeCount: len(skel.Nodes),
				NodeNames: skel.Nodes,
			}
		}
	} else {
		r.Errors = append(r.Errors, "no skeletons found")
		r.IsCompatible = false
	}

	if len(l.Tracks) > 0 {
		r.HasTracks = true
	} else {
		r.Warnings = append(r.Warnings, "no tracks found; Series may expect tracked data")
	}

	framesWithoutVideo := 0
	for _, lf := range l.LabeledFrames {
		if l.VideoOf(lf) == nil {
			framesWithoutVideo++
		}
	}
	if framesWithoutVideo > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d frames have no video reference", framesWithoutVideo))
	}

	if r.VideoCount > 1 {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"labels contain %d videos; Series expects one video per file, split before loading", r.VideoCount))
	}

	return r
}
