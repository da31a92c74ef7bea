package export

import (
	"strconv"

	"vizmo/internal/sleap"
	"vizmo/internal/videoid"
)

// Summary aggregates the headline statistics of an annotation project.
type Summary struct {
	Videos            int            `json:"n_videos"`
	Skeletons         int            `json:"n_skeletons"`
	LabeledFrames     int            `json:"n_labeled_frames"`
	Tracks            int            `json:"n_tracks"`
	VideoNames        []string       `json:"video_names"`
	NodesPerSkeleton  map[string]int `json:"nodes_per_skeleton"`
	InstancesPerFrame []int          `json:"instances_per_frame"`
	TotalInstances    int            `json:"total_instances"`
	TotalPoints       int            `json:"total_points"`
	AvgInstances      float64        `json:"avg_instances_per_frame"`
	MinInstances      int            `json:"min_instances_per_frame"`
	MaxInstances      int            `json:"max_instances_per_frame"`
}

// Summarize computes a Summary for l.
func Summarize(l *sleap.Labels) Summary {
	s := Summary{
		Videos:           len(l.Videos),
		Skeletons:        len(l.Skeletons),
		LabeledFrames:    len(l.LabeledFrames),
		Tracks:           len(l.Tracks),
		NodesPerSkeleton: make(map[string]int),
	}

	for i := range l.Videos {
		s.VideoNames = append(s.VideoNames, videoid.FromVideo(&l.Videos[i]))
	}
	for i, skel := range l.Skeletons {
		name := skel.Name
		if name == "" {
			name = "skeleton_" + strconv.Itoa(i)
		}
		s.NodesPerSkeleton[name] = len(skel.Nodes)
	}

	for _, lf := range l.LabeledFrames {
		n := len(lf.Instances)
		s.InstancesPerFrame = append(s.InstancesPerFrame, n)
		s.TotalInstances += n
		for _, inst := range lf.Instances {
			for _, pt := range inst.Points {
				if !pt.Missing() {
					s.TotalPoints++
				}
			}
		}
	}

	if len(s.InstancesPerFrame) > 0 {
		s.MinInstances = s.InstancesPerFrame[0]
		s.MaxInstances = s.InstancesPerFrame[0]
		total := 0
		for _, n := range s.InstancesPerFrame {
			total += n
			if n < s.MinInstances {
				s.MinInstances = n
			}
			if n > s.MaxInstances {
				s.MaxInstances = n
			}
		}
		s.AvgInstances = float64(total) / float64(len(s.InstancesPerFrame))
	}
	return s
}
