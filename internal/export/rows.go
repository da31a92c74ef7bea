// Package export flattens annotation projects into tabular form and writes
// the CSV artifacts researchers feed into their analysis notebooks.
package export

import (
	"strconv"

	"vizmo/internal/sleap"
	"vizmo/internal/videoid"
)

// Header is the column order of every exported point table.
var Header = []string{"Video", "Frame_Index", "Labeled_Frame_Index", "Instance", "Node", "X", "Y"}

// Row is one labeled keypoint in tabular form. LabeledFrameIndex is the
// position of the frame within the project; FrameIndex is the frame's
// position within its video.
type Row struct {
	Video             string
	FrameIndex        int
	LabeledFrameIndex int
	Instance          int
	Node              string
	X                 float64
	Y                 float64
}

func (r Row) record() []string {
	return []string{
		r.Video,
		strconv.Itoa(r.FrameIndex),
		strconv.Itoa(r.LabeledFrameIndex),
		strconv.Itoa(r.Instance),
		r.Node,
		strconv.FormatFloat(r.X, 'f', -1, 64),
		strconv.FormatFloat(r.Y, 'f', -1, 64),
	}
}

// FrameRows extracts the rows of a single labeled frame. Missing points are
// skipped. videoName overrides identity resolution when non-empty.
func FrameRows(l *sleap.Labels, lf sleap.LabeledFrame, labeledFrameIdx int, videoName string) []Row {
	if videoName == "" {
		videoName = videoid.FromVideo(l.VideoOf(lf))
	}

	var rows []Row
	for instIdx, inst := range lf.Instances {
		skel := l.SkeletonOf(inst)
		for nodeIdx, pt := range inst.Points {
			if pt.Missing() {
				continue
			}
			node := "node_" + strconv.Itoa(nodeIdx)
			if skel != nil && nodeIdx < len(skel.Nodes) {
				node = skel.Nodes[nodeIdx]
			}
			rows = append(rows, Row{
				Video:             videoName,
				FrameIndex:        lf.FrameIdx,
				LabeledFrameIndex: labeledFrameIdx,
				Instance:          instIdx,
				Node:              node,
				X:                 pt.X,
				Y:                 pt.Y,
			})
		}
	}
	return rows
}

// Rows flattens every labeled frame of a project.
func Rows(l *sleap.Labels) []Row {
	var all []Row
	for i, lf := range l.LabeledFrames {
		all = append(all, FrameRows(l, lf, i, "")...)
	}
	return all
}
