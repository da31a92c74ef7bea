// Package sleap models pose-annotation projects in their JSON interchange
// form: videos, skeletons, tracks, and labeled frames with per-node instance
// points. The binary HDF5 container is not handled here; files are expected
// to be exported to JSON before vizmo sees them.
package sleap
