package naming

import (
	"path"
	"strings"
)

// videoExts are extensions the scanners and converters leave embedded in
// stems (e.g. "scan.tif.h5" stems to "scan.tif").
var videoExts = []string{".avi", ".mp4", ".mov", ".tif", ".tiff", ".h5", ".hdf5"}

// SeriesName normalizes a video filename into a name the downstream
// phenotyping package accepts as a series identifier. With stripExtensions,
// the final extension and any residual video extension are removed; spaces
// and dashes become underscores either way.
func SeriesName(videoName string, stripExtensions bool) string {
	name := path.Base(strings.ReplaceAll(videoName, `\`, "/"))

	if stripExtensions {
		name = strings.TrimSuffix(name, path.Ext(name))
		for _, ext := range videoExts {
			if strings.HasSuffix(strings.ToLower(name), ext) {
				name = name[:len(name)-len(ext)]
			}
		}
	}

	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}
