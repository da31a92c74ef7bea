// Package videoid resolves canonical video names from the heterogeneous,
// often malformed filename records found in annotation files. Resolution
// never fails: anything unusable maps to the sentinel name "unknown".
package videoid

import (
	"path"
	"regexp"
	"strings"

	"vizmo/internal/sleap"
)

// Unknown is returned whenever no usable video name can be recovered.
const Unknown = "unknown"

// reprList matches the Python pathlib repr some exporters leak into the
// filename field, e.g. [WindowsPath('Z:/scans/x.tif')].
var reprList = regexp.MustCompile(`^\[(Windows|Posix)?Path\(['"](.*?)['"]\)\]`)

// reprInner pulls the path out of any Path('...') fragment, used for full
// path recovery where reprList already matched.
var reprInner = regexp.MustCompile(`Path\(['"](.*?)['"]\)`)

// FromRaw resolves a single raw filename value to a video name (the path
// stem). Handles plain paths, Windows paths, and Python pathlib reprs.
func FromRaw(raw string) string {
	if raw == "" {
		return Unknown
	}

	if m := reprList.FindStringSubmatch(raw); m != nil {
		return stem(m[2])
	}
	// Repr that starts like a list but never closes: unusable.
	if strings.HasPrefix(raw, "[WindowsPath(") || strings.HasPrefix(raw, "[PosixPath(") {
		return Unknown
	}

	s := stem(raw)
	if s == "" {
		return Unknown
	}
	return s
}

// FromRecord resolves a FlexPath record, taking the first value of a list.
func FromRecord(rec sleap.FlexPath) string {
	return FromRaw(rec.First())
}

// FromVideo resolves a video's name, preferring the direct filename field and
// falling back to the backend record.
func FromVideo(v *sleap.Video) string {
	if v == nil {
		return Unknown
	}
	if !v.Filename.IsEmpty() {
		return FromRecord(v.Filename)
	}
	if v.Backend != nil && !v.Backend.Filename.IsEmpty() {
		return FromRecord(v.Backend.Filename)
	}
	return Unknown
}

// Info describes how a video's filename record was interpreted. Useful in
// inspection output when hunting down malformed files.
type Info struct {
	Name     string `json:"name"`
	FullPath string `json:"full_path,omitempty"`
	Kind     string `json:"kind"`
	Source   string `json:"source,omitempty"`
}

// Inspect classifies a video's filename record and resolves its name and
// full path where possible.
func Inspect(v *sleap.Video) Info {
	info := Info{Name: Unknown, Kind: "unknown"}
	if v == nil {
		return info
	}

	rec := v.Filename
	info.Source = "filename"
	if rec.IsEmpty() && v.Backend != nil {
		rec = v.Backend.Filename
		info.Source = "backend.filename"
	}
	if rec.IsEmpty() {
		info.Source = ""
		return info
	}

	raw := rec.First()
	switch {
	case len(rec.Values()) > 1:
		info.Kind = "path list"
		info.Name = FromRaw(raw)
		info.FullPath = path.Clean(toSlash(raw))
	case reprList.MatchString(raw):
		info.Kind = "python repr list"
		info.Name = FromRaw(raw)
		if m := reprInner.FindStringSubmatch(raw); m != nil {
			info.FullPath = path.Clean(toSlash(m[1]))
		}
	default:
		info.Kind = "string path"
		info.Name = FromRaw(raw)
		if info.Name != Unknown {
			info.FullPath = path.Clean(toSlash(raw))
		}
	}
	return info
}

// toSlash normalizes Windows separators regardless of the host OS; records
// written on Windows routinely show up on Linux machines.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// stem returns the final path element with its last extension removed.
func stem(p string) string {
	p = toSlash(p)
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext)
}
