// Package naming parses the underscore-delimited filenames used by the
// root-growth scanning rigs and normalizes names for the downstream
// phenotyping package. A typical scan name:
//
//	S_Ri_set2_day14_20250527-103422_013.tif
//
// reads as prefix "S", treatment "Ri", set "set2", day 14, capture timestamp
// 20250527-103422, scanner sequence number 013.
package naming

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

var (
	setToken  = regexp.MustCompile(`^set(\d+)$`)
	dayToken  = regexp.MustCompile(`^day(\d+)$`)
	timestamp = regexp.MustCompile(`\d{8}-\d{6}`)
	numeric   = regexp.MustCompile(`^\d+$`)
)

// ScanName holds the structured result of parsing one scan filename.
// Absent fields are empty strings; an absent day is -1.
type ScanName struct {
	Prefix    string
	Treatment string
	Set       string // whole token, e.g. "set2"
	Day       int    // -1 when no dayN token present
	Timestamp string // first YYYYMMDD-HHMMSS match
	Number    string // trailing numeric token, zero padding preserved
}

// HasDay reports whether a dayN token was found.
func (s ScanName) HasDay() bool {
	return s.Day >= 0
}

// Parse tokenizes a scan filename (basename or full path, with or without
// extension) into its metadata fields. Parsing is best-effort and never
// fails; unmatched fields stay at their zero values.
func Parse(name string) ScanName {
	// Names recorded on Windows rigs carry backslashes whatever OS we
	// run on.
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))

	parsed := ScanName{Day: -1, Timestamp: timestamp.FindString(base)}

	tokens := strings.Split(base, "_")
	parsed.Prefix = tokens[0]

	// Token scan stops at the first dayN token; set tokens are only
	// recognized before it.
	setIdx := -1
	for i, tok := range tokens {
		if m := dayToken.FindStringSubmatch(tok); m != nil {
			if d, err := strconv.Atoi(m[1]); err == nil {
				parsed.Day = d
			}
			break
		}
		if setIdx < 0 && setToken.MatchString(tok) {
			parsed.Set = tok
			setIdx = i
		}
	}

	switch {
	case setIdx > 1:
		parsed.Treatment = strings.Join(tokens[1:setIdx], "_")
	case setIdx < 0 && len(tokens) > 1:
		parsed.Treatment = tokens[1]
	}

	if last := tokens[len(tokens)-1]; len(tokens) > 1 && numeric.MatchString(last) {
		parsed.Number = last
	}

	return parsed
}

// DayBucket returns the directory name a scan belongs in when organizing by
// day: "day14" for parsed days, "unsorted" when no day token was found.
func (s ScanName) DayBucket() string {
	if !s.HasDay() {
		return "unsorted"
	}
	return "day" + strconv.Itoa(s.Day)
}

// Replicate extracts the replicate number from a setN token in the name,
// defaulting to 1 when no parseable set token exists.
func Replicate(name string) int {
	for _, tok := range strings.Split(name, "_") {
		if m := setToken.FindStringSubmatch(tok); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 1
}

// Genotype derives the genotype identifier from a series name: the first two
// underscore tokens joined, or the whole name when it has a single token.
func Genotype(name string) string {
	tokens := strings.Split(name, "_")
	if len(tokens) > 1 {
		return tokens[0] + "_" + tokens[1]
	}
	return name
}
