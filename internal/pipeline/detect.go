// Package pipeline plans and prepares batch runs of the downstream
// root-phenotyping pipelines from typed annotation inputs.
package pipeline

import (
	"fmt"
	"strings"

	"vizmo/internal/sleap"
)

// RootType classifies what part of the root system a labels file annotates.
type RootType string

const (
	RootPrimary RootType = "primary"
	RootLateral RootType = "lateral"
	RootCrown   RootType = "crown"
)

// RootTypes lists the valid types in display order.
var RootTypes = []RootType{RootPrimary, RootLateral, RootCrown}

// ParseRootType validates a user-supplied root type string.
func ParseRootType(s string) (RootType, error) {
	switch RootType(strings.ToLower(s)) {
	case RootPrimary:
		return RootPrimary, nil
	case RootLateral:
		return RootLateral, nil
	case RootCrown:
		return RootCrown, nil
	}
	return "", fmt.Errorf("invalid root type %q (want primary, lateral, or crown)", s)
}

// Input is one typed annotation file in a run.
type Input struct {
	Path     string
	RootType RootType
	Labels   *sleap.Labels
}

// DetectRootTypes reports which root types are present across inputs.
func DetectRootTypes(inputs []Input) map[RootType]bool {
	present := map[RootType]bool{RootPrimary: false, RootLateral: false, RootCrown: false}
	for _, in := range inputs {
		if _, ok := present[in.RootType]; ok {
			present[in.RootType] = true
		}
	}
	return present
}

// Pipeline names a downstream trait pipeline and what it is for.
type Pipeline struct {
	Name        string
	Description string
}

// CompatiblePipelines maps a root-type combination to the downstream
// pipelines that accept it. Unsupported combinations yield nil.
func CompatiblePipelines(present map[RootType]bool) []Pipeline {
	p, l, c := present[RootPrimary], present[RootLateral], present[RootCrown]
	switch {
	case p && !l && !c:
		return []Pipeline{{"PrimaryRootPipeline", "Primary root analysis"}}
	case l && !p && !c:
		return []Pipeline{{"LateralRootPipeline", "Lateral roots only"}}
	case c && !p && !l:
		return []Pipeline{{"OlderMonocotPipeline", "Older monocot (crown roots only)"}}
	case p && l && !c:
		return []Pipeline{
			{"DicotPipeline", "Single dicot plant (primary + lateral)"},
			{"MultipleDicotPipeline", "Multiple dicot plants (primary + lateral)"},
		}
	case p && c && !l:
		return []Pipeline{{"YoungerMonocotPipeline", "Young monocot (primary + crown)"}}
	}
	return nil
}

// FileSummary groups input file basenames by root type.
func FileSummary(inputs []Input) map[RootType][]string {
	summary := map[RootType][]string{RootPrimary: {}, RootLateral: {}, RootCrown: {}}
	for _, in := range inputs {
		if _, ok := summary[in.RootType]; ok {
			summary[in.RootType] = append(summary[in.RootType], baseName(in.Path))
		}
	}
	return summary
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
