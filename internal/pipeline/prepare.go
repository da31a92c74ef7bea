package pipeline

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Prepared is the on-disk layout handed to the phenotyping package: one
// combined labels file per root type inside the run directory.
type Prepared struct {
	Dir       string
	Files     map[RootType]string
	Pipelines []Pipeline
	Skipped   []string // extra files per root type when not merging
}

// PrepareSeries writes combined_<roottype>.slp.json files into dir from the
// given typed inputs. When merge is set, multiple files of a root type are
// combined into one; otherwise the first file of each root type wins and
// extras are reported in Skipped, matching the interactive tool's behavior.
func PrepareSeries(inputs []Input, dir string, merge bool, log *zap.Logger) (*Prepared, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files loaded")
	}

	present := DetectRootTypes(inputs)
	pipelines := CompatiblePipelines(present)
	if len(pipelines) == 0 {
		return nil, fmt.Errorf("no compatible pipeline for root type combination")
	}

	prep := &Prepared{
		Dir:       dir,
		Files:     make(map[RootType]string),
		Pipelines: pipelines,
	}

	byType := make(map[RootType][]Input)
	var order []RootType
	for _, in := range inputs {
		if _, seen := byType[in.RootType]; !seen {
			order = append(order, in.RootType)
		}
		byType[in.RootType] = append(byType[in.RootType], in)
	}

	for _, rt := range order {
		group := byType[rt]
		labels := group[0].Labels
		switch {
		case len(group) > 1 && merge:
			if combined := Combine(group); combined != nil {
				labels = combined
			}
			log.Info("merged labels for root type",
				zap.String("root_type", string(rt)),
				zap.Int("files", len(group)))
		case len(group) > 1:
			for _, extra := range group[1:] {
				prep.Skipped = append(prep.Skipped, extra.Path)
				log.Warn("multiple files for root type, using first only",
					zap.String("root_type", string(rt)),
					zap.String("skipped", extra.Path))
			}
		}

		out := filepath.Join(dir, fmt.Sprintf("combined_%s.slp.json", rt))
		if err := labels.Save(out); err != nil {
			return nil, fmt.Errorf("save %s labels: %w", rt, err)
		}
		prep.Files[rt] = out
		log.Info("saved series input",
			zap.String("root_type", string(rt)),
			zap.String("path", out))
	}

	return prep, nil
}
