package mcpserver

import (
	"fmt"

	"github.com/erraggy/smdconv/internal/dataset"
	"github.com/erraggy/smdconv/internal/options"
)

// datasetInput represents the three ways studies can be provided to a tool.
// Exactly one of File, Content, or Studies must be set.
type datasetInput struct {
	File    string        `json:"file,omitempty"    jsonschema:"Path to a dataset file (YAML or JSON) on disk"`
	Content string        `json:"content,omitempty" jsonschema:"Inline dataset content (YAML or JSON) with either a studies list or a prior odds ratio analysis"`
	Studies []dataset.Row `json:"studies,omitempty" jsonschema:"Inline per-study rows with lnOR and selnOR"`
}

// load parses the dataset and enforces the configured input limits.
func (in datasetInput) load() (*dataset.Dataset, error) {
	if err := options.ValidateSingleInputSource(
		"dataset",
		"exactly one of file, content, or studies must be provided",
		in.File != "", in.Content != "", len(in.Studies) > 0,
	); err != nil {
		return nil, err
	}

	var (
		ds  *dataset.Dataset
		err error
	)
	switch {
	case in.File != "":
		ds, err = dataset.ParseFile(in.File)
	case in.Content != "":
		if int64(len(in.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content exceeds %d bytes (SMDCONV_MAX_INLINE_SIZE)", cfg.MaxInlineSize)
		}
		ds, err = dataset.Parse([]byte(in.Content))
	default:
		ds = &dataset.Dataset{Studies: in.Studies}
	}
	if err != nil {
		return nil, err
	}

	if k := ds.K(); k > cfg.MaxStudies {
		return nil, fmt.Errorf("dataset has %d studies, more than the limit of %d (SMDCONV_MAX_STUDIES)", k, cfg.MaxStudies)
	}
	return ds, nil
}
