// Package dataset loads conversion inputs from YAML or JSON documents.
//
// A dataset holds either per-study rows (vector mode):
//
//	method: HH
//	options:
//	  random: false
//	studies:
//	  - study: Ahn 2011
//	    lnOR: 0.41
//	    selnOR: 0.21
//	  - study: Berg 2014
//	    lnOR: 0.91
//	    selnOR: 0.26
//	    exclude: true
//
// or a prior odds ratio meta-analysis (object mode):
//
//	prior:
//	  sm: OR
//	  te: [0.41, 0.91]
//	  se_te: [0.21, 0.26]
//	  settings:
//	    level_ma: 0.99
//
// Settings missing from a prior default to aggregate.DefaultSettings.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/smdconv/aggregate"
	"github.com/erraggy/smdconv/converter"
	"github.com/erraggy/smdconv/smderrors"
	"github.com/erraggy/smdconv/study"
)

// Column names of the table built from study rows.
const (
	ColumnStudy   = "study"
	ColumnLogOR   = "lnOR"
	ColumnSELogOR = "selnOR"
	ColumnSubset  = "subset"
	ColumnExclude = "exclude"
)

// Row is one study of a vector-mode dataset. Subset defaults to true and
// Exclude to false.
type Row struct {
	Study   string   `yaml:"study,omitempty"   json:"study,omitempty"   jsonschema:"Study label"`
	LogOR   *float64 `yaml:"lnOR"              json:"lnOR"              jsonschema:"Log odds ratio"`
	SELogOR *float64 `yaml:"selnOR"            json:"selnOR"            jsonschema:"Standard error of the log odds ratio"`
	Subset  *bool    `yaml:"subset,omitempty"  json:"subset,omitempty"  jsonschema:"Include the study in the analysis (default true)"`
	Exclude *bool    `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"Keep the study but leave it out of pooling"`
}

// Dataset is a parsed input document.
type Dataset struct {
	// Method is the conversion method, if the document names one
	Method string
	// Options are pass-through aggregator options for vector mode
	Options map[string]any
	// Studies holds the vector-mode rows
	Studies []Row
	// Prior is the object-mode input
	Prior *aggregate.Result
}

type document struct {
	Method  string            `yaml:"method"`
	Options map[string]any    `yaml:"options"`
	Studies []Row             `yaml:"studies"`
	Prior   *aggregate.Result `yaml:"prior"`
}

// shape is decoded first to check the prior's kind and to see which of its
// settings the document spells out.
type shape struct {
	Prior any `yaml:"prior"`
}

// ParseError reports a document that could not be read or decoded.
type ParseError struct {
	// Path is the source path, if any
	Path string
	// Cause is the underlying error
	Cause error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("dataset: failed to parse %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("dataset: failed to parse: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Parse decodes a dataset from YAML or JSON bytes.
func Parse(data []byte) (*Dataset, error) {
	var sh shape

	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, &sh); err != nil {
		return nil, &ParseError{Cause: err}
	}
	priorFields, isMapping := sh.Prior.(map[string]any)
	if sh.Prior != nil && !isMapping {
		return nil, &ParseError{Cause: fmt.Errorf("prior must be a mapping of analysis fields, got %T", sh.Prior)}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Cause: err}
	}

	ds := &Dataset{
		Method:  doc.Method,
		Options: doc.Options,
		Studies: doc.Studies,
		Prior:   doc.Prior,
	}
	if ds.Prior != nil {
		given, _ := priorFields["settings"].(map[string]any)
		fillDefaults(&ds.Prior.Settings, given)
	}
	return ds, nil
}

// fillDefaults sets every defaulted setting that given does not name to its
// aggregate.DefaultSettings value.
func fillDefaults(s *aggregate.Settings, given map[string]any) {
	d := aggregate.DefaultSettings()
	fill := func(key string, apply func()) {
		if _, ok := given[key]; !ok {
			apply()
		}
	}
	fill("level", func() { s.Level = d.Level })
	fill("level_ma", func() { s.LevelMA = d.LevelMA })
	fill("level_predict", func() { s.LevelPredict = d.LevelPredict })
	fill("common", func() { s.Common = d.Common })
	fill("random", func() { s.Random = d.Random })
	fill("method_tau", func() { s.MethodTau = d.MethodTau })
	fill("method_bias", func() { s.MethodBias = d.MethodBias })
}

// ParseFile reads and decodes a dataset file.
func ParseFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}
	return parseNamed(data, path)
}

// ParseReader reads and decodes a dataset from r. name is used in errors.
func ParseReader(r io.Reader, name string) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Path: name, Cause: err}
	}
	return parseNamed(data, name)
}

func parseNamed(data []byte, name string) (*Dataset, error) {
	ds, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = name
			return nil, pe
		}
		return nil, &ParseError{Path: name, Cause: err}
	}
	return ds, nil
}

// K returns the number of studies in the dataset.
func (d *Dataset) K() int {
	if d.Prior != nil {
		return len(d.Prior.TE)
	}
	return len(d.Studies)
}

// Input returns the converter input described by the dataset.
func (d *Dataset) Input() (converter.Input, error) {
	switch {
	case d.Prior != nil && len(d.Studies) > 0:
		return nil, &smderrors.ConfigurationError{
			Option:  "prior",
			Message: "a dataset holds either studies or a prior analysis, not both",
		}
	case d.Prior != nil:
		if len(d.Options) > 0 {
			return nil, &smderrors.ConfigurationError{
				Option:  "options",
				Message: "a prior analysis carries its own settings",
			}
		}
		return converter.PriorInput{Prior: d.Prior}, nil
	case len(d.Studies) > 0:
		args, err := RowsArgs(d.Studies)
		if err != nil {
			return nil, err
		}
		return converter.VectorInput{Args: args, Options: d.Options}, nil
	default:
		return nil, &smderrors.MissingArgumentError{
			Argument: study.ArgLogOR,
			Message:  "dataset has no studies and no prior analysis",
		}
	}
}

// RowsArgs builds a study table from rows and returns arguments that resolve
// every input against it.
func RowsArgs(rows []Row) (study.Args, error) {
	k := len(rows)
	labels := make([]string, k)
	lnOR := make([]float64, k)
	selnOR := make([]float64, k)
	subset := make([]bool, k)
	exclude := make([]bool, k)
	var hasSubset, hasExclude bool

	for i, r := range rows {
		if r.LogOR == nil {
			return study.Args{}, &smderrors.MissingArgumentError{
				Argument: study.ArgLogOR,
				Message:  fmt.Sprintf("row %d has no log odds ratio", i+1),
			}
		}
		if r.SELogOR == nil {
			return study.Args{}, &smderrors.MissingArgumentError{
				Argument: study.ArgSELogOR,
				Message:  fmt.Sprintf("row %d has no standard error", i+1),
			}
		}
		lnOR[i] = *r.LogOR
		selnOR[i] = *r.SELogOR

		labels[i] = r.Study
		if labels[i] == "" {
			labels[i] = fmt.Sprint(i + 1)
		}

		subset[i] = true
		if r.Subset != nil {
			subset[i] = *r.Subset
			hasSubset = true
		}
		if r.Exclude != nil {
			exclude[i] = *r.Exclude
			hasExclude = true
		}
	}

	tbl := study.NewTable().
		SetStrings(ColumnStudy, labels).
		SetFloats(ColumnLogOR, lnOR).
		SetFloats(ColumnSELogOR, selnOR)
	args := study.Args{
		Data:          tbl,
		LogORColumn:   ColumnLogOR,
		SELogORColumn: ColumnSELogOR,
		LabelsColumn:  ColumnStudy,
	}
	if hasSubset {
		tbl.SetBools(ColumnSubset, subset)
		args.SubsetColumn = ColumnSubset
	}
	if hasExclude {
		tbl.SetBools(ColumnExclude, exclude)
		args.ExcludeColumn = ColumnExclude
	}
	return args, nil
}
