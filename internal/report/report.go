// Package report shapes conversion results for display. The same structures
// back the command-line output (text, JSON and YAML) and the MCP tool output.
package report

import (
	"github.com/erraggy/smdconv/aggregate"
	"github.com/erraggy/smdconv/converter"
	"github.com/erraggy/smdconv/study"
)

// StudyRow is one study with its original and converted effect sizes.
type StudyRow struct {
	Study    string  `json:"study"    yaml:"study"`
	LogOR    float64 `json:"lnOR"     yaml:"lnOR"`
	SELogOR  float64 `json:"selnOR"   yaml:"selnOR"`
	OR       float64 `json:"or"       yaml:"or"`
	SMD      float64 `json:"smd"      yaml:"smd"`
	SESMD    float64 `json:"se_smd"   yaml:"se_smd"`
	Included bool    `json:"included" yaml:"included"`
	Excluded bool    `json:"excluded" yaml:"excluded"`
}

// Transformed returns one row per study of a transformation.
func Transformed(set *study.StudySet, conv *converter.ConvertedSet) []StudyRow {
	k := set.K()
	subset := set.Subset.Bools(k)
	exclude := set.Exclude.Bools(k)

	rows := make([]StudyRow, k)
	for i := range k {
		rows[i] = StudyRow{
			Study:    set.Labels[i],
			LogOR:    set.LogOR[i],
			SELogOR:  set.SELogOR[i],
			OR:       conv.OR[i],
			SMD:      conv.SMD[i],
			SESMD:    conv.SESMD[i],
			Included: subset == nil || subset[i],
			Excluded: exclude != nil && exclude[i],
		}
	}
	return rows
}

// FromResult returns one row per study of the per-study table the
// aggregator received. It returns nil when the result carries no table.
func FromResult(res *aggregate.Result) []StudyRow {
	tbl := res.Data
	smd, ok := tbl.Floats(converter.ColumnSMD)
	if !ok {
		return nil
	}
	lnOR, _ := tbl.Floats(converter.ColumnLogOR)
	selnOR, _ := tbl.Floats(converter.ColumnSELogOR)
	or, _ := tbl.Floats(converter.ColumnOR)
	sesmd, _ := tbl.Floats(converter.ColumnSESMD)
	labels, _ := tbl.Strings(converter.ColumnLabel)
	subset, hasSubset := tbl.Bools(converter.ColumnSubset)
	exclude, hasExclude := tbl.Bools(converter.ColumnExclude)

	rows := make([]StudyRow, len(smd))
	for i := range smd {
		rows[i] = StudyRow{
			Study:    at(labels, i),
			LogOR:    at(lnOR, i),
			SELogOR:  at(selnOR, i),
			OR:       at(or, i),
			SMD:      smd[i],
			SESMD:    at(sesmd, i),
			Included: !hasSubset || at(subset, i),
			Excluded: hasExclude && at(exclude, i),
		}
	}
	return rows
}

func at[T any](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}

// Summary is the display form of an aggregated result.
type Summary struct {
	ID             string                     `json:"id,omitempty"            yaml:"id,omitempty"`
	Method         string                     `json:"method"                  yaml:"method"`
	MethodName     string                     `json:"method_name"             yaml:"method_name"`
	SummaryMeasure string                     `json:"sm"                      yaml:"sm"`
	K              int                        `json:"k"                       yaml:"k"`
	KPooled        int                        `json:"k_pooled"                yaml:"k_pooled"`
	LevelMA        float64                    `json:"level_ma"                yaml:"level_ma"`
	Common         *aggregate.Estimate        `json:"common,omitempty"        yaml:"common,omitempty"`
	Random         *aggregate.Estimate        `json:"random,omitempty"        yaml:"random,omitempty"`
	Heterogeneity  *aggregate.Heterogeneity   `json:"heterogeneity,omitempty" yaml:"heterogeneity,omitempty"`
	Prediction     *aggregate.Interval        `json:"prediction,omitempty"    yaml:"prediction,omitempty"`
	Subgroups      []aggregate.SubgroupResult `json:"subgroups,omitempty"     yaml:"subgroups,omitempty"`
	Studies        []StudyRow                 `json:"studies"                 yaml:"studies"`
}

// Summarize builds the display form of res.
func Summarize(res *aggregate.Result) *Summary {
	return &Summary{
		ID:             res.ID,
		Method:         res.Transform,
		MethodName:     converter.Method(res.Transform).Description(),
		SummaryMeasure: res.SummaryMeasure,
		K:              res.K,
		KPooled:        res.KPooled,
		LevelMA:        res.Settings.LevelMA,
		Common:         res.Common,
		Random:         res.Random,
		Heterogeneity:  res.Heterogeneity,
		Prediction:     res.PredictionInterval,
		Subgroups:      res.Subgroups,
		Studies:        FromResult(res),
	}
}
