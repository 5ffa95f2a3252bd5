package converter

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/smdconv/aggregate"
	"github.com/erraggy/smdconv/smderrors"
	"github.com/erraggy/smdconv/study"
)

// Column names of the per-study table handed to the aggregator.
const (
	ColumnLogOR   = "lnOR"
	ColumnSELogOR = "selnOR"
	ColumnOR      = "OR"
	ColumnSMD     = "smd"
	ColumnSESMD   = "se.smd"
	ColumnLabel   = "studlab"
	ColumnSubset  = ".subset"
	ColumnExclude = ".exclude"
)

// priorPayload builds the object-mode payload: converted estimates plus every
// configuration field of the prior analysis.
func priorPayload(prior *aggregate.Result, set *study.StudySet, conv *ConvertedSet) *aggregate.Payload {
	k := set.K()
	return &aggregate.Payload{
		TE:             conv.SMD,
		SETE:           conv.SESMD,
		StudyLabels:    set.Labels,
		SummaryMeasure: aggregate.MeasureSMD,
		NullEffect:     0,
		Subset:         set.Subset.Bools(k),
		Exclude:        set.Exclude.Bools(k),
		Data:           perStudyTable(set, conv),
		Settings:       carrySettings(prior.Settings),
		Options:        prior.Options,
		Transform:      string(conv.Method),
	}
}

// vectorPayload builds the vector-mode payload. opts is forwarded as given.
func vectorPayload(set *study.StudySet, conv *ConvertedSet, opts map[string]any) *aggregate.Payload {
	k := set.K()
	return &aggregate.Payload{
		TE:             conv.SMD,
		SETE:           conv.SESMD,
		StudyLabels:    set.Labels,
		SummaryMeasure: aggregate.MeasureSMD,
		NullEffect:     0,
		Subset:         set.Subset.Bools(k),
		Exclude:        set.Exclude.Bools(k),
		Data:           perStudyTable(set, conv),
		Options:        opts,
		Transform:      string(conv.Method),
	}
}

// carrySettings copies the prior's configuration field by field. Subgroup
// settings are only copied when the prior has a subgroup variable.
func carrySettings(s aggregate.Settings) *aggregate.Settings {
	out := &aggregate.Settings{
		Level:        s.Level,
		LevelMA:      s.LevelMA,
		Common:       s.Common,
		Random:       s.Random,
		MethodTau:    s.MethodTau,
		TauCommon:    s.TauCommon,
		Prediction:   s.Prediction,
		LevelPredict: s.LevelPredict,
		MethodBias:   s.MethodBias,
		Title:        s.Title,
		Complab:      s.Complab,
		Outclab:      s.Outclab,
		LabelE:       s.LabelE,
		LabelC:       s.LabelC,
		LabelLeft:    s.LabelLeft,
		LabelRight:   s.LabelRight,
		Control:      maps.Clone(s.Control),
	}
	if s.Subgroup != nil {
		out.Subgroup = &aggregate.SubgroupSettings{
			Values:     slices.Clone(s.Subgroup.Values),
			Name:       s.Subgroup.Name,
			PrintName:  s.Subgroup.PrintName,
			Sep:        s.Subgroup.Sep,
			Test:       s.Subgroup.Test,
			Prediction: s.Subgroup.Prediction,
		}
	}
	return out
}

// perStudyTable combines the original and converted values of every study.
func perStudyTable(set *study.StudySet, conv *ConvertedSet) *study.Table {
	k := set.K()
	tbl := study.NewTable().
		SetFloats(ColumnLogOR, set.LogOR).
		SetFloats(ColumnSELogOR, set.SELogOR).
		SetFloats(ColumnOR, conv.OR).
		SetFloats(ColumnSMD, conv.SMD).
		SetFloats(ColumnSESMD, conv.SESMD).
		SetStrings(ColumnLabel, set.Labels)
	if !set.Subset.IsZero() {
		tbl.SetBools(ColumnSubset, set.Subset.Bools(k))
	}
	if !set.Exclude.IsZero() {
		tbl.SetBools(ColumnExclude, set.Exclude.Bools(k))
	}
	return tbl
}

// dispatch makes the single aggregator call. Engine failures are returned as
// *smderrors.AggregationError with the engine's error as cause.
func (c *Converter) dispatch(p *aggregate.Payload, log Logger) (*aggregate.Result, error) {
	agg := c.Aggregator
	if agg == nil {
		agg = aggregate.InverseVariance{}
	}

	res, err := agg.Aggregate(p)
	if err != nil {
		log.Warn("aggregation failed", "engine", fmt.Sprintf("%T", agg), "error", err)
		var aggErr *smderrors.AggregationError
		if errors.As(err, &aggErr) {
			return nil, err
		}
		return nil, &smderrors.AggregationError{Engine: fmt.Sprintf("%T", agg), Cause: err}
	}
	return res, nil
}
