// Package aggregate defines the contract between smdconv and a meta-analysis
// aggregation engine, and ships two engines: EchoAggregator, which mirrors its
// input, and InverseVariance, a common/random effects reference engine.
//
// The converter never pools effect sizes itself. It builds a Payload and
// hands it to whatever Aggregator it was configured with:
//
//	c := converter.New()
//	c.Aggregator = aggregate.AggregatorFunc(func(p *aggregate.Payload) (*aggregate.Result, error) {
//		return myEngine.Run(p)
//	})
package aggregate

import "github.com/erraggy/smdconv/study"

// Summary measure tags.
const (
	MeasureOR  = "OR"
	MeasureSMD = "SMD"
)

// Aggregator pools per-study effect estimates.
type Aggregator interface {
	Aggregate(p *Payload) (*Result, error)
}

// AggregatorFunc adapts a function to the Aggregator interface.
type AggregatorFunc func(p *Payload) (*Result, error)

// Aggregate calls f(p).
func (f AggregatorFunc) Aggregate(p *Payload) (*Result, error) {
	return f(p)
}

// Payload is the input handed to an Aggregator.
type Payload struct {
	// TE holds the per-study effect estimates
	TE []float64
	// SETE holds the per-study standard errors
	SETE []float64
	// StudyLabels holds one label per study
	StudyLabels []string
	// SummaryMeasure tags the effect scale (e.g., "SMD")
	SummaryMeasure string
	// NullEffect is the reference value of no effect
	NullEffect float64
	// Subset is a per-study inclusion mask (nil: all studies)
	Subset []bool
	// Exclude is a per-study exclusion-from-pooling mask (nil: none)
	Exclude []bool
	// Data is the per-study table the estimates were derived from, if any
	Data *study.Table
	// Settings is the configuration bundle; nil lets the engine derive
	// settings from Options
	Settings *Settings
	// Options are caller pass-through options, forwarded unmodified
	Options map[string]any
	// Transform records the conversion that produced TE and SETE
	Transform string
}

// K returns the number of studies in the payload.
func (p *Payload) K() int {
	return len(p.TE)
}

// Estimate is a pooled effect with its Wald confidence interval.
type Estimate struct {
	TE        float64 `json:"te"         yaml:"te"`
	SETE      float64 `json:"se_te"      yaml:"se_te"`
	Lower     float64 `json:"lower"      yaml:"lower"`
	Upper     float64 `json:"upper"      yaml:"upper"`
	Statistic float64 `json:"statistic"  yaml:"statistic"`
	PValue    float64 `json:"p_value"    yaml:"p_value"`
}

// Interval is a lower/upper bound pair.
type Interval struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// Heterogeneity holds between-study heterogeneity statistics.
type Heterogeneity struct {
	Q      float64 `json:"q"       yaml:"q"`
	DF     int     `json:"df"      yaml:"df"`
	PValue float64 `json:"p_value" yaml:"p_value"`
	Tau2   float64 `json:"tau2"    yaml:"tau2"`
	Tau    float64 `json:"tau"     yaml:"tau"`
	I2     float64 `json:"i2"      yaml:"i2"`
	H      float64 `json:"h"       yaml:"h"`
}

// SubgroupResult holds the pooled estimates of one subgroup.
type SubgroupResult struct {
	Name          string         `json:"name"                    yaml:"name"`
	K             int            `json:"k"                       yaml:"k"`
	Common        *Estimate      `json:"common,omitempty"        yaml:"common,omitempty"`
	Random        *Estimate      `json:"random,omitempty"        yaml:"random,omitempty"`
	Heterogeneity *Heterogeneity `json:"heterogeneity,omitempty" yaml:"heterogeneity,omitempty"`
}

// Result is an aggregated meta-analysis. A Result whose SummaryMeasure is
// "OR" (with TE on the log scale) is also the prior-analysis input of the
// converter's object mode.
type Result struct {
	// ID identifies the aggregation run
	ID string `json:"id,omitempty" yaml:"id,omitempty"`
	// SummaryMeasure tags the effect scale
	SummaryMeasure string `json:"sm" yaml:"sm"`
	// Transform records the conversion that produced TE, if any
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty"`
	// K is the number of studies in the result
	K int `json:"k" yaml:"k"`
	// KPooled is the number of studies that contributed to the pooled estimates
	KPooled int `json:"k_pooled" yaml:"k_pooled"`

	TE          []float64 `json:"te"                yaml:"te"`
	SETE        []float64 `json:"se_te"             yaml:"se_te"`
	StudyLabels []string  `json:"studlab"           yaml:"studlab"`
	Subset      []bool    `json:"subset,omitempty"  yaml:"subset,omitempty"`
	Exclude     []bool    `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	// StudyLower and StudyUpper are per-study confidence limits at Settings.Level
	StudyLower []float64 `json:"lower,omitempty" yaml:"lower,omitempty"`
	StudyUpper []float64 `json:"upper,omitempty" yaml:"upper,omitempty"`

	NullEffect float64  `json:"null_effect" yaml:"null_effect"`
	Settings   Settings `json:"settings"    yaml:"settings"`

	Common             *Estimate        `json:"common,omitempty"        yaml:"common,omitempty"`
	Random             *Estimate        `json:"random,omitempty"        yaml:"random,omitempty"`
	Heterogeneity      *Heterogeneity   `json:"heterogeneity,omitempty" yaml:"heterogeneity,omitempty"`
	PredictionInterval *Interval        `json:"prediction,omitempty"    yaml:"prediction,omitempty"`
	Subgroups          []SubgroupResult `json:"subgroups,omitempty"     yaml:"subgroups,omitempty"`

	// Data is the per-study table handed to the engine, if any
	Data *study.Table `json:"-" yaml:"-"`
	// Options are the pass-through options the engine received
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}
