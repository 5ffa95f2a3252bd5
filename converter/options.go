package converter

import (
	"fmt"
	"maps"

	"github.com/erraggy/smdconv/aggregate"
	"github.com/erraggy/smdconv/internal/options"
	"github.com/erraggy/smdconv/smderrors"
	"github.com/erraggy/smdconv/study"
)

// Option is a function that configures a conversion
type Option func(*convertConfig) error

// convertConfig holds configuration for a conversion
type convertConfig struct {
	// Input sources (exactly one of prior or vectors)
	prior     *aggregate.Result
	args      study.Args
	hasVector bool
	extra     map[string]any

	method     string
	aggregator aggregate.Aggregator
	logger     Logger
}

// ConvertWithOptions converts log odds ratios to SMDs and aggregates them,
// selecting the input and configuration with functional options.
//
// Example:
//
//	result, err := converter.ConvertWithOptions(
//	    converter.WithLogOddsRatios([]float64{0.91, 0.35, 1.2}),
//	    converter.WithStandardErrors([]float64{0.26, 0.31, 0.4}),
//	    converter.WithStudyLabels([]string{"Smith", "Jones", "Lee"}),
//	    converter.WithMethod("CS"),
//	)
func ConvertWithOptions(opts ...Option) (*aggregate.Result, error) {
	c, in, err := buildFromOptions(opts...)
	if err != nil {
		return nil, err
	}
	return c.Convert(in)
}

// TransformWithOptions converts log odds ratios to SMDs without aggregating.
// Aggregator options are ignored.
func TransformWithOptions(opts ...Option) (*study.StudySet, *ConvertedSet, error) {
	c, in, err := buildFromOptions(opts...)
	if err != nil {
		return nil, nil, err
	}
	return c.Transform(in)
}

func buildFromOptions(opts ...Option) (*Converter, Input, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("converter: invalid options: %w", err)
	}

	c := New()
	c.Method = cfg.method
	if cfg.aggregator != nil {
		c.Aggregator = cfg.aggregator
	}
	if cfg.logger != nil {
		c.Logger = cfg.logger
	}

	if cfg.prior != nil {
		return c, PriorInput{Prior: cfg.prior}, nil
	}
	return c, VectorInput{Args: cfg.args, Options: cfg.extra}, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*convertConfig, error) {
	cfg := &convertConfig{
		method: string(MethodHasselbladHedges),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		study.ArgLogOR,
		"cannot combine a prior result with per-study vectors",
		cfg.prior != nil, cfg.hasVector,
	); err != nil {
		return nil, err
	}
	if cfg.prior != nil && cfg.extra != nil {
		return nil, &smderrors.ConfigurationError{
			Option:  "extra options",
			Message: "a prior result carries its own settings",
		}
	}

	return cfg, nil
}

// WithPrior converts an existing odds ratio meta-analysis (object mode)
func WithPrior(prior *aggregate.Result) Option {
	return func(cfg *convertConfig) error {
		if prior == nil {
			return &smderrors.MissingArgumentError{Argument: "prior"}
		}
		cfg.prior = prior
		return nil
	}
}

// WithLogOddsRatios sets the per-study log odds ratios
func WithLogOddsRatios(lnOR []float64) Option {
	return func(cfg *convertConfig) error {
		cfg.args.LogOR = lnOR
		cfg.hasVector = true
		return nil
	}
}

// WithLogOddsRatioColumn reads the log odds ratios from a column of the data table
func WithLogOddsRatioColumn(name string) Option {
	return func(cfg *convertConfig) error {
		cfg.args.LogORColumn = name
		cfg.hasVector = true
		return nil
	}
}

// WithStandardErrors sets the standard errors of the log odds ratios
func WithStandardErrors(selnOR []float64) Option {
	return func(cfg *convertConfig) error {
		cfg.args.SELogOR = selnOR
		cfg.hasVector = true
		return nil
	}
}

// WithStandardErrorColumn reads the standard errors from a column of the data table
func WithStandardErrorColumn(name string) Option {
	return func(cfg *convertConfig) error {
		cfg.args.SELogORColumn = name
		cfg.hasVector = true
		return nil
	}
}

// WithStudyLabels sets the study labels
func WithStudyLabels(labels []string) Option {
	return func(cfg *convertConfig) error {
		cfg.args.Labels = labels
		cfg.hasVector = true
		return nil
	}
}

// WithStudyLabelColumn reads the study labels from a column of the data table
func WithStudyLabelColumn(name string) Option {
	return func(cfg *convertConfig) error {
		cfg.args.LabelsColumn = name
		cfg.hasVector = true
		return nil
	}
}

// WithData sets the table that column names are looked up in
func WithData(tbl *study.Table) Option {
	return func(cfg *convertConfig) error {
		cfg.args.Data = tbl
		cfg.hasVector = true
		return nil
	}
}

// WithSubset restricts the studies passed on for pooling
func WithSubset(sel study.Selector) Option {
	return func(cfg *convertConfig) error {
		cfg.args.Subset = sel
		cfg.hasVector = true
		return nil
	}
}

// WithSubsetColumn reads the subset selector from a column of the data table
func WithSubsetColumn(name string) Option {
	return func(cfg *convertConfig) error {
		cfg.args.SubsetColumn = name
		cfg.hasVector = true
		return nil
	}
}

// WithExclude marks studies to keep in the output but leave out of pooling
func WithExclude(sel study.Selector) Option {
	return func(cfg *convertConfig) error {
		cfg.args.Exclude = sel
		cfg.hasVector = true
		return nil
	}
}

// WithExcludeColumn reads the exclude selector from a column of the data table
func WithExcludeColumn(name string) Option {
	return func(cfg *convertConfig) error {
		cfg.args.ExcludeColumn = name
		cfg.hasVector = true
		return nil
	}
}

// WithMethod sets the conversion method ("HH" or "CS"; prefixes accepted).
// The value is checked when the conversion runs.
func WithMethod(method string) Option {
	return func(cfg *convertConfig) error {
		cfg.method = method
		return nil
	}
}

// WithAggregator sets the aggregation engine
func WithAggregator(agg aggregate.Aggregator) Option {
	return func(cfg *convertConfig) error {
		cfg.aggregator = agg
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l Logger) Option {
	return func(cfg *convertConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithExtraOption adds one pass-through option for the aggregator
func WithExtraOption(key string, value any) Option {
	return func(cfg *convertConfig) error {
		if cfg.extra == nil {
			cfg.extra = make(map[string]any)
		}
		cfg.extra[key] = value
		return nil
	}
}

// WithExtraOptions adds pass-through options for the aggregator. The map is
// copied; later options with the same key win.
func WithExtraOptions(opts map[string]any) Option {
	return func(cfg *convertConfig) error {
		if len(opts) == 0 {
			return nil
		}
		if cfg.extra == nil {
			cfg.extra = make(map[string]any, len(opts))
		}
		maps.Copy(cfg.extra, opts)
		return nil
	}
}
