package converter

import (
	"slices"

	"github.com/erraggy/smdconv/aggregate"
	"github.com/erraggy/smdconv/smderrors"
	"github.com/erraggy/smdconv/study"
)

// Input is either a PriorInput or a VectorInput.
type Input interface {
	isInput()
}

// PriorInput converts an existing odds ratio meta-analysis. Prior must have
// SummaryMeasure "OR" with TE on the log scale; it is read, never modified.
// Its Settings are passed to the aggregator as they are. A hand-built prior
// should start from aggregate.DefaultSettings; aggregate.InverseVariance only
// fills in unset confidence levels.
type PriorInput struct {
	Prior *aggregate.Result
}

// VectorInput converts raw per-study vectors.
type VectorInput struct {
	Args study.Args
	// Options are forwarded unmodified to the aggregator
	Options map[string]any
}

func (PriorInput) isInput()  {}
func (VectorInput) isInput() {}

// Converter converts log odds ratios to SMDs and aggregates the result.
// A configured Converter is safe for concurrent use.
type Converter struct {
	// Method is the conversion method code ("HH" or "CS"); unambiguous
	// prefixes are accepted
	Method string
	// Aggregator pools the converted studies.
	// Defaults to aggregate.InverseVariance if nil
	Aggregator aggregate.Aggregator
	// Logger receives diagnostic output. Defaults to NopLogger if nil
	Logger Logger
}

// New creates a Converter using the Hasselblad-Hedges method and the
// inverse-variance reference aggregator.
func New() *Converter {
	return &Converter{
		Method:     string(MethodHasselbladHedges),
		Aggregator: aggregate.InverseVariance{},
		Logger:     NopLogger{},
	}
}

// ConvertStudies is a convenience function that converts raw vectors with the
// given method using a default Converter.
//
// Example:
//
//	result, err := converter.ConvertStudies(lnOR, selnOR, "HH")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("random effects SMD: %.3f\n", result.Random.TE)
func ConvertStudies(lnOR, selnOR []float64, method string) (*aggregate.Result, error) {
	c := New()
	c.Method = method
	return c.Convert(VectorInput{Args: study.Args{LogOR: lnOR, SELogOR: selnOR}})
}

// ConvertPrior is a convenience function that converts an odds ratio
// meta-analysis with the given method using a default Converter.
func ConvertPrior(prior *aggregate.Result, method string) (*aggregate.Result, error) {
	c := New()
	c.Method = method
	return c.Convert(PriorInput{Prior: prior})
}

// Convert validates in, converts every study with c.Method and hands the
// converted set to the aggregator. The aggregator's result is returned as is.
// Every validation error is reported before any conversion work is done.
func (c *Converter) Convert(in Input) (*aggregate.Result, error) {
	r, err := c.resolve(in)
	if err != nil {
		return nil, err
	}

	log := c.logger().With("mode", r.mode, "method", string(r.method))
	log.Debug("resolved studies", "k", r.set.K())

	conv, err := Transform(r.set, r.method)
	if err != nil {
		return nil, err
	}
	log.Debug("converted effect sizes", "k", len(conv.SMD))

	return c.dispatch(r.payload(conv), log)
}

// Transform resolves in and converts it without aggregating.
func (c *Converter) Transform(in Input) (*study.StudySet, *ConvertedSet, error) {
	r, err := c.resolve(in)
	if err != nil {
		return nil, nil, err
	}
	conv, err := Transform(r.set, r.method)
	if err != nil {
		return nil, nil, err
	}
	return r.set, conv, nil
}

// resolved is a validated input together with the payload builder of its mode.
type resolved struct {
	mode    string
	method  Method
	set     *study.StudySet
	payload func(*ConvertedSet) *aggregate.Payload
}

func (c *Converter) resolve(in Input) (*resolved, error) {
	method, err := ParseMethod(c.Method)
	if err != nil {
		return nil, err
	}

	r := &resolved{method: method}
	switch v := in.(type) {
	case PriorInput:
		r.mode = "prior"
		r.set, err = resolvePrior(v.Prior)
		r.payload = func(conv *ConvertedSet) *aggregate.Payload { return priorPayload(v.Prior, r.set, conv) }
	case VectorInput:
		r.mode = "vector"
		r.set, err = study.Resolve(v.Args)
		r.payload = func(conv *ConvertedSet) *aggregate.Payload { return vectorPayload(r.set, conv, v.Options) }
	case nil:
		return nil, &smderrors.MissingArgumentError{Argument: "input", Message: "a prior result or per-study vectors are required"}
	default:
		return nil, &smderrors.ConfigurationError{Option: "input", Value: v, Message: "unsupported input type"}
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (c *Converter) logger() Logger {
	if c.Logger == nil {
		return NopLogger{}
	}
	return c.Logger
}

// resolvePrior extracts the per-study log odds ratios of an odds ratio
// meta-analysis.
func resolvePrior(prior *aggregate.Result) (*study.StudySet, error) {
	if prior == nil {
		return nil, &smderrors.MissingArgumentError{Argument: "prior"}
	}
	if prior.SummaryMeasure != aggregate.MeasureOR {
		return nil, &smderrors.ConfigurationError{
			Option:  "sm",
			Value:   prior.SummaryMeasure,
			Message: "effect measure must be OR",
		}
	}

	k := len(prior.TE)
	if len(prior.SETE) != k {
		return nil, &smderrors.LengthMismatchError{Argument: study.ArgSELogOR, Expected: k, Actual: len(prior.SETE)}
	}
	labels := slices.Clone(prior.StudyLabels)
	switch {
	case labels == nil:
		labels = study.SequentialLabels(k)
	case len(labels) != k:
		return nil, &smderrors.LengthMismatchError{Argument: study.ArgLabels, Expected: k, Actual: len(labels)}
	}

	set := &study.StudySet{
		LogOR:   slices.Clone(prior.TE),
		SELogOR: slices.Clone(prior.SETE),
		Labels:  labels,
	}
	if prior.Subset != nil {
		if len(prior.Subset) != k {
			return nil, &smderrors.LengthMismatchError{Argument: study.ArgSubset, Expected: k, Actual: len(prior.Subset)}
		}
		set.Subset = study.Mask(prior.Subset...)
	}
	if prior.Exclude != nil {
		if len(prior.Exclude) != k {
			return nil, &smderrors.LengthMismatchError{Argument: study.ArgExclude, Expected: k, Actual: len(prior.Exclude)}
		}
		set.Exclude = study.Mask(prior.Exclude...)
	}
	return set, nil
}
