// Package converter converts study-level log odds ratios to standardised mean
// differences (SMD) and hands the converted studies to a meta-analysis
// aggregation engine.
//
// Two conversion methods are supported. Hasselblad-Hedges assumes the
// underlying continuous outcome follows a logistic distribution, Cox-Snell
// assumes a normal one:
//
//	HH: smd = lnOR·√3/π    se(smd) = √(se²·3/π²)
//	CS: smd = lnOR/1.65    se(smd) = √(se²/1.65)
//
// # Quick Start
//
// Convert raw per-study vectors using functional options:
//
//	result, err := converter.ConvertWithOptions(
//		converter.WithLogOddsRatios([]float64{0.91, 0.35, 1.2}),
//		converter.WithStandardErrors([]float64{0.26, 0.31, 0.4}),
//		converter.WithMethod("HH"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("random effects SMD: %.3f\n", result.Random.TE)
//
// Or use a reusable Converter instance:
//
//	c := converter.New()
//	c.Method = "CS"
//	c.Aggregator = myEngine
//	result, _ := c.Convert(converter.PriorInput{Prior: orAnalysis})
//
// # Input Modes
//
// A [VectorInput] carries raw vectors, or column names resolved against a
// [study.Table]. Labels default to "1".."k". Subset and exclude selectors may
// be boolean masks or index lists.
//
// A [PriorInput] carries an existing odds ratio analysis ([aggregate.Result]
// with SummaryMeasure "OR"). Its per-study estimates are converted and every
// setting of the prior analysis is carried over to the new one. The prior is
// never modified.
//
// # Aggregation
//
// The converter never pools. It builds one [aggregate.Payload] with
// SummaryMeasure "SMD" and NullEffect 0, calls the configured
// [aggregate.Aggregator] once, and returns its result as is. Engine failures
// are reported as *smderrors.AggregationError.
//
// Use [Converter.Transform] or [TransformWithOptions] to get the converted
// studies without aggregating.
//
// # Errors
//
// All inputs are validated before any conversion work is done. Errors are the
// typed errors of the smderrors package and can be matched with errors.Is
// against its sentinels:
//
//	if errors.Is(err, smderrors.ErrLengthMismatch) { ... }
package converter
