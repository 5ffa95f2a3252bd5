// Package smdconv converts study-level log odds ratios to standardised mean
// differences so that binary-outcome studies can be pooled with
// continuous-outcome studies on a common effect-size scale.
//
// # Overview
//
// The module consists of the following packages:
//
//   - study: per-study inputs, data tables, subset/exclude selectors and the
//     vector-mode input resolver
//   - converter: method selection, the Hasselblad-Hedges and Cox-Snell
//     transforms, and dispatch to an aggregation engine
//   - aggregate: the aggregation contract (Payload, Result, Settings) and two
//     engines, EchoAggregator and the InverseVariance reference engine
//   - smderrors: typed errors shared by all packages
//
// The smdconv command wraps these packages in a CLI (convert, transform) and
// an MCP server (smdconv mcp).
//
// # Quick Start
//
//	result, err := converter.ConvertStudies(
//		[]float64{0.41, 0.9069, -0.12},
//		[]float64{0.21, 0.26, 0.33},
//		"HH",
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("random effects SMD %.3f [%.3f; %.3f]\n",
//		result.Random.TE, result.Random.Lower, result.Random.Upper)
//
// See the converter package for functional options, object mode and custom
// aggregation engines.
package smdconv
