package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/smdconv/converter"
	"github.com/erraggy/smdconv/internal/dataset"
	"github.com/erraggy/smdconv/internal/report"
)

type convertInput struct {
	Dataset    datasetInput `json:"dataset"               jsonschema:"The studies or prior odds ratio analysis to convert"`
	Method     string       `json:"method,omitempty"      jsonschema:"Conversion method: HH (Hasselblad-Hedges) or CS (Cox-Snell). Overrides the dataset and SMDCONV_METHOD."`
	Common     *bool        `json:"common,omitempty"      jsonschema:"Compute the common effect estimate"`
	Random     *bool        `json:"random,omitempty"      jsonschema:"Compute the random effects estimate"`
	Prediction *bool        `json:"prediction,omitempty"  jsonschema:"Compute a prediction interval (needs at least 3 pooled studies)"`
	MethodTau  string       `json:"method_tau,omitempty"  jsonschema:"Between-study variance estimator (DL)"`
	Level      float64      `json:"level,omitempty"       jsonschema:"Confidence level of pooled estimates\\, between 0 and 1"`
}

func (in convertInput) overrides() dataset.Overrides {
	return dataset.Overrides{
		Common:     in.Common,
		Random:     in.Random,
		Prediction: in.Prediction,
		MethodTau:  in.MethodTau,
		LevelMA:    in.Level,
	}
}

// envDefaults are the server-wide settings filled in where neither the call
// nor the dataset sets a value.
func envDefaults() dataset.Overrides {
	return dataset.Overrides{
		Common:  &cfg.Common,
		Random:  &cfg.Random,
		LevelMA: cfg.LevelMA,
	}
}

// resolveMethod picks the first non-empty method: the call's, then the
// dataset's, then the server default.
func resolveMethod(explicit string, ds *dataset.Dataset) string {
	switch {
	case explicit != "":
		return explicit
	case ds.Method != "":
		return ds.Method
	default:
		return cfg.Method
	}
}

func handleConvert(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, report.Summary, error) {
	ds, err := input.Dataset.load()
	if err != nil {
		return errResult(err), report.Summary{}, nil
	}
	ds.Apply(input.overrides())
	ds.ApplyDefaults(envDefaults())

	in, err := ds.Input()
	if err != nil {
		return errResult(err), report.Summary{}, nil
	}

	c := converter.New()
	c.Method = resolveMethod(input.Method, ds)
	result, err := c.Convert(in)
	if err != nil {
		return errResult(err), report.Summary{}, nil
	}

	return nil, *report.Summarize(result), nil
}
