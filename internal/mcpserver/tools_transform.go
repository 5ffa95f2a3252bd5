package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/smdconv/converter"
	"github.com/erraggy/smdconv/internal/report"
)

type transformInput struct {
	Dataset datasetInput `json:"dataset"          jsonschema:"The studies or prior odds ratio analysis to convert"`
	Method  string       `json:"method,omitempty" jsonschema:"Conversion method: HH (Hasselblad-Hedges) or CS (Cox-Snell). Overrides the dataset and SMDCONV_METHOD."`
}

type transformOutput struct {
	Method     string            `json:"method"`
	MethodName string            `json:"method_name"`
	K          int               `json:"k"`
	Studies    []report.StudyRow `json:"studies,omitempty"`
}

func handleTransform(_ context.Context, _ *mcp.CallToolRequest, input transformInput) (*mcp.CallToolResult, transformOutput, error) {
	ds, err := input.Dataset.load()
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}
	in, err := ds.Input()
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}

	method, err := converter.ParseMethod(resolveMethod(input.Method, ds))
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}
	c := converter.New()
	c.Method = string(method)
	set, conv, err := c.Transform(in)
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}

	rows := report.Transformed(set, conv)
	output := transformOutput{
		Method:     string(method),
		MethodName: method.Description(),
		K:          len(rows),
	}
	output.Studies = makeSlice[report.StudyRow](len(rows))
	output.Studies = append(output.Studies, rows...)

	return nil, output, nil
}
