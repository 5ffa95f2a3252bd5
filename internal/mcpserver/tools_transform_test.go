package mcpserver

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/smdconv/internal/dataset"
)

func TestHandleTransform(t *testing.T) {
	result, out, err := handleTransform(context.Background(), nil, transformInput{
		Dataset: datasetInput{Content: studiesYAML},
		Method:  "CS",
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "CS", out.Method)
	assert.Equal(t, "Cox-Snell", out.MethodName)
	assert.Equal(t, 3, out.K)
	require.Len(t, out.Studies, 3)

	row := out.Studies[0]
	assert.Equal(t, "Ahn 2011", row.Study)
	assert.InDelta(t, math.Exp(0.41), row.OR, 1e-12)
	assert.InDelta(t, 0.41/1.65, row.SMD, 1e-12)
	assert.InDelta(t, math.Sqrt(0.21*0.21/1.65), row.SESMD, 1e-12)
	assert.True(t, row.Included)
	assert.True(t, out.Studies[2].Excluded)
}

func TestHandleTransform_Prior(t *testing.T) {
	_, out, err := handleTransform(context.Background(), nil, transformInput{
		Dataset: datasetInput{Content: priorContent},
	})
	require.NoError(t, err)

	assert.Equal(t, "HH", out.Method)
	require.Len(t, out.Studies, 2)
	assert.InDelta(t, 0.9069*math.Sqrt(3)/math.Pi, out.Studies[1].SMD, 1e-12)
}

func TestHandleTransform_DatasetMethod(t *testing.T) {
	_, out, err := handleTransform(context.Background(), nil, transformInput{
		Dataset: datasetInput{Content: "method: C\n" + studiesYAML},
	})
	require.NoError(t, err)
	assert.Equal(t, "CS", out.Method, "abbreviated dataset methods are reported by code")
}

func TestHandleTransform_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input transformInput
	}{
		{"no dataset", transformInput{}},
		{"two sources", transformInput{Dataset: datasetInput{
			Content: studiesYAML,
			Studies: []dataset.Row{{LogOR: ptr(0.1), SELogOR: ptr(0.1)}},
		}}},
		{"unknown method", transformInput{Dataset: datasetInput{Content: studiesYAML}, Method: "XX"}},
		{"not an odds ratio prior", transformInput{Dataset: datasetInput{Content: "prior:\n  sm: RR\n  te: [0.1]\n  se_te: [0.2]\n"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleTransform(context.Background(), nil, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
