package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestApply_Vector(t *testing.T) {
	original := map[string]any{"random": true, "title": "t"}
	ds := &Dataset{Options: original}

	ds.Apply(Overrides{Random: boolPtr(false), MethodTau: "DL", LevelMA: 0.9})

	assert.Equal(t, map[string]any{
		"random":     false,
		"title":      "t",
		"method.tau": "DL",
		"level.ma":   0.9,
	}, ds.Options)
	assert.Equal(t, true, original["random"], "the original options map is not modified")
}

func TestApplyDefaults_Vector(t *testing.T) {
	ds := &Dataset{Options: map[string]any{"random": false}}

	ds.ApplyDefaults(Overrides{Random: boolPtr(true), Common: boolPtr(true)})

	assert.Equal(t, map[string]any{"random": false, "common": true}, ds.Options)
}

func TestApply_NoOverrides(t *testing.T) {
	ds := &Dataset{}
	ds.Apply(Overrides{})
	assert.Nil(t, ds.Options)
}

func TestApply_Prior(t *testing.T) {
	ds, err := Parse([]byte(priorYAML))
	require.NoError(t, err)

	ds.ApplyDefaults(Overrides{Common: boolPtr(true)})
	assert.False(t, ds.Prior.Settings.Common, "defaults never change a prior analysis")

	ds.Apply(Overrides{Common: boolPtr(true), Prediction: boolPtr(true), LevelMA: 0.9, MethodTau: "DL"})
	assert.True(t, ds.Prior.Settings.Common)
	assert.True(t, ds.Prior.Settings.Prediction)
	assert.Equal(t, 0.9, ds.Prior.Settings.LevelMA)
	assert.Nil(t, ds.Options)
}
