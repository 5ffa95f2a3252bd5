package aggregate

import (
	"errors"
	"testing"

	"github.com/erraggy/smdconv/smderrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 0.95, s.Level)
	assert.Equal(t, 0.95, s.LevelMA)
	assert.True(t, s.Common)
	assert.True(t, s.Random)
	assert.Equal(t, "DL", s.MethodTau)
	assert.False(t, s.Prediction)
	assert.Nil(t, s.Subgroup)
	assert.NoError(t, s.Validate())
}

func TestSettingsWithDefaultLevels(t *testing.T) {
	s := Settings{LevelMA: 0.9, LevelPredict: 1.5, Common: true}
	got := s.WithDefaultLevels()
	assert.Equal(t, 0.95, got.Level)
	assert.Equal(t, 0.9, got.LevelMA)
	assert.Equal(t, 1.5, got.LevelPredict, "set levels are kept even when invalid")
	assert.True(t, got.Common)
	assert.False(t, got.Random)
	assert.Zero(t, s.Level)
}

func TestSettingsFromOptions(t *testing.T) {
	s, err := SettingsFromOptions(map[string]any{
		"level.ma":   0.9,
		"level":      1 - 0.01,
		"random":     false,
		"prediction": true,
		"method.tau": "DL",
		"title":      "Smoking cessation",
		"unrelated":  []int{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.9, s.LevelMA)
	assert.Equal(t, 0.99, s.Level)
	assert.False(t, s.Random)
	assert.True(t, s.Common)
	assert.True(t, s.Prediction)
	assert.Equal(t, "Smoking cessation", s.Title)
}

func TestSettingsFromOptions_NilMap(t *testing.T) {
	s, err := SettingsFromOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsFromOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
	}{
		{"level not a number", map[string]any{"level": "high"}},
		{"common not a bool", map[string]any{"common": 1}},
		{"title not a string", map[string]any{"title": 3.5}},
		{"level out of range", map[string]any{"level.ma": 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SettingsFromOptions(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, smderrors.ErrConfiguration))
		})
	}
}

func TestSettingsClone(t *testing.T) {
	s := DefaultSettings()
	s.Subgroup = &SubgroupSettings{Values: []string{"a", "b"}, Name: "region"}
	s.Control = map[string]any{"maxiter": 100}

	c := s.Clone()
	c.Subgroup.Values[0] = "z"
	c.Control["maxiter"] = 5

	assert.Equal(t, "a", s.Subgroup.Values[0])
	assert.Equal(t, 100, s.Control["maxiter"])
}

func TestEchoAggregator(t *testing.T) {
	p := &Payload{
		TE:             []float64{0.5},
		SETE:           []float64{0.2},
		StudyLabels:    []string{"x"},
		SummaryMeasure: MeasureSMD,
		Transform:      "HH",
		Options:        map[string]any{"random": false},
	}
	res, err := EchoAggregator{}.Aggregate(p)
	require.NoError(t, err)

	assert.Equal(t, MeasureSMD, res.SummaryMeasure)
	assert.Equal(t, "HH", res.Transform)
	assert.Equal(t, 1, res.K)
	assert.Equal(t, p.TE, res.TE)
	assert.False(t, res.Settings.Random)
	assert.Nil(t, res.Common)

	res.TE[0] = 9
	assert.Equal(t, 0.5, p.TE[0], "echo must not alias the payload")
}

func TestAggregatorFunc(t *testing.T) {
	called := false
	var agg Aggregator = AggregatorFunc(func(p *Payload) (*Result, error) {
		called = true
		return &Result{K: p.K()}, nil
	})
	res, err := agg.Aggregate(&Payload{TE: []float64{1, 2}})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 2, res.K)
}
