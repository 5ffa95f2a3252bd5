package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/erraggy/smdconv/converter"
	"github.com/erraggy/smdconv/study"
)

func TestZapAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapAdapter(zap.New(core))

	logger.Debug("resolved studies", "k", 3)
	logger.Info("info")
	logger.Warn("aggregation failed", "engine", "remote")
	logger.Error("boom")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "resolved studies", entries[0].Message)
	assert.EqualValues(t, 3, entries[0].ContextMap()["k"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "remote", entries[2].ContextMap()["engine"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestZapAdapterWith(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapAdapter(zap.New(core)).With("mode", "vector")

	logger.Debug("dropped below level")
	logger.Info("kept")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "vector", entries[0].ContextMap()["mode"])
}

func TestZapAdapterWithConverter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	c := converter.New()
	c.Logger = NewZapAdapter(zap.New(core))
	_, _, err := c.Transform(converter.VectorInput{Args: study.Args{
		LogOR:   []float64{0.1, 0.2},
		SELogOR: []float64{0.1, 0.1},
	}})
	require.NoError(t, err)

	_, err = c.Convert(converter.VectorInput{Args: study.Args{
		LogOR:   []float64{0.1, 0.2},
		SELogOR: []float64{0.1, 0.1},
	}})
	require.NoError(t, err)

	msgs := logs.FilterMessage("converted effect sizes").All()
	require.Len(t, msgs, 1)
	assert.Equal(t, "HH", msgs[0].ContextMap()["method"])
}

func TestNewZapAdapterNil(t *testing.T) {
	logger := NewZapAdapter(nil)
	logger.Info("discarded")
}

func TestNew(t *testing.T) {
	logger, err := New(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
