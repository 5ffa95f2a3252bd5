package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// clearSMDCONVEnv clears all SMDCONV_* env vars to isolate tests from the ambient environment.
func clearSMDCONVEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SMDCONV_METHOD", "SMDCONV_LEVEL_MA",
		"SMDCONV_COMMON", "SMDCONV_RANDOM",
		"SMDCONV_MAX_STUDIES", "SMDCONV_MAX_INLINE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearSMDCONVEnv(t)

	c := loadConfig()

	assert.Equal(t, "HH", c.Method)
	assert.Equal(t, 0.95, c.LevelMA)
	assert.True(t, c.Common)
	assert.True(t, c.Random)
	assert.Equal(t, 10000, c.MaxStudies)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearSMDCONVEnv(t)
	t.Setenv("SMDCONV_METHOD", "C")
	t.Setenv("SMDCONV_LEVEL_MA", "0.9")
	t.Setenv("SMDCONV_COMMON", "false")
	t.Setenv("SMDCONV_RANDOM", "0")
	t.Setenv("SMDCONV_MAX_STUDIES", "50")
	t.Setenv("SMDCONV_MAX_INLINE_SIZE", "2048")

	c := loadConfig()

	assert.Equal(t, "CS", c.Method, "abbreviations are stored as the canonical code")
	assert.Equal(t, 0.9, c.LevelMA)
	assert.False(t, c.Common)
	assert.False(t, c.Random)
	assert.Equal(t, 50, c.MaxStudies)
	assert.Equal(t, int64(2048), c.MaxInlineSize)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearSMDCONVEnv(t)
	t.Setenv("SMDCONV_METHOD", "RR")
	t.Setenv("SMDCONV_LEVEL_MA", "95")
	t.Setenv("SMDCONV_COMMON", "maybe")
	t.Setenv("SMDCONV_MAX_STUDIES", "-3")

	c := loadConfig()

	assert.Equal(t, "HH", c.Method)
	assert.Equal(t, 0.95, c.LevelMA)
	assert.True(t, c.Common)
	assert.Equal(t, 10000, c.MaxStudies)
}

func TestEnvLevel(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"", 0.95},
		{"0.8", 0.8},
		{"0", 0.95},
		{"1", 0.95},
		{"abc", 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SMDCONV_TEST_LEVEL", tt.value)
			assert.Equal(t, tt.want, envLevel("SMDCONV_TEST_LEVEL", 0.95))
		})
	}
}
