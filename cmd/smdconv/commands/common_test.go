package commands

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/smdconv/internal/dataset"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestMarshalStructured(t *testing.T) {
	data := map[string]int{"k": 3}

	t.Run("json format", func(t *testing.T) {
		out, err := MarshalStructured(data, FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"k\": 3\n}\n", string(out))
	})

	t.Run("yaml format", func(t *testing.T) {
		out, err := MarshalStructured(data, FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "k: 3\n", string(out))
	})

	t.Run("text is not structured", func(t *testing.T) {
		_, err := MarshalStructured(data, FormatText)
		assert.Error(t, err)
	})
}

func TestFormatDatasetPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatDatasetPath(StdinFilePath))
	assert.Equal(t, "studies.yaml", FormatDatasetPath("studies.yaml"))
}

func TestLoadDataset_Stdin(t *testing.T) {
	ds, err := loadDataset(StdinFilePath, strings.NewReader(studiesYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, ds.K())

	_, err = loadDataset(StdinFilePath, strings.NewReader("studies: {"))
	var pe *dataset.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "<stdin>", pe.Path)
}

func TestResolveMethod(t *testing.T) {
	assert.Equal(t, "CS", resolveMethod("CS", &dataset.Dataset{Method: "HH"}))
	assert.Equal(t, "C", resolveMethod("", &dataset.Dataset{Method: "C"}))
	assert.Equal(t, "HH", resolveMethod("", &dataset.Dataset{}))
}

func TestOptionalBool(t *testing.T) {
	var b optionalBool
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&b, "common", "")

	assert.Empty(t, b.String())
	require.NoError(t, fs.Parse([]string{"--common"}))
	require.NotNil(t, b.value)
	assert.True(t, *b.value)
	assert.Equal(t, "true", b.String())

	require.NoError(t, fs.Parse([]string{"--common=false"}))
	assert.False(t, *b.value)

	assert.Error(t, b.Set("sometimes"))
}

func TestNewConverter(t *testing.T) {
	c, flush, err := newConverter("CS", false)
	require.NoError(t, err)
	defer flush()
	assert.Equal(t, "CS", c.Method)

	c, flush, err = newConverter("HH", true)
	require.NoError(t, err)
	defer flush()
	assert.NotNil(t, c.Logger)
}
