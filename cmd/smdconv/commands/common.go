// Package commands provides CLI command handlers for smdconv.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/smdconv"
	"github.com/erraggy/smdconv/converter"
	"github.com/erraggy/smdconv/internal/cliutil"
	"github.com/erraggy/smdconv/internal/dataset"
	"github.com/erraggy/smdconv/internal/logging"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// MarshalStructured marshals data in the specified format (json or yaml).
func MarshalStructured(data any, format string) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return out, nil
}

// FormatDatasetPath returns a display-friendly path for the dataset.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatDatasetPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// loadDataset reads a dataset from a file, or from stdin when path is "-".
func loadDataset(path string, stdin io.Reader) (*dataset.Dataset, error) {
	if path == StdinFilePath {
		return dataset.ParseReader(stdin, FormatDatasetPath(path))
	}
	return dataset.ParseFile(path)
}

// resolveMethod picks the flag's method, then the dataset's, then
// Hasselblad-Hedges.
func resolveMethod(flagValue string, ds *dataset.Dataset) string {
	switch {
	case flagValue != "":
		return flagValue
	case ds.Method != "":
		return ds.Method
	default:
		return string(converter.MethodHasselbladHedges)
	}
}

// newConverter builds a converter for method. With verbose set, conversion
// diagnostics are logged to stderr as JSON.
func newConverter(method string, verbose bool) (*converter.Converter, func(), error) {
	c := converter.New()
	c.Method = method
	if !verbose {
		return c, func() {}, nil
	}
	logger, err := logging.New(true)
	if err != nil {
		return nil, nil, err
	}
	c.Logger = logging.NewZapAdapter(logger).With("agent", smdconv.UserAgent())
	return c, func() { _ = logger.Sync() }, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, quiet bool) error {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing to stdout: %w", err)
		}
		return nil
	}
	if err := cliutil.WriteFile(path, data); err != nil {
		return err
	}
	if !quiet {
		cliutil.Writef(os.Stderr, "\nOutput written to: %s\n", path)
	}
	return nil
}

// outputHeader writes the common diagnostic header to stderr.
func outputHeader(title, path string, method converter.Method, k int) {
	cliutil.Writef(os.Stderr, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	cliutil.Writef(os.Stderr, "smdconv version: %s\n", smdconv.Version())
	cliutil.Writef(os.Stderr, "Dataset: %s\n", FormatDatasetPath(path))
	cliutil.Writef(os.Stderr, "Method: %s (%s)\n", method, method.Description())
	cliutil.Writef(os.Stderr, "Studies: %d\n\n", k)
}

// optionalBool is a boolean flag that records whether it was given, so an
// unset flag leaves the dataset's own setting alone.
type optionalBool struct {
	value *bool
}

func (b *optionalBool) String() string {
	if b == nil || b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

// IsBoolFlag lets the flag be given without a value.
func (b *optionalBool) IsBoolFlag() bool { return true }
