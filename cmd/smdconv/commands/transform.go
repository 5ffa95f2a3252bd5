package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/smdconv/converter"
	"github.com/erraggy/smdconv/internal/cliutil"
	"github.com/erraggy/smdconv/internal/report"
)

// TransformFlags contains flags for the transform command
type TransformFlags struct {
	Method string
	Format string
	Output string
	Quiet  bool
}

// SetupTransformFlags creates and configures a FlagSet for the transform command.
// Returns the FlagSet and a TransformFlags struct with bound flag variables.
func SetupTransformFlags() (*flag.FlagSet, *TransformFlags) {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	flags := &TransformFlags{}

	fs.StringVar(&flags.Method, "m", "", "conversion method: HH (Hasselblad-Hedges) or CS (Cox-Snell) (default: dataset method, then HH)")
	fs.StringVar(&flags.Method, "method", "", "conversion method: HH (Hasselblad-Hedges) or CS (Cox-Snell) (default: dataset method, then HH)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the table, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the table, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: smdconv transform [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Convert each study's log odds ratio to an SMD without pooling.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  smdconv transform studies.yaml\n")
		cliutil.Writef(fs.Output(), "  smdconv transform -m CS --format json prior.yaml\n")
		cliutil.Writef(fs.Output(), "  cat studies.yaml | smdconv transform -q -\n")
	}

	return fs, flags
}

// HandleTransform executes the transform command
func HandleTransform(args []string) error {
	fs, flags := SetupTransformFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("transform command requires exactly one dataset file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	path := fs.Arg(0)
	ds, err := loadDataset(path, os.Stdin)
	if err != nil {
		return err
	}
	method, err := converter.ParseMethod(resolveMethod(flags.Method, ds))
	if err != nil {
		return err
	}
	in, err := ds.Input()
	if err != nil {
		return err
	}

	if !flags.Quiet {
		outputHeader("Log Odds Ratio to SMD Transformation", path, method, ds.K())
	}

	c := converter.New()
	c.Method = string(method)
	set, conv, err := c.Transform(in)
	if err != nil {
		return fmt.Errorf("transforming dataset: %w", err)
	}
	rows := report.Transformed(set, conv)

	var data []byte
	if flags.Format == FormatText {
		var buf bytes.Buffer
		if err := report.WriteStudies(&buf, rows); err != nil {
			return fmt.Errorf("rendering studies: %w", err)
		}
		data = buf.Bytes()
	} else {
		data, err = MarshalStructured(rows, flags.Format)
		if err != nil {
			return err
		}
	}

	return writeOutput(flags.Output, data, flags.Quiet)
}
