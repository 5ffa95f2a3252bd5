package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/smdconv/converter"
	"github.com/erraggy/smdconv/internal/cliutil"
	"github.com/erraggy/smdconv/internal/dataset"
	"github.com/erraggy/smdconv/internal/report"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	Method     string
	Format     string
	Output     string
	Common     optionalBool
	Random     optionalBool
	Prediction optionalBool
	MethodTau  string
	Level      float64
	Quiet      bool
	Verbose    bool
}

// overrides returns the aggregation settings given on the command line.
func (f *ConvertFlags) overrides() dataset.Overrides {
	return dataset.Overrides{
		Common:     f.Common.value,
		Random:     f.Random.value,
		Prediction: f.Prediction.value,
		MethodTau:  f.MethodTau,
		LevelMA:    f.Level,
	}
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
// Returns the FlagSet and a ConvertFlags struct with bound flag variables.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.Method, "m", "", "conversion method: HH (Hasselblad-Hedges) or CS (Cox-Snell) (default: dataset method, then HH)")
	fs.StringVar(&flags.Method, "method", "", "conversion method: HH (Hasselblad-Hedges) or CS (Cox-Snell) (default: dataset method, then HH)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.Var(&flags.Common, "common", "compute the common effect estimate (default: dataset setting, then true)")
	fs.Var(&flags.Random, "random", "compute the random effects estimate (default: dataset setting, then true)")
	fs.Var(&flags.Prediction, "prediction", "compute a prediction interval (default: dataset setting, then false)")
	fs.StringVar(&flags.MethodTau, "method-tau", "", "between-study variance estimator (DL)")
	fs.Float64Var(&flags.Level, "level", 0, "confidence level of pooled estimates, between 0 and 1 (default: dataset setting, then 0.95)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the result, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log conversion diagnostics to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: smdconv convert [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Convert log odds ratios to standardised mean differences and pool them.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nDatasets:\n")
		cliutil.Writef(fs.Output(), "  A YAML or JSON document with either a studies list or a prior\n")
		cliutil.Writef(fs.Output(), "  odds ratio meta-analysis:\n\n")
		cliutil.Writef(fs.Output(), "    studies:\n")
		cliutil.Writef(fs.Output(), "      - {study: Ahn 2011, lnOR: 0.41, selnOR: 0.21}\n")
		cliutil.Writef(fs.Output(), "      - {study: Berg 2014, lnOR: 0.91, selnOR: 0.26, exclude: true}\n\n")
		cliutil.Writef(fs.Output(), "    prior: {sm: OR, te: [0.41, 0.91], se_te: [0.21, 0.26]}\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  smdconv convert studies.yaml\n")
		cliutil.Writef(fs.Output(), "  smdconv convert -m CS --random=false studies.yaml\n")
		cliutil.Writef(fs.Output(), "  smdconv convert --format json -o pooled.json prior.yaml\n")
		cliutil.Writef(fs.Output(), "  cat studies.json | smdconv convert -q --format yaml -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Hasselblad-Hedges: SMD = lnOR * sqrt(3) / pi\n")
		cliutil.Writef(fs.Output(), "  - Cox-Snell: SMD = lnOR / 1.65\n")
		cliutil.Writef(fs.Output(), "  - Flags override the dataset; a prior keeps its own settings otherwise\n")
	}

	return fs, flags
}

// HandleConvert executes the convert command
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires exactly one dataset file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	path := fs.Arg(0)
	ds, err := loadDataset(path, os.Stdin)
	if err != nil {
		return err
	}
	ds.Apply(flags.overrides())

	method, err := converter.ParseMethod(resolveMethod(flags.Method, ds))
	if err != nil {
		return err
	}
	in, err := ds.Input()
	if err != nil {
		return err
	}

	c, flush, err := newConverter(string(method), flags.Verbose)
	if err != nil {
		return err
	}
	defer flush()

	if !flags.Quiet {
		outputHeader("Log Odds Ratio to SMD Conversion", path, method, ds.K())
	}

	result, err := c.Convert(in)
	if err != nil {
		return fmt.Errorf("converting dataset: %w", err)
	}
	summary := report.Summarize(result)

	var data []byte
	if flags.Format == FormatText {
		var buf bytes.Buffer
		if err := report.WriteSummary(&buf, summary); err != nil {
			return fmt.Errorf("rendering summary: %w", err)
		}
		data = buf.Bytes()
	} else {
		data, err = MarshalStructured(summary, flags.Format)
		if err != nil {
			return err
		}
	}

	return writeOutput(flags.Output, data, flags.Quiet)
}
