package study

import (
	"fmt"
	"slices"

	"github.com/erraggy/smdconv/smderrors"
)

// Argument names used in errors.
const (
	ArgLogOR   = "lnOR"
	ArgSELogOR = "selnOR"
	ArgLabels  = "studlab"
	ArgSubset  = "subset"
	ArgExclude = "exclude"
)

// Args holds the raw vector-mode inputs. Each input is given either as
// literal values or as the name of a column in Data; literal values win when
// both are set.
type Args struct {
	// Data is the optional table that column names are resolved against
	Data *Table

	LogOR       []float64
	LogORColumn string

	SELogOR       []float64
	SELogORColumn string

	Labels       []string
	LabelsColumn string

	Subset       Selector
	SubsetColumn string

	Exclude       Selector
	ExcludeColumn string
}

// Resolve validates args and returns an aligned StudySet. The caller's slices
// are copied, never modified.
//
// Validation order follows the inputs: lnOR must be present; selnOR and
// labels must have exactly k entries; subset and exclude must not select
// more than k studies.
func Resolve(args Args) (*StudySet, error) {
	lnOR, err := resolveFloats(args.Data, args.LogOR, args.LogORColumn, ArgLogOR)
	if err != nil {
		return nil, err
	}
	if len(lnOR) == 0 {
		return nil, &smderrors.MissingArgumentError{
			Argument: ArgLogOR,
			Message:  "a log odds ratio vector is required",
		}
	}
	k := len(lnOR)

	selnOR, err := resolveFloats(args.Data, args.SELogOR, args.SELogORColumn, ArgSELogOR)
	if err != nil {
		return nil, err
	}
	if len(selnOR) != k {
		return nil, &smderrors.LengthMismatchError{Argument: ArgSELogOR, Expected: k, Actual: len(selnOR)}
	}

	labels, err := resolveLabels(args, k)
	if err != nil {
		return nil, err
	}

	subset, err := resolveSelector(args.Data, args.Subset, args.SubsetColumn, ArgSubset, k)
	if err != nil {
		return nil, err
	}
	exclude, err := resolveSelector(args.Data, args.Exclude, args.ExcludeColumn, ArgExclude, k)
	if err != nil {
		return nil, err
	}

	return &StudySet{
		LogOR:   lnOR,
		SELogOR: selnOR,
		Labels:  labels,
		Subset:  subset,
		Exclude: exclude,
	}, nil
}

func resolveFloats(data *Table, values []float64, column, argument string) ([]float64, error) {
	if values != nil || column == "" {
		return slices.Clone(values), nil
	}
	v, ok := data.Floats(column)
	if !ok {
		return nil, columnError(data, column, argument, "numeric")
	}
	return v, nil
}

func resolveLabels(args Args, k int) ([]string, error) {
	labels := slices.Clone(args.Labels)
	if labels == nil && args.LabelsColumn != "" {
		v, ok := args.Data.Strings(args.LabelsColumn)
		if !ok {
			return nil, columnError(args.Data, args.LabelsColumn, ArgLabels, "character or numeric")
		}
		labels = v
	}
	if labels == nil {
		return SequentialLabels(k), nil
	}
	if len(labels) != k {
		return nil, &smderrors.LengthMismatchError{Argument: ArgLabels, Expected: k, Actual: len(labels)}
	}
	return labels, nil
}

func resolveSelector(data *Table, sel Selector, column, argument string, k int) (Selector, error) {
	if sel.IsZero() && column != "" {
		v, ok := data.Selector(column)
		if !ok {
			return Selector{}, columnError(data, column, argument, "logical or integer")
		}
		sel = v
	}
	if err := sel.Validate(argument, k); err != nil {
		return Selector{}, err
	}
	return sel, nil
}

// columnError reports a column that is absent from data, or present with a
// type argument cannot use.
func columnError(data *Table, column, argument, want string) error {
	if !data.Has(column) {
		return &smderrors.MissingArgumentError{Argument: argument, Column: column}
	}
	return &smderrors.ConfigurationError{
		Option:  argument,
		Value:   column,
		Message: fmt.Sprintf("column is %s, want %s", data.Kind(column), want),
	}
}
