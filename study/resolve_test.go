package study

import (
	"errors"
	"testing"

	"github.com/erraggy/smdconv/smderrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_LiteralVectors(t *testing.T) {
	set, err := Resolve(Args{
		LogOR:   []float64{0.9069, -0.2, 0.4},
		SELogOR: []float64{0.26, 0.3, 0.1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, set.K())
	assert.Len(t, set.SELogOR, 3)
	assert.Equal(t, []string{"1", "2", "3"}, set.Labels)
	assert.True(t, set.Subset.IsZero())
	assert.True(t, set.Exclude.IsZero())
}

func TestResolve_DoesNotAliasCallerSlices(t *testing.T) {
	lnOR := []float64{1, 2}
	se := []float64{0.1, 0.2}
	labels := []string{"a", "b"}

	set, err := Resolve(Args{LogOR: lnOR, SELogOR: se, Labels: labels})
	require.NoError(t, err)

	set.LogOR[0] = 99
	set.SELogOR[0] = 99
	set.Labels[0] = "changed"

	assert.Equal(t, 1.0, lnOR[0])
	assert.Equal(t, 0.1, se[0])
	assert.Equal(t, "a", labels[0])
}

func TestResolve_FromTable(t *testing.T) {
	tbl := NewTable().
		SetFloats("y", []float64{0.5, 0.7}).
		SetFloats("se", []float64{0.2, 0.25}).
		SetStrings("author", []string{"Smith", "Jones"}).
		SetBools("keep", []bool{true, false}).
		SetInts("drop", []int{1})

	set, err := Resolve(Args{
		Data:          tbl,
		LogORColumn:   "y",
		SELogORColumn: "se",
		LabelsColumn:  "author",
		SubsetColumn:  "keep",
		ExcludeColumn: "drop",
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 0.7}, set.LogOR)
	assert.Equal(t, []string{"Smith", "Jones"}, set.Labels)
	assert.False(t, set.Subset.IsIndex())
	assert.Equal(t, []bool{true, false}, set.Subset.Bools(2))
	assert.True(t, set.Exclude.IsIndex())
	assert.Equal(t, []bool{false, true}, set.Exclude.Bools(2))
}

func TestResolve_LiteralWinsOverColumn(t *testing.T) {
	tbl := NewTable().SetFloats("y", []float64{9, 9, 9})
	set, err := Resolve(Args{
		Data:        tbl,
		LogOR:       []float64{1},
		LogORColumn: "y",
		SELogOR:     []float64{0.1},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, set.LogOR)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     Args
		sentinel error
		argument string
	}{
		{
			name:     "missing lnOR",
			args:     Args{SELogOR: []float64{0.1}},
			sentinel: smderrors.ErrMissingArgument,
			argument: ArgLogOR,
		},
		{
			name:     "empty lnOR",
			args:     Args{LogOR: []float64{}, SELogOR: []float64{}},
			sentinel: smderrors.ErrMissingArgument,
			argument: ArgLogOR,
		},
		{
			name:     "lnOR column absent from table",
			args:     Args{Data: NewTable(), LogORColumn: "y"},
			sentinel: smderrors.ErrMissingArgument,
			argument: ArgLogOR,
		},
		{
			name:     "lnOR column without table",
			args:     Args{LogORColumn: "y"},
			sentinel: smderrors.ErrMissingArgument,
			argument: ArgLogOR,
		},
		{
			name:     "selnOR shorter than lnOR",
			args:     Args{LogOR: []float64{1, 2, 3}, SELogOR: []float64{0.1, 0.2}},
			sentinel: smderrors.ErrLengthMismatch,
			argument: ArgSELogOR,
		},
		{
			name:     "selnOR absent",
			args:     Args{LogOR: []float64{1, 2}},
			sentinel: smderrors.ErrLengthMismatch,
			argument: ArgSELogOR,
		},
		{
			name:     "labels wrong length",
			args:     Args{LogOR: []float64{1, 2}, SELogOR: []float64{0.1, 0.2}, Labels: []string{"a"}},
			sentinel: smderrors.ErrLengthMismatch,
			argument: ArgLabels,
		},
		{
			name:     "labels column missing",
			args:     Args{Data: NewTable(), LogOR: []float64{1}, SELogOR: []float64{0.1}, LabelsColumn: "who"},
			sentinel: smderrors.ErrMissingArgument,
			argument: ArgLabels,
		},
		{
			name: "subset mask selects too many",
			args: Args{
				LogOR: []float64{1, 2}, SELogOR: []float64{0.1, 0.2},
				Subset: Mask(true, true, true),
			},
			sentinel: smderrors.ErrLengthMismatch,
			argument: ArgSubset,
		},
		{
			name: "subset index list too long",
			args: Args{
				LogOR: []float64{1, 2}, SELogOR: []float64{0.1, 0.2},
				Subset: Indices(0, 1, 0),
			},
			sentinel: smderrors.ErrLengthMismatch,
			argument: ArgSubset,
		},
		{
			name: "exclude index out of range",
			args: Args{
				LogOR: []float64{1, 2}, SELogOR: []float64{0.1, 0.2},
				Exclude: Indices(2),
			},
			sentinel: smderrors.ErrLengthMismatch,
			argument: ArgExclude,
		},
		{
			name: "exclude column of strings",
			args: Args{
				Data:  NewTable().SetStrings("ex", []string{"x"}),
				LogOR: []float64{1}, SELogOR: []float64{0.1},
				ExcludeColumn: "ex",
			},
			sentinel: smderrors.ErrConfiguration,
			argument: ArgExclude,
		},
		{
			name: "subset column of numbers",
			args: Args{
				Data:  NewTable().SetFloats("keep", []float64{1}),
				LogOR: []float64{1}, SELogOR: []float64{0.1},
				SubsetColumn: "keep",
			},
			sentinel: smderrors.ErrConfiguration,
			argument: ArgSubset,
		},
		{
			name:     "lnOR column of strings",
			args:     Args{Data: NewTable().SetStrings("y", []string{"a"}), LogORColumn: "y"},
			sentinel: smderrors.ErrConfiguration,
			argument: ArgLogOR,
		},
		{
			name:     "labels column of flags",
			args:     Args{Data: NewTable().SetBools("who", []bool{true}), LogOR: []float64{1}, SELogOR: []float64{0.1}, LabelsColumn: "who"},
			sentinel: smderrors.ErrConfiguration,
			argument: ArgLabels,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Resolve(tt.args)
			require.Error(t, err)
			assert.Nil(t, set)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)

			var lenErr *smderrors.LengthMismatchError
			var missErr *smderrors.MissingArgumentError
			var cfgErr *smderrors.ConfigurationError
			switch {
			case errors.As(err, &lenErr):
				assert.Equal(t, tt.argument, lenErr.Argument)
			case errors.As(err, &missErr):
				assert.Equal(t, tt.argument, missErr.Argument)
			case errors.As(err, &cfgErr):
				assert.Equal(t, tt.argument, cfgErr.Option)
				assert.Contains(t, cfgErr.Message, "column is")
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestResolve_SubsetAndExcludeValidatedIndependently(t *testing.T) {
	set, err := Resolve(Args{
		LogOR:   []float64{1, 2, 3},
		SELogOR: []float64{0.1, 0.2, 0.3},
		Subset:  Mask(true, false, true),
		Exclude: Indices(1),
	})
	require.NoError(t, err)

	rows := set.Studies()
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Selected)
	assert.False(t, rows[1].Selected)
	assert.True(t, rows[1].Excluded)
	assert.False(t, rows[2].Excluded)
}

func TestSequentialLabels(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4"}, SequentialLabels(4))
	assert.Empty(t, SequentialLabels(0))
}
