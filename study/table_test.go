package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_ColumnKinds(t *testing.T) {
	tbl := NewTable().
		SetFloats("f", []float64{1.5, 2}).
		SetInts("i", []int{3, 4, 5}).
		SetStrings("s", []string{"a"}).
		SetBools("b", []bool{true, false})

	assert.Equal(t, []string{"f", "i", "s", "b"}, tbl.Columns())
	assert.Equal(t, 3, tbl.Rows())
	assert.True(t, tbl.Has("s"))
	assert.False(t, tbl.Has("missing"))
	assert.Equal(t, "numeric", tbl.Kind("f"))
	assert.Equal(t, "integer", tbl.Kind("i"))
	assert.Equal(t, "character", tbl.Kind("s"))
	assert.Equal(t, "logical", tbl.Kind("b"))
	assert.Empty(t, tbl.Kind("missing"))

	f, ok := tbl.Floats("i")
	require.True(t, ok)
	assert.Equal(t, []float64{3, 4, 5}, f)

	_, ok = tbl.Floats("s")
	assert.False(t, ok)

	labels, ok := tbl.Strings("f")
	require.True(t, ok)
	assert.Equal(t, []string{"1.5", "2"}, labels)

	b, ok := tbl.Bools("b")
	require.True(t, ok)
	assert.Equal(t, []bool{true, false}, b)
}

func TestTable_OverwriteKeepsOrder(t *testing.T) {
	tbl := NewTable().SetFloats("a", []float64{1}).SetFloats("b", []float64{2})
	tbl.SetStrings("a", []string{"x"})

	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	s, ok := tbl.Strings("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, s)
}

func TestTable_NilSafe(t *testing.T) {
	var tbl *Table
	assert.False(t, tbl.Has("x"))
	assert.Nil(t, tbl.Columns())
	assert.Zero(t, tbl.Rows())
	_, ok := tbl.Floats("x")
	assert.False(t, ok)
	_, ok = tbl.Selector("x")
	assert.False(t, ok)
}

func TestTable_CopiesOnReadAndWrite(t *testing.T) {
	src := []float64{1, 2}
	tbl := NewTable().SetFloats("x", src)
	src[0] = 100

	got, _ := tbl.Floats("x")
	assert.Equal(t, 1.0, got[0])

	got[1] = 200
	again, _ := tbl.Floats("x")
	assert.Equal(t, 2.0, again[1])
}

func TestSelector(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		var s Selector
		assert.True(t, s.IsZero())
		assert.Nil(t, s.Bools(3))
		assert.NoError(t, s.Validate("subset", 0))
	})

	t.Run("mask", func(t *testing.T) {
		s := Mask(true, false, true)
		assert.False(t, s.IsIndex())
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, 2, s.Count())
		assert.Equal(t, []bool{true, false, true, false}, s.Bools(4))
		assert.NoError(t, s.Validate("subset", 3))
		assert.Error(t, s.Validate("subset", 2))
	})

	t.Run("indices", func(t *testing.T) {
		s := Indices(2, 0)
		assert.True(t, s.IsIndex())
		assert.Equal(t, 2, s.Count())
		assert.Equal(t, []bool{true, false, true}, s.Bools(3))
		assert.NoError(t, s.Validate("exclude", 3))
		assert.Error(t, s.Validate("exclude", 1))
		assert.Error(t, Indices(-1).Validate("exclude", 3))
	})
}
