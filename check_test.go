package stdfmt_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/stdfmt"
)

func TestCheck(t *testing.T) {
	t.Parallel()
	var (
		intT   = stdfmt.TypeOf[int]()
		strT   = stdfmt.TypeOf[string]()
		floatT = stdfmt.TypeOf[float64]()
	)
	tests := []struct {
		name   string
		format string
		types  []stdfmt.ArgType
		kind   error // nil when the format is valid
	}{
		{"valid", "{} {:>8}", []stdfmt.ArgType{intT, strT}, nil},
		{"valid dynamic width", "{:{}.{}f}", []stdfmt.ArgType{floatT, intT, intT}, nil},
		{"valid handle", "{:r}", []stdfmt.ArgType{stdfmt.TypeOf[point]()}, nil},
		{"unknown skips spec", "{:anything goes}", []stdfmt.ArgType{stdfmt.Unknown}, nil},
		{"unknown width argument", "{:{}}", []stdfmt.ArgType{intT, stdfmt.Unknown}, nil},

		{"syntax", "{", []stdfmt.ArgType{intT}, stdfmt.ErrSyntax},
		{"mixed indexing", "{0} {}", []stdfmt.ArgType{intT, intT}, stdfmt.ErrSyntax},
		{"mixed indexing inside unknown spec", "{0:{}}", []stdfmt.ArgType{stdfmt.Unknown, intT}, stdfmt.ErrSyntax},
		{"handle rejects spec", "{:q}", []stdfmt.ArgType{stdfmt.TypeOf[point]()}, stdfmt.ErrSyntax},
		{"index", "{2}", []stdfmt.ArgType{intT}, stdfmt.ErrIndex},
		{"index inside unknown spec", "{0:{4}}", []stdfmt.ArgType{stdfmt.Unknown}, stdfmt.ErrIndex},
		{"presentation", "{:d}", []stdfmt.ArgType{strT}, stdfmt.ErrType},
		{"float width", "{:{}}", []stdfmt.ArgType{intT, floatT}, stdfmt.ErrType},
		{"unformattable type", "{}", []stdfmt.ArgType{stdfmt.TypeOf[chan int]()}, stdfmt.ErrType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := stdfmt.Check(tt.format, tt.types...)
			if tt.kind == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

// Check and the renderer share one traversal, so they must agree on every
// error that does not depend on a value.
func TestCheckAgreesWithFormat(t *testing.T) {
	t.Parallel()
	formats := []string{
		"{}", "{} {}", "{0} {1}", "{1}", "{0} {}", "{:d}", "{:s}", "{:.2}",
		"{:+}", "{:#x}", "{:{}}", "{0:{1}}", "{:}", "{", "}", "{{}}", "{:<>5}",
		"{:?}", "{:.{}f}", "{:L}", "{:c}", "{:05}", "{:r}",
	}
	argLists := [][]any{
		{1, 2},
		{"s", 3},
		{1.5, 2},
		{true, "x"},
		{stdfmt.Char('x'), 1.0},
		{point{1, 2}, 4},
	}
	for _, f := range formats {
		for _, args := range argLists {
			types := make([]stdfmt.ArgType, len(args))
			for i, a := range args {
				types[i] = stdfmt.TypeOfValue(a)
			}
			checkErr := stdfmt.Check(f, types...)
			_, formatErr := stdfmt.Format(f, args...)
			for _, kind := range []error{stdfmt.ErrSyntax, stdfmt.ErrIndex, stdfmt.ErrType} {
				assert.Equal(t, errors.Is(formatErr, kind), errors.Is(checkErr, kind),
					"format %q args %v: check=%v format=%v", f, args, checkErr, formatErr)
			}
		}
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, stdfmt.TagInt64, stdfmt.TypeOf[int]().Tag())
	assert.Equal(t, stdfmt.TagInt, stdfmt.TypeOf[int32]().Tag())
	assert.Equal(t, stdfmt.TagUint, stdfmt.TypeOf[uint8]().Tag())
	assert.Equal(t, stdfmt.TagStringView, stdfmt.TypeOf[string]().Tag())
	assert.Equal(t, stdfmt.TagCString, stdfmt.TypeOf[[]byte]().Tag())
	assert.Equal(t, stdfmt.TagFloat80, stdfmt.TypeOf[*big.Float]().Tag())
	assert.Equal(t, stdfmt.TagHandle, stdfmt.TypeOf[point]().Tag())
	assert.Equal(t, stdfmt.TagNone, stdfmt.TypeOf[error]().Tag())
	assert.Equal(t, "int", stdfmt.TypeOf[int]().String())
}

func TestTypeOfPointerHandle(t *testing.T) {
	t.Parallel()
	pt := stdfmt.TypeOf[*point]()
	assert.Equal(t, stdfmt.TagHandle, pt.Tag())
	assert.Equal(t, "*stdfmt_test.point", pt.String())
	assert.NoError(t, stdfmt.Check("{:r}", pt))
	assert.ErrorIs(t, stdfmt.Check("{:z}", pt), stdfmt.ErrSyntax)
}

func TestCheckBigFloatPresentations(t *testing.T) {
	t.Parallel()
	bf := stdfmt.TypeOf[*big.Float]()
	assert.NoError(t, stdfmt.Check("{:.3e} {:g} {:F}", bf, bf, bf))
	assert.ErrorIs(t, stdfmt.Check("{:A}", bf), stdfmt.ErrType)
}

func TestTemplateWithLocale(t *testing.T) {
	t.Parallel()
	p := stdfmt.NewPrinter(stdfmt.Classic.WithPunctuation(",", "."))
	tmpl := stdfmt.MustCompile("{:L}|{:.1Lf}", stdfmt.TypeOf[int](), stdfmt.TypeOf[float64]())
	const want = "1.234.567|2,5"

	s, err := tmpl.FormatWith(p, 1234567, 2.5)
	require.NoError(t, err)
	assert.Equal(t, want, s)

	var buf bytes.Buffer
	n, err := tmpl.FormatToWith(p, &buf, 1234567, 2.5)
	require.NoError(t, err)
	assert.Equal(t, want, buf.String())
	assert.Equal(t, len(want), n)

	size, err := tmpl.SizeWith(p, 1234567, 2.5)
	require.NoError(t, err)
	assert.Equal(t, len(want), size)

	dst := make([]byte, 5)
	n, size, err = tmpl.FormatToNWith(p, dst, 1234567, 2.5)
	require.NoError(t, err)
	assert.Equal(t, "1.234", string(dst[:n]))
	assert.Equal(t, len(want), size)

	plain, err := tmpl.Format(1234567, 2.5)
	require.NoError(t, err)
	assert.Equal(t, "1234567|2.5", plain)
}

func TestTemplate(t *testing.T) {
	t.Parallel()
	tmpl := stdfmt.MustCompile("{:<6}|{:>4}", stdfmt.TypeOf[string](), stdfmt.TypeOf[int]())
	assert.Equal(t, "{:<6}|{:>4}", tmpl.String())

	s, err := tmpl.Format("ab", 42)
	require.NoError(t, err)
	assert.Equal(t, "ab    |  42", s)

	size, err := tmpl.Size("ab", 42)
	require.NoError(t, err)
	assert.Equal(t, len(s), size)

	dst := make([]byte, 4)
	n, size, err := tmpl.FormatToN(dst, "ab", 42)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, len(s), size)
	assert.Equal(t, "ab  ", string(dst))

	var buf bytes.Buffer
	_, err = tmpl.FormatTo(&buf, "cd", 7)
	require.NoError(t, err)
	assert.Equal(t, "cd    |   7", buf.String())

	b, err := tmpl.AppendWith(stdfmt.NewPrinter(nil), []byte(">"), "e", 1)
	require.NoError(t, err)
	assert.Equal(t, ">e     |   1", string(b))
}

func TestTemplateArgumentMismatch(t *testing.T) {
	t.Parallel()
	tmpl := stdfmt.MustCompile("{}", stdfmt.TypeOf[int]())

	_, err := tmpl.Format("not an int")
	assert.ErrorIs(t, err, stdfmt.ErrType)

	_, err = tmpl.Format(1, 2)
	assert.ErrorIs(t, err, stdfmt.ErrIndex)
}

func TestTemplateUnknownAcceptsAnyType(t *testing.T) {
	t.Parallel()
	tmpl := stdfmt.MustCompile("[{}]", stdfmt.Unknown)
	s, err := tmpl.Format("x")
	require.NoError(t, err)
	assert.Equal(t, "[x]", s)

	_, err = tmpl.Format(struct{}{})
	assert.ErrorIs(t, err, stdfmt.ErrType)
}

func TestCompileError(t *testing.T) {
	t.Parallel()
	_, err := stdfmt.Compile("{:d}", stdfmt.TypeOf[string]())
	assert.ErrorIs(t, err, stdfmt.ErrType)
	assert.Panics(t, func() { stdfmt.MustCompile("{1}", stdfmt.TypeOf[int]()) })
}
