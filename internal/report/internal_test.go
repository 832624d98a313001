package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapCell(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		s     string
		width int
		want  []string
	}{
		"fits":           {s: "abc", width: 5, want: []string{"abc"}},
		"no limit":       {s: "abcdef", width: 0, want: []string{"abcdef"}},
		"ascii":          {s: "abcdef", width: 4, want: []string{"abcd", "ef"}},
		"wide runes":     {s: "日本語", width: 4, want: []string{"日本", "語"}},
		"rune too wide":  {s: "日本", width: 1, want: []string{"日", "本"}},
		"exact multiple": {s: "abcd", width: 2, want: []string{"ab", "cd"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapCell(tt.s, tt.width))
		})
	}
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab  ", alignCell("ab", 4))
	assert.Equal(t, "日 ", alignCell("日", 3))
	assert.Equal(t, "abcdef", alignCell("abcdef", 3))
}

func TestTextLineDropsEmptyTrailingColumns(t *testing.T) {
	t.Parallel()
	p := NewPalette(false)
	assert.Equal(t, "x.go:1:1: type", textLine(p, []string{"x.go:1:1", "type"}))
	assert.Equal(t, "x.go:1:1: type: bad", textLine(p, []string{"x.go:1:1", "type", "bad", ""}))
}
