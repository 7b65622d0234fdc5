package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceBufferPositions(t *testing.T) {
	buf := NewSourceBuffer("test.chtl", "abc\ndef\n\nxyz")

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 1, 4}, // the newline itself
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
		{9, 4, 1},
		{12, 4, 4}, // just past EOF
	}
	for _, tt := range tests {
		p := buf.Position(tt.offset)
		assert.Equal(t, tt.line, p.Line, "offset %d line", tt.offset)
		assert.Equal(t, tt.column, p.Column, "offset %d column", tt.offset)
	}
}

func TestSourceBufferOffsetRoundTrip(t *testing.T) {
	text := "div {\n  style { color: red; }\n}\n"
	buf := NewSourceBuffer("test.chtl", text)

	for offset := 0; offset <= len(text); offset++ {
		p := buf.Position(offset)
		back, err := buf.Offset(p.Line, p.Column)
		require.NoError(t, err, "offset %d", offset)
		assert.Equal(t, offset, back, "offset %d", offset)
	}
}

func TestSourceBufferOffsetErrors(t *testing.T) {
	buf := NewSourceBuffer("test.chtl", "ab\ncd")

	_, err := buf.Offset(0, 1)
	assert.Error(t, err)

	_, err = buf.Offset(3, 1)
	assert.Error(t, err)

	_, err = buf.Offset(1, 100)
	assert.Error(t, err)
}

func TestSourceBufferUnicodeColumns(t *testing.T) {
	buf := NewSourceBuffer("test.chtl", "héllo\nwörld")

	// é is two bytes; column counts runes
	p := buf.Position(3) // byte offset of first 'l'
	assert.Equal(t, 1, p.Line)
	assert.Equal(t, 3, p.Column)
}

func TestValidSpan(t *testing.T) {
	buf := NewSourceBuffer("test.chtl", "héllo")

	assert.True(t, buf.ValidSpan(Span{Start: 0, End: 6}))
	assert.True(t, buf.ValidSpan(Span{Start: 0, End: 0}))
	assert.False(t, buf.ValidSpan(Span{Start: 2, End: 3}), "mid-rune boundary")
	assert.False(t, buf.ValidSpan(Span{Start: 3, End: 2}))
	assert.False(t, buf.ValidSpan(Span{Start: 0, End: 100}))
}

func TestLine(t *testing.T) {
	buf := NewSourceBuffer("test.chtl", "first\nsecond\nthird")

	assert.Equal(t, "first", buf.Line(1))
	assert.Equal(t, "second", buf.Line(2))
	assert.Equal(t, "third", buf.Line(3))
	assert.Equal(t, "", buf.Line(0))
	assert.Equal(t, "", buf.Line(4))
}

func TestSliceMatchesSpan(t *testing.T) {
	buf := NewSourceBuffer("test.chtl", "div { }")
	assert.Equal(t, "div", buf.Slice(Span{Start: 0, End: 3}))
	assert.Equal(t, "{ }", buf.Slice(Span{Start: 4, End: 7}))
}
