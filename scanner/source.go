package scanner

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// SourceBuffer owns the full text of one input file. It is immutable after
// construction and may be shared by concurrent readers. All pipeline
// components reference positions as byte offsets into the buffer and resolve
// line/column coordinates through it on demand.
type SourceBuffer struct {
	file string
	text string

	// lineStarts[i] is the byte offset of the first character of line i+1.
	// lineStarts[0] is always 0.
	lineStarts []int
}

// NewSourceBuffer builds a buffer over the given text, scanning it once to
// index line starts.
func NewSourceBuffer(file, text string) *SourceBuffer {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceBuffer{file: file, text: text, lineStarts: starts}
}

// File returns the file name the buffer was constructed with.
func (b *SourceBuffer) File() string { return b.file }

// Text returns the full source text.
func (b *SourceBuffer) Text() string { return b.text }

// Len returns the length of the source in bytes.
func (b *SourceBuffer) Len() int { return len(b.text) }

// Slice returns the substring covered by the span. The span must be valid
// for this buffer.
func (b *SourceBuffer) Slice(s Span) string {
	return b.text[s.Start:s.End]
}

// NumLines returns the number of lines in the buffer. An empty buffer has
// one (empty) line.
func (b *SourceBuffer) NumLines() int { return len(b.lineStarts) }

// Position resolves a byte offset to a 1-based line and column. Offsets past
// the end of the buffer resolve to the position just past the last character.
func (b *SourceBuffer) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}
	// binary search for the last line start <= offset
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
	col := 1 + utf8.RuneCountInString(b.text[b.lineStarts[i]:offset])
	return Position{Line: i + 1, Column: col}
}

// Offset converts a 1-based line and column back to a byte offset.
// It returns an error if the line does not exist or the column runs past the
// end of the line.
func (b *SourceBuffer) Offset(line, column int) (int, error) {
	if line < 1 || line > len(b.lineStarts) {
		return 0, fmt.Errorf("line %d out of range [1,%d]", line, len(b.lineStarts))
	}
	off := b.lineStarts[line-1]
	end := len(b.text)
	if line < len(b.lineStarts) {
		end = b.lineStarts[line] // include the newline itself
	}
	for col := 1; col < column; col++ {
		if off >= end {
			return 0, fmt.Errorf("column %d out of range on line %d", column, line)
		}
		_, size := utf8.DecodeRuneInString(b.text[off:])
		off += size
	}
	return off, nil
}

// ValidSpan reports whether the span lies within the buffer and both ends
// fall on UTF-8 character boundaries.
func (b *SourceBuffer) ValidSpan(s Span) bool {
	if s.Start < 0 || s.Start > s.End || s.End > len(b.text) {
		return false
	}
	return b.onRuneBoundary(s.Start) && b.onRuneBoundary(s.End)
}

func (b *SourceBuffer) onRuneBoundary(offset int) bool {
	if offset == 0 || offset == len(b.text) {
		return true
	}
	return utf8.RuneStart(b.text[offset])
}

// Line returns the text of the given 1-based line without its trailing
// newline. Out-of-range lines return "".
func (b *SourceBuffer) Line(line int) string {
	if line < 1 || line > len(b.lineStarts) {
		return ""
	}
	start := b.lineStarts[line-1]
	end := len(b.text)
	if line < len(b.lineStarts) {
		end = b.lineStarts[line] - 1 // strip '\n'
	}
	if end < start {
		end = start
	}
	return b.text[start:end]
}
