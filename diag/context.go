package diag

import (
	"fmt"
	"strings"
)

// SourceLine is one line of source surrounding a diagnostic.
type SourceLine struct {
	Number  int
	Text    string
	IsError bool
}

// SourceContext extracts the lines around the diagnostic's position from the
// raw source text, with contextLines lines before and after. It returns nil
// when the diagnostic carries no position.
func SourceContext(source string, d Diagnostic, contextLines int) []SourceLine {
	if d.Pos.Line <= 0 {
		return nil
	}
	lines := strings.Split(source, "\n")

	start := d.Pos.Line - contextLines
	if start < 1 {
		start = 1
	}
	end := d.Pos.Line + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	var out []SourceLine
	for i := start; i <= end; i++ {
		text := ""
		if i-1 < len(lines) {
			text = lines[i-1]
		}
		out = append(out, SourceLine{Number: i, Text: text, IsError: i == d.Pos.Line})
	}
	return out
}

// FormatContext renders the source context with a caret marker under the
// error column, suitable for CLI output.
func FormatContext(source string, d Diagnostic, contextLines int) string {
	ctx := SourceContext(source, d, contextLines)
	if ctx == nil {
		return ""
	}
	var b strings.Builder
	for _, line := range ctx {
		fmt.Fprintf(&b, "%5d | %s\n", line.Number, line.Text)
		if line.IsError && d.Pos.Column > 0 {
			fmt.Fprintf(&b, "      | %s^\n", strings.Repeat(" ", d.Pos.Column-1))
		}
	}
	return b.String()
}
