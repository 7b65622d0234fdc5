package comment

import (
	"sort"
	"strings"

	"github.com/dpotapov/go-chtl/scanner"
)

// Parser extracts comments from source text. Extraction runs four scans
// (single-line, multi-line, html, generator) and filters out matches inside
// string literals and `[Origin]` bodies.
type Parser struct {
	// InsideOrigin reports whether an offset lies within an origin body.
	// When nil, no origin filtering is applied.
	InsideOrigin func(offset int) bool
}

// NewParser builds a parser with origin filtering driven by the given
// detector. A nil detector disables origin filtering.
func NewParser(origins *scanner.OriginDetector) *Parser {
	p := &Parser{}
	if origins != nil {
		p.InsideOrigin = origins.InsideOrigin
	}
	return p
}

// Extracted pairs a comment with its position.
type Extracted struct {
	Node Node
	Pos  Position
}

// Extract returns all comments in the code, sorted by start offset.
func (p *Parser) Extract(code string) []Extracted {
	var out []Extracted
	out = append(out, p.scanLinePrefix(code, "//", SingleLine)...)
	out = append(out, p.scanMultiLine(code)...)
	out = append(out, p.scanHTML(code)...)
	out = append(out, p.scanGenerator(code)...)
	sort.Slice(out, func(i, j int) bool { return out[i].Pos.Start < out[j].Pos.Start })
	return out
}

// Strip returns the code with all developer comments removed. Generator
// comments and passthrough regions survive.
func (p *Parser) Strip(code string) string {
	return p.strip(p.Extract(code), code)
}

// StripForms removes only the given comment forms from the code. Callers in
// CSS and JS contexts use it so that `--` never counts as a comment there.
func (p *Parser) StripForms(code string, forms ...Type) string {
	var filtered []Extracted
	for _, e := range p.Extract(code) {
		for _, f := range forms {
			if e.Node.Type == f {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return p.strip(filtered, code)
}

func (p *Parser) strip(extracted []Extracted, code string) string {
	if len(extracted) == 0 {
		return code
	}
	var b strings.Builder
	last := 0
	for _, e := range extracted {
		if e.Node.Type == Generator {
			continue
		}
		if e.Pos.Start < last {
			continue // overlapping match already removed
		}
		b.WriteString(code[last:e.Pos.Start])
		last = e.Pos.End
	}
	b.WriteString(code[last:])
	return b.String()
}

func (p *Parser) keep(code string, start int) bool {
	if insideString(code, start) {
		return false
	}
	if p.InsideOrigin != nil && p.InsideOrigin(start) {
		return false
	}
	return true
}

func (p *Parser) scanLinePrefix(code, prefix string, typ Type) []Extracted {
	var out []Extracted
	for i := 0; i+len(prefix) <= len(code); i++ {
		if code[i:i+len(prefix)] != prefix {
			continue
		}
		if !p.keep(code, i) {
			continue
		}
		end := strings.IndexByte(code[i:], '\n')
		if end < 0 {
			end = len(code)
		} else {
			end += i
		}
		raw := code[i:end]
		out = append(out, Extracted{
			Node: Parse(raw, false),
			Pos:  Position{Start: i, End: end, Line: lineAt(code, i)},
		})
		i = end
	}
	return out
}

func (p *Parser) scanMultiLine(code string) []Extracted {
	var out []Extracted
	for i := 0; i+1 < len(code); i++ {
		if code[i] != '/' || code[i+1] != '*' {
			continue
		}
		if !p.keep(code, i) {
			continue
		}
		end := strings.Index(code[i+2:], "*/")
		if end < 0 {
			end = len(code)
		} else {
			end += i + 4
		}
		raw := code[i:end]
		out = append(out, Extracted{
			Node: Parse(raw, false),
			Pos:  Position{Start: i, End: end, Line: lineAt(code, i)},
		})
		i = end - 1
	}
	return out
}

func (p *Parser) scanHTML(code string) []Extracted {
	var out []Extracted
	for i := 0; i+3 < len(code); i++ {
		if code[i:i+4] != "<!--" {
			continue
		}
		if !p.keep(code, i) {
			continue
		}
		end := strings.Index(code[i+4:], "-->")
		if end < 0 {
			end = len(code)
		} else {
			end += i + 7
		}
		raw := code[i:end]
		out = append(out, Extracted{
			Node: Parse(raw, false),
			Pos:  Position{Start: i, End: end, Line: lineAt(code, i)},
		})
		i = end - 1
	}
	return out
}

// scanGenerator finds `--` line comments. Only a `--` at the start of a line
// (after optional whitespace) counts, so one directly following an
// identifier does not; a line-start `--` inside a block comment is still
// reported.
func (p *Parser) scanGenerator(code string) []Extracted {
	var out []Extracted
	for i := 0; i+1 < len(code); i++ {
		if code[i] != '-' || code[i+1] != '-' {
			continue
		}
		// only at line start (modulo whitespace)
		if !atLineStart(code, i) {
			continue
		}
		if i+2 < len(code) && code[i+2] == '-' {
			continue // part of a longer dash run
		}
		if !p.keep(code, i) {
			continue
		}
		end := strings.IndexByte(code[i:], '\n')
		if end < 0 {
			end = len(code)
		} else {
			end += i
		}
		raw := code[i:end]
		out = append(out, Extracted{
			Node: Parse(raw, false),
			Pos:  Position{Start: i, End: end, Line: lineAt(code, i)},
		})
		i = end
	}
	return out
}

// insideString reports whether the offset falls inside a quoted literal.
func insideString(code string, offset int) bool {
	inString := false
	var quote byte
	for i := 0; i < offset && i < len(code); i++ {
		ch := code[i]
		if inString {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				inString = false
			}
			continue
		}
		if ch == '"' || ch == '\'' || ch == '`' {
			inString = true
			quote = ch
		}
	}
	return inString
}

func atLineStart(code string, offset int) bool {
	for i := offset - 1; i >= 0; i-- {
		switch code[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

func lineAt(code string, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(code); i++ {
		if code[i] == '\n' {
			line++
		}
	}
	return line
}
