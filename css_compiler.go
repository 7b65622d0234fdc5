package chtl

import (
	"strings"

	"github.com/dpotapov/go-chtl/comment"
	"github.com/dpotapov/go-chtl/diag"
	"github.com/dpotapov/go-chtl/scanner"
)

// cssCompiler is the CSS back end. The CSS grammar itself is an external
// collaborator; this compiler validates brace balance, strips developer
// comments and passes the text through to the style accumulator.
type cssCompiler struct {
	debug bool
}

func newCSSCompiler() *cssCompiler { return &cssCompiler{} }

func (c *cssCompiler) Name() string        { return "css" }
func (c *cssCompiler) Reset()              {}
func (c *cssCompiler) SetDebug(debug bool) { c.debug = debug }

func (c *cssCompiler) Compile(frag *scanner.Fragment) Result {
	return c.compileText(frag.Content)
}

func (c *cssCompiler) CompileFragments(frags []*scanner.Fragment) Result {
	var parts []string
	res := Result{Success: true}
	for _, f := range frags {
		r := c.compileText(f.Content)
		res.Diagnostics = append(res.Diagnostics, r.Diagnostics...)
		if !r.Success {
			res.Success = false
		}
		if r.Output != "" {
			parts = append(parts, r.Output)
		}
	}
	res.Output = strings.Join(parts, "\n")
	return res
}

func (c *cssCompiler) compileText(css string) Result {
	res := Result{Success: true}

	if depth := cssBraceBalance(css); depth != 0 {
		res.Success = false
		res.Diagnostics = append(res.Diagnostics, diag.Diagnostic{
			Level: diag.Error, Kind: diag.Lexical,
			Message: "unbalanced braces in style block",
		})
	}

	parser := comment.NewParser(nil)
	res.Output = strings.TrimSpace(parser.StripForms(css, comment.MultiLine, comment.CSS))
	return res
}

// cssBraceBalance returns the net curly depth of the text, ignoring braces
// inside strings and comments.
func cssBraceBalance(css string) int {
	depth := 0
	for i := 0; i < len(css); i++ {
		switch css[i] {
		case '"', '\'':
			quote := css[i]
			for i++; i < len(css); i++ {
				if css[i] == '\\' {
					i++
					continue
				}
				if css[i] == quote {
					break
				}
			}
		case '/':
			if i+1 < len(css) && css[i+1] == '*' {
				if end := strings.Index(css[i+2:], "*/"); end >= 0 {
					i += end + 3
				} else {
					i = len(css)
				}
			}
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth
}
