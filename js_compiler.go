package chtl

import (
	"strings"

	"github.com/dpotapov/go-chtl/comment"
	"github.com/dpotapov/go-chtl/scanner"
)

// jsCompiler is the plain-JavaScript back end. JS semantics belong to the
// external grammar; the compiler filters developer comments and passes the
// code through to the script accumulator.
type jsCompiler struct {
	debug bool
}

func newJSCompiler() *jsCompiler { return &jsCompiler{} }

func (c *jsCompiler) Name() string        { return "javascript" }
func (c *jsCompiler) Reset()              {}
func (c *jsCompiler) SetDebug(debug bool) { c.debug = debug }

func (c *jsCompiler) Compile(frag *scanner.Fragment) Result {
	parser := comment.NewParser(nil)
	out := parser.StripForms(frag.Content, comment.SingleLine, comment.MultiLine)
	return Result{Success: true, Output: strings.TrimSpace(out)}
}

func (c *jsCompiler) CompileFragments(frags []*scanner.Fragment) Result {
	var parts []string
	res := Result{Success: true}
	for _, f := range frags {
		r := c.Compile(f)
		res.Diagnostics = append(res.Diagnostics, r.Diagnostics...)
		if r.Output != "" {
			parts = append(parts, r.Output)
		}
	}
	res.Output = strings.Join(parts, "\n")
	return res
}
