package chtl

import (
	"strings"

	"github.com/dpotapov/go-chtl/chtljs"
	"github.com/dpotapov/go-chtl/diag"
	"github.com/dpotapov/go-chtl/scanner"
)

// chtljsCompiler adapts the chtljs translator to the SubCompiler boundary.
// It is invoked per script block so that a selector pending at a fragment
// boundary chains onto the arrow access that follows it. Plain JavaScript
// fragments between the CHTL-JS constructs run through the shared JS back
// end before passing through the translator.
type chtljsCompiler struct {
	file  string
	js    *jsCompiler
	debug bool
}

func newChtlJSCompiler(file string, js *jsCompiler) *chtljsCompiler {
	if js == nil {
		js = newJSCompiler()
	}
	return &chtljsCompiler{file: file, js: js}
}

func (c *chtljsCompiler) Name() string        { return "chtl-js" }
func (c *chtljsCompiler) Reset()              {}
func (c *chtljsCompiler) SetDebug(debug bool) { c.debug = debug }

func (c *chtljsCompiler) Compile(frag *scanner.Fragment) Result {
	return c.CompileFragments([]*scanner.Fragment{frag})
}

// CompileFragments translates the interleaved ChtlJS/JavaScript fragments of
// one script block. Fragment order is source order; output order follows it.
func (c *chtljsCompiler) CompileFragments(frags []*scanner.Fragment) Result {
	dc := &diag.Collector{}
	tr := chtljs.NewTranslator(c.file, dc)

	var b strings.Builder
	for _, f := range frags {
		switch f.Kind {
		case scanner.KindChtlJS:
			b.WriteString(tr.Translate(f.Content))
		case scanner.KindJavaScript:
			r := c.js.Compile(f)
			b.WriteString(tr.PassThrough(r.Output))
		}
	}
	b.WriteString(tr.Finish())

	meta := tr.Metadata()
	return Result{
		Success:     !dc.HasErrors(),
		Output:      b.String(),
		Diagnostics: dc.All(),
		Metadata: Metadata{
			EnhancedSelectors: meta.Selectors,
			BuiltinFunctions:  meta.Builtins,
		},
	}
}
