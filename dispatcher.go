package chtl

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dpotapov/go-chtl/chtljs"
	"github.com/dpotapov/go-chtl/diag"
	"github.com/dpotapov/go-chtl/lexer"
	"github.com/dpotapov/go-chtl/names"
	"github.com/dpotapov/go-chtl/scanner"
)

// Dispatcher drives one compilation: it runs the unified scanner, routes
// every fragment to the sub-compiler matching its kind, and assembles the
// accumulated CSS and JS into the emitted HTML.
//
// Routing policy:
//   - Chtl, Html and Text fragments accumulate and compile in one batch;
//     the CHTL back end must see the whole document to resolve templates,
//     customs and configuration.
//   - Css and JavaScript fragments (always `[Origin]` bodies at the top
//     level) accumulate per target location verbatim; origin interiors are
//     never rewritten. The CSS/JS back ends only process non-origin bodies:
//     carved local styles for validation, script-block code via the CHTL-JS
//     pipeline.
//   - ChtlJS fragments compile per script block so the output lands next to
//     the right element.
//   - Comment fragments pass through the comment system: generator comments
//     join the CHTL batch, developer comments are dropped.
type Dispatcher struct {
	file string
	cfg  *names.Config

	modulePaths []string
	debug       bool
	logger      *slog.Logger

	chtl   *chtlCompiler
	css    *cssCompiler
	js     *jsCompiler
	chtljs *chtljsCompiler
}

// NewDispatcher builds a dispatcher for one input file.
func NewDispatcher(file string) *Dispatcher {
	cfg := names.NewConfig()
	js := newJSCompiler()
	return &Dispatcher{
		file:   file,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		chtl:   newChtlCompiler(file, cfg),
		css:    newCSSCompiler(),
		js:     js,
		chtljs: newChtlJSCompiler(file, js),
	}
}

// SetModulePaths replaces the module search path handed to the import
// subsystem.
func (d *Dispatcher) SetModulePaths(paths []string) {
	d.modulePaths = append([]string(nil), paths...)
}

// AddModulePath appends one module search directory.
func (d *Dispatcher) AddModulePath(path string) {
	d.modulePaths = append(d.modulePaths, path)
}

// ModulePaths returns the configured module search path.
func (d *Dispatcher) ModulePaths() []string { return d.modulePaths }

// SetDebug propagates the debug flag to every component.
func (d *Dispatcher) SetDebug(debug bool) {
	d.debug = debug
	d.chtl.SetDebug(debug)
	d.css.SetDebug(debug)
	d.js.SetDebug(debug)
	d.chtljs.SetDebug(debug)
}

// SetLogger replaces the trace logger used in debug mode.
func (d *Dispatcher) SetLogger(l *slog.Logger) {
	if l != nil {
		d.logger = l
	}
}

// Reset prepares the dispatcher for another compilation of the same file.
func (d *Dispatcher) Reset() {
	d.chtl.Reset()
	d.css.Reset()
	d.js.Reset()
	d.chtljs.Reset()
}

// Dispatch compiles the source buffer. The returned result carries the
// merged HTML document; Success is false when any error-level diagnostic was
// recorded, in which case Output must not be written out.
func (d *Dispatcher) Dispatch(buf *scanner.SourceBuffer) Result {
	dc := &diag.Collector{}

	sc := scanner.NewUnifiedScanner(buf, dc)
	sc.SetDebug(d.debug)
	sc.SetLogger(d.logger)
	top := sc.Scan()
	arena := sc.Arena()

	var (
		batch     []*scanner.Fragment
		cssParts  []string
		jsParts   []string
		meta      Metadata
		fatalStop bool
	)

	appendResult := func(r Result) {
		for _, dg := range r.Diagnostics {
			dc.Add(dg)
			if dg.Level == diag.Fatal {
				fatalStop = true
			}
		}
		meta.merge(r.Metadata)
	}

	for _, id := range top {
		if fatalStop {
			break
		}
		frag := arena.Get(id)
		if d.debug {
			d.logger.Debug("dispatch", "fragment", scanner.DumpFragment(frag, buf))
		}

		switch frag.Kind {
		case scanner.KindChtl:
			d.attachTokens(sc.Arena(), id)
			batch = append(batch, d.prepareChtlFragment(sc, id))
			// carved local style bodies go through the CSS back end for
			// validation; the rule text itself is generated structurally,
			// tied to the auto class
			for _, cid := range frag.Children {
				child := arena.Get(cid)
				if child.Kind == scanner.KindCSS {
					r := d.css.Compile(child)
					appendResult(Result{Success: r.Success, Diagnostics: r.Diagnostics})
				}
			}
			// script-block children compile per parent fragment, keeping
			// translator state scoped to the element's scripts
			if js, r := d.compileScriptChildren(arena, frag); js != "" || len(r.Diagnostics) > 0 {
				appendResult(r)
				if js != "" {
					jsParts = append(jsParts, js)
				}
			}

		case scanner.KindHTML, scanner.KindText:
			if name, typ, ok := d.namedOrigin(sc, frag); ok {
				d.chtl.RegisterOrigin(name, typ, frag.Content)
				continue
			}
			batch = append(batch, frag)

		case scanner.KindCSS:
			if name, typ, ok := d.namedOrigin(sc, frag); ok {
				d.chtl.RegisterOrigin(name, typ, frag.Content)
				continue
			}
			// top-level Css fragments are `[Origin]` bodies: they reach the
			// style accumulator byte-for-byte, comments included
			cssParts = append(cssParts, frag.Content)

		case scanner.KindJavaScript:
			if name, typ, ok := d.namedOrigin(sc, frag); ok {
				d.chtl.RegisterOrigin(name, typ, frag.Content)
				continue
			}
			// same verbatim treatment as `@Html` origins
			jsParts = append(jsParts, frag.Content)

		case scanner.KindChtlJS:
			r := d.chtljs.Compile(frag)
			appendResult(r)
			if r.Output != "" {
				jsParts = append(jsParts, r.Output)
			}

		case scanner.KindComment:
			// generator comments join the CHTL batch; developer comments
			// are dropped from output
			if strings.HasPrefix(frag.Content, "--") {
				batch = append(batch, frag)
			}

		default:
			p := buf.Position(frag.Span.Start)
			dc.Errorf(diag.Lexical,
				diag.Pos{File: buf.File(), Line: p.Line, Column: p.Column},
				"unclassifiable fragment")
		}
	}

	var html string
	if !fatalStop {
		r := d.chtl.CompileFragments(batch)
		appendResult(r)
		html = r.Output
	}

	css := append(d.chtl.TakeCSS(), cssParts...)
	js := append(d.chtl.TakeJS(), jsParts...)

	out := Merge(MergeInput{
		HTML: html,
		CSS:  strings.Join(css, "\n"),
		JS:   strings.Join(js, "\n"),
	})

	return Result{
		Success:     !dc.HasErrors(),
		Output:      out,
		Diagnostics: dc.All(),
		Metadata:    meta,
	}
}

// prepareChtlFragment blanks the carved-out script bodies of a CHTL wrapper
// fragment so the structural pass sees empty blocks where the CHTL-JS
// pipeline already took over. Newlines survive so line accounting holds.
func (d *Dispatcher) prepareChtlFragment(sc *scanner.UnifiedScanner, id scanner.FragmentID) *scanner.Fragment {
	arena := sc.Arena()
	frag := arena.Get(id)
	if len(frag.Children) == 0 {
		return frag
	}

	blanked := []byte(frag.Content)
	changed := false
	for _, cid := range frag.Children {
		child := arena.Get(cid)
		if child.Kind != scanner.KindChtlJS && child.Kind != scanner.KindJavaScript {
			continue
		}
		start := child.Span.Start - frag.Span.Start
		end := child.Span.End - frag.Span.Start
		if start < 0 || end > len(blanked) {
			continue
		}
		for i := start; i < end; i++ {
			if blanked[i] != '\n' {
				blanked[i] = ' '
			}
		}
		changed = true
	}
	if !changed {
		return frag
	}
	copyFrag := *frag
	copyFrag.Content = string(blanked)
	return &copyFrag
}

// compileScriptChildren translates the ChtlJS/JavaScript children of one
// CHTL wrapper fragment through the CHTL-JS compiler.
func (d *Dispatcher) compileScriptChildren(arena *scanner.Arena, frag *scanner.Fragment) (string, Result) {
	var scriptFrags []*scanner.Fragment
	for _, cid := range frag.Children {
		child := arena.Get(cid)
		if child.Kind == scanner.KindChtlJS || child.Kind == scanner.KindJavaScript {
			scriptFrags = append(scriptFrags, child)
		}
	}
	if len(scriptFrags) == 0 {
		return "", Result{Success: true}
	}
	r := d.chtljs.CompileFragments(scriptFrags)
	return r.Output, r
}

// attachTokens performs minimum-unit splitting: the CHTL wrapper fragment
// and its ChtlJS children get their lazy token lists from the matching
// lexers. CSS and JavaScript fragments stay unsplit; their back ends
// tokenize internally. Lexing here is only for inspection, so diagnostics
// go to a throwaway collector; the compile passes report the real ones.
func (d *Dispatcher) attachTokens(arena *scanner.Arena, id scanner.FragmentID) {
	scratch := &diag.Collector{}

	frag := arena.Get(id)
	frag.Tokens = lexer.New(d.file, frag.Content, d.cfg, scratch).Tokenize()

	for _, cid := range frag.Children {
		child := arena.Get(cid)
		if child.Kind != scanner.KindChtlJS {
			continue
		}
		child.Tokens = chtljs.NewLexer(d.file, child.Content, scratch).Tokenize()
	}
}

// namedOrigin reports whether the fragment is the body of a named `[Origin]`
// definition; named bodies are registered for reference resolution instead
// of being emitted at the definition site.
func (d *Dispatcher) namedOrigin(sc *scanner.UnifiedScanner, frag *scanner.Fragment) (name, typ string, ok bool) {
	for _, b := range sc.Origins().Blocks() {
		if b.IsRef || b.Name == "" {
			continue
		}
		if b.Inner == frag.Span {
			return b.Name, b.Type, true
		}
	}
	return "", "", false
}
