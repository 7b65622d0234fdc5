package chtljs

import (
	"fmt"
	"strings"

	"github.com/dpotapov/go-chtl/diag"
)

// Metadata records what a translation used, for cross-referencing by the
// dispatcher.
type Metadata struct {
	Selectors []string
	Builtins  []string
}

// Translator rewrites CHTL-JS fragments into plain JavaScript. It is
// stateful across the fragments of one script block: an enhanced selector
// stays pending until the arrow chain that consumes it arrives.
type Translator struct {
	file  string
	diags *diag.Collector

	// pending is the translated expression an upcoming `->` chains onto.
	pending string
	// pendingSel is the raw CSS selector behind pending, for delegate.
	pendingSel string

	meta Metadata
}

// NewTranslator builds a translator for one script block.
func NewTranslator(file string, dc *diag.Collector) *Translator {
	return &Translator{file: file, diags: dc}
}

// Metadata returns what the translator used so far.
func (t *Translator) Metadata() Metadata { return t.meta }

// Reset clears all state.
func (t *Translator) Reset() {
	t.pending = ""
	t.pendingSel = ""
	t.meta = Metadata{}
}

// Translate rewrites one CHTL-JS fragment. The result may be empty while a
// selector is held pending for the next arrow fragment.
func (t *Translator) Translate(content string) string {
	trimmed := strings.TrimSpace(content)
	switch {
	case strings.HasPrefix(trimmed, "{{"):
		out := t.flush()
		expr, sel := t.selectorExpr(trimmed)
		t.pending = expr
		t.pendingSel = sel
		return out
	case strings.HasPrefix(trimmed, "->"):
		return t.arrow(trimmed)
	case strings.HasPrefix(trimmed, "vir"):
		return t.flush() + t.vir(trimmed)
	}
	t.errorf("unrecognized CHTL-JS form %q", clip(trimmed))
	return t.flush() + content
}

// PassThrough emits plain JavaScript, flushing any pending selector first.
func (t *Translator) PassThrough(js string) string {
	return t.flush() + js
}

// Finish flushes a trailing pending selector at the end of a script block.
func (t *Translator) Finish() string {
	out := t.flush()
	if out != "" {
		out += ";"
	}
	return out
}

func (t *Translator) flush() string {
	out := t.pending
	t.pending = ""
	t.pendingSel = ""
	return out
}

// selectorExpr turns a `{{...}}` form into a DOM query expression and
// returns it with the raw CSS selector.
func (t *Translator) selectorExpr(src string) (expr, sel string) {
	var (
		b       strings.Builder
		index   = -1
		prevEnd = -1
	)
	lx := NewLexer(t.file, src, t.diags)
	for {
		tok := lx.Next()
		if tok.Kind == TokEOF || tok.Kind == TokSelectorEnd {
			break
		}
		switch tok.Kind {
		case TokSelectorStart:
			continue
		case TokSelectorClass, TokSelectorID, TokSelectorTag:
			// adjacency in the source distinguishes compound selectors
			// (div.box) from descendant ones (div .box)
			if prevEnd >= 0 && tok.Offset > prevEnd {
				b.WriteByte(' ')
			}
			b.WriteString(tok.Raw)
			prevEnd = tok.Offset + len(tok.Raw)
		case TokSelectorIndex:
			fmt.Sscanf(tok.Raw, "[%d]", &index)
			prevEnd = tok.Offset + len(tok.Raw)
		}
	}
	sel = b.String()
	if sel == "" {
		t.errorf("empty selector")
		sel = "*"
	}
	t.meta.Selectors = append(t.meta.Selectors, sel)
	if index >= 0 {
		return fmt.Sprintf("document.querySelectorAll('%s')[%d]", sel, index), sel
	}
	return fmt.Sprintf("document.querySelector('%s')", sel), sel
}

// arrow rewrites a `->name(args)` fragment against the pending target.
func (t *Translator) arrow(src string) string {
	rest := strings.TrimPrefix(src, "->")
	name := rest
	args := ""
	if i := strings.IndexByte(rest, '('); i >= 0 {
		name = rest[:i]
		args = rest[i:]
	}
	name = strings.TrimSpace(name)

	target := t.pending
	targetSel := t.pendingSel
	t.pending = ""
	t.pendingSel = ""
	if target == "" {
		t.errorf("'->%s' without a preceding selector", name)
		target = "document"
	}

	switch name {
	case "listen":
		t.meta.Builtins = append(t.meta.Builtins, "listen")
		return t.emitListen(target, args)
	case "delegate":
		t.meta.Builtins = append(t.meta.Builtins, "delegate")
		return t.emitDelegate(target, args)
	case "animate":
		t.meta.Builtins = append(t.meta.Builtins, "animate")
		return t.emitAnimate(target, args)
	}

	// plain method or property access chains back onto pending
	t.pending = target + "." + name + args
	t.pendingSel = targetSel
	return ""
}

// emitListen expands listen({event: handler, ...}) into addEventListener
// calls, one per event.
func (t *Translator) emitListen(target, args string) string {
	pairs := parseObjectArg(args)
	if pairs == nil {
		t.errorf("listen expects an object literal")
		return target + ".addEventListener" + args
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s.addEventListener('%s', %s)", target, p.key, p.value)
		if i < len(pairs)-1 {
			b.WriteString(";")
		}
	}
	return b.String()
}

// emitDelegate expands delegate({target: {{child}}, event: handler, ...})
// into a delegation wrapper on the pending element.
func (t *Translator) emitDelegate(parent, args string) string {
	pairs := parseObjectArg(args)
	if pairs == nil {
		t.errorf("delegate expects an object literal")
		return parent + ".addEventListener" + args
	}
	childSel := ""
	var events []objectPair
	for _, p := range pairs {
		if p.key == "target" {
			childSel = rawSelector(p.value)
			continue
		}
		events = append(events, p)
	}
	if childSel == "" {
		t.errorf("delegate requires a target selector")
		childSel = "*"
	}
	var b strings.Builder
	for i, ev := range events {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b,
			"%s.addEventListener('%s', function(e) { var m = e.target.closest('%s'); if (m) { (%s).call(m, e); } })",
			parent, ev.key, childSel, ev.value)
		if i < len(events)-1 {
			b.WriteString(";")
		}
	}
	return b.String()
}

// emitAnimate expands animate({...}) into a requestAnimationFrame loop over
// the pending element.
func (t *Translator) emitAnimate(target, args string) string {
	opts := strings.TrimSpace(args)
	opts = strings.TrimPrefix(opts, "(")
	opts = strings.TrimSuffix(opts, ")")
	if opts == "" {
		opts = "{}"
	}
	return fmt.Sprintf(`(function(el) {
var opts = %s;
var start = null;
function step(ts) {
if (start === null) { start = ts; }
var progress = ts - start;
if (opts.step) { opts.step(el, progress); }
if (!opts.duration || progress < opts.duration) {
requestAnimationFrame(step);
} else if (opts.done) {
opts.done(el);
}
}
requestAnimationFrame(step);
})(%s)`, opts, target)
}

// vir rewrites `vir name = expr;` into a const declaration, translating any
// embedded selectors in the initializer.
func (t *Translator) vir(src string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(src), "vir"))
	body := strings.TrimSuffix(rest, ";")
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		t.errorf("vir declaration without initializer")
		return "const " + body + ";"
	}
	name := strings.TrimSpace(body[:eq])
	init := strings.TrimSpace(body[eq+1:])
	return fmt.Sprintf("const %s = %s;", name, t.rewriteEmbedded(init))
}

// rewriteEmbedded replaces `{{sel}}` occurrences inside plain JS text with
// query expressions.
func (t *Translator) rewriteEmbedded(js string) string {
	var b strings.Builder
	for {
		i := strings.Index(js, "{{")
		if i < 0 {
			b.WriteString(js)
			return b.String()
		}
		j := strings.Index(js[i:], "}}")
		if j < 0 {
			b.WriteString(js)
			return b.String()
		}
		b.WriteString(js[:i])
		expr, _ := t.selectorExpr(js[i : i+j+2])
		b.WriteString(expr)
		js = js[i+j+2:]
	}
}

// rawSelector extracts the CSS selector from a `{{sel}}` value, or returns
// the value stripped of quotes.
func rawSelector(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "{{") && strings.HasSuffix(v, "}}") {
		return strings.TrimSpace(v[2 : len(v)-2])
	}
	return strings.Trim(v, `"'`)
}

type objectPair struct {
	key   string
	value string
}

// parseObjectArg splits `({k: v, ...})` into key/value pairs at brace depth
// zero. It returns nil when args is not an object literal call.
func parseObjectArg(args string) []objectPair {
	s := strings.TrimSpace(args)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil
	}
	s = s[1 : len(s)-1]

	var pairs []objectPair
	for _, part := range splitTopLevel(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ci := indexTopLevel(part, ':')
		if ci < 0 {
			continue
		}
		key := strings.Trim(strings.TrimSpace(part[:ci]), `"'`)
		value := strings.TrimSpace(part[ci+1:])
		pairs = append(pairs, objectPair{key: key, value: value})
	}
	return pairs
}

// splitTopLevel splits s on sep at nesting depth zero, honoring (){}[] and
// string literals.
func splitTopLevel(s string, sep byte) []string {
	var (
		out   []string
		depth int
		last  int
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case '"', '\'', '`':
			i = skipString(s, i)
		case sep:
			if depth == 0 {
				out = append(out, s[last:i])
				last = i + 1
			}
		}
	}
	out = append(out, s[last:])
	return out
}

// indexTopLevel returns the first index of sep at depth zero, or -1.
func indexTopLevel(s string, sep byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case '"', '\'', '`':
			i = skipString(s, i)
		case sep:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// skipString returns the index of the closing quote of the string starting
// at i, or the last index of s.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == '\\' {
			j++
			continue
		}
		if s[j] == quote {
			return j
		}
	}
	return len(s) - 1
}

func (t *Translator) errorf(format string, args ...any) {
	if t.diags == nil {
		return
	}
	t.diags.Errorf(diag.Syntax, diag.Pos{File: t.file}, format, args...)
}

func clip(s string) string {
	if len(s) > 30 {
		return s[:30] + "..."
	}
	return s
}
