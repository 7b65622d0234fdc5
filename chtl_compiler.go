package chtl

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/expr-lang/expr"

	"github.com/dpotapov/go-chtl/comment"
	"github.com/dpotapov/go-chtl/diag"
	"github.com/dpotapov/go-chtl/lexer"
	"github.com/dpotapov/go-chtl/names"
	"github.com/dpotapov/go-chtl/scanner"
)

// chtlCompiler is the CHTL structural back end: a recursive-descent parser
// over lexer tokens that builds the emitted HTML document as an etree and
// routes local style rules to the CSS accumulator.
//
// The CHTL batch must be compiled together: templates, customs and
// configuration blocks defined anywhere in the document resolve against uses
// anywhere else.
type chtlCompiler struct {
	file  string
	cfg   *names.Config
	debug bool

	classCounter int

	// css and js collect rules and code the structural pass produced, to be
	// drained into the dispatcher's accumulators.
	css []string
	js  []string

	meta Metadata

	styleTemplates map[string][]declaration
	elemTemplates  map[string][]lexer.Token
	varGroups      map[string]map[string]string

	// origins holds named `[Origin]` bodies registered by the dispatcher,
	// keyed by name.
	origins map[string]originBody

	// cgen re-encodes generator comments for the HTML output, escaping any
	// embedded comment terminator.
	cgen comment.Emitter

	rawBodies []string
}

type originBody struct {
	typ     string // canonical @Type
	content string
}

type declaration struct {
	prop  string
	value string
}

const rawPlaceholderPrefix = "chtl:raw:"

func newChtlCompiler(file string, cfg *names.Config) *chtlCompiler {
	c := &chtlCompiler{file: file, cfg: cfg}
	c.Reset()
	return c
}

func (c *chtlCompiler) Name() string        { return "chtl" }
func (c *chtlCompiler) SetDebug(debug bool) { c.debug = debug }

func (c *chtlCompiler) Reset() {
	cfg := c.cfg
	if cfg == nil {
		cfg = names.NewConfig()
	}
	*c = chtlCompiler{
		file:           c.file,
		cfg:            cfg,
		debug:          c.debug,
		styleTemplates: make(map[string][]declaration),
		elemTemplates:  make(map[string][]lexer.Token),
		varGroups:      make(map[string]map[string]string),
		origins:        make(map[string]originBody),
	}
}

// RegisterOrigin records a named `[Origin]` body for later references.
func (c *chtlCompiler) RegisterOrigin(name, typ, content string) {
	c.origins[name] = originBody{typ: typ, content: content}
}

// TakeCSS drains the style rules generated by the structural pass.
func (c *chtlCompiler) TakeCSS() []string {
	out := c.css
	c.css = nil
	return out
}

// TakeJS drains the raw script code routed through origin references.
func (c *chtlCompiler) TakeJS() []string {
	out := c.js
	c.js = nil
	return out
}

func (c *chtlCompiler) Compile(frag *scanner.Fragment) Result {
	return c.CompileFragments([]*scanner.Fragment{frag})
}

// CompileFragments parses the whole CHTL batch and generates the HTML
// document. Fragments of kind HTML interleave as raw passthrough; generator
// comments survive as HTML comments.
func (c *chtlCompiler) CompileFragments(frags []*scanner.Fragment) Result {
	dc := &diag.Collector{}

	toks := c.tokenStream(frags, dc)

	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	p := &chtlParser{c: c, toks: toks, diags: dc}
	p.parseItems(&doc.Element, lexer.EOF)

	html, err := doc.WriteToString()
	if err != nil {
		dc.Errorf(diag.Internal, diag.Pos{File: c.file}, "render document: %v", err)
	}
	html = c.substituteRaw(html)

	return Result{
		Success:     !dc.HasErrors(),
		Output:      strings.TrimSpace(html),
		Diagnostics: dc.All(),
		Metadata:    c.meta,
	}
}

// tokenStream lexes every CHTL fragment and splices raw-HTML and generator
// comment tokens between them, preserving source order.
func (c *chtlCompiler) tokenStream(frags []*scanner.Fragment, dc *diag.Collector) []lexer.Token {
	var toks []lexer.Token
	for _, f := range frags {
		switch f.Kind {
		case scanner.KindChtl, scanner.KindText:
			lx := lexer.New(c.file, f.Content, c.cfg, dc)
			for _, t := range lx.Tokenize() {
				if t.Kind == lexer.EOF {
					break
				}
				if t.Kind == lexer.SingleLineComment || t.Kind == lexer.MultiLineComment {
					continue // developer comments never reach the output
				}
				toks = append(toks, t)
			}
		case scanner.KindHTML:
			toks = append(toks, lexer.Token{Kind: lexer.RawHTML, Value: f.Content})
		case scanner.KindComment:
			if strings.HasPrefix(f.Content, "--") {
				text := strings.TrimSpace(strings.TrimPrefix(f.Content, "--"))
				toks = append(toks, lexer.Token{Kind: lexer.GeneratorComment, Value: text})
			}
		}
	}
	toks = append(toks, lexer.Token{Kind: lexer.EOF})
	return toks
}

// addRaw stores a passthrough body and returns the placeholder comment text
// that marks its position in the serialized document.
func (c *chtlCompiler) addRaw(content string) string {
	c.rawBodies = append(c.rawBodies, content)
	return fmt.Sprintf("%s%d", rawPlaceholderPrefix, len(c.rawBodies)-1)
}

// addGeneratorComment routes a generator comment through the comment system
// (which escapes embedded `-->` sequences) and returns the placeholder
// marking its position in the document.
func (c *chtlCompiler) addGeneratorComment(text string) string {
	emitted := c.cgen.Emit(comment.Node{Type: comment.Generator, Text: text}, comment.TargetHTML)
	return c.addRaw(emitted)
}

// substituteRaw replaces placeholder comments with their verbatim bodies.
func (c *chtlCompiler) substituteRaw(html string) string {
	for i, body := range c.rawBodies {
		marker := fmt.Sprintf("<!--%s%d-->", rawPlaceholderPrefix, i)
		html = strings.Replace(html, marker, body, 1)
	}
	return html
}

// nextClass generates an auto class name for a local style block.
func (c *chtlCompiler) nextClass(elem string) string {
	c.classCounter++
	name := fmt.Sprintf("chtl-%s-%d", elem, c.classCounter)
	c.meta.GeneratedClasses = append(c.meta.GeneratedClasses, name)
	return name
}

// evalValue evaluates a configuration value as a constant expression,
// falling back to the raw string when it is not one.
func evalValue(raw string) any {
	prog, err := expr.Compile(raw)
	if err != nil {
		return raw
	}
	out, err := expr.Run(prog, nil)
	if err != nil || out == nil {
		return raw
	}
	switch out.(type) {
	case int, int64, float64, bool, string:
		return out
	}
	return raw
}

// chtlParser walks a token stream and builds etree nodes under the current
// parent. Template replay creates nested parsers over the stored tokens.
type chtlParser struct {
	c     *chtlCompiler
	toks  []lexer.Token
	i     int
	diags *diag.Collector
}

func (p *chtlParser) cur() lexer.Token  { return p.toks[p.i] }
func (p *chtlParser) next() lexer.Token { t := p.toks[p.i]; p.i++; return t }

func (p *chtlParser) at(kind lexer.Kind) bool { return p.cur().Kind == kind }

func (p *chtlParser) expect(kind lexer.Kind) (lexer.Token, bool) {
	if p.at(kind) {
		return p.next(), true
	}
	p.errorAt(p.cur(), "expected %s, found %s", kind, p.cur().Kind)
	return p.cur(), false
}

func (p *chtlParser) errorAt(t lexer.Token, format string, args ...any) {
	p.diags.Errorf(diag.Syntax,
		diag.Pos{File: p.c.file, Line: t.Line, Column: t.Column},
		format, args...)
}

// parseItems parses document- or body-level items until the stop kind.
func (p *chtlParser) parseItems(parent *etree.Element, stop lexer.Kind) {
	for {
		t := p.cur()
		if t.Kind == stop || t.Kind == lexer.EOF {
			return
		}
		switch t.Kind {
		case lexer.RawHTML:
			p.next()
			parent.CreateComment(p.c.addRaw(t.StringValue()))
		case lexer.GeneratorComment:
			p.next()
			parent.CreateComment(p.c.addGeneratorComment(t.StringValue()))
		case lexer.KwTemplate, lexer.KwCustom:
			p.next()
			p.parseTemplateDef(t.Kind == lexer.KwCustom)
		case lexer.KwOrigin:
			p.next()
			p.parseOriginReference(parent)
		case lexer.KwImport:
			p.next()
			p.parseImport()
		case lexer.KwNamespace:
			p.next()
			p.parseNamespace(parent)
		case lexer.KwConfiguration:
			p.next()
			p.parseConfiguration()
		case lexer.KwText:
			p.next()
			p.parseTextBlock(parent)
		case lexer.HTMLElement, lexer.Ident:
			p.next()
			p.parseElement(parent, t)
		case lexer.Semicolon:
			p.next()
		default:
			p.errorAt(t, "unexpected %s", t.Kind)
			p.next()
		}
	}
}

// parseElement parses `name { body }` into an etree element.
func (p *chtlParser) parseElement(parent *etree.Element, nameTok lexer.Token) {
	name := nameTok.StringValue()
	if name == "" {
		name = nameTok.Raw
	}
	if nameTok.Kind == lexer.Ident && !names.IsHTMLElement(name) {
		p.diags.Warnf(diag.Semantic,
			diag.Pos{File: p.c.file, Line: nameTok.Line, Column: nameTok.Column},
			"unknown element %q", name)
	}
	if _, ok := p.expect(lexer.LeftBrace); !ok {
		return
	}
	el := parent.CreateElement(name)
	p.parseBody(el, name)
	p.expect(lexer.RightBrace)
}

// parseBody parses the inside of an element.
func (p *chtlParser) parseBody(el *etree.Element, elemName string) {
	for {
		t := p.cur()
		switch t.Kind {
		case lexer.RightBrace, lexer.EOF:
			return

		case lexer.KwText:
			p.next()
			p.parseTextBlock(el)

		case lexer.KwStyle:
			p.next()
			p.parseLocalStyle(el, elemName)

		case lexer.KwScript:
			p.next()
			p.parseLocalScript()

		case lexer.GeneratorComment:
			p.next()
			el.CreateComment(p.c.addGeneratorComment(t.StringValue()))

		case lexer.RawHTML:
			p.next()
			el.CreateComment(p.c.addRaw(t.StringValue()))

		case lexer.TypeElement:
			p.next()
			p.parseElementUse(el)

		case lexer.KwOrigin:
			p.next()
			p.parseOriginReference(el)

		case lexer.HTMLElement, lexer.Ident, lexer.CSSProperty:
			p.next()
			switch p.cur().Kind {
			case lexer.Colon, lexer.Equal:
				p.next()
				key := t.StringValue()
				if key == "" {
					key = t.Raw
				}
				value := p.valueString()
				if key == "id" {
					p.c.meta.GeneratedIDs = append(p.c.meta.GeneratedIDs, value)
				}
				el.CreateAttr(key, value)
				if p.at(lexer.Semicolon) {
					p.next()
				}
			case lexer.LeftBrace:
				p.parseElement(el, t)
			default:
				p.errorAt(t, "expected ':' or '{' after %q", t.Raw)
			}

		case lexer.Semicolon:
			p.next()

		default:
			p.errorAt(t, "unexpected %s in element body", t.Kind)
			p.next()
		}
	}
}

// parseTextBlock parses `text { ... }` into a text node.
func (p *chtlParser) parseTextBlock(parent *etree.Element) {
	if _, ok := p.expect(lexer.LeftBrace); !ok {
		return
	}
	var parts []string
	for !p.at(lexer.RightBrace) && !p.at(lexer.EOF) {
		t := p.next()
		switch t.Kind {
		case lexer.StringLit:
			parts = append(parts, t.StringValue())
		case lexer.NumberLit:
			parts = append(parts, strings.TrimSpace(t.Raw))
		default:
			parts = append(parts, t.Raw)
		}
	}
	p.expect(lexer.RightBrace)
	parent.CreateText(strings.Join(parts, " "))
}

// parseLocalStyle parses `style { ... }` attached to an element: plain
// declarations get an auto-generated class; nested selector rules are
// emitted as-is.
func (p *chtlParser) parseLocalStyle(el *etree.Element, elemName string) {
	if _, ok := p.expect(lexer.LeftBrace); !ok {
		return
	}
	decls, rules := p.parseStyleBody()
	p.expect(lexer.RightBrace)

	if len(decls) > 0 {
		class := p.c.nextClass(elemName)
		if attr := el.SelectAttr("class"); attr != nil {
			attr.Value += " " + class
		} else {
			el.CreateAttr("class", class)
		}
		p.c.css = append(p.c.css, formatRule("."+class, decls))
	}
	p.c.css = append(p.c.css, rules...)
}

// parseStyleBody reads declarations and nested rules until the closing
// brace, which is left unconsumed.
func (p *chtlParser) parseStyleBody() ([]declaration, []string) {
	var (
		decls []declaration
		rules []string
	)
	for {
		t := p.cur()
		switch t.Kind {
		case lexer.RightBrace, lexer.EOF:
			return decls, rules

		case lexer.TypeStyle:
			p.next()
			decls = append(decls, p.spliceStyleTemplate()...)

		case lexer.KwInherit:
			p.next()
			if p.at(lexer.TypeStyle) {
				p.next()
				decls = append(decls, p.spliceStyleTemplate()...)
			} else {
				p.errorAt(t, "inherit expects @Style")
			}

		case lexer.CSSProperty, lexer.Ident, lexer.HTMLElement:
			// property or nested selector
			p.next()
			if p.at(lexer.Colon) {
				p.next()
				prop := t.StringValue()
				if prop == "" {
					prop = t.Raw
				}
				decls = append(decls, declaration{prop: prop, value: p.valueString()})
				if p.at(lexer.Semicolon) {
					p.next()
				}
				break
			}
			// selector: collect tokens until the rule body opens
			sel := t.Raw
			for !p.at(lexer.LeftBrace) && !p.at(lexer.EOF) {
				sel += p.next().Raw
			}
			if _, ok := p.expect(lexer.LeftBrace); !ok {
				return decls, rules
			}
			nested, nestedRules := p.parseStyleBody()
			p.expect(lexer.RightBrace)
			rules = append(rules, formatRule(sel, nested))
			rules = append(rules, nestedRules...)

		case lexer.Dot:
			// class selector rule
			p.next()
			sel := "."
			for !p.at(lexer.LeftBrace) && !p.at(lexer.EOF) {
				sel += p.next().Raw
			}
			if _, ok := p.expect(lexer.LeftBrace); !ok {
				return decls, rules
			}
			nested, nestedRules := p.parseStyleBody()
			p.expect(lexer.RightBrace)
			rules = append(rules, formatRule(sel, nested))
			rules = append(rules, nestedRules...)

		case lexer.Semicolon:
			p.next()

		default:
			p.errorAt(t, "unexpected %s in style block", t.Kind)
			p.next()
		}
	}
}

// spliceStyleTemplate resolves `@Style name;` inside a style body.
func (p *chtlParser) spliceStyleTemplate() []declaration {
	nameTok, ok := p.expect(lexer.Ident)
	if !ok {
		return nil
	}
	if p.at(lexer.Semicolon) {
		p.next()
	}
	name := nameTok.Raw
	decls, found := p.c.styleTemplates[name]
	if !found {
		p.errorAt(nameTok, "unknown style template %q", name)
		return nil
	}
	return decls
}

// parseLocalScript skips a script body. The dispatcher blanks the body text
// before the structural pass and compiles the carved-out fragments through
// the CHTL-JS pipeline, so nothing of value remains here.
func (p *chtlParser) parseLocalScript() {
	if _, ok := p.expect(lexer.LeftBrace); !ok {
		return
	}
	depth := 1
	for depth > 0 && !p.at(lexer.EOF) {
		switch p.next().Kind {
		case lexer.LeftBrace:
			depth++
		case lexer.RightBrace:
			depth--
		case lexer.DoubleLeftBrace:
			depth += 2
		case lexer.DoubleRightBrace:
			depth -= 2
		}
	}
}

// parseElementUse resolves `@Element name;` by replaying the stored
// template tokens under the current parent.
func (p *chtlParser) parseElementUse(parent *etree.Element) {
	nameTok, ok := p.expect(lexer.Ident)
	if !ok {
		return
	}
	if p.at(lexer.Semicolon) {
		p.next()
	}
	name := nameTok.Raw
	toks, found := p.c.elemTemplates[name]
	if !found {
		p.errorAt(nameTok, "unknown element template %q", name)
		return
	}
	sub := &chtlParser{c: p.c, toks: toks, diags: p.diags}
	sub.parseItems(parent, lexer.EOF)
}

// parseTemplateDef parses `[Template] @Kind name { ... }` (and `[Custom]`,
// which shares the definition form).
func (p *chtlParser) parseTemplateDef(custom bool) {
	typ := p.next()
	nameTok, ok := p.expect(lexer.Ident)
	if !ok {
		return
	}
	name := nameTok.Raw
	if _, ok := p.expect(lexer.LeftBrace); !ok {
		return
	}

	switch typ.Kind {
	case lexer.TypeStyle:
		decls, _ := p.parseStyleBody()
		p.expect(lexer.RightBrace)
		if _, dup := p.c.styleTemplates[name]; dup && !custom {
			p.errorAt(nameTok, "style template %q redefined", name)
		}
		p.c.styleTemplates[name] = decls

	case lexer.TypeElement:
		toks := p.captureBlock()
		if _, dup := p.c.elemTemplates[name]; dup && !custom {
			p.errorAt(nameTok, "element template %q redefined", name)
		}
		p.c.elemTemplates[name] = toks

	case lexer.TypeVar:
		group := make(map[string]string)
		for !p.at(lexer.RightBrace) && !p.at(lexer.EOF) {
			key := p.next()
			if key.Kind == lexer.Semicolon {
				continue
			}
			if _, ok := p.expect(lexer.Colon); !ok {
				break
			}
			group[keyString(key)] = p.valueString()
			if p.at(lexer.Semicolon) {
				p.next()
			}
		}
		p.expect(lexer.RightBrace)
		p.c.varGroups[name] = group

	default:
		p.errorAt(typ, "cannot define template of %s", typ.Kind)
		p.captureBlock()
	}
}

// captureBlock records the tokens of a brace-balanced block and consumes the
// closing brace. The opening brace has already been consumed.
func (p *chtlParser) captureBlock() []lexer.Token {
	var toks []lexer.Token
	depth := 1
	for !p.at(lexer.EOF) {
		t := p.next()
		switch t.Kind {
		case lexer.LeftBrace:
			depth++
		case lexer.RightBrace:
			depth--
			if depth == 0 {
				toks = append(toks, lexer.Token{Kind: lexer.EOF})
				return toks
			}
		}
		toks = append(toks, t)
	}
	toks = append(toks, lexer.Token{Kind: lexer.EOF})
	return toks
}

// parseOriginReference resolves `[Origin] @Type name;` against the named
// bodies registered by the dispatcher.
func (p *chtlParser) parseOriginReference(parent *etree.Element) {
	typ := p.next()
	name := ""
	if p.at(lexer.Ident) {
		name = p.next().Raw
	}
	if p.at(lexer.Semicolon) {
		p.next()
	}
	if name == "" {
		p.errorAt(typ, "origin reference requires a name")
		return
	}
	body, found := p.c.origins[name]
	if !found {
		p.errorAt(typ, "unknown origin %q", name)
		return
	}
	switch typ.Kind {
	case lexer.TypeHTML:
		parent.CreateComment(p.c.addRaw(body.content))
	case lexer.TypeStyle:
		p.c.css = append(p.c.css, body.content)
	case lexer.TypeJavaScript:
		p.c.js = append(p.c.js, body.content)
	default:
		parent.CreateComment(p.c.addRaw(body.content))
	}
}

// parseImport records an `[Import] @Type from "path" (as name)?` statement.
// Module resolution is a collaborator concern; the core records the request.
func (p *chtlParser) parseImport() {
	typ := p.next()
	if _, ok := p.expect(lexer.KwFrom); !ok {
		return
	}
	pathTok := p.next()
	path := pathTok.StringValue()
	if path == "" {
		path = pathTok.Raw
	}
	alias := ""
	if p.at(lexer.KwAs) {
		p.next()
		alias = p.next().Raw
	}
	if p.at(lexer.Semicolon) {
		p.next()
	}
	p.diags.Addf(diag.Info, diag.Import,
		diag.Pos{File: p.c.file, Line: typ.Line, Column: typ.Column},
		"import %s from %q%s deferred to module loader", typ.Raw, path, aliasNote(alias))
}

func aliasNote(alias string) string {
	if alias == "" {
		return ""
	}
	return " as " + alias
}

// parseNamespace parses `[Namespace] name { items }`; namespaced items land
// in the parent unchanged. The namespace name is not recorded.
func (p *chtlParser) parseNamespace(parent *etree.Element) {
	if _, ok := p.expect(lexer.Ident); !ok {
		return
	}
	if _, ok := p.expect(lexer.LeftBrace); !ok {
		return
	}
	p.parseItems(parent, lexer.RightBrace)
	p.expect(lexer.RightBrace)
}

// parseConfiguration parses `[Configuration] { KEY = value; ... }`. Values
// are evaluated as constant expressions.
func (p *chtlParser) parseConfiguration() {
	if _, ok := p.expect(lexer.LeftBrace); !ok {
		return
	}
	for !p.at(lexer.RightBrace) && !p.at(lexer.EOF) {
		key := p.next()
		if key.Kind == lexer.Semicolon {
			continue
		}
		if !p.at(lexer.Equal) && !p.at(lexer.Colon) {
			p.errorAt(key, "expected '=' after configuration key")
			continue
		}
		p.next()
		raw := p.valueString()
		if p.at(lexer.Semicolon) {
			p.next()
		}
		p.c.cfg.SetOption(keyString(key), evalValue(raw))
	}
	p.expect(lexer.RightBrace)
}

// valueString reads a value until `;`, `}` or a top-level `,`, resolving
// var-group calls like `ThemeColor(primary)`. Function-call values such as
// `rgb(255, 0, 0)` pass through with their commas intact.
func (p *chtlParser) valueString() string {
	var parts []string
	depth := 0
	for {
		t := p.cur()
		switch t.Kind {
		case lexer.Semicolon, lexer.RightBrace, lexer.EOF:
			return joinValue(parts)
		case lexer.Comma:
			if depth == 0 {
				return joinValue(parts)
			}
			p.next()
			parts = append(parts, ",")
		case lexer.LeftParen:
			p.next()
			depth++
			parts = append(parts, "(")
		case lexer.RightParen:
			if depth == 0 {
				return joinValue(parts)
			}
			p.next()
			depth--
			parts = append(parts, ")")
		case lexer.StringLit:
			p.next()
			parts = append(parts, t.StringValue())
		case lexer.NumberLit:
			p.next()
			parts = append(parts, strings.TrimSpace(t.Raw))
		case lexer.Ident, lexer.HTMLElement, lexer.CSSProperty:
			p.next()
			// a known variable group followed by `(key)` substitutes
			if p.at(lexer.LeftParen) {
				if _, known := p.c.varGroups[t.Raw]; known {
					p.next()
					keyTok := p.next()
					p.expect(lexer.RightParen)
					parts = append(parts, p.varValue(t.Raw, keyString(keyTok), t))
					break
				}
			}
			parts = append(parts, t.Raw)
		case lexer.UnquotedLit:
			p.next()
			parts = append(parts, t.StringValue())
		default:
			p.next()
			parts = append(parts, t.Raw)
		}
	}
}

// joinValue assembles value tokens with CSS-friendly spacing: no space
// after `(` or before `(`, `,` and `)`.
func joinValue(parts []string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			prev := parts[i-1]
			if prev != "(" && part != "(" && part != ")" && part != "," {
				b.WriteByte(' ')
			}
		}
		b.WriteString(part)
	}
	return b.String()
}

// varValue resolves a variable group member.
func (p *chtlParser) varValue(group, key string, at lexer.Token) string {
	g, ok := p.c.varGroups[group]
	if !ok {
		p.errorAt(at, "unknown variable group %q", group)
		return ""
	}
	v, ok := g[key]
	if !ok {
		p.errorAt(at, "variable group %q has no member %q", group, key)
		return ""
	}
	return v
}

func keyString(t lexer.Token) string {
	if s := t.StringValue(); s != "" {
		return s
	}
	return t.Raw
}

// formatRule renders one CSS rule.
func formatRule(selector string, decls []declaration) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" { ")
	for _, d := range decls {
		b.WriteString(d.prop)
		b.WriteString(": ")
		b.WriteString(d.value)
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}
