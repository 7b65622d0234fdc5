package chtl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-chtl/diag"
)

func compileOK(t *testing.T, src string) string {
	t.Helper()
	c := &Compiler{}
	out, diags, err := c.Compile("test.chtl", src)
	require.NoError(t, err, "diagnostics: %v", diags)
	return out
}

func TestCompilePlainElement(t *testing.T) {
	out := compileOK(t, `div { text { Hello } }`)
	assert.Contains(t, out, "<div>Hello</div>")
	assert.NotContains(t, out, "<style>")
	assert.NotContains(t, out, "<script>")
}

func TestCompileLocalStyle(t *testing.T) {
	out := compileOK(t, `div { style { color: red; } text { Hi } }`)

	assert.Contains(t, out, `<div class="chtl-div-1">Hi</div>`)
	assert.Contains(t, out, `.chtl-div-1 { color: red; }`)
	assert.Contains(t, out, "<style>")
}

func TestCompileEnhancedSelector(t *testing.T) {
	out := compileOK(t, `div { script { {{button}}->listen({ click: function(){ alert('x'); } }); } }`)

	assert.Contains(t, out,
		`document.querySelector('button').addEventListener('click', function(){ alert('x'); });`)
	assert.Contains(t, out, "<script>")
}

func TestCompileOriginHTMLPassthrough(t *testing.T) {
	out := compileOK(t, `[Origin] @Html { <!-- raw --> <b>raw</b> }`)

	assert.Contains(t, out, "<!-- raw --> <b>raw</b>",
		"origin body must appear verbatim")
}

func TestCompileGeneratorComment(t *testing.T) {
	out := compileOK(t, "-- This marks the header\nheader { text { Hi } }")

	assert.Contains(t, out, "<!-- This marks the header -->")
	assert.Contains(t, out, "<header>Hi</header>")
	assert.Less(t,
		strings.Index(out, "<!-- This marks the header -->"),
		strings.Index(out, "<header>"),
		"the comment must precede the element it marks")
}

func TestCompileGeneratorCommentEscapesTerminator(t *testing.T) {
	out := compileOK(t, "-- see a --> b\ndiv { text { X } }")

	assert.Contains(t, out, "<!-- see a --&gt; b -->")
	assert.NotContains(t, out, "<!-- see a --> b -->",
		"an embedded terminator must not close the comment early")
}

func TestCompileOriginBodiesKeepComments(t *testing.T) {
	out := compileOK(t, `
[Origin] @Style { /* keep this */ .a { color: red; } }
[Origin] @JavaScript { // keep that
var a = 1; }
div { text { X } }`)

	assert.Contains(t, out, "/* keep this */", "origin style bodies pass through verbatim")
	assert.Contains(t, out, "// keep that", "origin script bodies pass through verbatim")
}

func TestCompileDeveloperCommentsDropped(t *testing.T) {
	out := compileOK(t, "// dev note\n/* block note */\ndiv { text { Hi } }")
	assert.NotContains(t, out, "dev note")
	assert.NotContains(t, out, "block note")
}

func TestCompileUnbalancedBracesFails(t *testing.T) {
	c := &Compiler{}
	out, diags, err := c.Compile("test.chtl", `div { style { color: red; `)

	require.ErrorIs(t, err, ErrCompileFailed)
	assert.Empty(t, out, "no output on error")

	found := false
	for _, d := range diags {
		if d.Kind == diag.Lexical && strings.Contains(d.Message, "unbalanced '{' opened at line 1 col 13") {
			found = true
		}
	}
	assert.True(t, found, "diagnostics: %v", diags)
}

func TestCompileNestedElements(t *testing.T) {
	out := compileOK(t, `
html {
	head { title { text { Demo } } }
	body {
		div {
			id: app;
			p { text { "quoted text" } }
		}
	}
}`)

	assert.Contains(t, out, "<title>Demo</title>")
	assert.Contains(t, out, `<div id="app">`)
	assert.Contains(t, out, "<p>quoted text</p>")
}

func TestCompileCSSPlacementInFullDocument(t *testing.T) {
	out := compileOK(t, `
html {
	head { title { text { T } } }
	body { div { style { color: blue; } text { X } } }
}`)

	styleIdx := strings.Index(out, "<style>")
	headIdx := strings.Index(out, "</head>")
	require.Greater(t, styleIdx, -1)
	require.Greater(t, headIdx, -1)
	assert.Less(t, styleIdx, headIdx)
}

func TestCompileStyleTemplate(t *testing.T) {
	out := compileOK(t, `
[Template] @Style Accent {
	color: red;
	font-weight: bold;
}
div {
	style { @Style Accent; }
	text { Hi }
}`)

	assert.Contains(t, out, "color: red;")
	assert.Contains(t, out, "font-weight: bold;")
	assert.Contains(t, out, `class="chtl-div-1"`)
}

func TestCompileElementTemplate(t *testing.T) {
	out := compileOK(t, `
[Template] @Element Card {
	div { text { card body } }
}
section { @Element Card; }`)

	assert.Contains(t, out, "<section><div>card body</div></section>")
}

func TestCompileVarGroup(t *testing.T) {
	out := compileOK(t, `
[Template] @Var Theme {
	primary: rgb(255, 0, 0);
}
div {
	style { color: Theme(primary); }
	text { X }
}`)

	assert.Contains(t, out, "color: rgb(255, 0, 0);", "var group value substituted")
}

func TestCompileUnknownTemplateFails(t *testing.T) {
	c := &Compiler{}
	_, diags, err := c.Compile("test.chtl", `div { style { @Style Missing; } }`)
	require.ErrorIs(t, err, ErrCompileFailed)

	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, `unknown style template "Missing"`) {
			found = true
		}
	}
	assert.True(t, found, "diagnostics: %v", diags)
}

func TestCompileNamedOriginReference(t *testing.T) {
	out := compileOK(t, `
[Origin] @Html banner { <b>hello</b> }
div { [Origin] @Html banner; }`)

	assert.Contains(t, out, "<b>hello</b>")
	assert.Contains(t, out, "<div>")
	// the named definition is not emitted at its definition site
	assert.Equal(t, 1, strings.Count(out, "<b>hello</b>"))
}

func TestCompileOriginStyleAndScript(t *testing.T) {
	out := compileOK(t, `
[Origin] @Style { .raw { margin: 0; } }
[Origin] @JavaScript { console.log("raw"); }
div { text { X } }`)

	assert.Contains(t, out, ".raw { margin: 0; }")
	assert.Contains(t, out, `console.log("raw");`)
}

func TestCompileVirDeclaration(t *testing.T) {
	out := compileOK(t, `div { script { vir box = {{.box}}; } }`)
	assert.Contains(t, out, "const box = document.querySelector('.box');")
}

func TestCompileDeterministicOutput(t *testing.T) {
	src := `
-- header
div { style { color: red; } text { One } }
span { script { {{span}}->listen({ click: f }); } }`

	first := compileOK(t, src)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, compileOK(t, src), "outputs must be byte-identical")
	}
}

func TestCompileConfigurationExpression(t *testing.T) {
	// configuration options evaluate as constant expressions and do not
	// affect the emitted document
	out := compileOK(t, `
[Configuration] { INDEX_INITIAL_COUNT = 1 + 2; }
div { text { X } }`)
	assert.Contains(t, out, "<div>X</div>")
	assert.NotContains(t, out, "INDEX_INITIAL_COUNT")
}

func TestPrintDiagnostics(t *testing.T) {
	var sb strings.Builder
	PrintDiagnostics(&sb, []diag.Diagnostic{
		{
			Level:   diag.Error,
			Kind:    diag.Lexical,
			Message: "boom",
			Pos:     diag.Pos{File: "a.chtl", Line: 3, Column: 7},
			Hint:    "close the brace",
		},
	})
	assert.Equal(t, "[error] lexical a.chtl:3:7: boom\n  hint: close the brace\n", sb.String())
}
