package chtljs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-chtl/diag"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	dc := &diag.Collector{}
	return NewLexer("test.chtl", src, dc).Tokenize()
}

func tokenKinds(toks []Token) []TokenKind {
	out := make([]TokenKind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexSelector(t *testing.T) {
	toks := lexAll(t, "{{button}}")
	want := []TokenKind{TokSelectorStart, TokSelectorTag, TokSelectorEnd, TokEOF}
	if diff := cmp.Diff(want, tokenKinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "button", toks[1].Raw)
}

func TestLexSelectorSubTokens(t *testing.T) {
	toks := lexAll(t, "{{.box}} {{#app}} {{li[2]}}")

	want := []TokenKind{
		TokSelectorStart, TokSelectorClass, TokSelectorEnd,
		TokSelectorStart, TokSelectorID, TokSelectorEnd,
		TokSelectorStart, TokSelectorTag, TokSelectorIndex, TokSelectorEnd,
		TokEOF,
	}
	assert.Equal(t, want, tokenKinds(toks))
	assert.Equal(t, ".box", toks[1].Raw)
	assert.Equal(t, "#app", toks[4].Raw)
	assert.Equal(t, "li", toks[7].Raw)
	assert.Equal(t, "[2]", toks[8].Raw)
}

func TestLexArrowAndBuiltins(t *testing.T) {
	toks := lexAll(t, "{{b}}->listen(x)")

	want := []TokenKind{
		TokSelectorStart, TokSelectorTag, TokSelectorEnd,
		TokArrow, TokListen, TokJSPunct, TokJSIdent, TokJSPunct, TokEOF,
	}
	assert.Equal(t, want, tokenKinds(toks))
}

func TestLexVir(t *testing.T) {
	toks := lexAll(t, "vir box = {{.box}};")
	assert.Equal(t, TokVir, toks[0].Kind)
	assert.Equal(t, TokJSIdent, toks[1].Kind)
	assert.Equal(t, TokJSOperator, toks[2].Kind)
	assert.Equal(t, TokSelectorStart, toks[3].Kind)
}

func TestLexBuiltinKinds(t *testing.T) {
	toks := lexAll(t, "listen delegate animate other")
	want := []TokenKind{TokListen, TokDelegate, TokAnimate, TokJSIdent, TokEOF}
	assert.Equal(t, want, tokenKinds(toks))
}

func TestLexPlainJSKeywordsAreIdents(t *testing.T) {
	toks := lexAll(t, "var let const function if")
	for _, tok := range toks[:5] {
		assert.Equal(t, TokJSIdent, tok.Kind, tok.Raw)
	}
}

func TestLexJSStringsAndComments(t *testing.T) {
	toks := lexAll(t, `"str" 'c' `+"`tpl`"+` // line
/* block */ 42`)

	want := []TokenKind{
		TokJSString, TokJSString, TokJSString,
		TokJSComment, TokJSComment, TokJSNumber, TokEOF,
	}
	assert.Equal(t, want, tokenKinds(toks))
}

func TestLexArrowNotGluedToMinus(t *testing.T) {
	// `a - b` stays an operator; `a->b` produces an arrow
	toks := lexAll(t, "a - b")
	assert.Equal(t, TokJSOperator, toks[1].Kind)

	toks = lexAll(t, "a->b")
	assert.Equal(t, TokArrow, toks[1].Kind)
}

func TestLexUnterminatedSelectorIndex(t *testing.T) {
	dc := &diag.Collector{}
	NewLexer("test.chtl", "{{li[2}}", dc).Tokenize()
	require.True(t, dc.HasErrors())
}
