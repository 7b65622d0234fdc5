package chtljs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-chtl/diag"
)

func newTestTranslator(t *testing.T) (*Translator, *diag.Collector) {
	t.Helper()
	dc := &diag.Collector{}
	return NewTranslator("test.chtl", dc), dc
}

func TestTranslateListen(t *testing.T) {
	tr, dc := newTestTranslator(t)

	out := tr.Translate("{{button}}")
	assert.Empty(t, out, "selector stays pending until the arrow")

	out = tr.Translate("->listen({ click: function(){ alert('x'); } })")
	out += tr.PassThrough(";")

	assert.Equal(t,
		`document.querySelector('button').addEventListener('click', function(){ alert('x'); });`,
		out)
	require.False(t, dc.HasErrors())

	meta := tr.Metadata()
	assert.Equal(t, []string{"button"}, meta.Selectors)
	assert.Equal(t, []string{"listen"}, meta.Builtins)
}

func TestTranslateListenMultipleEvents(t *testing.T) {
	tr, _ := newTestTranslator(t)

	tr.Translate("{{.box}}")
	out := tr.Translate("->listen({ click: onClick, mouseover: onOver })")

	assert.Contains(t, out, "document.querySelector('.box').addEventListener('click', onClick)")
	assert.Contains(t, out, "document.querySelector('.box').addEventListener('mouseover', onOver)")
}

func TestTranslateSelectorForms(t *testing.T) {
	tests := []struct {
		sel  string
		want string
	}{
		{"{{button}}", "document.querySelector('button')"},
		{"{{.box}}", "document.querySelector('.box')"},
		{"{{#app}}", "document.querySelector('#app')"},
		{"{{li[2]}}", "document.querySelectorAll('li')[2]"},
		{"{{div.box}}", "document.querySelector('div.box')"},
		{"{{ul li}}", "document.querySelector('ul li')"},
	}
	for _, tt := range tests {
		tr, _ := newTestTranslator(t)
		tr.Translate(tt.sel)
		got := tr.Finish()
		assert.Equal(t, tt.want+";", got, tt.sel)
	}
}

func TestTranslateChainedMethod(t *testing.T) {
	tr, _ := newTestTranslator(t)

	tr.Translate("{{#app}}")
	out := tr.Translate("->focus()")
	assert.Empty(t, out, "chained call stays pending")

	out = tr.Finish()
	assert.Equal(t, "document.querySelector('#app').focus();", out)
}

func TestTranslateVir(t *testing.T) {
	tr, dc := newTestTranslator(t)

	out := tr.Translate("vir box = {{.box}};")
	assert.Equal(t, "const box = document.querySelector('.box');", out)
	require.False(t, dc.HasErrors())
}

func TestTranslateVirPlainValue(t *testing.T) {
	tr, _ := newTestTranslator(t)
	out := tr.Translate("vir count = 42;")
	assert.Equal(t, "const count = 42;", out)
}

func TestTranslateDelegate(t *testing.T) {
	tr, dc := newTestTranslator(t)

	tr.Translate("{{ul}}")
	out := tr.Translate("->delegate({ target: {{li}}, click: onItem })")

	assert.Contains(t, out, "document.querySelector('ul').addEventListener('click'")
	assert.Contains(t, out, "e.target.closest('li')")
	assert.Contains(t, out, "(onItem).call(m, e)")
	require.False(t, dc.HasErrors())
	assert.Contains(t, tr.Metadata().Builtins, "delegate")
}

func TestTranslateAnimate(t *testing.T) {
	tr, dc := newTestTranslator(t)

	tr.Translate("{{.spinner}}")
	out := tr.Translate("->animate({ duration: 300 })")

	assert.Contains(t, out, "requestAnimationFrame(step)")
	assert.Contains(t, out, "{ duration: 300 }")
	assert.Contains(t, out, "document.querySelector('.spinner')")
	require.False(t, dc.HasErrors())
}

func TestTranslateArrowWithoutSelector(t *testing.T) {
	tr, dc := newTestTranslator(t)
	tr.Translate("->listen({ click: f })")
	assert.True(t, dc.HasErrors())
}

func TestTranslatePassThroughFlushesPending(t *testing.T) {
	tr, _ := newTestTranslator(t)

	tr.Translate("{{button}}")
	out := tr.PassThrough("var x = 1;")
	assert.Equal(t, "document.querySelector('button')var x = 1;", out)
}

func TestParseObjectArg(t *testing.T) {
	pairs := parseObjectArg("({ a: 1, b: function(){ return {c: 2}; }, 'd': x })")
	require.Len(t, pairs, 3)
	assert.Equal(t, "a", pairs[0].key)
	assert.Equal(t, "1", pairs[0].value)
	assert.Equal(t, "b", pairs[1].key)
	assert.Equal(t, "function(){ return {c: 2}; }", pairs[1].value)
	assert.Equal(t, "d", pairs[2].key)

	assert.Nil(t, parseObjectArg("(notAnObject)"))
}

func TestSplitTopLevel(t *testing.T) {
	parts := splitTopLevel("a, f(b, c), {d: 1, e: 2}", ',')
	require.Len(t, parts, 3)
	assert.Equal(t, "a", parts[0])
	assert.Equal(t, " f(b, c)", parts[1])
	assert.Equal(t, " {d: 1, e: 2}", parts[2])
}
