package scanner

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-chtl/diag"
)

func scanAll(t *testing.T, src string) (*UnifiedScanner, []FragmentID, *diag.Collector) {
	t.Helper()
	dc := &diag.Collector{}
	sc := NewUnifiedScanner(NewSourceBuffer("test.chtl", src), dc)
	top := sc.Scan()
	return sc, top, dc
}

// kindsOf flattens fragment kinds for compact comparison.
func kindsOf(sc *UnifiedScanner, ids []FragmentID) []string {
	var out []string
	for _, id := range ids {
		out = append(out, sc.Arena().Get(id).Kind.String())
	}
	return out
}

func TestScanPlainElement(t *testing.T) {
	sc, top, dc := scanAll(t, `div { text { Hello } }`)
	require.False(t, dc.HasErrors())
	require.Len(t, top, 1)

	f := sc.Arena().Get(top[0])
	assert.Equal(t, KindChtl, f.Kind)
	assert.Equal(t, `div { text { Hello } }`, f.Content)
	assert.True(t, sc.Context().IsBalanced())
}

func TestScanLocalStyleBlock(t *testing.T) {
	src := `div { style { color: red; } text { Hi } }`
	sc, top, dc := scanAll(t, src)
	require.False(t, dc.HasErrors())
	require.Len(t, top, 1)

	wrapper := sc.Arena().Get(top[0])
	assert.Equal(t, KindChtl, wrapper.Kind)
	assert.Equal(t, src, wrapper.Content, "the wrapper spans the whole element")

	require.Len(t, wrapper.Children, 1)
	css := sc.Arena().Get(wrapper.Children[0])
	assert.Equal(t, KindCSS, css.Kind)
	assert.Equal(t, "color: red;", css.Content)
	assert.Equal(t, top[0], css.Parent)
}

func TestScanScriptBlockSubSplit(t *testing.T) {
	src := `div { script { {{button}}->listen({ click: function(){ alert('x'); } }); } }`
	sc, top, dc := scanAll(t, src)
	require.False(t, dc.HasErrors())
	require.Len(t, top, 1)

	wrapper := sc.Arena().Get(top[0])
	require.GreaterOrEqual(t, len(wrapper.Children), 2)

	sel := sc.Arena().Get(wrapper.Children[0])
	assert.Equal(t, KindChtlJS, sel.Kind)
	assert.Equal(t, "{{button}}", sel.Content)

	arrow := sc.Arena().Get(wrapper.Children[1])
	assert.Equal(t, KindChtlJS, arrow.Kind)
	assert.Equal(t, "->listen({ click: function(){ alert('x'); } })", arrow.Content)
}

func TestScanScriptMarkerSuppressionInStrings(t *testing.T) {
	src := "div { script { var s = \"{{not-a-selector}}\"; } }"
	sc, top, dc := scanAll(t, src)
	require.False(t, dc.HasErrors())
	require.Len(t, top, 1)

	wrapper := sc.Arena().Get(top[0])
	require.Len(t, wrapper.Children, 1)
	js := sc.Arena().Get(wrapper.Children[0])
	assert.Equal(t, KindJavaScript, js.Kind)
	assert.Contains(t, js.Content, "{{not-a-selector}}")
}

func TestScanScriptMarkerSuppressionInComments(t *testing.T) {
	src := "div { script { // {{x}}->listen()\nvar a = 1; } }"
	sc, top, dc := scanAll(t, src)
	require.False(t, dc.HasErrors())

	wrapper := sc.Arena().Get(top[0])
	require.Len(t, wrapper.Children, 1)
	js := sc.Arena().Get(wrapper.Children[0])
	assert.Equal(t, KindJavaScript, js.Kind)
}

func TestScanOriginHTMLPassthrough(t *testing.T) {
	src := `[Origin] @Html { <!-- raw --> <b>raw</b> }`
	sc, top, dc := scanAll(t, src)
	require.False(t, dc.HasErrors())
	require.Len(t, top, 1)

	f := sc.Arena().Get(top[0])
	assert.Equal(t, KindHTML, f.Kind)
	assert.Equal(t, ` <!-- raw --> <b>raw</b> `, f.Content)
}

func TestScanOriginKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind FragmentKind
	}{
		{`[Origin] @Style { .a { color: red; } }`, KindCSS},
		{`[Origin] @CSS { .a { } }`, KindCSS},
		{`[Origin] @JavaScript { var a = 1; }`, KindJavaScript},
		{`[Origin] @JS { var a = 1; }`, KindJavaScript},
		{`[Origin] @Html { <b>x</b> }`, KindHTML},
		{`[Origin] @Vue { <template/> }`, KindHTML},
	}
	for _, tt := range tests {
		sc, top, _ := scanAll(t, tt.src)
		require.Len(t, top, 1, tt.src)
		assert.Equal(t, tt.kind, sc.Arena().Get(top[0]).Kind, tt.src)
	}
}

func TestScanComments(t *testing.T) {
	src := "-- generator note\n// dev note\n/* block */\ndiv { }"
	sc, top, dc := scanAll(t, src)
	require.False(t, dc.HasErrors())

	got := kindsOf(sc, top)
	want := []string{"COMMENT", "COMMENT", "COMMENT", "CHTL"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fragment kinds mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "-- generator note", sc.Arena().Get(top[0]).Content)
	assert.Equal(t, "// dev note", sc.Arena().Get(top[1]).Content)
	assert.Equal(t, "/* block */", sc.Arena().Get(top[2]).Content)
}

func TestScanUnbalancedBraces(t *testing.T) {
	_, _, dc := scanAll(t, `div { style { color: red; `)
	require.True(t, dc.HasErrors())

	found := false
	for _, d := range dc.All() {
		if d.Kind == diag.Lexical && strings.Contains(d.Message, "unbalanced '{' opened at line 1 col 13") {
			found = true
		}
	}
	assert.True(t, found, "expected the unbalanced-brace diagnostic, got %v", dc.All())
}

func TestScanUnterminatedString(t *testing.T) {
	_, _, dc := scanAll(t, `div { id: "oops }`)
	require.True(t, dc.HasErrors())
	assert.Contains(t, dc.All()[0].Message, "unterminated string")
}

func TestScanSpanFidelity(t *testing.T) {
	src := "-- note\ndiv { style { color: red; } script { {{b}}->listen({a: f}); } }\n[Origin] @Html { <b>r</b> }"
	sc, top, dc := scanAll(t, src)
	require.False(t, dc.HasErrors())

	buf := NewSourceBuffer("test.chtl", src)
	arena := sc.Arena()
	for i := 0; i < arena.Len(); i++ {
		f := arena.Get(FragmentID(i))
		assert.Equal(t, buf.Slice(f.Span), f.Content,
			"fragment %d (%s) content must equal its span slice", i, f.Kind)
		assert.True(t, buf.ValidSpan(f.Span))
	}

	// top-level siblings are ordered and non-overlapping
	for i := 1; i < len(top); i++ {
		prev := arena.Get(top[i-1])
		cur := arena.Get(top[i])
		assert.LessOrEqual(t, prev.Span.End, cur.Span.Start)
	}
}

func TestScanCoverage(t *testing.T) {
	src := "div { }\n-- note\nspan { }"
	sc, top, dc := scanAll(t, src)
	require.False(t, dc.HasErrors())

	// the union of top-level spans plus whitespace covers the source
	covered := make([]bool, len(src))
	for _, id := range top {
		f := sc.Arena().Get(id)
		for i := f.Span.Start; i < f.Span.End; i++ {
			covered[i] = true
		}
	}
	for i, ch := range []byte(src) {
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			continue
		}
		assert.True(t, covered[i], "byte %d (%q) not covered", i, string(ch))
	}
}

func TestScanNestedScriptDiagnostic(t *testing.T) {
	_, _, dc := scanAll(t, `div { script { script { var a; } } }`)
	require.True(t, dc.HasErrors())
	assert.Contains(t, dc.All()[0].Message, "nested script block")
}

func TestScanNextCooperative(t *testing.T) {
	dc := &diag.Collector{}
	sc := NewUnifiedScanner(NewSourceBuffer("test.chtl", "-- note\ndiv { }"), dc)

	id1, ok := sc.ScanNext()
	require.True(t, ok)
	assert.Equal(t, KindComment, sc.Arena().Get(id1).Kind)

	id2, ok := sc.ScanNext()
	require.True(t, ok)
	assert.Equal(t, KindChtl, sc.Arena().Get(id2).Kind)

	_, ok = sc.ScanNext()
	assert.False(t, ok)
}

func TestDumpFragment(t *testing.T) {
	sc, top, _ := scanAll(t, "div { text { Hello } }")
	buf := NewSourceBuffer("test.chtl", "div { text { Hello } }")
	dump := DumpFragment(sc.Arena().Get(top[0]), buf)
	assert.Equal(t, `Fragment[Type: CHTL, Lines: 1-1, Content: "div { text { Hello } }"]`, dump)
}
