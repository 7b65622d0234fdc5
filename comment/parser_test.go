package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/go-chtl/scanner"
)

func TestExtractAllForms(t *testing.T) {
	code := "// single\n/* multi */\n<!-- html -->\n-- generator"
	p := NewParser(nil)

	got := p.Extract(code)
	require.Len(t, got, 4)

	assert.Equal(t, SingleLine, got[0].Node.Type)
	assert.Equal(t, "single", got[0].Node.Text)

	assert.Equal(t, MultiLine, got[1].Node.Type)
	assert.Equal(t, "multi", got[1].Node.Text)

	assert.Equal(t, HTML, got[2].Node.Type)
	assert.Equal(t, "html", got[2].Node.Text)

	assert.Equal(t, Generator, got[3].Node.Type)
	assert.Equal(t, "generator", got[3].Node.Text)

	// results are sorted by start offset with line numbers attached
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Pos.Start, got[i-1].Pos.Start)
		assert.Equal(t, i+1, got[i].Pos.Line)
	}
}

func TestExtractSkipsStrings(t *testing.T) {
	code := `var url = "http://example.com"; // real comment`
	p := NewParser(nil)

	got := p.Extract(code)
	require.Len(t, got, 1)
	assert.Equal(t, "real comment", got[0].Node.Text)
}

func TestExtractSkipsOriginBodies(t *testing.T) {
	src := `[Origin] @Html { <!-- raw --> } // outside`
	buf := scanner.NewSourceBuffer("test.chtl", src)
	p := NewParser(scanner.NewOriginDetector(buf))

	got := p.Extract(src)
	require.Len(t, got, 1)
	assert.Equal(t, SingleLine, got[0].Node.Type)
	assert.Equal(t, "outside", got[0].Node.Text)
}

func TestGeneratorRequiresLineStart(t *testing.T) {
	p := NewParser(nil)

	got := p.Extract("x--\n  -- indented generator\na -- not one")
	require.Len(t, got, 1)
	assert.Equal(t, Generator, got[0].Node.Type)
	assert.Equal(t, "indented generator", got[0].Node.Text)
}

func TestStripRemovesDeveloperComments(t *testing.T) {
	code := "div { } // dev\n/* block */ span { }\n-- keep me"
	p := NewParser(nil)

	out := p.Strip(code)
	assert.NotContains(t, out, "dev")
	assert.NotContains(t, out, "block")
	assert.Contains(t, out, "-- keep me", "generator comments survive stripping")
	assert.Contains(t, out, "div { }")
	assert.Contains(t, out, "span { }")
}

func TestStripForms(t *testing.T) {
	code := "a-- // c1\n/* c2 */ --x"
	p := NewParser(nil)

	out := p.StripForms(code, SingleLine)
	assert.NotContains(t, out, "c1")
	assert.Contains(t, out, "/* c2 */")
	assert.Contains(t, out, "--x")
}

func TestParseRoundTrip(t *testing.T) {
	// emitting a parsed comment back at its own kind reproduces the source
	// form, modulo surrounding whitespace
	var g Emitter

	n := Parse("// note", false)
	assert.Equal(t, "// note", g.Emit(n, TargetJS))

	n = Parse("/* note */", false)
	assert.Equal(t, "/* note */", g.Emit(n, TargetCSS))

	n = Parse("<!-- note -->", false)
	assert.Equal(t, "<!-- note -->", g.Emit(n, TargetHTML))
}
