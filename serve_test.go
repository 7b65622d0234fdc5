package chtl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectReloadBeforeBody(t *testing.T) {
	out := injectReload("<html><body><p>x</p></body></html>")

	snippetIdx := strings.Index(out, ".livereload")
	bodyIdx := strings.Index(out, "</body>")
	assert.Greater(t, snippetIdx, -1)
	assert.Less(t, snippetIdx, bodyIdx)
}

func TestInjectReloadAppendsWithoutBody(t *testing.T) {
	out := injectReload("<div>x</div>")
	assert.True(t, strings.HasPrefix(out, "<div>x</div>"))
	assert.Contains(t, out, ".livereload")
}
