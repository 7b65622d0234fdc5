package chtl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/dpotapov/go-chtl/diag"
	"github.com/dpotapov/go-chtl/scanner"
)

// ErrCompileFailed is returned when a compilation recorded error-level
// diagnostics. The diagnostics carry the details; no output is produced.
var ErrCompileFailed = errors.New("compilation failed")

// Compiler is the public entry point. The zero value is usable; fields may
// be set before the first compilation.
type Compiler struct {
	// ModulePaths is the ordered module search path handed to the import
	// subsystem.
	ModulePaths []string

	// Debug enables structured tracing of classification decisions and
	// token emission.
	Debug bool

	// Logger configures logging for internal events. Defaults to discard.
	Logger *slog.Logger

	init   sync.Once
	logger *slog.Logger
}

func (c *Compiler) setup() {
	c.init.Do(func() {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if c.Logger != nil {
			c.logger = c.Logger
		}
	})
}

// Compile translates CHTL source into the final HTML document. On failure
// the returned error is ErrCompileFailed and the output is empty; the
// diagnostics are returned in both cases.
func (c *Compiler) Compile(filename, source string) (string, []diag.Diagnostic, error) {
	c.setup()

	buf := scanner.NewSourceBuffer(filename, source)
	d := NewDispatcher(filename)
	d.SetModulePaths(c.ModulePaths)
	d.SetLogger(c.logger)
	d.SetDebug(c.Debug)

	res := d.Dispatch(buf)
	if !res.Success {
		return "", res.Diagnostics, ErrCompileFailed
	}
	return res.Output, res.Diagnostics, nil
}

// CompileFile reads a CHTL file and compiles it.
func (c *Compiler) CompileFile(path string) (string, []diag.Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.Compile(path, string(src))
}

// CompileToFile compiles in and writes the document to out. Nothing is
// written when compilation fails.
func (c *Compiler) CompileToFile(in, out string) ([]diag.Diagnostic, error) {
	html, diags, err := c.CompileFile(in)
	if err != nil {
		return diags, err
	}
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return diags, fmt.Errorf("write %s: %w", out, err)
	}
	return diags, nil
}

// PrintDiagnostics writes diagnostics one per line in the CLI form, with an
// optional hint line after each.
func PrintDiagnostics(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String())
		if d.Hint != "" {
			fmt.Fprintf(w, "  hint: %s\n", d.Hint)
		}
	}
}
