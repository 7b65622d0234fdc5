// Package diag collects compiler diagnostics. Components append to a shared
// Collector instead of returning errors up the pipeline; only Fatal and
// Internal problems abort a compilation.
package diag

import (
	"fmt"
	"strings"
)

// Level is the severity of a diagnostic.
type Level int

const (
	Info Level = iota
	Warn
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	}
	return "unknown"
}

// Kind classifies what went wrong.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Semantic
	Type
	Import
	Namespace
	Constraint
	Internal
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Type:
		return "type"
	case Import:
		return "import"
	case Namespace:
		return "namespace"
	case Constraint:
		return "constraint"
	case Internal:
		return "internal"
	}
	return "unknown"
}

// Pos is a resolved source position attached to a diagnostic.
type Pos struct {
	File   string
	Line   int
	Column int
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Level   Level
	Kind    Kind
	Message string
	Pos     Pos
	Hint    string
}

// String renders the one-line CLI form:
//
//	[error] lexical main.chtl:1:13: unbalanced '{'
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Level, d.Kind)
	if d.Pos.File != "" || d.Pos.Line > 0 {
		fmt.Fprintf(&b, " %s:%d:%d", d.Pos.File, d.Pos.Line, d.Pos.Column)
	}
	fmt.Fprintf(&b, ": %s", d.Message)
	return b.String()
}

// Collector accumulates diagnostics for one compilation. The zero value is
// ready to use. It is not safe for concurrent use; a compilation is
// single-threaded.
type Collector struct {
	diags  []Diagnostic
	errors int
	fatal  bool
}

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.diags = append(c.diags, d)
	if d.Level >= Error {
		c.errors++
	}
	if d.Level == Fatal {
		c.fatal = true
	}
}

// Addf appends a diagnostic with a formatted message.
func (c *Collector) Addf(level Level, kind Kind, pos Pos, format string, args ...any) {
	c.Add(Diagnostic{Level: level, Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Errorf records an Error-level diagnostic.
func (c *Collector) Errorf(kind Kind, pos Pos, format string, args ...any) {
	c.Addf(Error, kind, pos, format, args...)
}

// Warnf records a Warn-level diagnostic.
func (c *Collector) Warnf(kind Kind, pos Pos, format string, args ...any) {
	c.Addf(Warn, kind, pos, format, args...)
}

// All returns the collected diagnostics in the order they were added.
func (c *Collector) All() []Diagnostic { return c.diags }

// ErrorCount returns the number of Error and Fatal diagnostics.
func (c *Collector) ErrorCount() int { return c.errors }

// HasErrors reports whether any Error or Fatal diagnostic was recorded.
func (c *Collector) HasErrors() bool { return c.errors > 0 }

// HasFatal reports whether a Fatal diagnostic was recorded.
func (c *Collector) HasFatal() bool { return c.fatal }

// Merge appends all diagnostics from other.
func (c *Collector) Merge(other *Collector) {
	for _, d := range other.diags {
		c.Add(d)
	}
}
