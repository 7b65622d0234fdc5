// Package chtl is a source-to-source compiler that translates CHTL — a
// template language interleaving structural markup, CSS, CHTL-JS and plain
// JavaScript — into a single HTML document with spliced style and script
// sections.
//
// The pipeline is: SourceBuffer -> UnifiedScanner -> typed fragments ->
// Dispatcher (fans fragments to sub-compilers) -> Merger. See the scanner,
// lexer, chtljs and comment subpackages for the front-end pieces.
package chtl

import (
	"github.com/dpotapov/go-chtl/diag"
	"github.com/dpotapov/go-chtl/scanner"
)

// Metadata records what a sub-compiler generated or referenced, for
// cross-referencing across fragments.
type Metadata struct {
	GeneratedClasses  []string
	GeneratedIDs      []string
	EnhancedSelectors []string
	BuiltinFunctions  []string
}

// merge appends other's entries.
func (m *Metadata) merge(other Metadata) {
	m.GeneratedClasses = append(m.GeneratedClasses, other.GeneratedClasses...)
	m.GeneratedIDs = append(m.GeneratedIDs, other.GeneratedIDs...)
	m.EnhancedSelectors = append(m.EnhancedSelectors, other.EnhancedSelectors...)
	m.BuiltinFunctions = append(m.BuiltinFunctions, other.BuiltinFunctions...)
}

// Result is what a sub-compiler returns for a fragment or batch.
type Result struct {
	Success     bool
	Output      string
	Diagnostics []diag.Diagnostic
	Metadata    Metadata
}

// SubCompiler is the four-way boundary between the dispatcher and the
// language back ends. All four back ends implement it.
type SubCompiler interface {
	// Compile translates a single fragment.
	Compile(frag *scanner.Fragment) Result

	// CompileFragments translates a batch that must be seen together, in
	// source order.
	CompileFragments(frags []*scanner.Fragment) Result

	// Reset drops all accumulated state, making the compiler reusable for
	// another compilation.
	Reset()

	// Name identifies the compiler in diagnostics and traces.
	Name() string

	// SetDebug toggles trace output.
	SetDebug(debug bool)
}
