package scanner

import (
	"fmt"
	"strings"
)

// FragmentKind classifies a contiguous source slice by the language it is
// written in. The scanner assigns exactly one kind to every fragment it emits.
type FragmentKind int

const (
	KindUnknown FragmentKind = iota
	KindChtl
	KindChtlJS
	KindCSS
	KindJavaScript
	KindHTML
	KindText
	KindComment
)

var fragmentKindNames = map[FragmentKind]string{
	KindUnknown:    "UNKNOWN",
	KindChtl:       "CHTL",
	KindChtlJS:     "CHTL_JS",
	KindCSS:        "CSS",
	KindJavaScript: "JAVASCRIPT",
	KindHTML:       "HTML",
	KindText:       "TEXT",
	KindComment:    "COMMENT",
}

func (k FragmentKind) String() string {
	if s, ok := fragmentKindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseFragmentKind is the inverse of FragmentKind.String.
func ParseFragmentKind(s string) FragmentKind {
	for k, name := range fragmentKindNames {
		if name == s {
			return k
		}
	}
	return KindUnknown
}

// FragmentID indexes a fragment within its arena. Fragments reference their
// parent and children by ID rather than by pointer, so the fragment tree has
// no ownership cycles.
type FragmentID int

// NoFragment marks the absence of a parent.
const NoFragment FragmentID = -1

// Fragment is the scanner's output unit: an exact source substring tagged
// with a language kind. Content is never normalized; whitespace inside the
// span is preserved byte-for-byte.
type Fragment struct {
	Kind    FragmentKind
	Content string
	Span    Span

	// Parent refers to the fragment this one was split out of (a CHTL local
	// style or script block), or NoFragment for top-level fragments.
	Parent FragmentID

	// Children are sub-fragments produced by secondary splitting, in source
	// order.
	Children []FragmentID

	// Tokens is the lazy minimum-unit token list attached by the matching
	// lexer. CSS and JavaScript fragments keep it nil; those sub-compilers
	// tokenize internally.
	Tokens any
}

// Arena owns every fragment produced during one scan. The zero value is
// ready to use.
type Arena struct {
	frags []Fragment
}

// Add appends a top-level fragment and returns its ID. Use Attach to link it
// under a parent afterwards.
func (a *Arena) Add(f Fragment) FragmentID {
	f.Parent = NoFragment
	a.frags = append(a.frags, f)
	return FragmentID(len(a.frags) - 1)
}

// Get returns a pointer to the fragment with the given ID. The pointer stays
// valid until the next Add.
func (a *Arena) Get(id FragmentID) *Fragment {
	return &a.frags[id]
}

// Len returns the number of fragments in the arena.
func (a *Arena) Len() int { return len(a.frags) }

// Attach links child under parent, keeping Children ordered by insertion.
func (a *Arena) Attach(parent, child FragmentID) {
	a.frags[child].Parent = parent
	a.frags[parent].Children = append(a.frags[parent].Children, child)
}

// DumpFragment renders the debug wire representation of a fragment:
//
//	Fragment[Type: CHTL, Lines: 1-3, Content: "div { ... }"]
func DumpFragment(f *Fragment, buf *SourceBuffer) string {
	start := buf.Position(f.Span.Start)
	end := buf.Position(f.Span.End)
	content := strings.TrimSpace(f.Content)
	const maxContent = 40
	if len(content) > maxContent {
		content = content[:maxContent] + "..."
	}
	return fmt.Sprintf("Fragment[Type: %s, Lines: %d-%d, Content: %q]",
		f.Kind, start.Line, end.Line, content)
}
