package comment

import "strings"

// Emitter re-emits comments in the syntax appropriate to a target
// fragment kind. The zero value is ready to use.
type Emitter struct{}

// Emit renders the comment for the target kind. Developer comments
// (SingleLine, MultiLine) are only re-emitted when explicitly asked; the
// Generator type is the one comment form that survives into the final HTML.
// An empty string means the comment is dropped for that target.
func (Emitter) Emit(n Node, target Target) string {
	switch n.Type {
	case SingleLine:
		switch target {
		case TargetCSS:
			return "/* " + n.Text + " */"
		case TargetHTML:
			return htmlComment(n.Text)
		case TargetJS, TargetChtlJS:
			return "// " + n.Text
		case TargetChtl:
			return "// " + n.Text
		}
	case MultiLine, CSS:
		if target == TargetHTML {
			return htmlComment(n.Text)
		}
		return "/* " + n.Text + " */"
	case Generator:
		switch target {
		case TargetHTML, TargetChtl:
			return htmlComment(n.Text)
		}
		return "" // dropped everywhere else
	case HTML:
		if target == TargetHTML {
			return htmlComment(n.Text)
		}
		return ""
	}
	return ""
}

// htmlComment encodes text as an HTML comment, escaping any `-->` that
// would terminate it early.
func htmlComment(text string) string {
	text = strings.ReplaceAll(text, "-->", "--&gt;")
	return "<!-- " + text + " -->"
}
