// Package names holds the seeded identifier tables the lexers classify
// against: standard HTML elements, CSS3 properties, CHTL keywords and type
// identifiers. The seed data is read-only after initialization and shared by
// concurrent compilations; per-compilation overrides live in Config.
package names

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// htmlElements lists the HTML standard elements recognized as CHTL element
// names. IsHTMLElement also consults the x/net atom table for names missing
// from this list.
var htmlElements = buildHTMLElements()

func buildHTMLElements() map[string]bool {
	list := []string{
		"html", "head", "body", "title", "meta", "link", "style", "script",
		"header", "nav", "main", "section", "article", "aside", "footer",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"div", "p", "hr", "pre", "blockquote",
		"ol", "ul", "li", "dl", "dt", "dd", "figure", "figcaption",
		"a", "em", "strong", "small", "s", "cite", "q", "dfn", "abbr",
		"data", "time", "code", "var", "samp", "kbd", "sub", "sup",
		"i", "b", "u", "mark", "ruby", "rt", "rp", "bdi", "bdo", "span",
		"br", "wbr", "img", "iframe", "embed", "object", "param",
		"video", "audio", "source", "track", "map", "area", "svg", "math",
		"table", "caption", "colgroup", "col", "tbody", "thead", "tfoot",
		"tr", "td", "th",
		"form", "label", "input", "button", "select", "datalist", "optgroup",
		"option", "textarea", "output", "progress", "meter",
		"fieldset", "legend", "details", "summary", "dialog", "menu",
		"slot", "template",
	}
	m := make(map[string]bool, len(list))
	for _, name := range list {
		m[name] = true
	}
	return m
}

// IsHTMLElement reports whether name is a standard HTML element. Lookup is
// case-sensitive: CHTL element names are lowercase.
func IsHTMLElement(name string) bool {
	if htmlElements[name] {
		return true
	}
	// The atom table holds attribute names as well as element names, so CSS
	// property names such as "color" are excluded from this fallback.
	if a := atom.Lookup([]byte(name)); a != 0 && !IsCSSProperty(name) {
		return a.String() == name
	}
	return false
}

// cssProperties lists the CSS3 standard properties recognized in style
// declaration contexts.
var cssProperties = buildCSSProperties()

func buildCSSProperties() map[string]bool {
	list := []string{
		// layout
		"display", "position", "top", "right", "bottom", "left", "float",
		"clear", "z-index", "overflow", "overflow-x", "overflow-y",
		"visibility", "clip", "zoom",
		// box model
		"width", "height", "min-width", "min-height", "max-width",
		"max-height", "margin", "margin-top", "margin-right",
		"margin-bottom", "margin-left", "padding", "padding-top",
		"padding-right", "padding-bottom", "padding-left", "border",
		"border-width", "border-style", "border-color", "border-top",
		"border-right", "border-bottom", "border-left", "border-radius",
		"box-sizing", "box-shadow", "outline",
		// background
		"background", "background-color", "background-image",
		"background-repeat", "background-position", "background-size",
		"background-attachment", "background-clip", "background-origin",
		// text
		"color", "font", "font-family", "font-size", "font-weight",
		"font-style", "font-variant", "line-height", "letter-spacing",
		"word-spacing", "text-align", "text-decoration", "text-indent",
		"text-transform", "text-shadow", "text-overflow", "white-space",
		"word-break", "word-wrap", "vertical-align", "direction",
		// flex
		"flex", "flex-direction", "flex-wrap", "flex-flow", "flex-grow",
		"flex-shrink", "flex-basis", "justify-content", "align-items",
		"align-self", "align-content", "order", "gap",
		// grid
		"grid", "grid-template", "grid-template-columns",
		"grid-template-rows", "grid-template-areas", "grid-column",
		"grid-row", "grid-area", "grid-gap", "grid-auto-flow",
		// transition and animation
		"transition", "transition-property", "transition-duration",
		"transition-timing-function", "transition-delay", "animation",
		"animation-name", "animation-duration", "animation-timing-function",
		"animation-delay", "animation-iteration-count",
		"animation-direction", "animation-fill-mode", "animation-play-state",
		"transform", "transform-origin",
		// misc
		"opacity", "cursor", "content", "list-style", "list-style-type",
		"list-style-position", "list-style-image", "table-layout",
		"border-collapse", "border-spacing", "caption-side", "empty-cells",
		"quotes", "counter-reset", "counter-increment", "resize",
		"user-select", "pointer-events", "filter", "backdrop-filter",
		"object-fit", "object-position", "will-change",
	}
	m := make(map[string]bool, len(list))
	for _, name := range list {
		m[name] = true
	}
	return m
}

// IsCSSProperty reports whether name is a standard CSS3 property.
func IsCSSProperty(name string) bool {
	return cssProperties[strings.ToLower(name)]
}

// Keywords are the CHTL language keywords.
var Keywords = map[string]bool{
	"text": true, "style": true, "script": true,
	"inherit": true, "delete": true, "insert": true,
	"after": true, "before": true, "replace": true,
	"from": true, "as": true, "except": true, "at": true,
	"vir": true, "animate": true, "listen": true, "delegate": true,
}

// BuiltinFunctions are the CHTL-JS built-in DOM helpers.
var BuiltinFunctions = map[string]bool{
	"listen": true, "delegate": true, "animate": true,
}

// BracketKeywords are the block-introducing `[Name]` keywords.
var BracketKeywords = map[string]bool{
	"Template": true, "Custom": true, "Origin": true, "Import": true,
	"Namespace": true, "Configuration": true, "Info": true, "Export": true,
}
