// Package chtljs implements the CHTL-JS dialect: the lexer for enhanced
// selectors, arrow access and virtual objects, and the translator that
// rewrites those forms into plain JavaScript.
package chtljs

import "fmt"

// TokenKind enumerates CHTL-JS lexical categories. Plain JavaScript keywords
// deliberately surface as JSIdent: the downstream JS compiler owns JS
// semantics.
type TokenKind int

const (
	TokUnknown TokenKind = iota
	TokEOF

	// enhanced selectors
	TokSelectorStart // {{
	TokSelectorEnd   // }}
	TokSelectorClass // .name inside {{...}}
	TokSelectorID    // #name inside {{...}}
	TokSelectorTag   // name inside {{...}}
	TokSelectorIndex // [N] inside {{...}}

	// virtual objects
	TokVir   // vir
	TokArrow // ->

	// built-in functions
	TokListen
	TokDelegate
	TokAnimate

	// generic JavaScript tokens
	TokJSIdent
	TokJSString
	TokJSNumber
	TokJSOperator
	TokJSPunct
	TokJSComment
)

var tokenKindNames = map[TokenKind]string{
	TokUnknown:       "Unknown",
	TokEOF:           "EOF",
	TokSelectorStart: "SelectorStart",
	TokSelectorEnd:   "SelectorEnd",
	TokSelectorClass: "SelectorClass",
	TokSelectorID:    "SelectorID",
	TokSelectorTag:   "SelectorTag",
	TokSelectorIndex: "SelectorIndex",
	TokVir:           "Vir",
	TokArrow:         "Arrow",
	TokListen:        "Listen",
	TokDelegate:      "Delegate",
	TokAnimate:       "Animate",
	TokJSIdent:       "JSIdent",
	TokJSString:      "JSString",
	TokJSNumber:      "JSNumber",
	TokJSOperator:    "JSOperator",
	TokJSPunct:       "JSPunct",
	TokJSComment:     "JSComment",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one CHTL-JS lexical unit.
type Token struct {
	Kind   TokenKind
	Raw    string
	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Raw)
}

var builtinKinds = map[string]TokenKind{
	"listen":   TokListen,
	"delegate": TokDelegate,
	"animate":  TokAnimate,
}
