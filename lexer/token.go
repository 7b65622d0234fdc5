// Package lexer implements the minimum-unit tokenizer for CHTL fragments.
// It feeds the CHTL parser: bracket keywords, type identifiers, generator
// comments, quoted and unquoted literals, and the digram symbols.
package lexer

import (
	"fmt"

	"github.com/dpotapov/go-chtl/scanner"
)

// Kind enumerates the lexical categories a CHTL token can have.
type Kind int

const (
	Unknown Kind = iota
	EOF

	// literals
	StringLit
	UnquotedLit
	NumberLit

	Ident

	// symbols
	LeftBrace
	RightBrace
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	Semicolon
	Colon
	Equal
	Comma
	Dot
	Arrow
	At
	DoubleLeftBrace
	DoubleRightBrace

	// comments
	SingleLineComment
	MultiLineComment
	GeneratorComment

	// bracket keywords
	KwTemplate
	KwCustom
	KwOrigin
	KwImport
	KwNamespace
	KwConfiguration
	KwInfo
	KwExport

	// keywords
	KwText
	KwStyle
	KwScript
	KwInherit
	KwDelete
	KwInsert
	KwAfter
	KwBefore
	KwReplace
	KwAtTop
	KwAtBottom
	KwFrom
	KwAs
	KwExcept

	// type identifiers
	TypeStyle
	TypeElement
	TypeVar
	TypeHTML
	TypeJavaScript
	TypeChtl
	TypeCJmod
	TypeConfig

	HTMLElement
	CSSProperty

	// RawHTML is a synthetic token carrying an `[Origin]` passthrough body.
	// The lexer never produces it; the CHTL compiler injects it so raw HTML
	// keeps its place in the CHTL token stream.
	RawHTML

	// CHTL-JS keywords surfacing in CHTL positions
	KwVir
	KwAnimate
	KwListen
	KwDelegate
)

var kindNames = map[Kind]string{
	Unknown:           "Unknown",
	EOF:               "EOF",
	StringLit:         "StringLit",
	UnquotedLit:       "UnquotedLit",
	NumberLit:         "NumberLit",
	Ident:             "Ident",
	LeftBrace:         "LeftBrace",
	RightBrace:        "RightBrace",
	LeftParen:         "LeftParen",
	RightParen:        "RightParen",
	LeftBracket:       "LeftBracket",
	RightBracket:      "RightBracket",
	Semicolon:         "Semicolon",
	Colon:             "Colon",
	Equal:             "Equal",
	Comma:             "Comma",
	Dot:               "Dot",
	Arrow:             "Arrow",
	At:                "At",
	DoubleLeftBrace:   "DoubleLeftBrace",
	DoubleRightBrace:  "DoubleRightBrace",
	SingleLineComment: "SingleLineComment",
	MultiLineComment:  "MultiLineComment",
	GeneratorComment:  "GeneratorComment",
	KwTemplate:        "KwTemplate",
	KwCustom:          "KwCustom",
	KwOrigin:          "KwOrigin",
	KwImport:          "KwImport",
	KwNamespace:       "KwNamespace",
	KwConfiguration:   "KwConfiguration",
	KwInfo:            "KwInfo",
	KwExport:          "KwExport",
	KwText:            "KwText",
	KwStyle:           "KwStyle",
	KwScript:          "KwScript",
	KwInherit:         "KwInherit",
	KwDelete:          "KwDelete",
	KwInsert:          "KwInsert",
	KwAfter:           "KwAfter",
	KwBefore:          "KwBefore",
	KwReplace:         "KwReplace",
	KwAtTop:           "KwAtTop",
	KwAtBottom:        "KwAtBottom",
	KwFrom:            "KwFrom",
	KwAs:              "KwAs",
	KwExcept:          "KwExcept",
	TypeStyle:         "TypeStyle",
	TypeElement:       "TypeElement",
	TypeVar:           "TypeVar",
	TypeHTML:          "TypeHTML",
	TypeJavaScript:    "TypeJavaScript",
	TypeChtl:          "TypeChtl",
	TypeCJmod:         "TypeCJmod",
	TypeConfig:        "TypeConfig",
	HTMLElement:       "HTMLElement",
	CSSProperty:       "CSSProperty",
	RawHTML:           "RawHTML",
	KwVir:             "KwVir",
	KwAnimate:         "KwAnimate",
	KwListen:          "KwListen",
	KwDelegate:        "KwDelegate",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the kind is one of the CHTL word keywords.
func (k Kind) IsKeyword() bool {
	return k >= KwText && k <= KwExcept || k >= KwVir && k <= KwDelegate
}

// IsBracketKeyword reports whether the kind is a `[Name]` block keyword.
func (k Kind) IsBracketKeyword() bool {
	return k >= KwTemplate && k <= KwExport
}

// IsTypeIdentifier reports whether the kind is an `@Name` type identifier.
func (k Kind) IsTypeIdentifier() bool {
	return k >= TypeStyle && k <= TypeConfig
}

// IsComment reports whether the kind is any comment form.
func (k Kind) IsComment() bool {
	return k == SingleLineComment || k == MultiLineComment || k == GeneratorComment
}

// Token is one lexical unit of a CHTL fragment. Value carries the decoded
// literal (string, float64 or bool) when the kind has one; Raw always holds
// the exact source text. Span offsets are relative to the fragment the
// lexer ran over.
type Token struct {
	Kind   Kind
	Value  any
	Raw    string
	Span   scanner.Span
	Line   int
	Column int
}

// StringValue returns the decoded string value, or "".
func (t Token) StringValue() string {
	if s, ok := t.Value.(string); ok {
		return s
	}
	return ""
}

// NumberValue returns the decoded numeric value, or 0.
func (t Token) NumberValue() float64 {
	if f, ok := t.Value.(float64); ok {
		return f
	}
	return 0
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }

func (t Token) String() string {
	if t.Raw == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Raw)
}

var bracketKeywordKinds = map[string]Kind{
	"Template":      KwTemplate,
	"Custom":        KwCustom,
	"Origin":        KwOrigin,
	"Import":        KwImport,
	"Namespace":     KwNamespace,
	"Configuration": KwConfiguration,
	"Info":          KwInfo,
	"Export":        KwExport,
}

var keywordKinds = map[string]Kind{
	"text":     KwText,
	"style":    KwStyle,
	"script":   KwScript,
	"inherit":  KwInherit,
	"delete":   KwDelete,
	"insert":   KwInsert,
	"after":    KwAfter,
	"before":   KwBefore,
	"replace":  KwReplace,
	"from":     KwFrom,
	"as":       KwAs,
	"except":   KwExcept,
	"vir":      KwVir,
	"animate":  KwAnimate,
	"listen":   KwListen,
	"delegate": KwDelegate,
}

var typeIdentifierKinds = map[string]Kind{
	"@Style":      TypeStyle,
	"@Element":    TypeElement,
	"@Var":        TypeVar,
	"@Html":       TypeHTML,
	"@JavaScript": TypeJavaScript,
	"@Chtl":       TypeChtl,
	"@CJmod":      TypeCJmod,
	"@Config":     TypeConfig,
}
