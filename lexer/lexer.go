package lexer

import (
	"strconv"
	"strings"

	"github.com/dpotapov/go-chtl/diag"
	"github.com/dpotapov/go-chtl/names"
	"github.com/dpotapov/go-chtl/scanner"
)

// Lexer tokenizes one CHTL fragment into minimum units. It is not a full
// parser: it only assigns lexical categories, leaving structure to the CHTL
// parser. A lexer is single-use per fragment.
type Lexer struct {
	file    string
	src     string
	cfg     *names.Config
	diags   *diag.Collector
	pos     int
	line    int
	col     int
	start   int
	startLn int
	startCl int

	// styleDepth tracks brace nesting inside a `style` body, where
	// identifiers left of a `:` classify as CSS properties. afterColon is
	// set between a `:` or `=` and the value terminator, switching bare
	// values to unquoted literals.
	styleDepth int
	afterColon bool
}

// New builds a lexer over a CHTL fragment's content. cfg supplies the
// effective keyword and type-identifier mapping; a nil cfg uses the
// defaults.
func New(file, src string, cfg *names.Config, dc *diag.Collector) *Lexer {
	if cfg == nil {
		cfg = names.NewConfig()
	}
	return &Lexer{file: file, src: src, cfg: cfg, diags: dc, line: 1, col: 1}
}

// Tokenize scans the whole fragment and returns the tokens followed by an
// EOF sentinel.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens
		}
	}
}

// Next returns the next token, or the EOF sentinel.
func (l *Lexer) Next() Token {
	l.skipWhitespace()
	l.markStart()
	if l.eof() {
		return l.make(EOF, nil)
	}

	ch := l.peek(0)

	if ch == '{' && l.peek(1) == '{' {
		l.advanceN(2)
		return l.make(DoubleLeftBrace, nil)
	}
	if ch == '}' && l.peek(1) == '}' {
		l.advanceN(2)
		return l.make(DoubleRightBrace, nil)
	}
	if ch == '/' && (l.peek(1) == '/' || l.peek(1) == '*') {
		return l.scanComment()
	}
	if ch == '-' && l.peek(1) == '-' {
		return l.scanGeneratorComment()
	}
	if ch == '-' && l.peek(1) == '>' {
		l.advanceN(2)
		return l.make(Arrow, nil)
	}

	switch ch {
	case '{':
		l.advance()
		if l.styleDepth > 0 {
			l.styleDepth++
		}
		return l.make(LeftBrace, nil)
	case '}':
		l.advance()
		if l.styleDepth > 0 {
			l.styleDepth--
			if l.styleDepth == 1 {
				l.styleDepth = 0 // style body closed
			}
		}
		l.afterColon = false
		return l.make(RightBrace, nil)
	case '(':
		l.advance()
		return l.make(LeftParen, nil)
	case ')':
		l.advance()
		return l.make(RightParen, nil)
	case '[':
		if isAlpha(l.peek(1)) {
			return l.scanBracketKeyword()
		}
		l.advance()
		return l.make(LeftBracket, nil)
	case ']':
		l.advance()
		return l.make(RightBracket, nil)
	case ';':
		l.advance()
		l.afterColon = false
		return l.make(Semicolon, nil)
	case ':':
		l.advance()
		l.afterColon = true
		return l.make(Colon, nil)
	case '=':
		l.advance()
		l.afterColon = true
		return l.make(Equal, nil)
	case ',':
		l.advance()
		return l.make(Comma, nil)
	case '.':
		l.advance()
		return l.make(Dot, nil)
	case '@':
		if isAlpha(l.peek(1)) {
			return l.scanTypeIdentifier()
		}
		l.advance()
		return l.make(At, nil)
	case '"', '\'':
		return l.scanString(ch)
	}

	if isDigit(ch) {
		return l.scanNumber()
	}
	if isIdentStart(ch) {
		return l.scanIdentifier()
	}
	if l.afterColon {
		return l.scanUnquotedLiteral()
	}

	l.advance()
	l.errorf("unexpected character %q", string(rune(ch)))
	return l.make(Unknown, nil)
}

func (l *Lexer) scanIdentifier() Token {
	for !l.eof() && isIdentPart(l.peek(0)) {
		l.advance()
	}
	word := l.src[l.start:l.pos]

	canon := l.cfg.CanonicalKeyword(word)
	if kind, ok := keywordKinds[canon]; ok {
		if kind == KwStyle {
			l.styleDepth = 1 // armed; bumps on the following brace
		}
		return l.make(kind, word)
	}
	// `at top` and `at bottom` are compound keywords
	if canon == "at" {
		if tok, ok := l.scanAtCompound(); ok {
			return tok
		}
		return l.make(Ident, word)
	}

	if names.IsHTMLElement(word) {
		return l.make(HTMLElement, word)
	}
	if l.inStyleContext() && !l.afterColon && names.IsCSSProperty(word) {
		return l.make(CSSProperty, word)
	}
	return l.make(Ident, word)
}

// scanAtCompound looks past whitespace for `top` or `bottom` after an `at`.
func (l *Lexer) scanAtCompound() (Token, bool) {
	save := *l
	l.skipWhitespace()
	wordStart := l.pos
	for !l.eof() && isIdentPart(l.peek(0)) {
		l.advance()
	}
	switch l.src[wordStart:l.pos] {
	case "top":
		return l.make(KwAtTop, "at top"), true
	case "bottom":
		return l.make(KwAtBottom, "at bottom"), true
	}
	*l = save
	return Token{}, false
}

func (l *Lexer) scanString(quote byte) Token {
	l.advance()
	var sb strings.Builder
	for !l.eof() && l.peek(0) != quote {
		ch := l.advance()
		if ch == '\\' && !l.eof() {
			sb.WriteByte(unescape(l.advance()))
			continue
		}
		sb.WriteByte(ch)
	}
	if l.eof() {
		l.errorf("unterminated string")
		return l.make(Unknown, nil)
	}
	l.advance() // closing quote
	return l.make(StringLit, sb.String())
}

// scanUnquotedLiteral consumes a bare value until a terminator, trimming
// trailing whitespace.
func (l *Lexer) scanUnquotedLiteral() Token {
	for !l.eof() {
		switch l.peek(0) {
		case ';', '}', '\n', ',', ')':
			goto done
		}
		l.advance()
	}
done:
	value := strings.TrimRight(l.src[l.start:l.pos], " \t\r")
	return l.make(UnquotedLit, value)
}

func (l *Lexer) scanNumber() Token {
	for !l.eof() && isDigit(l.peek(0)) {
		l.advance()
	}
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.advance()
		for !l.eof() && isDigit(l.peek(0)) {
			l.advance()
		}
	}
	// a trailing unit (px, em, %) re-classifies the number as a string
	if isAlpha(l.peek(0)) || l.peek(0) == '%' {
		for !l.eof() && (isAlpha(l.peek(0)) || l.peek(0) == '%') {
			l.advance()
		}
		return l.make(StringLit, l.src[l.start:l.pos])
	}
	raw := l.src[l.start:l.pos]
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		l.errorf("bad number %q", raw)
		return l.make(Unknown, nil)
	}
	return l.make(NumberLit, num)
}

func (l *Lexer) scanComment() Token {
	if l.peek(1) == '/' {
		l.advanceN(2)
		for !l.eof() && l.peek(0) != '\n' {
			l.advance()
		}
		text := strings.TrimPrefix(l.src[l.start:l.pos], "//")
		return l.make(SingleLineComment, text)
	}
	l.advanceN(2)
	closed := false
	for !l.eof() {
		if l.peek(0) == '*' && l.peek(1) == '/' {
			l.advanceN(2)
			closed = true
			break
		}
		l.advance()
	}
	if !closed {
		l.errorf("unterminated comment")
	}
	text := l.src[l.start:l.pos]
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return l.make(MultiLineComment, text)
}

func (l *Lexer) scanGeneratorComment() Token {
	l.advanceN(2)
	for !l.eof() && l.peek(0) != '\n' {
		l.advance()
	}
	text := strings.TrimSpace(strings.TrimPrefix(l.src[l.start:l.pos], "--"))
	return l.make(GeneratorComment, text)
}

func (l *Lexer) scanBracketKeyword() Token {
	save := *l
	l.advance() // [
	wordStart := l.pos
	for !l.eof() && isAlpha(l.peek(0)) {
		l.advance()
	}
	word := l.src[wordStart:l.pos]
	if l.peek(0) != ']' {
		*l = save
		l.advance()
		return l.make(LeftBracket, nil)
	}
	l.advance() // ]
	raw := "[" + word + "]"
	if kind, ok := bracketKeywordKinds[word]; ok {
		return l.make(kind, raw)
	}
	return l.make(Ident, raw)
}

func (l *Lexer) scanTypeIdentifier() Token {
	l.advance() // @
	for !l.eof() && isAlpha(l.peek(0)) {
		l.advance()
	}
	raw := l.src[l.start:l.pos]
	canon := l.cfg.CanonicalType(raw)
	if kind, ok := typeIdentifierKinds[canon]; ok {
		return l.make(kind, canon)
	}
	return l.make(Ident, raw)
}

func (l *Lexer) inStyleContext() bool {
	return l.styleDepth > 1
}

func (l *Lexer) markStart() {
	l.start = l.pos
	l.startLn = l.line
	l.startCl = l.col
}

func (l *Lexer) make(kind Kind, value any) Token {
	return Token{
		Kind:   kind,
		Value:  value,
		Raw:    l.src[l.start:l.pos],
		Span:   scanner.Span{Start: l.start, End: l.pos},
		Line:   l.startLn,
		Column: l.startCl,
	}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek(off int) byte {
	p := l.pos + off
	if p >= len(l.src) {
		return 0
	}
	return l.src[p]
}

func (l *Lexer) advance() byte {
	if l.eof() {
		return 0
	}
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.peek(0) {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) errorf(format string, args ...any) {
	if l.diags == nil {
		return
	}
	l.diags.Errorf(diag.Lexical,
		diag.Pos{File: l.file, Line: l.startLn, Column: l.startCl},
		format, args...)
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return ch
}

func isAlpha(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isIdentStart(ch byte) bool {
	return isAlpha(ch) || ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '-'
}
