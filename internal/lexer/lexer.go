// Package lexer converts Lj source text into a token stream, per spec
// section 4.1. It never aborts on a single bad character: unknown bytes
// are recorded as diagnostics and skipped so the parser always receives a
// complete, EOF-terminated stream.
//
// # Unicode and column positions
//
// Columns are counted in runes, not bytes or display cells, mirroring the
// teacher's own lexer design note: a multi-byte rune (é, 中, 🚀) advances
// the column by exactly one, trading perfect terminal alignment for a
// simple, reproducible position model.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/token"
)

// Lexer scans one source file into tokens.
type Lexer struct {
	input string
	file  string

	pos     int // byte offset of ch
	readPos int // byte offset of next rune
	line    int
	column  int
	ch      rune

	errors diag.List

	// docLines accumulates contiguous `##` doc-comment lines; it is handed
	// to the next real token and reset whenever the chain breaks (a blank
	// line, a plain `#` comment, or a consumed token).
	docLines []string
}

// New creates a Lexer over input. file is used only to tag diagnostics.
func New(input, file string) *Lexer {
	l := &Lexer{input: input, file: file, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans the entire input and returns the token stream (always
// EOF-terminated) together with any lexical diagnostics accumulated along
// the way.
func Tokenize(input, file string) ([]token.Token, diag.List) {
	l := New(input, file)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, l.errors
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.column++
	if r == utf8.RuneError && size == 1 {
		l.addErrorf(diag.CodeUnexpectedChar, l.currentPos(), 1, "invalid UTF-8 encoding")
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) peekCharAt(offset int) rune {
	pos := l.readPos
	for i := 0; i < offset && pos < len(l.input); i++ {
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) addErrorf(code diag.Code, pos token.Position, length int, format string, args ...any) {
	d := diag.Newf(code, pos, format, args...)
	d.Length = length
	d.File = l.file
	l.errors = append(l.errors, d)
}

// Errors returns all lexical diagnostics accumulated so far.
func (l *Lexer) Errors() diag.List { return l.errors }

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// skipWhitespaceAndComments advances past trivia and reports whether at
// least one newline was among it, so NextToken can mark the following
// token as a possible statement boundary.
func (l *Lexer) skipWhitespaceAndComments() bool {
	blankRun := false
	sawNewline := false
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			if blankRun {
				l.docLines = nil
			}
			blankRun = true
			sawNewline = true
			l.readChar()
			l.line++
			l.column = 0
		case '#':
			blankRun = false
			doc := l.peekChar() == '#'
			var sb strings.Builder
			l.readChar() // consume first '#'
			if doc {
				l.readChar() // consume second '#'
				if l.ch == ' ' {
					l.readChar()
				}
			}
			for l.ch != '\n' && l.ch != 0 {
				sb.WriteRune(l.ch)
				l.readChar()
			}
			if doc {
				l.docLines = append(l.docLines, sb.String())
			} else {
				l.docLines = nil
			}
		default:
			return sawNewline
		}
	}
}

// takeDoc returns the accumulated doc-comment text and resets the chain.
func (l *Lexer) takeDoc() string {
	if len(l.docLines) == 0 {
		return ""
	}
	doc := strings.Join(l.docLines, "\n")
	l.docLines = nil
	return doc
}

// NextToken scans and returns the next token, advancing the lexer.
// Calling NextToken past EOF keeps returning EOF tokens.
func (l *Lexer) NextToken() token.Token {
	newlineBefore := l.skipWhitespaceAndComments()
	doc := l.takeDoc()

	startPos := l.currentPos()

	var tok token.Token
	switch {
	case l.ch == 0:
		tok = token.Token{Kind: token.EOF, Lexeme: "", Pos: startPos}
	case isLetter(l.ch):
		tok = l.readIdentifier(startPos)
	case isDigit(l.ch):
		tok = l.readNumber(startPos)
	case l.ch == '"':
		tok = l.readString(startPos)
	default:
		tok = l.readOperator(startPos)
	}
	tok.Doc = doc
	tok.NewlineBefore = newlineBefore
	return tok
}

func (l *Lexer) readIdentifier(startPos token.Position) token.Token {
	var sb strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	lexeme := sb.String()
	return token.Token{Kind: token.LookupIdent(lexeme), Lexeme: lexeme, Pos: startPos}
}

func (l *Lexer) readNumber(startPos token.Position) token.Token {
	var sb strings.Builder

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for isHexDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.finishInteger(sb.String(), startPos, 16, 2)
	}
	if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for l.ch >= '0' && l.ch <= '7' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.finishInteger(sb.String(), startPos, 8, 2)
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		sb.WriteRune(l.ch)
		l.readChar()
		sb.WriteRune(l.ch)
		l.readChar()
		for l.ch == '0' || l.ch == '1' {
			sb.WriteRune(l.ch)
			l.readChar()
		}
		return l.finishInteger(sb.String(), startPos, 2, 2)
	}

	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		sb.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		peek := l.peekChar()
		if isDigit(peek) || ((peek == '+' || peek == '-') && isDigit(l.peekCharAt(1))) {
			isFloat = true
			sb.WriteRune(l.ch)
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				sb.WriteRune(l.ch)
				l.readChar()
			}
			for isDigit(l.ch) {
				sb.WriteRune(l.ch)
				l.readChar()
			}
		}
	}

	lexeme := sb.String()
	if isFloat {
		v, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			l.addErrorf(diag.CodeMalformedNumber, startPos, len(lexeme), "malformed float literal %q", lexeme)
		}
		return token.Token{Kind: token.FLOAT, Lexeme: lexeme, Pos: startPos, FloatValue: v}
	}

	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		l.addErrorf(diag.CodeMalformedNumber, startPos, len(lexeme), "malformed integer literal %q", lexeme)
	}
	return token.Token{Kind: token.INT, Lexeme: lexeme, Pos: startPos, IntValue: v}
}

func (l *Lexer) finishInteger(lexeme string, startPos token.Position, base, prefixLen int) token.Token {
	digits := lexeme[prefixLen:]
	if digits == "" {
		l.addErrorf(diag.CodeMalformedNumber, startPos, len(lexeme), "malformed integer literal %q", lexeme)
		return token.Token{Kind: token.INT, Lexeme: lexeme, Pos: startPos}
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		l.addErrorf(diag.CodeMalformedNumber, startPos, len(lexeme), "malformed integer literal %q", lexeme)
	}
	return token.Token{Kind: token.INT, Lexeme: lexeme, Pos: startPos, IntValue: v}
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// readString scans a double-quoted string literal. If it contains one or
// more ${...} placeholders it is returned as a TEMPLATE_STRING token whose
// Chunks alternate literal text and embedded-expression source spans;
// otherwise it is a plain STRING token.
func (l *Lexer) readString(startPos token.Position) token.Token {
	l.readChar() // consume opening quote

	var chunks []token.TemplateChunk
	var cur strings.Builder
	isTemplate := false
	terminated := false

	flushLiteral := func() {
		if cur.Len() > 0 || len(chunks) == 0 {
			chunks = append(chunks, token.TemplateChunk{Literal: true, Text: normalizeNFC(cur.String())})
			cur.Reset()
		}
	}

	for {
		if l.ch == 0 {
			break
		}
		if l.ch == '"' {
			terminated = true
			l.readChar()
			break
		}
		if l.ch == '\\' {
			l.readChar()
			r, ok := l.readEscape(startPos)
			if ok {
				cur.WriteRune(r)
			}
			continue
		}
		if l.ch == '$' && l.peekChar() == '{' {
			isTemplate = true
			flushLiteral()
			cur.Reset()
			exprPos := l.currentPos()
			l.readChar() // '$'
			l.readChar() // '{'
			depth := 1
			var exprSrc strings.Builder
			for depth > 0 && l.ch != 0 {
				if l.ch == '{' {
					depth++
				} else if l.ch == '}' {
					depth--
					if depth == 0 {
						l.readChar()
						break
					}
				}
				exprSrc.WriteRune(l.ch)
				l.readChar()
			}
			chunks = append(chunks, token.TemplateChunk{ExprSource: exprSrc.String(), ExprPos: exprPos})
			continue
		}
		if l.ch == '\n' {
			// Strings do not span lines; stop here and report unterminated.
			break
		}
		cur.WriteRune(l.ch)
		l.readChar()
	}

	if !terminated {
		l.addErrorf(diag.CodeUnterminatedString, startPos, 1, "unterminated string literal")
	}

	if !isTemplate {
		value := ""
		if len(chunks) == 0 {
			value = normalizeNFC(cur.String())
		} else {
			value = chunks[0].Text
		}
		return token.Token{Kind: token.STRING, Lexeme: value, Pos: startPos}
	}

	flushLiteral()
	return token.Token{Kind: token.TEMPLATE_STRING, Lexeme: l.input[startPos.Offset:l.pos], Pos: startPos, Chunks: chunks}
}

func normalizeNFC(s string) string {
	if s == "" {
		return s
	}
	return norm.NFC.String(s)
}

func (l *Lexer) readEscape(pos token.Position) (rune, bool) {
	switch l.ch {
	case 'n':
		l.readChar()
		return '\n', true
	case 'r':
		l.readChar()
		return '\r', true
	case 't':
		l.readChar()
		return '\t', true
	case '\\':
		l.readChar()
		return '\\', true
	case '"':
		l.readChar()
		return '"', true
	case '0':
		l.readChar()
		return 0, true
	case 'x':
		l.readChar()
		return l.readHexEscape(pos, 2)
	case 'u':
		l.readChar()
		return l.readHexEscape(pos, 4)
	default:
		l.addErrorf(diag.CodeInvalidEscape, pos, 2, "invalid escape sequence \\%c", l.ch)
		r := l.ch
		l.readChar()
		return r, true
	}
}

func (l *Lexer) readHexEscape(pos token.Position, digits int) (rune, bool) {
	var sb strings.Builder
	for i := 0; i < digits; i++ {
		if !isHexDigit(l.ch) {
			l.addErrorf(diag.CodeInvalidEscape, pos, digits, "invalid hex escape, expected %d hex digits", digits)
			return 0, false
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	v, err := strconv.ParseInt(sb.String(), 16, 32)
	if err != nil {
		l.addErrorf(diag.CodeInvalidEscape, pos, digits, "invalid hex escape %q", sb.String())
		return 0, false
	}
	return rune(v), true
}

// operator table: longest lexemes first so greedy matching picks the
// longest operator, per spec.md §4.1.
type opEntry struct {
	lexeme string
	kind   token.Kind
}

var operatorsByLength = [][]opEntry{
	3: {
		{"**=", token.STAR_STAR_ASSIGN},
		{"&&=", token.AND_AND_ASSIGN},
		{"||=", token.OR_OR_ASSIGN},
		{"??=", token.QUESTION_QUESTION_ASSIGN},
		{"..=", token.DOTDOT_EQ},
	},
	2: {
		{"**", token.STAR_STAR},
		{"==", token.EQ_EQ},
		{"!=", token.NOT_EQ},
		{"<=", token.LESS_EQ},
		{">=", token.GREATER_EQ},
		{"&&", token.AND_AND},
		{"||", token.OR_OR},
		{"??", token.QUESTION_QUESTION},
		{"<<", token.LESS_LESS},
		{">>", token.GREATER_GREATER},
		{"<-", token.ARROW_LEFT},
		{"=>", token.FAT_ARROW},
		{"->", token.ARROW},
		{"?.", token.QUESTION_DOT},
		{"..", token.DOTDOT},
		{"+=", token.PLUS_ASSIGN},
		{"-=", token.MINUS_ASSIGN},
		{"*=", token.STAR_ASSIGN},
		{"/=", token.SLASH_ASSIGN},
		{"%=", token.PERCENT_ASSIGN},
	},
	1: {
		{"{", token.LBRACE}, {"}", token.RBRACE},
		{"(", token.LPAREN}, {")", token.RPAREN},
		{"[", token.LBRACK}, {"]", token.RBRACK},
		{",", token.COMMA}, {";", token.SEMICOLON},
		{":", token.COLON}, {".", token.DOT},
		{"?", token.QUESTION}, {"#", token.HASH},
		{"+", token.PLUS}, {"-", token.MINUS},
		{"*", token.STAR}, {"/", token.SLASH},
		{"%", token.PERCENT}, {"=", token.ASSIGN},
		{"<", token.LESS}, {">", token.GREATER},
		{"&", token.AMP}, {"|", token.PIPE},
		{"^", token.CARET}, {"~", token.TILDE},
		{"!", token.BANG},
	},
}

func (l *Lexer) readOperator(startPos token.Position) token.Token {
	for length := 3; length >= 1; length-- {
		candidate := l.peekRunes(length)
		for _, entry := range operatorsByLength[length] {
			if candidate == entry.lexeme {
				for i := 0; i < length; i++ {
					l.readChar()
				}
				return token.Token{Kind: entry.kind, Lexeme: entry.lexeme, Pos: startPos}
			}
		}
	}

	bad := l.ch
	l.addErrorf(diag.CodeUnexpectedChar, startPos, 1, "unexpected character %q", bad)
	l.readChar()
	return token.Token{Kind: token.ILLEGAL, Lexeme: string(bad), Pos: startPos}
}

// peekRunes returns the n runes starting at the current character without
// advancing the lexer.
func (l *Lexer) peekRunes(n int) string {
	var sb strings.Builder
	if l.ch == 0 {
		return ""
	}
	sb.WriteRune(l.ch)
	for i := 1; i < n; i++ {
		r := l.peekCharAt(i - 1)
		if r == 0 {
			break
		}
		sb.WriteRune(r)
	}
	s := sb.String()
	if utf8.RuneCountInString(s) < n {
		return ""
	}
	return s
}
