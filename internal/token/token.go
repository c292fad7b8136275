// Package token defines the lexical token kinds produced by internal/lexer
// and consumed by internal/parser. The kind set is closed: every lexeme the
// lexer can produce maps to exactly one Kind.
package token

import "fmt"

// Kind identifies the category of a Token. The zero value is ILLEGAL so an
// unset Token is never mistaken for a valid one.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	COMMENT

	// literals
	IDENT
	INT
	FLOAT
	STRING
	TEMPLATE_STRING

	literalEnd

	// keywords
	CONST
	MUT
	FN
	IF
	ELSE
	FOR
	WHILE
	DO
	WHEN
	WHERE
	IS
	OF
	RETURN
	BREAK
	CONTINUE
	THROW
	TRY
	CATCH
	IMPORT
	EXPORT
	DEFAULT
	FROM
	AS
	TYPE
	CLASS
	ENUM
	EXTENDS
	IMPLEMENTS
	NEW
	THIS
	SUPER
	DEFER
	USING
	GO
	CHAN
	AWAIT
	ASYNC
	YIELD
	TRUE
	FALSE
	NUL
	TYPEOF
	INSTANCEOF
	VOID
	DELETE
	PUBLIC
	PRIVATE
	PROTECTED
	STATIC
	ABSTRACT
	READONLY
	IN

	keywordEnd

	// punctuation
	LBRACE
	RBRACE
	LPAREN
	RPAREN
	LBRACK
	RBRACK
	COMMA
	SEMICOLON
	COLON
	DOT
	QUESTION_DOT
	QUESTION
	QUESTION_COLON
	DOTDOT
	DOTDOT_EQ
	FAT_ARROW
	ARROW
	HASH

	// operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	STAR_STAR
	EQ_EQ
	NOT_EQ
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	AND_AND
	OR_OR
	BANG
	QUESTION_QUESTION
	AMP
	PIPE
	CARET
	TILDE
	LESS_LESS
	GREATER_GREATER
	ARROW_LEFT // <- (channel send/receive)

	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	STAR_STAR_ASSIGN
	AND_AND_ASSIGN
	OR_OR_ASSIGN
	QUESTION_QUESTION_ASSIGN
)

var kindStrings = [...]string{
	ILLEGAL:         "ILLEGAL",
	EOF:             "EOF",
	COMMENT:         "COMMENT",
	IDENT:           "IDENT",
	INT:             "INT",
	FLOAT:           "FLOAT",
	STRING:          "STRING",
	TEMPLATE_STRING: "TEMPLATE_STRING",

	CONST: "const", MUT: "mut", FN: "fn", IF: "if", ELSE: "else",
	FOR: "for", WHILE: "while", DO: "do", WHEN: "when", WHERE: "where",
	IS: "is", OF: "of", RETURN: "return", BREAK: "break", CONTINUE: "continue",
	THROW: "throw", TRY: "try", CATCH: "catch", IMPORT: "import", EXPORT: "export",
	DEFAULT: "default", FROM: "from", AS: "as", TYPE: "type", CLASS: "class",
	ENUM: "enum", EXTENDS: "extends", IMPLEMENTS: "implements", NEW: "new",
	THIS: "this", SUPER: "super", DEFER: "defer", USING: "using", GO: "go",
	CHAN: "chan", AWAIT: "await", ASYNC: "async", YIELD: "yield", TRUE: "true",
	FALSE: "false", NUL: "nul", TYPEOF: "typeof", INSTANCEOF: "instanceof",
	VOID: "void", DELETE: "delete", PUBLIC: "public", PRIVATE: "private",
	PROTECTED: "protected", STATIC: "static", ABSTRACT: "abstract",
	READONLY: "readonly", IN: "in",

	LBRACE: "{", RBRACE: "}", LPAREN: "(", RPAREN: ")", LBRACK: "[", RBRACK: "]",
	COMMA: ",", SEMICOLON: ";", COLON: ":", DOT: ".", QUESTION_DOT: "?.",
	QUESTION: "?", QUESTION_COLON: "?:", DOTDOT: "..", DOTDOT_EQ: "..=",
	FAT_ARROW: "=>", ARROW: "->", HASH: "#",

	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", STAR_STAR: "**",
	EQ_EQ: "==", NOT_EQ: "!=", LESS: "<", LESS_EQ: "<=", GREATER: ">",
	GREATER_EQ: ">=", AND_AND: "&&", OR_OR: "||", BANG: "!",
	QUESTION_QUESTION: "??", AMP: "&", PIPE: "|", CARET: "^", TILDE: "~",
	LESS_LESS: "<<", GREATER_GREATER: ">>", ARROW_LEFT: "<-",

	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=",
	SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", STAR_STAR_ASSIGN: "**=",
	AND_AND_ASSIGN: "&&=", OR_OR_ASSIGN: "||=", QUESTION_QUESTION_ASSIGN: "??=",
}

// String returns the canonical textual form of the kind.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindStrings) && kindStrings[k] != "" {
		return kindStrings[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral reports whether k is one of the literal kinds.
func (k Kind) IsLiteral() bool { return k > EOF && k < literalEnd }

// IsKeyword reports whether k is one of the reserved keyword kinds.
func (k Kind) IsKeyword() bool { return k > literalEnd && k < keywordEnd }

// keywords maps the reserved lexeme spelling to its Kind. Built once from
// kindStrings so the two tables can never drift.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, keywordEnd-literalEnd-1)
	for k := literalEnd + 1; k < keywordEnd; k++ {
		m[kindStrings[k]] = k
	}
	return m
}()

// LookupIdent returns KEYWORD kind for reserved words, IDENT otherwise.
func LookupIdent(lexeme string) Kind {
	if k, ok := keywords[lexeme]; ok {
		return k
	}
	return IDENT
}

// Position is a 1-based line/column, 0-based byte-offset source location.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders "line:column", the form used throughout diagnostics.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TemplateChunk is one piece of a template-string literal: either a literal
// text run, or the source span of an embedded ${...} expression to be
// re-lexed by the parser.
type TemplateChunk struct {
	Literal    bool
	Text       string // when Literal
	ExprSource string // when !Literal: source text between ${ and }
	ExprPos    Position
}

// Token is a single lexical unit: a kind, its source spelling, an optional
// decoded value, and the position of its first character.
type Token struct {
	Kind     Kind
	Lexeme   string
	Pos      Position
	IntValue int64
	FloatValue float64
	// Chunks holds the decoded pieces of a TEMPLATE_STRING token; nil
	// otherwise.
	Chunks []TemplateChunk
	// Doc holds contiguous `##` doc-comment lines immediately preceding
	// this token, joined with "\n" and stripped of their leading marker;
	// empty when none precede it.
	Doc string
	// NewlineBefore reports whether at least one newline was skipped as
	// trivia before this token began; consulted by statement-boundary
	// productions in internal/parser to implement newline-terminated
	// statements.
	NewlineBefore bool
}

// Length returns the rune length of the token's lexeme, used to underline
// multi-character tokens in diagnostics.
func (t Token) Length() int {
	if t.Kind == STRING || t.Kind == TEMPLATE_STRING {
		return len([]rune(t.Lexeme)) + 2 // account for quotes
	}
	return len([]rune(t.Lexeme))
}

// End returns the position immediately after the token.
func (t Token) End() Position {
	p := t.Pos
	p.Column += t.Length()
	p.Offset += len(t.Lexeme)
	return p
}
