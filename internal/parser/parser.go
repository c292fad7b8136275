// Package parser turns a token stream from internal/lexer into an
// internal/ast tree using recursive-descent statement parsing and Pratt
// (precedence-climbing) expression parsing.
package parser

import (
	"fmt"

	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/lexer"
	"github.com/xbodwf/ljc/internal/token"
)

// Precedence levels, lowest to highest. Plain and compound assignment
// operators share the ASSIGN rung, the loosest one above LOWEST (below
// ternary), and are parsed right-associatively, matching JS
// expression-grammar assignment binding.
const (
	_ int = iota
	LOWEST
	ASSIGN     // = += -= **= &&= ||= ??=
	TERNARY    // ?:
	NULLISH    // ??
	LOGICAL_OR // ||
	LOGICAL_AND
	BIT_OR // |
	BIT_XOR
	BIT_AND
	EQUALS     // == !=
	COMPARE    // < > <= >= is instanceof in
	SHIFT      // << >>
	RANGE      // .. ..=
	SUM        // + -
	PRODUCT    // * / %
	EXPONENT   // **
	CAST       // expr of T
	PREFIX     // -x !x ~x typeof void delete await <-
	CALL       // f(...)
	MEMBER     // a.b a?.b a[b]
)

var precedences = map[token.Kind]int{
	token.ASSIGN: ASSIGN, token.PLUS_ASSIGN: ASSIGN, token.MINUS_ASSIGN: ASSIGN,
	token.STAR_ASSIGN: ASSIGN, token.SLASH_ASSIGN: ASSIGN, token.PERCENT_ASSIGN: ASSIGN,
	token.STAR_STAR_ASSIGN: ASSIGN, token.AND_AND_ASSIGN: ASSIGN, token.OR_OR_ASSIGN: ASSIGN,
	token.QUESTION_QUESTION_ASSIGN: ASSIGN,

	token.QUESTION: TERNARY,

	token.QUESTION_QUESTION: NULLISH,
	token.OR_OR:             LOGICAL_OR,
	token.AND_AND:           LOGICAL_AND,
	token.PIPE:              BIT_OR,
	token.CARET:             BIT_XOR,
	token.AMP:               BIT_AND,

	token.EQ_EQ: EQUALS, token.NOT_EQ: EQUALS,

	token.LESS: COMPARE, token.GREATER: COMPARE, token.LESS_EQ: COMPARE, token.GREATER_EQ: COMPARE,
	token.IS: COMPARE, token.INSTANCEOF: COMPARE, token.IN: COMPARE,

	token.LESS_LESS: SHIFT, token.GREATER_GREATER: SHIFT,

	token.DOTDOT: RANGE, token.DOTDOT_EQ: RANGE,

	token.PLUS: SUM, token.MINUS: SUM,
	token.STAR: PRODUCT, token.SLASH: PRODUCT, token.PERCENT: PRODUCT,
	token.STAR_STAR: EXPONENT,
	token.OF:         CAST,

	token.LPAREN:       CALL,
	token.DOT:          MEMBER,
	token.QUESTION_DOT: MEMBER,
	token.LBRACK:       MEMBER,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// BlockContext tracks nested block kinds for better diagnostic messages,
// mirroring the teacher's block-stack error-context mechanism.
type BlockContext struct {
	Kind  string
	Start token.Position
}

// Parser consumes a pre-lexed token slice and produces an *ast.Program.
type Parser struct {
	file   string
	tokens []token.Token
	pos    int

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn

	errors     diag.List
	blockStack []BlockContext

	// bracketDepth counts open '(' / '[' not yet closed; newlines are only
	// statement terminators at depth 0, per spec.md §4.2 ("inside () and []
	// newlines are ignored").
	bracketDepth int
	// stopAtNewline is set for the duration of a statement-leading
	// expression parse (parseStatementExpression); when true and
	// bracketDepth is 0, a newline before the next infix token ends the
	// expression there instead of folding it in, so a newline-terminated
	// statement never swallows the next line's statement as an operand.
	stopAtNewline bool

	// privateNames accumulates every field/method name declared `private`
	// anywhere in the file parsed so far, so a
	// later member access elsewhere in the file can be checked against it.
	privateNames map[string]bool

	// methodDepth counts nested method/constructor bodies currently being
	// parsed; `this`/`super` are only valid while it is > 0.
	methodDepth int
}

// New builds a Parser over tokens produced for file.
func New(tokens []token.Token, file string) *Parser {
	p := &Parser{file: file, tokens: tokens, privateNames: make(map[string]bool)}

	p.prefixFns = map[token.Kind]prefixParseFn{
		token.IDENT:           p.parseIdentifier,
		token.INT:             p.parseIntLiteral,
		token.FLOAT:           p.parseFloatLiteral,
		token.STRING:          p.parseStringLiteral,
		token.TEMPLATE_STRING: p.parseTemplateStringLiteral,
		token.TRUE:            p.parseBoolLiteral,
		token.FALSE:           p.parseBoolLiteral,
		token.NUL:             p.parseNulLiteral,
		token.THIS:            p.parseThisExpression,
		token.SUPER:           p.parseSuperExpression,
		token.LPAREN:          p.parseGroupedOrArrow,
		token.LBRACK:          p.parseArrayLiteral,
		token.LBRACE:          p.parseObjectLiteral,
		token.MINUS:           p.parseUnaryExpression,
		token.BANG:            p.parseUnaryExpression,
		token.TILDE:           p.parseUnaryExpression,
		token.PLUS:            p.parseUnaryExpression,
		token.TYPEOF:          p.parseTypeofExpression,
		token.VOID:            p.parseVoidExpression,
		token.DELETE:          p.parseDeleteExpression,
		token.AWAIT:           p.parseAwaitExpression,
		token.GO:              p.parseGoExpression,
		token.CHAN:            p.parseChannelExpression,
		token.ARROW_LEFT:      p.parseReceiveExpression,
		token.NEW:             p.parseNewExpression,
		token.YIELD:           p.parseYieldExpression,
		token.WHEN:            p.parseWhenExpression,
		token.ASYNC:           p.parseAsyncArrow,
	}

	p.infixFns = map[token.Kind]infixParseFn{
		token.PLUS: p.parseBinaryExpression, token.MINUS: p.parseBinaryExpression,
		token.STAR: p.parseBinaryExpression, token.SLASH: p.parseBinaryExpression,
		token.PERCENT: p.parseBinaryExpression, token.STAR_STAR: p.parseBinaryExpression,
		token.EQ_EQ: p.parseBinaryExpression, token.NOT_EQ: p.parseBinaryExpression,
		token.LESS: p.parseBinaryExpression, token.LESS_EQ: p.parseBinaryExpression,
		token.GREATER: p.parseBinaryExpression, token.GREATER_EQ: p.parseBinaryExpression,
		token.AMP: p.parseBinaryExpression, token.PIPE: p.parseBinaryExpression,
		token.CARET: p.parseBinaryExpression, token.LESS_LESS: p.parseBinaryExpression,
		token.GREATER_GREATER: p.parseBinaryExpression,

		token.AND_AND: p.parseLogicalExpression, token.OR_OR: p.parseLogicalExpression,
		token.QUESTION_QUESTION: p.parseLogicalExpression,

		token.ASSIGN: p.parseAssignmentExpression, token.PLUS_ASSIGN: p.parseAssignmentExpression,
		token.MINUS_ASSIGN: p.parseAssignmentExpression, token.STAR_ASSIGN: p.parseAssignmentExpression,
		token.SLASH_ASSIGN: p.parseAssignmentExpression, token.PERCENT_ASSIGN: p.parseAssignmentExpression,
		token.STAR_STAR_ASSIGN: p.parseAssignmentExpression, token.AND_AND_ASSIGN: p.parseAssignmentExpression,
		token.OR_OR_ASSIGN: p.parseAssignmentExpression, token.QUESTION_QUESTION_ASSIGN: p.parseAssignmentExpression,

		token.QUESTION: p.parseTernaryExpression,

		token.DOTDOT: p.parseRangeExpression, token.DOTDOT_EQ: p.parseRangeExpression,

		token.OF:         p.parseCastExpression,
		token.IS:         p.parseTypeCheckExpression,
		token.INSTANCEOF: p.parseInstanceofExpression,

		token.LPAREN: p.parseCallExpression,
		token.DOT:    p.parseMemberExpression, token.QUESTION_DOT: p.parseMemberExpression,
		token.LBRACK: p.parseIndexExpression,
	}

	return p
}

// ParseSource lexes then parses source, returning the combined lexer and
// parser diagnostics alongside the resulting program.
func ParseSource(source, file string) (*ast.Program, diag.List) {
	tokens, lexErrs := lexer.Tokenize(source, file)
	p := New(tokens, file)
	prog := p.ParseProgram()

	all := make(diag.List, 0, len(lexErrs)+len(p.errors))
	all = append(all, lexErrs...)
	all = append(all, p.errors...)
	return prog, all
}

// Errors returns the diagnostics collected while parsing.
func (p *Parser) Errors() diag.List { return p.errors }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur().Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.cur()
	switch t.Kind {
	case token.LPAREN, token.LBRACK:
		p.bracketDepth++
	case token.RPAREN, token.RBRACK:
		if p.bracketDepth > 0 {
			p.bracketDepth--
		}
	}
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// expect advances past cur() if it matches k, otherwise records a
// diagnostic and leaves the cursor in place so synchronize() can recover.
func (p *Parser) expect(k token.Kind) bool {
	if p.curIs(k) {
		p.advance()
		return true
	}
	p.errorf(diag.CodeUnexpectedToken, "expected %s, got %s", k, p.cur().Kind)
	return false
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	d := diag.Newf(code, p.cur().Pos, format, args...).WithFile(p.file)
	d.Length = p.cur().Length()
	if len(p.blockStack) > 0 {
		bc := p.blockStack[len(p.blockStack)-1]
		d.Message = fmt.Sprintf("%s (in %s block starting at %s)", d.Message, bc.Kind, bc.Start)
	}
	p.errors = append(p.errors, d)
}

// errorfAt is errorf for a diagnostic anchored at an explicit token rather
// than the parser's current position.
func (p *Parser) errorfAt(code diag.Code, tok token.Token, format string, args ...any) {
	d := diag.Newf(code, tok.Pos, format, args...).WithFile(p.file)
	d.Length = tok.Length()
	if len(p.blockStack) > 0 {
		bc := p.blockStack[len(p.blockStack)-1]
		d.Message = fmt.Sprintf("%s (in %s block starting at %s)", d.Message, bc.Kind, bc.Start)
	}
	p.errors = append(p.errors, d)
}

func (p *Parser) pushBlock(kind string) {
	p.blockStack = append(p.blockStack, BlockContext{Kind: kind, Start: p.cur().Pos})
}

func (p *Parser) popBlock() {
	if len(p.blockStack) > 0 {
		p.blockStack = p.blockStack[:len(p.blockStack)-1]
	}
}

// jsReservedWords are ECMAScript keywords that cannot be used as a
// declared identifier in emitted output; checkReservedName flags a source
// declaration that collides with one.
var jsReservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "new": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true, "yield": true,
	"let": true, "static": true, "enum": true, "await": true, "implements": true,
	"package": true, "protected": true, "private": true, "public": true,
	"interface": true, "null": true, "true": true, "false": true,
}

// checkReservedName flags a declared identifier that collides with a
// reserved word in the emitted target language.
func (p *Parser) checkReservedName(tok token.Token) {
	if jsReservedWords[tok.Lexeme] {
		p.errorfAt(diag.CodeReservedName, tok, "%q collides with a reserved word in the target language", tok.Lexeme)
	}
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.cur().Kind]; ok {
		return pr
	}
	return LOWEST
}

// mark/reset implement the lightweight cursor-only backtracking used by
// the arrow-function speculative parse: save the position, error count and
// bracket depth, and on failure roll all three back so the retried parse
// doesn't see the failed attempt's diagnostics or brackets.
type mark struct {
	pos    int
	errLen int
	depth  int
}

func (p *Parser) mark() mark {
	return mark{pos: p.pos, errLen: len(p.errors), depth: p.bracketDepth}
}

func (p *Parser) reset(m mark) {
	p.pos = m.pos
	p.errors = p.errors[:m.errLen]
	p.bracketDepth = m.depth
}

// synchronize skips tokens until a statement boundary, an EOF, or one of
// extra is reached, so one malformed statement doesn't cascade into every
// statement after it.
func (p *Parser) synchronize(extra ...token.Kind) {
	starters := map[token.Kind]bool{
		token.CONST: true, token.MUT: true, token.FN: true, token.IF: true,
		token.FOR: true, token.WHILE: true, token.DO: true, token.WHEN: true,
		token.RETURN: true, token.BREAK: true, token.CONTINUE: true, token.THROW: true,
		token.TRY: true, token.IMPORT: true, token.EXPORT: true, token.TYPE: true,
		token.CLASS: true, token.ENUM: true, token.DEFER: true, token.USING: true,
		token.RBRACE: true,
	}
	for _, k := range extra {
		starters[k] = true
	}
	for !p.curIs(token.EOF) {
		if starters[p.cur().Kind] {
			return
		}
		p.advance()
	}
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.synchronize()
		}
	}
	return prog
}
