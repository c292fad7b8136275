package parser

import (
	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/lexer"
	"github.com/xbodwf/ljc/internal/token"
)

// parseExpression is the Pratt-parser core: it parses one prefix term then
// repeatedly folds in infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix := p.prefixFns[p.cur().Kind]
	if prefix == nil {
		p.errorf(diag.CodeUnexpectedToken, "no prefix parse function for %s", p.cur().Kind)
		return nil
	}
	left := prefix()

	for !p.curIs(token.SEMICOLON) && minPrec < p.peekPrecedence() {
		if p.stopAtNewline && p.bracketDepth == 0 && p.cur().NewlineBefore {
			return left
		}
		infix := p.infixFns[p.cur().Kind]
		if infix == nil {
			return left
		}
		left = infix(left)
	}
	return left
}

// parseStatementExpression parses a full expression the way parseExpression
// does, except a newline at bracket depth 0 ends it: this is what makes a
// newline a statement terminator (spec.md §4.2) without also cutting off a
// parenthesized or bracketed continuation.
func (p *Parser) parseStatementExpression(minPrec int) ast.Expression {
	outer := p.stopAtNewline
	p.stopAtNewline = true
	defer func() { p.stopAtNewline = outer }()
	return p.parseExpression(minPrec)
}

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.advance()
	return &ast.Identifier{Token: tok, Value: tok.Lexeme}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.advance()
	return &ast.IntLiteral{Token: tok, Value: tok.IntValue}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.advance()
	return &ast.FloatLiteral{Token: tok, Value: tok.FloatValue}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Lexeme}
}

// parseTemplateStringLiteral re-parses each `${...}` chunk recorded by the
// lexer as its own expression, using a fresh sub-parser over that span's
// tokens.
func (p *Parser) parseTemplateStringLiteral() ast.Expression {
	tok := p.advance()
	lit := &ast.TemplateStringLiteral{Token: tok}
	for _, c := range tok.Chunks {
		if c.Literal {
			lit.Chunks = append(lit.Chunks, ast.TemplateChunk{Literal: true, Text: c.Text})
			continue
		}
		exprToks, exprErrs := lexer.Tokenize(c.ExprSource, p.file)
		p.errors = append(p.errors, exprErrs...)
		sub := New(exprToks, p.file)
		expr := sub.parseExpression(LOWEST)
		p.errors = append(p.errors, sub.errors...)
		lit.Chunks = append(lit.Chunks, ast.TemplateChunk{Literal: false, Expr: expr})
	}
	return lit
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.advance()
	return &ast.BoolLiteral{Token: tok, Value: tok.Kind == token.TRUE}
}

func (p *Parser) parseNulLiteral() ast.Expression {
	return &ast.NulLiteral{Token: p.advance()}
}

func (p *Parser) parseThisExpression() ast.Expression {
	tok := p.advance()
	if p.methodDepth == 0 {
		p.errorfAt(diag.CodeInvalidThisSuper, tok, "'this' used outside a method")
	}
	return &ast.ThisExpression{Token: tok}
}

func (p *Parser) parseSuperExpression() ast.Expression {
	tok := p.advance()
	if p.methodDepth == 0 {
		p.errorfAt(diag.CodeInvalidThisSuper, tok, "'super' used outside a method")
	}
	return &ast.SuperExpression{Token: tok}
}

// parseGroupedOrArrow disambiguates `(expr)` from `(params) => body` by
// speculatively attempting the arrow-function parse first and backtracking
// on failure, the same save/restore-cursor strategy the teacher uses for
// its own ambiguous-prefix constructs.
func (p *Parser) parseGroupedOrArrow() ast.Expression {
	m := p.mark()
	if arrow := p.tryParseArrow(false); arrow != nil {
		return arrow
	}
	p.reset(m)

	tok := p.advance() // '('
	inner := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return inner
	}
	return &ast.GroupedExpression{Token: tok, Inner: inner}
}

func (p *Parser) parseAsyncArrow() ast.Expression {
	m := p.mark()
	tok := p.advance() // 'async'
	if !p.curIs(token.LPAREN) {
		p.reset(m)
		p.errorf(diag.CodeUnexpectedToken, "expected '(' after 'async'")
		return nil
	}
	arrow := p.tryParseArrow(true)
	if arrow == nil {
		p.reset(m)
		p.errorf(diag.CodeUnexpectedToken, "expected arrow function after 'async'")
		return nil
	}
	arrow.Token = tok
	return arrow
}

// tryParseArrow attempts to parse a `(params) => body` or a single bare
// `ident => body` lambda starting at the current token. It returns nil
// (without guaranteeing the cursor is unchanged) on failure; callers that
// need backtracking must mark()/reset() around the call themselves.
func (p *Parser) tryParseArrow(isAsync bool) *ast.ArrowFunctionExpression {
	tok := p.cur()

	var params []ast.Param
	if p.curIs(token.IDENT) && p.peekIs(token.FAT_ARROW) {
		name := p.advance()
		params = []ast.Param{{Name: name.Lexeme}}
	} else if p.curIs(token.LPAREN) {
		p.advance()
		for !p.curIs(token.RPAREN) {
			if !p.curIs(token.IDENT) {
				return nil
			}
			param := ast.Param{}
			name := p.advance()
			param.Name = name.Lexeme
			if p.curIs(token.COLON) {
				p.advance()
				param.Type = p.parseTypeAnnotation()
			}
			if p.curIs(token.ASSIGN) {
				p.advance()
				param.Default = p.parseExpression(ASSIGN)
			}
			params = append(params, param)
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if !p.curIs(token.RPAREN) {
			return nil
		}
		p.advance()
	} else {
		return nil
	}

	var retType ast.TypeAnnotation
	if p.curIs(token.COLON) {
		p.advance()
		retType = p.parseTypeAnnotation()
	}

	if !p.curIs(token.FAT_ARROW) {
		return nil
	}
	p.advance()

	var body ast.Node
	if p.curIs(token.LBRACE) {
		body = p.parseBlockStatement()
	} else {
		body = p.parseExpression(ASSIGN)
	}
	if body == nil {
		return nil
	}

	return &ast.ArrowFunctionExpression{Token: tok, Params: params, ReturnType: retType, Body: body, IsAsync: isAsync}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // '['
	lit := &ast.ArrayLiteral{Token: tok}
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		lit.Elements = append(lit.Elements, p.parseExpression(ASSIGN))
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACK)
	return lit
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.advance() // '{'
	lit := &ast.ObjectLiteral{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		prop := ast.ObjectProperty{}
		if p.curIs(token.LBRACK) {
			p.advance()
			prop.Key = p.parseExpression(LOWEST)
			prop.Computed = true
			p.expect(token.RBRACK)
		} else if p.curIs(token.STRING) {
			tok := p.advance()
			prop.Key = &ast.StringLiteral{Token: tok, Value: tok.Lexeme}
		} else {
			tok := p.advance()
			prop.Key = &ast.Identifier{Token: tok, Value: tok.Lexeme}
		}
		if p.curIs(token.COLON) {
			p.advance()
			prop.Value = p.parseExpression(ASSIGN)
		} else {
			prop.Shorthand = true
			prop.Value = prop.Key
		}
		lit.Properties = append(lit.Properties, prop)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return lit
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.advance()
	right := p.parseExpression(PREFIX)
	return &ast.UnaryExpression{Token: tok, Operator: tok.Lexeme, Right: right}
}

func (p *Parser) parseTypeofExpression() ast.Expression {
	tok := p.advance()
	return &ast.TypeofExpression{Token: tok, Expr: p.parseExpression(PREFIX)}
}

func (p *Parser) parseVoidExpression() ast.Expression {
	tok := p.advance()
	return &ast.VoidExpression{Token: tok, Expr: p.parseExpression(PREFIX)}
}

func (p *Parser) parseDeleteExpression() ast.Expression {
	tok := p.advance()
	expr := p.parseExpression(PREFIX)
	member, ok := expr.(*ast.MemberExpression)
	if !ok {
		p.errorf(diag.CodeUnexpectedToken, "'delete' requires a member expression target")
		return &ast.DeleteExpression{Token: tok}
	}
	return &ast.DeleteExpression{Token: tok, Target: member}
}

func (p *Parser) parseAwaitExpression() ast.Expression {
	tok := p.advance()
	return &ast.AwaitExpression{Token: tok, Expr: p.parseExpression(PREFIX)}
}

func (p *Parser) parseGoExpression() ast.Expression {
	tok := p.advance()
	callee := p.parseExpression(PREFIX)
	call, ok := callee.(*ast.CallExpression)
	if !ok {
		p.errorf(diag.CodeUnexpectedToken, "'go' requires a call expression")
		return &ast.GoExpression{Token: tok}
	}
	return &ast.GoExpression{Token: tok, Call: call}
}

func (p *Parser) parseChannelExpression() ast.Expression {
	tok := p.advance() // 'chan'
	elem := p.parseTypeAnnotation()
	e := &ast.ChannelExpression{Token: tok, ElemType: elem}
	if p.curIs(token.LPAREN) {
		p.advance()
		e.Capacity = p.parseExpression(LOWEST)
		p.expect(token.RPAREN)
	}
	return e
}

func (p *Parser) parseReceiveExpression() ast.Expression {
	tok := p.advance() // '<-'
	ch := p.parseExpression(PREFIX)
	return &ast.ReceiveExpression{Token: tok, Channel: ch}
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.advance()
	callee := p.parseExpression(PREFIX)
	if call, ok := callee.(*ast.CallExpression); ok {
		return &ast.NewExpression{Token: tok, Callee: call.Callee, Args: call.Args}
	}
	return &ast.NewExpression{Token: tok, Callee: callee}
}

func (p *Parser) parseYieldExpression() ast.Expression {
	tok := p.advance()
	delegate := false
	if p.curIs(token.STAR) {
		p.advance()
		delegate = true
	}
	var expr ast.Expression
	if !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) && !p.curIs(token.COMMA) && !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		expr = p.parseExpression(ASSIGN)
	}
	return &ast.YieldExpression{Token: tok, Expr: expr, Delegate: delegate}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	prec := precedences[tok.Kind]
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Lexeme, Right: right}
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	prec := precedences[tok.Kind]
	right := p.parseExpression(prec)
	return &ast.LogicalExpression{Token: tok, Left: left, Operator: tok.Lexeme, Right: right}
}

// parseAssignmentExpression is right-associative: `a = b = c` parses as
// `a = (b = c)`.
func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	right := p.parseExpression(ASSIGN - 1)
	return &ast.AssignmentExpression{Token: tok, Target: left, Operator: tok.Lexeme, Value: right}
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	tok := p.advance() // '?'
	then := p.parseExpression(ASSIGN)
	p.expect(token.COLON)
	elseExpr := p.parseExpression(ASSIGN)
	return &ast.TernaryExpression{Token: tok, Condition: cond, Then: then, Else: elseExpr}
}

func (p *Parser) parseRangeExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	right := p.parseExpression(RANGE)
	return &ast.RangeExpression{Token: tok, Start: left, End: right, Inclusive: tok.Kind == token.DOTDOT_EQ}
}

func (p *Parser) parseCastExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // 'of'
	return &ast.CastExpression{Token: tok, Expr: left, Type: p.parseTypeAnnotation()}
}

func (p *Parser) parseTypeCheckExpression(left ast.Expression) ast.Expression {
	tok := p.advance() // 'is'
	return &ast.TypeCheckExpression{Token: tok, Expr: left, Type: p.parseTypeAnnotation()}
}

func (p *Parser) parseInstanceofExpression(left ast.Expression) ast.Expression {
	tok := p.advance()
	class := p.parseExpression(COMPARE)
	return &ast.InstanceofExpression{Token: tok, Expr: left, Class: class}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.advance() // '('
	call := &ast.CallExpression{Token: tok, Callee: callee}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		call.Args = append(call.Args, p.parseExpression(ASSIGN))
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return call
}

func (p *Parser) parseMemberExpression(obj ast.Expression) ast.Expression {
	tok := p.advance() // '.' or '?.'
	optional := tok.Kind == token.QUESTION_DOT
	nameTok := p.advance()
	prop := &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme}
	p.checkPrivateAccess(obj, nameTok)
	return &ast.MemberExpression{Token: tok, Object: obj, Property: prop, Optional: optional}
}

func (p *Parser) parseIndexExpression(obj ast.Expression) ast.Expression {
	tok := p.advance() // '['
	idx := p.parseExpression(LOWEST)
	p.expect(token.RBRACK)
	return &ast.MemberExpression{Token: tok, Object: obj, Property: idx, Computed: true}
}

func (p *Parser) parseWhenExpression() ast.Expression {
	tok := p.advance() // 'when'
	p.expect(token.LPAREN)
	subject := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.pushBlock("when")
	defer p.popBlock()
	p.expect(token.LBRACE)
	arms := p.parseWhenArms(true)
	p.expect(token.RBRACE)
	return &ast.WhenExpression{Token: tok, Subject: subject, Arms: arms}
}
