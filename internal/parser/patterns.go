package parser

import (
	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/token"
)

// parseWhenArms parses the comma/semicolon-separated arm list of a when
// block. asExpression selects whether each arm's body is parsed as an
// expression (WhenExpression) or a block (WhenStatement).
func (p *Parser) parseWhenArms(asExpression bool) []ast.WhenArm {
	var arms []ast.WhenArm
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		tok := p.cur()
		pat := p.parsePattern()

		var guard ast.Expression
		if p.curIs(token.WHERE) {
			p.advance()
			guard = p.parseExpression(LOWEST)
		}

		p.expect(token.FAT_ARROW)

		var body ast.Node
		if asExpression {
			body = p.parseExpression(ASSIGN)
		} else if p.curIs(token.LBRACE) {
			body = p.parseBlockStatement()
		} else {
			body = p.parseStatement()
		}

		arms = append(arms, ast.WhenArm{Token: tok, Pattern: pat, Guard: guard, Body: body})

		if p.curIs(token.COMMA) || p.curIs(token.SEMICOLON) {
			p.advance()
			continue
		}
	}
	return arms
}

// parsePattern parses one arm head, folding trailing `| pattern` entries
// into a single OrPattern.
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseSinglePattern()
	if !p.curIs(token.PIPE) {
		return first
	}
	or := &ast.OrPattern{Token: p.cur(), Patterns: []ast.Pattern{first}}
	for p.curIs(token.PIPE) {
		p.advance()
		or.Patterns = append(or.Patterns, p.parseSinglePattern())
	}
	return or
}

func (p *Parser) parseSinglePattern() ast.Pattern {
	tok := p.cur()
	switch tok.Kind {
	case token.ELSE:
		p.advance()
		return &ast.ElsePattern{Token: tok}
	case token.LBRACK:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	case token.IS:
		p.advance()
		return &ast.TypePattern{Token: tok, Type: p.parseTypeAnnotation()}
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.NUL, token.MINUS:
		return &ast.LiteralPattern{Token: tok, Value: p.parseExpression(COMPARE)}
	case token.IDENT:
		if p.peekIs(token.IS) {
			name := p.advance()
			p.advance() // 'is'
			return &ast.TypePattern{Token: tok, Name: name.Lexeme, Type: p.parseTypeAnnotation()}
		}
		p.advance()
		return &ast.IdentPattern{Token: tok, Name: tok.Lexeme}
	default:
		p.errorf(diag.CodeInvalidPattern, "unexpected token %s in pattern", tok.Kind)
		p.advance()
		return &ast.ElsePattern{Token: tok}
	}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	tok := p.advance() // '['
	pat := &ast.ArrayPattern{Token: tok}
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		pat.Elements = append(pat.Elements, p.parseSinglePattern())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACK)
	return pat
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	tok := p.advance() // '{'
	pat := &ast.ObjectPattern{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		nameTok := p.advance()
		field := ast.ObjectPatternField{Key: nameTok.Lexeme}
		if p.curIs(token.COLON) {
			p.advance()
			field.Value = p.parseSinglePattern()
		} else {
			field.Value = &ast.IdentPattern{Token: nameTok, Name: nameTok.Lexeme}
		}
		pat.Fields = append(pat.Fields, field)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return pat
}
