package parser

import (
	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/token"
)

// parseTypeAnnotation parses one type, then folds in trailing `[]`/`[N]`
// array suffixes and `|`/`&` union/intersection combinators, which bind
// looser than every other type form.
func (p *Parser) parseTypeAnnotation() ast.TypeAnnotation {
	t := p.parseArraySuffixedType()
	if t == nil {
		return nil
	}

	if p.curIs(token.PIPE) {
		u := &ast.UnionType{Token: p.cur(), Options: []ast.TypeAnnotation{t}}
		for p.curIs(token.PIPE) {
			p.advance()
			u.Options = append(u.Options, p.parseArraySuffixedType())
		}
		return u
	}
	if p.curIs(token.AMP) {
		i := &ast.IntersectionType{Token: p.cur(), Options: []ast.TypeAnnotation{t}}
		for p.curIs(token.AMP) {
			p.advance()
			i.Options = append(i.Options, p.parseArraySuffixedType())
		}
		return i
	}
	return t
}

func (p *Parser) parseArraySuffixedType() ast.TypeAnnotation {
	t := p.parsePrimaryType()
	for p.curIs(token.LBRACK) {
		tok := p.advance()
		arr := &ast.ArrayType{Token: tok, Elem: t}
		if p.curIs(token.INT) {
			n := int(p.cur().IntValue)
			arr.Size = &n
			p.advance()
		}
		p.expect(token.RBRACK)
		t = arr
	}
	return t
}

func (p *Parser) parsePrimaryType() ast.TypeAnnotation {
	switch p.cur().Kind {
	case token.IDENT, token.THIS:
		tok := p.advance()
		if tok.Lexeme == "map" && p.curIs(token.LESS) {
			p.advance()
			key := p.parseTypeAnnotation()
			p.expect(token.COMMA)
			value := p.parseTypeAnnotation()
			p.expect(token.GREATER)
			return &ast.MapType{Token: tok, Key: key, Value: value}
		}
		t := &ast.SimpleType{Token: tok, Name: tok.Lexeme}
		if p.curIs(token.LESS) {
			p.advance()
			for !p.curIs(token.GREATER) && !p.curIs(token.EOF) {
				t.TypeArgs = append(t.TypeArgs, p.parseTypeAnnotation())
				if p.curIs(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.GREATER)
		}
		return t
	case token.LBRACK:
		return p.parseTupleType()
	case token.LBRACE:
		return p.parseObjectType()
	case token.LPAREN:
		return p.parseFunctionType()
	default:
		p.errorf(diag.CodeUnexpectedToken, "expected a type, got %s", p.cur().Kind)
		return nil
	}
}

func (p *Parser) parseTupleType() ast.TypeAnnotation {
	tok := p.advance() // '['
	t := &ast.TupleType{Token: tok}
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		t.Elements = append(t.Elements, p.parseTypeAnnotation())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACK)
	return t
}

func (p *Parser) parseObjectType() ast.TypeAnnotation {
	tok := p.advance() // '{'
	t := &ast.ObjectType{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		nameTok := p.advance()
		prop := ast.ObjectTypeProperty{Name: nameTok.Lexeme}
		if p.curIs(token.QUESTION) {
			p.advance()
			prop.Optional = true
		}
		p.expect(token.COLON)
		prop.Type = p.parseTypeAnnotation()
		t.Properties = append(t.Properties, prop)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return t
}

// parseFunctionType parses a function-type signature `(Params) -> Return`.
// The map type `map<K, V>` is parsed by parsePrimaryType's IDENT branch, so
// in type position LPAREN always starts a function type.
func (p *Parser) parseFunctionType() ast.TypeAnnotation {
	tok := p.advance() // '('
	t := &ast.FunctionType{Token: tok}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		t.Params = append(t.Params, p.parseTypeAnnotation())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	p.expect(token.ARROW)
	t.Return = p.parseTypeAnnotation()
	return t
}
