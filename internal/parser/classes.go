package parser

import (
	"strings"

	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/token"
)

func (p *Parser) parseClassDeclaration(exported, abstract bool, decorators []ast.Decorator) ast.Statement {
	tok := p.advance() // 'class'
	doc := tok.Doc
	if !p.curIs(token.IDENT) {
		p.errorf(diag.CodeUnexpectedToken, "expected class name")
		return nil
	}
	nameTok := p.cur()
	name := p.advance().Lexeme
	p.checkReservedName(nameTok)

	decl := &ast.ClassDeclaration{
		Token: tok, Name: name, Abstract: abstract,
		Decorators: decorators, Exported: exported, DocComment: doc,
	}

	if p.curIs(token.EXTENDS) {
		p.advance()
		superName := p.advance()
		decl.Super = &ast.Identifier{Token: superName, Value: superName.Lexeme}
	}
	if p.curIs(token.IMPLEMENTS) {
		p.advance()
		for {
			nameTok := p.advance()
			decl.Interfaces = append(decl.Interfaces, &ast.Identifier{Token: nameTok, Value: nameTok.Lexeme})
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	p.pushBlock("class " + name)
	defer p.popBlock()
	if !p.expect(token.LBRACE) {
		return decl
	}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		member := p.parseClassMember()
		if member != nil {
			decl.Members = append(decl.Members, member)
		} else {
			p.synchronize(token.RBRACE)
		}
	}
	p.expect(token.RBRACE)
	return decl
}

// isPrivateLookingName reports whether name is private by convention
// (leading `_`) or was seen declared with the `private` modifier
// somewhere earlier in this file.
func (p *Parser) isPrivateLookingName(name string) bool {
	if strings.HasPrefix(name, "_") {
		return true
	}
	return p.privateNames[name]
}

// checkPrivateAccess enforces spec.md §4.3's privacy rule at parse time:
// a private member may only be reached through `this.` or `super.`.
// Access through any other object expression is flagged here, since it is
// by construction from outside the declaring class.
func (p *Parser) checkPrivateAccess(obj ast.Expression, propTok token.Token) {
	if !p.isPrivateLookingName(propTok.Lexeme) {
		return
	}
	switch obj.(type) {
	case *ast.ThisExpression, *ast.SuperExpression:
		return
	}
	p.errorfAt(diag.CodePrivateAccess, propTok, "%q is private; it can only be accessed via 'this' or 'super' from inside its declaring class", propTok.Lexeme)
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var m ast.Modifiers
	var accessTok *token.Token
	for {
		tok := p.cur()
		switch tok.Kind {
		case token.PUBLIC, token.PRIVATE, token.PROTECTED:
			if accessTok != nil {
				p.errorfAt(diag.CodeMisplacedModifier, tok, "member already has access modifier '%s'; '%s' is redundant", accessTok.Lexeme, tok.Lexeme)
			}
			cp := tok
			accessTok = &cp
			switch tok.Kind {
			case token.PUBLIC:
				m.Public = true
			case token.PRIVATE:
				m.Private = true
			case token.PROTECTED:
				m.Protected = true
			}
		case token.STATIC:
			if m.Static {
				p.errorfAt(diag.CodeMisplacedModifier, tok, "duplicate 'static' modifier")
			}
			if m.Abstract {
				p.errorfAt(diag.CodeMisplacedModifier, tok, "'static' cannot combine with 'abstract'")
			}
			m.Static = true
		case token.ABSTRACT:
			if m.Abstract {
				p.errorfAt(diag.CodeMisplacedModifier, tok, "duplicate 'abstract' modifier")
			}
			if m.Static {
				p.errorfAt(diag.CodeMisplacedModifier, tok, "'abstract' cannot combine with 'static'")
			}
			m.Abstract = true
		case token.READONLY:
			if m.Readonly {
				p.errorfAt(diag.CodeMisplacedModifier, tok, "duplicate 'readonly' modifier")
			}
			m.Readonly = true
		default:
			return m
		}
		p.advance()
	}
}

func (p *Parser) parseClassMember() ast.ClassMember {
	mods := p.parseModifiers()
	isAsync := false
	if p.curIs(token.ASYNC) {
		isAsync = true
		p.advance()
	}

	if p.curIs(token.FN) || isAsync {
		if p.curIs(token.FN) {
			p.advance()
		}
		if !p.curIs(token.IDENT) && p.cur().Lexeme != "constructor" {
			p.errorf(diag.CodeUnexpectedToken, "expected method name")
			return nil
		}
		nameTok := p.advance()
		if mods.Private {
			p.privateNames[nameTok.Lexeme] = true
		}
		if mods.Readonly {
			p.errorfAt(diag.CodeMisplacedModifier, nameTok, "'readonly' is not valid on a method")
		}
		method := &ast.MethodMember{
			Token: nameTok, Name: nameTok.Lexeme, Modifiers: mods, IsAsync: isAsync,
			IsConstructor: nameTok.Lexeme == "constructor",
		}
		method.Params = p.parseParamList()
		if p.curIs(token.COLON) {
			p.advance()
			method.ReturnType = p.parseTypeAnnotation()
		}
		if mods.Abstract {
			if p.curIs(token.SEMICOLON) {
				p.advance()
			}
			return method
		}
		p.pushBlock(nameTok.Lexeme)
		p.methodDepth++
		method.Body = p.parseBlockStatement()
		p.methodDepth--
		p.popBlock()
		return method
	}

	if !p.curIs(token.IDENT) {
		p.errorf(diag.CodeUnexpectedToken, "expected field or method name, got %s", p.cur().Kind)
		p.advance()
		return nil
	}
	tok := p.cur()
	name := p.advance().Lexeme
	if mods.Private {
		p.privateNames[name] = true
	}
	if mods.Abstract {
		p.errorfAt(diag.CodeMisplacedModifier, tok, "'abstract' is not valid on a field")
	}
	field := &ast.FieldMember{Token: tok, Name: name, Modifiers: mods}
	if p.curIs(token.COLON) {
		p.advance()
		field.Type = p.parseTypeAnnotation()
	}
	if p.curIs(token.ASSIGN) {
		p.advance()
		field.Init = p.parseExpression(ASSIGN)
	}
	if p.curIs(token.SEMICOLON) {
		p.advance()
	}
	return field
}

func (p *Parser) parseEnumDeclaration(exported bool) ast.Statement {
	tok := p.advance() // 'enum'
	nameTok := p.cur()
	name := p.advance().Lexeme
	p.checkReservedName(nameTok)
	decl := &ast.EnumDeclaration{Token: tok, Name: name, Exported: exported}
	p.pushBlock("enum " + name)
	defer p.popBlock()
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		member := ast.EnumMember{Name: p.advance().Lexeme}
		if p.curIs(token.ASSIGN) {
			p.advance()
			member.Value = p.parseExpression(ASSIGN)
		}
		decl.Members = append(decl.Members, member)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return decl
}
