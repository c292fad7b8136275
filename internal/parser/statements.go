package parser

import (
	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/token"
)

// parseStatement dispatches on the current token to the matching statement
// parser. It returns nil (without consuming anything further) on a parse
// failure so ParseProgram's synchronize() can recover.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.CONST, token.MUT:
		return p.finishSimpleStatement(p.parseVarDeclaration(false))
	case token.FN:
		return p.parseFunctionDeclaration(false)
	case token.ASYNC:
		if p.peekIs(token.FN) {
			return p.parseFunctionDeclaration(false)
		}
	case token.CLASS:
		return p.parseClassDeclaration(false, false, nil)
	case token.ENUM:
		return p.parseEnumDeclaration(false)
	case token.TYPE:
		return p.finishSimpleStatement(p.parseTypeAliasStatement(false))
	case token.IMPORT:
		return p.finishSimpleStatement(p.parseImportStatement())
	case token.EXPORT:
		return p.parseExportStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForOrForIn()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.WHEN:
		return p.parseWhenStatement()
	case token.RETURN:
		return p.finishSimpleStatement(p.parseReturnStatement())
	case token.BREAK:
		return p.finishSimpleStatement(p.parseBreakStatement())
	case token.CONTINUE:
		return p.finishSimpleStatement(p.parseContinueStatement())
	case token.THROW:
		return p.finishSimpleStatement(p.parseThrowStatement())
	case token.TRY:
		return p.parseTryStatement()
	case token.DEFER:
		return p.finishSimpleStatement(p.parseDeferStatement())
	case token.USING:
		return p.parseUsingStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.ABSTRACT:
		if p.peekIs(token.CLASS) {
			p.advance()
			return p.parseClassDeclaration(false, true, nil)
		}
	}
	return p.finishSimpleStatement(p.parseExpressionOrSendStatement())
}

// finishSimpleStatement consumes an optional trailing ';' after a
// non-block statement; a nil stmt is passed through unchanged.
func (p *Parser) finishSimpleStatement(stmt ast.Statement) ast.Statement {
	if p.curIs(token.SEMICOLON) {
		p.advance()
	}
	return stmt
}

func (p *Parser) parseExpressionOrSendStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseStatementExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.curIs(token.ARROW_LEFT) {
		p.advance()
		value := p.parseStatementExpression(LOWEST)
		return &ast.SendStatement{Token: tok, Channel: expr, Value: value}
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseVarDeclaration(exported bool) ast.Statement {
	tok := p.advance() // 'const' or 'mut'
	kind := tok.Lexeme
	if !p.curIs(token.IDENT) {
		p.errorf(diag.CodeUnexpectedToken, "expected identifier after '%s'", kind)
		return nil
	}
	nameTok := p.cur()
	name := p.advance().Lexeme
	p.checkReservedName(nameTok)

	decl := &ast.VarDeclaration{Token: tok, Kind: kind, Name: name, Exported: exported}
	if p.curIs(token.COLON) {
		p.advance()
		decl.Type = p.parseTypeAnnotation()
	}
	if p.curIs(token.ASSIGN) {
		p.advance()
		decl.Init = p.parseExpression(ASSIGN)
	} else if kind == "const" {
		p.errorf(diag.CodeMissingInitializer, "'const %s' requires an initializer", name)
	}
	return decl
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	seen := make(map[string]bool)
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		param := ast.Param{}
		if p.curIs(token.DOTDOT) && p.peekIs(token.DOT) {
			p.advance()
			p.advance()
			param.Variadic = true
		}
		if !p.curIs(token.IDENT) {
			p.errorf(diag.CodeUnexpectedToken, "expected parameter name, got %s", p.cur().Kind)
			break
		}
		nameTok := p.cur()
		param.Name = p.advance().Lexeme
		p.checkReservedName(nameTok)
		if seen[param.Name] {
			p.errorfAt(diag.CodeDuplicateParameter, nameTok, "duplicate parameter name %q", param.Name)
		}
		seen[param.Name] = true
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
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseFunctionDeclaration(exported bool) ast.Statement {
	tok := p.cur()
	doc := tok.Doc
	isAsync := false
	if tok.Kind == token.ASYNC {
		isAsync = true
		p.advance()
	}
	p.advance() // 'fn'
	if !p.curIs(token.IDENT) {
		p.errorf(diag.CodeUnexpectedToken, "expected function name")
		return nil
	}
	nameTok := p.cur()
	name := p.advance().Lexeme
	p.checkReservedName(nameTok)

	decl := &ast.FunctionDeclaration{Token: tok, Name: name, Exported: exported, IsAsync: isAsync, DocComment: doc}
	if p.curIs(token.LESS) {
		p.advance()
		for !p.curIs(token.GREATER) && !p.curIs(token.EOF) {
			decl.TypeParams = append(decl.TypeParams, p.advance().Lexeme)
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.GREATER)
	}
	decl.Params = p.parseParamList()
	if p.curIs(token.COLON) {
		p.advance()
		decl.ReturnType = p.parseTypeAnnotation()
	}
	p.pushBlock("fn " + name)
	decl.Body = p.parseBlockStatement()
	p.popBlock()
	return decl
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.cur()
	if !p.expect(token.LBRACE) {
		return &ast.BlockStatement{Token: tok}
	}
	block := &ast.BlockStatement{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize(token.RBRACE)
		}
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.advance() // 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.pushBlock("if")
	then := p.parseBlockStatement()
	p.popBlock()

	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.advance()
		if p.curIs(token.IF) {
			stmt.Else = p.parseIfStatement()
		} else {
			p.pushBlock("else")
			stmt.Else = p.parseBlockStatement()
			p.popBlock()
		}
	}
	return stmt
}

func (p *Parser) parseForOrForIn() ast.Statement {
	tok := p.advance() // 'for'
	p.expect(token.LPAREN)

	if p.curIs(token.IDENT) && p.peekIs(token.IN) {
		name := p.advance().Lexeme
		p.advance() // 'in'
		iterable := p.parseExpression(LOWEST)
		p.expect(token.RPAREN)
		p.pushBlock("for")
		body := p.parseBlockStatement()
		p.popBlock()
		return &ast.ForInStatement{Token: tok, VarName: name, Iterable: iterable, Body: body}
	}

	var init ast.Statement
	if !p.curIs(token.SEMICOLON) {
		if p.curIs(token.CONST) || p.curIs(token.MUT) {
			init = p.parseVarDeclaration(false)
		} else {
			init = p.parseExpressionOrSendStatement()
		}
	}
	p.expect(token.SEMICOLON)

	var cond ast.Expression
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression(LOWEST)
	}
	p.expect(token.SEMICOLON)

	var update ast.Expression
	if !p.curIs(token.RPAREN) {
		update = p.parseExpression(LOWEST)
	}
	p.expect(token.RPAREN)

	p.pushBlock("for")
	body := p.parseBlockStatement()
	p.popBlock()
	return &ast.ForStatement{Token: tok, Init: init, Cond: cond, Update: update, Body: body}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.pushBlock("while")
	body := p.parseBlockStatement()
	p.popBlock()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	tok := p.advance() // 'do'
	p.pushBlock("do")
	body := p.parseBlockStatement()
	p.popBlock()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	if p.curIs(token.SEMICOLON) {
		p.advance()
	}
	return &ast.DoWhileStatement{Token: tok, Body: body, Condition: cond}
}

func (p *Parser) parseWhenStatement() ast.Statement {
	tok := p.advance() // 'when'
	p.expect(token.LPAREN)
	subject := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.pushBlock("when")
	defer p.popBlock()
	p.expect(token.LBRACE)
	arms := p.parseWhenArms(false)
	p.expect(token.RBRACE)
	return &ast.WhenStatement{Token: tok, Subject: subject, Arms: arms}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.advance()
	if p.curIs(token.SEMICOLON) || p.curIs(token.RBRACE) || p.cur().NewlineBefore {
		return &ast.ReturnStatement{Token: tok}
	}
	return &ast.ReturnStatement{Token: tok, Value: p.parseStatementExpression(LOWEST)}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.advance()
	if p.curIs(token.SEMICOLON) || p.curIs(token.RBRACE) || p.cur().NewlineBefore {
		return &ast.BreakStatement{Token: tok}
	}
	return &ast.BreakStatement{Token: tok, Value: p.parseStatementExpression(LOWEST)}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	return &ast.ContinueStatement{Token: p.advance()}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.advance()
	return &ast.ThrowStatement{Token: tok, Value: p.parseStatementExpression(LOWEST)}
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.advance() // 'try'
	p.pushBlock("try")
	block := p.parseBlockStatement()
	p.popBlock()

	stmt := &ast.TryStatement{Token: tok, Block: block}
	for p.curIs(token.CATCH) {
		p.advance()
		clause := ast.CatchClause{}
		p.expect(token.LPAREN)
		clause.Param = p.advance().Lexeme
		if p.curIs(token.COLON) {
			p.advance()
			clause.Type = p.parseTypeAnnotation()
		}
		p.expect(token.RPAREN)
		p.pushBlock("catch")
		clause.Body = p.parseBlockStatement()
		p.popBlock()
		stmt.Catches = append(stmt.Catches, clause)
	}
	if p.curIs(token.IDENT) && p.cur().Lexeme == "finally" {
		p.advance()
		p.pushBlock("finally")
		stmt.Finally = p.parseBlockStatement()
		p.popBlock()
	}
	if len(stmt.Catches) == 0 && stmt.Finally == nil {
		p.errorf(diag.CodeUnexpectedToken, "'try' requires at least one 'catch' or a 'finally' block")
	}
	return stmt
}

func (p *Parser) parseDeferStatement() ast.Statement {
	tok := p.advance()
	return &ast.DeferStatement{Token: tok, Expr: p.parseStatementExpression(LOWEST)}
}

func (p *Parser) parseUsingStatement() ast.Statement {
	tok := p.advance() // 'using'
	p.expect(token.LPAREN)
	name := p.advance().Lexeme
	p.expect(token.ASSIGN)
	init := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.pushBlock("using")
	body := p.parseBlockStatement()
	p.popBlock()
	return &ast.UsingStatement{Token: tok, Name: name, Init: init, Body: body}
}

func (p *Parser) parseTypeAliasStatement(exported bool) ast.Statement {
	tok := p.advance() // 'type'
	name := p.advance().Lexeme
	p.expect(token.ASSIGN)
	typ := p.parseTypeAnnotation()
	return &ast.TypeAliasStatement{Token: tok, Name: name, Type: typ, Exported: exported}
}

func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.advance() // 'import'
	stmt := &ast.ImportStatement{Token: tok}

	if p.curIs(token.STAR) {
		p.advance()
		p.expect(token.AS)
		stmt.Namespace = p.advance().Lexeme
	} else if p.curIs(token.LBRACE) {
		p.advance()
		for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			spec := ast.ImportSpecifier{}
			spec.Name = p.advance().Lexeme
			spec.Alias = spec.Name
			if p.curIs(token.AS) {
				p.advance()
				spec.Alias = p.advance().Lexeme
			}
			stmt.Named = append(stmt.Named, spec)
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBRACE)
	} else if p.curIs(token.IDENT) {
		stmt.Default = p.advance().Lexeme
		if p.curIs(token.COMMA) {
			p.advance()
			p.expect(token.LBRACE)
			for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
				spec := ast.ImportSpecifier{}
				spec.Name = p.advance().Lexeme
				spec.Alias = spec.Name
				if p.curIs(token.AS) {
					p.advance()
					spec.Alias = p.advance().Lexeme
				}
				stmt.Named = append(stmt.Named, spec)
				if p.curIs(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RBRACE)
		}
	}

	p.expect(token.FROM)
	stmt.Source = p.advance().Lexeme
	return stmt
}

func (p *Parser) parseExportStatement() ast.Statement {
	tok := p.advance() // 'export'
	switch p.cur().Kind {
	case token.CONST, token.MUT:
		return p.finishSimpleStatement(&ast.ExportStatement{Token: tok, Declaration: p.parseVarDeclaration(true)})
	case token.FN:
		return &ast.ExportStatement{Token: tok, Declaration: p.parseFunctionDeclaration(true)}
	case token.CLASS:
		return &ast.ExportStatement{Token: tok, Declaration: p.parseClassDeclaration(true, false, nil)}
	case token.ENUM:
		return &ast.ExportStatement{Token: tok, Declaration: p.parseEnumDeclaration(true)}
	case token.TYPE:
		return p.finishSimpleStatement(&ast.ExportStatement{Token: tok, Declaration: p.parseTypeAliasStatement(true)})
	case token.DEFAULT:
		p.advance()
		return p.finishSimpleStatement(&ast.ExportStatement{Token: tok, Default: p.parseStatementExpression(LOWEST)})
	case token.LBRACE:
		p.advance()
		stmt := &ast.ExportStatement{Token: tok}
		for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			spec := ast.ExportSpecifier{}
			spec.Name = p.advance().Lexeme
			spec.Alias = spec.Name
			if p.curIs(token.AS) {
				p.advance()
				spec.Alias = p.advance().Lexeme
			}
			stmt.Specifiers = append(stmt.Specifiers, spec)
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBRACE)
		if p.curIs(token.FROM) {
			p.advance()
			stmt.Source = p.advance().Lexeme
		}
		return p.finishSimpleStatement(stmt)
	default:
		p.errorf(diag.CodeExportWithoutTarget, "'export' must be followed by a declaration, '{', or 'default'")
		return nil
	}
}
