package parser

import (
	"strings"

	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDef()
	case token.CLASS:
		return p.parseClassDef()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.YIELD:
		return p.parseYieldStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.DEL:
		return p.parseDeleteStatement()
	case token.PASS:
		return &ast.PassStatement{BaseNode: ast.NewBaseNode(p.curToken)}
	case token.IMPORT:
		return p.parseImportStatement()
	case token.FROM:
		return p.parseImportFromStatement()
	case token.SEMICOLON:
		return nil
	default:
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement handles bare expressions, assignments, and
// augmented assignments — the statement forms that begin with an
// expression rather than a keyword.
func (p *Parser) parseSimpleStatement() ast.Statement {
	tok := p.curToken
	first := p.parseExpression(LOWEST)

	switch {
	case p.peekTokenIs(token.ASSIGN):
		targets := []ast.Expression{first}
		for p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			next := p.parseExpression(LOWEST)
			if p.peekTokenIs(token.ASSIGN) {
				targets = append(targets, next)
				continue
			}
			return &ast.AssignStatement{BaseNode: ast.NewBaseNode(tok), Targets: targets, Value: next}
		}
		return &ast.AssignStatement{BaseNode: ast.NewBaseNode(tok), Targets: targets, Value: first}
	case p.peekTokenIs(token.PLUS_ASSIGN), p.peekTokenIs(token.MINUS_ASSIGN):
		op := strings.TrimSuffix(string(p.peekToken.Type), "=")
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		return &ast.AugAssignStatement{BaseNode: ast.NewBaseNode(tok), Target: first, Op: op, Value: value}
	}
	return &ast.ExpressionStatement{BaseNode: ast.NewBaseNode(tok), Expression: first}
}

func (p *Parser) parseFunctionDef() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{BaseNode: ast.NewBaseNode(p.curToken), Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParams()

	var returnType ast.TypeExpr
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		returnType = p.parseTypeExpr()
	}
	body := p.parseBlock()
	return &ast.FunctionDef{BaseNode: ast.NewBaseNode(tok), Name: name, Params: params, ReturnType: returnType, Body: body}
}

func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	for {
		param := &ast.Param{}
		if p.curTokenIs(token.DOUBLE_STAR) {
			p.nextToken()
			param.IsKwArg = true
		} else if p.curTokenIs(token.ASTERISK) {
			p.nextToken()
			param.IsVarArg = true
		}
		param.Name = p.curToken.Lexeme
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.ExplicitType = p.parseTypeExpr()
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.curToken
	name := p.curToken.Lexeme
	if p.peekTokenIs(token.LBRACKET) {
		p.nextToken()
		p.nextToken()
		var args []ast.TypeExpr
		args = append(args, p.parseTypeExpr())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			args = append(args, p.parseTypeExpr())
		}
		if !p.expectPeek(token.RBRACKET) {
			return ast.NewNamedType(tok, name)
		}
		return &ast.GenericType{BaseNode: ast.NewBaseNode(tok), Name: name, Args: args}
	}
	return ast.NewNamedType(tok, name)
}

func (p *Parser) parseClassDef() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{BaseNode: ast.NewBaseNode(p.curToken), Value: p.curToken.Lexeme}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
			p.nextToken()
		}
	}
	body := p.parseBlock()
	return &ast.ClassDef{BaseNode: ast.NewBaseNode(tok), Name: name, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) {
		return &ast.ReturnStatement{BaseNode: ast.NewBaseNode(tok)}
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.ReturnStatement{BaseNode: ast.NewBaseNode(tok), Value: value}
}

func (p *Parser) parseYieldStatement() ast.Statement {
	tok := p.curToken
	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) {
		return &ast.YieldStatement{BaseNode: ast.NewBaseNode(tok)}
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.YieldStatement{BaseNode: ast.NewBaseNode(tok), Value: value}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	test := p.parseExpression(LOWEST)
	body := p.parseBlock()
	var orelse []ast.Statement
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			orelse = []ast.Statement{p.parseIfStatement()}
		} else {
			orelse = p.parseBlock()
		}
	}
	return &ast.IfStatement{BaseNode: ast.NewBaseNode(tok), Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	test := p.parseExpression(LOWEST)
	body := p.parseBlock()
	return &ast.WhileStatement{BaseNode: ast.NewBaseNode(tok), Test: test, Body: body}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	target := p.parseExpression(COMPARE)
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	iter := p.parseExpression(LOWEST)
	body := p.parseBlock()
	return &ast.ForStatement{BaseNode: ast.NewBaseNode(tok), Target: target, Iter: iter, Body: body}
}

func (p *Parser) parseWithStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	ctxExpr := p.parseExpression(LOWEST)
	var optionalVars ast.Expression
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		p.nextToken()
		optionalVars = p.parseExpression(LOWEST)
	}
	body := p.parseBlock()
	return &ast.WithStatement{BaseNode: ast.NewBaseNode(tok), ContextExpr: ctxExpr, OptionalVars: optionalVars, Body: body}
}

func (p *Parser) parseDeleteStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	targets := []ast.Expression{p.parseExpression(LOWEST)}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		targets = append(targets, p.parseExpression(LOWEST))
	}
	return &ast.DeleteStatement{BaseNode: ast.NewBaseNode(tok), Targets: targets}
}

// parseImportStatement parses `import a.b.c` or `import a.b.c as alias`.
func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	path := p.curToken.Lexeme
	for p.peekTokenIs(token.DOT) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			break
		}
		path += "." + p.curToken.Lexeme
	}
	var alias *ast.Identifier
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		alias = &ast.Identifier{BaseNode: ast.NewBaseNode(p.curToken), Value: p.curToken.Lexeme}
	}
	return &ast.ImportStatement{BaseNode: ast.NewBaseNode(tok), Path: path, Alias: alias}
}

// parseImportFromStatement parses `from .level.module import a, b as c`.
func (p *Parser) parseImportFromStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	level := 0
	for p.curTokenIs(token.DOT) {
		level++
		p.nextToken()
	}
	module := ""
	if p.curTokenIs(token.IDENT) {
		module = p.curToken.Lexeme
		for p.peekTokenIs(token.DOT) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				break
			}
			module += "." + p.curToken.Lexeme
		}
	}
	if !p.expectPeek(token.IMPORT) {
		return nil
	}
	p.nextToken()
	var names []ast.ImportName
	for {
		name := p.curToken.Lexeme
		alias := ""
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			if p.expectPeek(token.IDENT) {
				alias = p.curToken.Lexeme
			}
		}
		names = append(names, ast.ImportName{Name: name, Alias: alias})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	return &ast.ImportFromStatement{BaseNode: ast.NewBaseNode(tok), Module: module, Level: level, Names: names}
}
