package parser

import (
	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "no prefix parse function for %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		// An `if` on a later line starts the next statement, not a ternary.
		if p.peekTokenIs(token.IF) && p.peekToken.Line > p.curToken.Line {
			return left
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{BaseNode: ast.NewBaseNode(p.curToken), Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	return &ast.IntLiteral{BaseNode: ast.NewBaseNode(p.curToken), Value: parseIntFromLexeme(p.curToken.Lexeme)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	return &ast.FloatLiteral{BaseNode: ast.NewBaseNode(p.curToken), Value: parseFloatFromLexeme(p.curToken.Lexeme)}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{BaseNode: ast.NewBaseNode(p.curToken), Value: p.curToken.Lexeme}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{BaseNode: ast.NewBaseNode(p.curToken), Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNoneLiteral() ast.Expression {
	return &ast.NoneLiteral{BaseNode: ast.NewBaseNode(p.curToken)}
}

func (p *Parser) parseUnaryOp() ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	if tok.Type == token.NOT {
		op = "not"
	}
	precedence := UNARY
	if tok.Type == token.NOT {
		precedence = NOT_PREC
	}
	p.nextToken()
	operand := p.parseExpression(precedence)
	return &ast.UnaryOp{BaseNode: ast.NewBaseNode(tok), Op: op, Operand: operand}
}

func (p *Parser) parseBinOp(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinOp{BaseNode: ast.NewBaseNode(tok), Left: left, Op: op, Right: right}
}

func (p *Parser) parseBoolOp(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if existing, ok := left.(*ast.BoolOp); ok && existing.Op == op {
		existing.Values = append(existing.Values, right)
		return existing
	}
	return &ast.BoolOp{BaseNode: ast.NewBaseNode(tok), Op: op, Values: []ast.Expression{left, right}}
}

// parseCompare greedily absorbs a chain of comparison operators into one
// Compare node, so typeCompare's chained-operator diagnostics (in/is
// chaining) can see the whole chain.
func (p *Parser) parseCompare(left ast.Expression) ast.Expression {
	tok := p.curToken
	compare := &ast.Compare{BaseNode: ast.NewBaseNode(tok), Left: left}
	for {
		op := p.curToken.Lexeme
		if p.curTokenIs(token.IN) {
			op = "in"
		} else if p.curTokenIs(token.IS) {
			op = "is"
			if p.peekTokenIs(token.NOT) {
				p.nextToken()
				op = "is not"
			}
		} else if p.curTokenIs(token.NOT) && p.peekTokenIs(token.IN) {
			p.nextToken()
			op = "not in"
		}
		precedence := COMPARE
		p.nextToken()
		comparator := p.parseExpression(precedence)
		compare.Ops = append(compare.Ops, op)
		compare.Comparators = append(compare.Comparators, comparator)
		if !compareOps[p.peekToken.Type] {
			break
		}
		p.nextToken()
	}
	return compare
}

var compareOps = map[token.Type]bool{
	token.EQ: true, token.NOT_EQ: true, token.LT: true, token.GT: true,
	token.LTE: true, token.GTE: true, token.IN: true, token.IS: true,
}

func (p *Parser) parseIfExp(body ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(token.ELSE) {
		return body
	}
	p.nextToken()
	orelse := p.parseExpression(TERNARY)
	return &ast.IfExp{BaseNode: ast.NewBaseNode(tok), Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseGroupedOrTuple() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleLiteral{BaseNode: ast.NewBaseNode(tok)}
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.COMMA) {
		elements := []ast.Expression{first}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RPAREN) {
				break
			}
			p.nextToken()
			elements = append(elements, p.parseExpression(LOWEST))
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.TupleLiteral{BaseNode: ast.NewBaseNode(tok), Elements: elements}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return first
}

func (p *Parser) parseListOrComprehension() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLiteral{BaseNode: ast.NewBaseNode(tok)}
	}
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.FOR) {
		gens := p.parseComprehensionClauses()
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.ListComp{BaseNode: ast.NewBaseNode(tok), Elt: first, Generators: gens}
	}
	elements := []ast.Expression{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACKET) {
			break
		}
		p.nextToken()
		elements = append(elements, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ListLiteral{BaseNode: ast.NewBaseNode(tok), Elements: elements}
}

func (p *Parser) parseComprehensionClauses() []ast.Comprehension {
	var gens []ast.Comprehension
	for p.peekTokenIs(token.FOR) {
		p.nextToken() // on FOR
		p.nextToken()
		target := p.parseExpression(COMPARE)
		if !p.expectPeek(token.IN) {
			return gens
		}
		p.nextToken()
		iter := p.parseExpression(TERNARY)
		comp := ast.Comprehension{Target: target, Iter: iter}
		for p.peekTokenIs(token.IF) {
			p.nextToken()
			p.nextToken()
			comp.Ifs = append(comp.Ifs, p.parseExpression(TERNARY))
		}
		gens = append(gens, comp)
	}
	return gens
}

func (p *Parser) parseSetOrDictOrComprehension() ast.Expression {
	tok := p.curToken
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.DictLiteral{BaseNode: ast.NewBaseNode(tok)}
	}
	p.nextToken()
	firstKey := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		firstValue := p.parseExpression(LOWEST)
		if p.peekTokenIs(token.FOR) {
			gens := p.parseComprehensionClauses()
			if !p.expectPeek(token.RBRACE) {
				return nil
			}
			return &ast.DictComp{BaseNode: ast.NewBaseNode(tok), Key: firstKey, Value: firstValue, Generators: gens}
		}
		keys := []ast.Expression{firstKey}
		values := []ast.Expression{firstValue}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACE) {
				break
			}
			p.nextToken()
			keys = append(keys, p.parseExpression(LOWEST))
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			values = append(values, p.parseExpression(LOWEST))
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return &ast.DictLiteral{BaseNode: ast.NewBaseNode(tok), Keys: keys, Values: values}
	}
	if p.peekTokenIs(token.FOR) {
		gens := p.parseComprehensionClauses()
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return &ast.SetComp{BaseNode: ast.NewBaseNode(tok), Elt: firstKey, Generators: gens}
	}
	elements := []ast.Expression{firstKey}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken()
		elements = append(elements, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.SetLiteral{BaseNode: ast.NewBaseNode(tok), Elements: elements}
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.curToken
	call := &ast.CallExpr{BaseNode: ast.NewBaseNode(tok), Func: fn}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}
	p.nextToken()
	for {
		if p.curTokenIs(token.DOUBLE_STAR) {
			p.nextToken()
			value := p.parseExpression(LOWEST)
			call.Keywords = append(call.Keywords, ast.Keyword{Name: "**kwargs", Value: value})
		} else if p.curTokenIs(token.ASTERISK) {
			p.nextToken()
			value := p.parseExpression(LOWEST)
			call.Keywords = append(call.Keywords, ast.Keyword{Name: "*args", Value: value})
		} else if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
			name := p.curToken.Lexeme
			p.nextToken()
			p.nextToken()
			value := p.parseExpression(LOWEST)
			call.Keywords = append(call.Keywords, ast.Keyword{Name: name, Value: value})
		} else {
			call.Args = append(call.Args, p.parseExpression(LOWEST))
		}
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parseSubscriptExpression(value ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	if p.curTokenIs(token.COLON) {
		return p.finishSliceExpression(tok, value, nil)
	}
	first := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		return p.finishSliceExpression(tok, value, first)
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.SubscriptExpr{BaseNode: ast.NewBaseNode(tok), Value: value, Index: first}
}

func (p *Parser) finishSliceExpression(tok token.Token, value ast.Expression, lower ast.Expression) ast.Expression {
	slice := &ast.SliceExpr{BaseNode: ast.NewBaseNode(tok), Lower: lower}
	if !p.peekTokenIs(token.RBRACKET) && !p.peekTokenIs(token.COLON) {
		p.nextToken()
		slice.Upper = p.parseExpression(LOWEST)
	}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			slice.Step = p.parseExpression(LOWEST)
		}
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.SubscriptExpr{BaseNode: ast.NewBaseNode(tok), Value: value, Index: slice}
}

func (p *Parser) parseAttributeExpression(value ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.AttributeExpr{BaseNode: ast.NewBaseNode(tok), Value: value, Attr: p.curToken.Lexeme}
}
