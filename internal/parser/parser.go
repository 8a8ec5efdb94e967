// Package parser implements a Pratt expression parser plus a recursive-
// descent statement parser for the checker's brace-delimited dialect
// surface syntax: a curToken/peekToken cursor, registered prefix/infix
// parse functions, and expectPeek-driven error recovery.
package parser

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/diagnostics"
	"github.com/funvibe/funxy-check/internal/lexer"
	"github.com/funvibe/funxy-check/internal/token"
)

// Operator precedence, lowest to highest.
const (
	LOWEST int = iota
	TERNARY
	OR_PREC
	AND_PREC
	NOT_PREC
	COMPARE
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POWER
	CALL_INDEX
)

var precedences = map[token.Type]int{
	token.IF:          TERNARY,
	token.OR:          OR_PREC,
	token.AND:         AND_PREC,
	token.EQ:          COMPARE,
	token.NOT_EQ:      COMPARE,
	token.LT:          COMPARE,
	token.GT:          COMPARE,
	token.LTE:         COMPARE,
	token.GTE:         COMPARE,
	token.IN:          COMPARE,
	token.IS:          COMPARE,
	token.NOT:         COMPARE,
	token.PLUS:        ADDITIVE,
	token.MINUS:       ADDITIVE,
	token.ASTERISK:    MULTIPLICATIVE,
	token.SLASH:       MULTIPLICATIVE,
	token.FLOORDIV:    MULTIPLICATIVE,
	token.PERCENT:     MULTIPLICATIVE,
	token.DOUBLE_STAR: POWER,
	token.LPAREN:      CALL_INDEX,
	token.LBRACKET:    CALL_INDEX,
	token.DOT:         CALL_INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a token stream and produces an *ast.Program.
type Parser struct {
	l    *lexer.Lexer
	file string

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.DiagnosticError

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New builds a Parser over source, tagging diagnostics with file.
func New(source, file string) *Parser {
	p := &Parser{l: lexer.New(source), file: file}
	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.NONE:     p.parseNoneLiteral,
		token.NOT:      p.parseUnaryOp,
		token.MINUS:    p.parseUnaryOp,
		token.BANG:     p.parseUnaryOp,
		token.LPAREN:   p.parseGroupedOrTuple,
		token.LBRACKET: p.parseListOrComprehension,
		token.LBRACE:   p.parseSetOrDictOrComprehension,
	}
	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:        p.parseBinOp,
		token.MINUS:       p.parseBinOp,
		token.ASTERISK:    p.parseBinOp,
		token.SLASH:       p.parseBinOp,
		token.FLOORDIV:    p.parseBinOp,
		token.PERCENT:     p.parseBinOp,
		token.DOUBLE_STAR: p.parseBinOp,
		token.AND:         p.parseBoolOp,
		token.OR:          p.parseBoolOp,
		token.EQ:          p.parseCompare,
		token.NOT_EQ:      p.parseCompare,
		token.LT:          p.parseCompare,
		token.GT:          p.parseCompare,
		token.LTE:         p.parseCompare,
		token.GTE:         p.parseCompare,
		token.IN:          p.parseCompare,
		token.IS:          p.parseCompare,
		token.NOT:         p.parseCompare,
		token.LPAREN:      p.parseCallExpression,
		token.LBRACKET:    p.parseSubscriptExpression,
		token.DOT:         p.parseAttributeExpression,
		token.IF:          p.parseIfExp,
	}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken, "expected next token to be %s, got %s instead", t, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, diagnostics.NewWithFile(diagnostics.CategoryParseError, p.file, tok, fmt.Sprintf(format, args...)))
}

// Errors returns the parser-phase diagnostics accumulated while parsing.
func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{BaseNode: ast.NewBaseNode(p.curToken), File: p.file}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog
}

// parseBlock parses a `{ stmt* }` block, leaving curToken on the closing brace.
func (p *Parser) parseBlock() []ast.Statement {
	var stmts []ast.Statement
	if !p.expectPeek(token.LBRACE) {
		return stmts
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
	return stmts
}

func parseIntFromLexeme(lexeme string) *big.Int {
	n := new(big.Int)
	n.SetString(lexeme, 10)
	return n
}

func parseFloatFromLexeme(lexeme string) float64 {
	f, _ := strconv.ParseFloat(lexeme, 64)
	return f
}
