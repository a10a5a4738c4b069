// Package parser builds FerrisScript ASTs from token streams.
//
// The parser is recursive descent over declarations with Pratt-style
// precedence climbing for expressions. Syntax errors never abort the pass:
// the parser records a diagnostic and resynchronizes at the next statement
// boundary (';' or '}') or declaration keyword, so one compile reports
// every independent syntax error it can find.
package parser

import (
	"strconv"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/ast"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/diag"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/lexer"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/token"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/types"
)

// Precedence levels for operators.
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x !x
	CALL        // f(x)
	FIELD       // a.b
)

var precedences = map[token.Type]int{
	token.OR:     OR,
	token.AND:    AND,
	token.EQ:     EQUALS,
	token.NEQ:    EQUALS,
	token.LT:     LESSGREATER,
	token.LTE:    LESSGREATER,
	token.GT:     LESSGREATER,
	token.GTE:    LESSGREATER,
	token.PLUS:   SUM,
	token.MINUS:  SUM,
	token.MULT:   PRODUCT,
	token.DIV:    PRODUCT,
	token.LPAREN: CALL,
	token.DOT:    FIELD,
}

// Parser parses FerrisScript source code into an AST.
type Parser struct {
	l     *lexer.Lexer
	diags []diag.Diagnostic

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// New creates a new Parser.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.SELF, p.parseSelf)
	p.registerPrefix(token.INT_LIT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT_LIT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING_LIT, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NOT, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.MULT, p.parseInfixExpression)
	p.registerInfix(token.DIV, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NEQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.LTE, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.GTE, p.parseInfixExpression)
	p.registerInfix(token.AND, p.parseInfixExpression)
	p.registerInfix(token.OR, p.parseInfixExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseFieldAccess)

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Diagnostics returns the syntax diagnostics collected so far.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.diags
}

// ParseProgram parses the entire program: an ordered sequence of global
// let declarations, function declarations, and signal declarations.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		var ok bool
		switch p.curToken.Type {
		case token.AT:
			export := p.parseExportAnnotation()
			if export == nil {
				p.synchronizeTopLevel()
				continue
			}
			if !p.expectPeek(token.LET) {
				p.synchronizeTopLevel()
				continue
			}
			if stmt := p.parseLetStatement(export); stmt != nil {
				program.Globals = append(program.Globals, stmt)
				ok = true
			}
		case token.LET:
			if stmt := p.parseLetStatement(nil); stmt != nil {
				program.Globals = append(program.Globals, stmt)
				ok = true
			}
		case token.FN:
			if decl := p.parseFunctionDecl(); decl != nil {
				program.Functions = append(program.Functions, decl)
				ok = true
			}
		case token.SIGNAL:
			if decl := p.parseSignalDecl(); decl != nil {
				program.Signals = append(program.Signals, decl)
				ok = true
			}
		default:
			p.report(diag.New("E100", p.curToken.Line, p.curToken.Column, len(p.curToken.Literal), p.curToken.Literal))
		}

		if !ok {
			p.synchronizeTopLevel()
			continue
		}
		p.nextToken()
	}

	return program
}

// parseExportAnnotation parses @export, @export_range(...), @export_enum(...)
// or @export_file(...). curToken is '@' on entry and the annotation's last
// token on exit.
func (p *Parser) parseExportAnnotation() *ast.ExportAnnotation {
	at := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	export := &ast.ExportAnnotation{Token: at, Name: p.curToken.Literal}

	switch export.Name {
	case "export":
		return export
	case "export_range", "export_enum", "export_file":
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		export.Args = p.parseExpressionList(token.RPAREN)
		if export.Args == nil {
			return nil
		}
		return export
	default:
		p.report(diag.New("E100", p.curToken.Line, p.curToken.Column, len(p.curToken.Literal), "@"+p.curToken.Literal))
		return nil
	}
}

// parseLetStatement parses let [mut] name[: Type] = expr; with curToken on
// 'let'. export is non-nil only for annotated globals.
func (p *Parser) parseLetStatement(export *ast.ExportAnnotation) *ast.LetStatement {
	stmt := &ast.LetStatement{Token: p.curToken, Export: export}

	if p.peekTokenIs(token.MUT) {
		p.nextToken()
		stmt.Mutable = true
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.peekTokenIs(token.IDENT) {
			p.report(diag.New("E103", p.peekToken.Line, p.peekToken.Column, len(p.peekToken.Literal), p.peekToken.Literal))
			return nil
		}
		p.nextToken()
		stmt.TypeName = p.curToken.Literal
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return stmt
}

// parseFunctionDecl parses fn name(params) [-> Type] { body }.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	decl := &ast.FunctionDecl{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil
	}
	decl.Params = params

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		if !p.peekTokenIs(token.IDENT) {
			p.report(diag.New("E103", p.peekToken.Line, p.peekToken.Column, len(p.peekToken.Literal), p.peekToken.Literal))
			return nil
		}
		p.nextToken()
		decl.ReturnTypeName = p.curToken.Literal
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	decl.Body = p.parseBlockStatement()

	return decl
}

// parseSignalDecl parses signal name(params);
func (p *Parser) parseSignalDecl() *ast.SignalDecl {
	decl := &ast.SignalDecl{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil
	}
	decl.Params = params

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return decl
}

// parseParamList parses (name: Type, ...) with curToken on '('. On success
// curToken is ')'.
func (p *Parser) parseParamList() ([]*ast.Param, bool) {
	params := []*ast.Param{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		param := &ast.Param{Token: p.curToken, Name: p.curToken.Literal}

		if !p.expectPeek(token.COLON) {
			return nil, false
		}
		if !p.peekTokenIs(token.IDENT) {
			p.report(diag.New("E103", p.peekToken.Line, p.peekToken.Column, len(p.peekToken.Literal), p.peekToken.Literal))
			return nil, false
		}
		p.nextToken()
		param.TypeName = p.curToken.Literal
		params = append(params, param)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseBlockStatement parses { statements } with curToken on '{'. On exit
// curToken is '}'. Statement-level syntax errors resynchronize inside the
// block so later statements still parse.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronizeStatement()
			continue
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}

	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		if stmt := p.parseLetStatement(nil); stmt != nil {
			return stmt
		}
		return nil
	case token.AT:
		p.report(diag.New("E702", p.curToken.Line, p.curToken.Column, 1))
		return nil
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

// parseExpressionOrAssignStatement parses either `expr;` or
// `target op value;` where target is an identifier or self rooted field
// path and op is one of the assignment operators.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	first := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if token.IsAssignOp(p.peekToken.Type) {
		target, ok := targetPath(expr)
		if !ok || (target.Self && len(target.Fields) == 0) {
			p.report(diag.New("E102", first.Line, first.Column, len(first.Literal)))
			return nil
		}
		p.nextToken()
		stmt := &ast.AssignStatement{Token: p.curToken, Target: target, Op: p.curToken.Literal}
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		return stmt
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ExpressionStatement{Token: first, Expression: expr}
}

// targetPath flattens an identifier or self rooted field-access chain into
// an assignment target.
func targetPath(expr ast.Expression) (*ast.TargetPath, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return &ast.TargetPath{Token: e.Token, Root: e.Value}, true
	case *ast.SelfExpression:
		return &ast.TargetPath{Token: e.Token, Self: true}, true
	case *ast.FieldAccess:
		base, ok := targetPath(e.Base)
		if !ok {
			return nil, false
		}
		base.Fields = append(base.Fields, e.Field)
		return base, true
	}
	return nil, false
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()

		// else if chains nest as a single-statement alternative block
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			nested := p.parseIfStatement()
			if nested == nil {
				return nil
			}
			stmt.Alternative = &ast.BlockStatement{
				Token:      p.curToken,
				Statements: []ast.Statement{nested},
			}
		} else if p.expectPeek(token.LBRACE) {
			stmt.Alternative = p.parseBlockStatement()
		} else {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.report(diag.New("E104", p.curToken.Line, p.curToken.Column, len(p.curToken.Literal), p.curToken.Literal))
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

// parseIdentifier parses an identifier, or a struct literal when the
// identifier names a known type and is immediately followed by '{'.
// Restricting the literal form to type names keeps paren-less
// `if cond { ... }` unambiguous; whether the named type is actually
// constructible is a semantic question left to the checker.
func (p *Parser) parseIdentifier() ast.Expression {
	if p.peekTokenIs(token.LBRACE) {
		if _, ok := types.FromName(p.curToken.Literal); ok {
			return p.parseStructLiteral()
		}
	}
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseSelf() ast.Expression {
	return &ast.SelfExpression{Token: p.curToken}
}

func (p *Parser) parseStructLiteral() ast.Expression {
	lit := &ast.StructLiteral{Token: p.curToken, TypeName: p.curToken.Literal}
	p.nextToken() // '{'

	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return lit
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		field := &ast.StructLiteralField{Token: p.curToken, Name: p.curToken.Literal}

		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		field.Value = p.parseExpression(LOWEST)
		if field.Value == nil {
			return nil
		}
		lit.Fields = append(lit.Fields, field)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		// allow a trailing comma before '}'
		if p.peekTokenIs(token.RBRACE) {
			break
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return lit
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 10, 32)
	if err != nil {
		p.report(diag.New("E105", p.curToken.Line, p.curToken.Column, len(p.curToken.Literal), p.curToken.Literal))
		return nil
	}

	lit.Value = int32(value)
	return lit
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	lit := &ast.FloatLiteral{Token: p.curToken}

	value, err := strconv.ParseFloat(p.curToken.Literal, 32)
	if err != nil {
		p.report(diag.New("E105", p.curToken.Line, p.curToken.Column, len(p.curToken.Literal), p.curToken.Literal))
		return nil
	}

	lit.Value = float32(value)
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}

	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	callee, ok := function.(*ast.Identifier)
	if !ok {
		p.report(diag.New("E100", p.curToken.Line, p.curToken.Column, 1, p.curToken.Literal))
		return nil
	}
	exp := &ast.CallExpression{Token: p.curToken, Function: callee}
	exp.Arguments = p.parseExpressionList(token.RPAREN)
	if exp.Arguments == nil {
		return nil
	}
	return exp
}

func (p *Parser) parseFieldAccess(base ast.Expression) ast.Expression {
	expr := &ast.FieldAccess{Token: p.curToken, Base: base}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.Field = p.curToken.Literal
	return expr
}

// parseExpressionList parses a comma-separated expression list terminated
// by end, with curToken on the opening delimiter. Returns nil on error; an
// empty list is non-nil.
func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list = append(list, first)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		next := p.parseExpression(LOWEST)
		if next == nil {
			return nil
		}
		list = append(list, next)
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}

// Panic-mode recovery.

// synchronizeStatement discards tokens until a statement boundary: past the
// next ';', or stopping on '}' so the enclosing block can close.
func (p *Parser) synchronizeStatement() {
	for !p.curTokenIs(token.EOF) && !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			return
		}
		p.nextToken()
	}
}

// synchronizeTopLevel discards tokens until the next declaration keyword.
func (p *Parser) synchronizeTopLevel() {
	p.nextToken()
	for !p.curTokenIs(token.EOF) && !token.DeclStart(p.curToken.Type) {
		p.nextToken()
	}
}

// Helper functions.

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekError(t token.Type) {
	found := p.peekToken.Literal
	if p.peekTokenIs(token.EOF) {
		found = "end of file"
	}
	p.report(diag.New("E101", p.peekToken.Line, p.peekToken.Column, len(p.peekToken.Literal), "'"+string(t)+"'", found))
}

func (p *Parser) report(d diag.Diagnostic) {
	p.diags = append(p.diags, d)
}

func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}
