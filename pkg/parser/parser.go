// Package parser implements the spade recursive-descent parser.
//
// Grammar (low precedence to high), extended with the assignment and
// logical-operator levels every Lox-family grammar needs to give the `=`,
// `and`, and `or` productions a place to parse into (the AST already
// carries Assign and and/or Binary nodes — this just supplies their
// grammar rule):
//
//	program    → statement*
//	statement  → printStmt | varDecl | block | ifStmt | fnDecl | returnStmt | exprStmt
//	expression → assignment
//	assignment → IDENTIFIER "=" assignment | logic_or
//	logic_or   → logic_and ( "or" logic_and )*
//	logic_and  → equality ( "and" equality )*
//	equality   → comparison ( ("!="|"==") comparison )*
//	comparison → term ( (">"|">="|"<"|"<=") term )*
//	term       → factor ( ("-"|"+") factor )*
//	factor     → unary ( ("/"|"*") unary )*
//	unary      → ("!"|"-") unary | call
//	call       → primary ( "(" arguments? ")" )*
//	primary    → "false" | "true" | "nil" | NUMBER | STRING | IDENTIFIER | "(" expression ")"
//
// Each production is one parsing method; left-associative binary levels
// loop, right-associative unary recurses into itself. The parser keeps a
// single cursor (current) into the token slice produced by pkg/lexer and
// looks one token ahead via peek() — the same two-cursor shape smog's
// parser uses (curTok/peekTok), just collapsed to an index since the token
// slice is already fully materialized rather than pulled lazily off a
// lexer.
//
// Unlike smog's parser, which accumulates every syntax error it finds
// before giving up, spade halts at the first parse error and returns it
// immediately, with no multi-error recovery pass.
package parser

import (
	"fmt"

	"spade/pkg/ast"
	"spade/pkg/token"
)

// ParseError reports malformed input to the parser: a missing semicolon, an
// unbalanced paren, a missing identifier, and so on. It carries a
// human-readable message and the line of the offending token.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parser converts a token slice into an AST via recursive descent. A
// Parser is single-use: construct a new one per token slice.
type Parser struct {
	tokens  []token.Token
	current int
}

// New returns a Parser over tokens (as produced by lexer.Scan).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the full token slice and returns the resulting program, or
// the first ParseError encountered.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

// ParseExpression parses a single expression from the token slice and
// returns it without requiring the input to be exhausted. It exists for
// tests exercising the expression grammar directly, and for the REPL to try
// parsing a bare expression before falling back to a full statement.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.expression()
}

// ---- statement grammar ----

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Let):
		return p.varDeclaration()
	case p.match(token.LeftBrace):
		return p.block()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Fn):
		return p.fnDeclaration()
	case p.match(token.Return):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Statement, error) {
	keyword := p.previous()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "expect ';' after value"); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Token: keyword, Expr: expr}, nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	keyword := p.previous()
	name, err := p.consume(token.Identifier, "expect variable name")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression
	if p.match(token.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "expect ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Token: keyword, Name: name.Lexeme, Initializer: initializer}, nil
}

// block parses `"{" statement* "}"`. It returns an *ast.Block wrapped as a
// Statement so it can be called directly from statement(); fnDeclaration
// type-asserts the result back to *ast.Block since a function body is
// always a block.
func (p *Parser) block() (ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.RightBrace, "expect '}' after block"); err != nil {
		return nil, err
	}
	return &ast.Block{Statements: statements}, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(token.LeftParen, "expect '(' after 'if'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "expect ')' after if condition"); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Statement
	// Greedy consumption: `else` always binds to the nearest preceding
	// `if`, since we only check for it right after parsing this if's then
	// branch.
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Token: keyword, Condition: condition, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) fnDeclaration() (ast.Statement, error) {
	keyword := p.previous()
	name, err := p.consume(token.Identifier, "expect function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "expect '(' after function name"); err != nil {
		return nil, err
	}

	var params []string
	if !p.check(token.RightParen) {
		for {
			param, err := p.consume(token.Identifier, "expect parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "expect ')' after parameters"); err != nil {
		return nil, err
	}

	if _, err := p.consume(token.LeftBrace, "expect '{' before function body"); err != nil {
		return nil, err
	}
	bodyStmt, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FnDecl{Token: keyword, Name: name.Lexeme, Params: params, Body: bodyStmt.(*ast.Block)}, nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(token.Semicolon) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "expect ';' after return value"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Token: keyword, Value: value}, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "expect ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr}, nil
}

// ---- expression grammar ----

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal) {
		equals := p.previous()
		value, err := p.assignment() // right-associative
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}, nil
		}
		return nil, &ParseError{Message: "invalid assignment target", Line: equals.Line}
	}

	return expr, nil
}

func (p *Parser) logicOr() (ast.Expression, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		operator := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicAnd() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.leftAssocBinary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.leftAssocBinary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.leftAssocBinary(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.leftAssocBinary(p.unary, token.Slash, token.Star)
}

// leftAssocBinary implements the common shape of every left-associative
// binary precedence level: parse one operand at the next-higher level, then
// loop consuming (operator, operand) pairs as long as the operator matches
// one of kinds.
func (p *Parser) leftAssocBinary(operand func() (ast.Expression, error), kinds ...token.Kind) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		right, err := p.unary() // right-associative: parses `--x` as `-(-x)`
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: operator, Right: right}, nil
	}
	return p.call()
}

// call parses a primary expression followed by zero or more call-argument
// applications, supporting chains like `f()()`.
func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if p.match(token.LeftParen) {
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	if !p.check(token.RightParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.RightParen, "expect ')' after arguments")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.False):
		return &ast.BoolLiteral{Token: p.previous(), Value: false}, nil
	case p.match(token.True):
		return &ast.BoolLiteral{Token: p.previous(), Value: true}, nil
	case p.match(token.Nil):
		return &ast.NilLiteral{Token: p.previous()}, nil
	case p.match(token.Number):
		tok := p.previous()
		return &ast.NumberLiteral{Token: tok, Value: tok.Literal.(float64)}, nil
	case p.match(token.String):
		tok := p.previous()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal.(string)}, nil
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "expect ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expr: expr}, nil
	default:
		return nil, &ParseError{Message: "expect expression", Line: p.peek().Line}
	}
}

// ---- token cursor helpers ----

func (p *Parser) isAtEnd() bool { return p.current >= len(p.tokens) }

// peek returns the next token to be consumed, or a synthetic EOF token at
// the line of the last real token when the slice is exhausted.
func (p *Parser) peek() token.Token {
	if p.isAtEnd() {
		return token.Token{Kind: token.EOF, Line: p.endLine()}
	}
	return p.tokens[p.current]
}

func (p *Parser) endLine() int {
	if len(p.tokens) == 0 {
		return 1
	}
	return p.tokens[len(p.tokens)-1].Line
}

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.tokens[p.current].Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, &ParseError{Message: message, Line: p.peek().Line}
}
