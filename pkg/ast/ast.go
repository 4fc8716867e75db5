// Package ast defines the abstract syntax tree nodes produced by
// pkg/parser and consumed by pkg/evaluator.
//
// Expressions and Statements are each a closed sum type, modeled as a Go
// interface with an unexported marker method (expressionNode / statementNode)
// implemented by every variant — the same shape smog's pkg/ast uses, just
// with an expression/statement variant set instead of smog's message-send
// grammar. The tree is a strict ownership tree: every node is reached from
// exactly one parent, there are no cycles and nothing is shared.
package ast

import "spade/pkg/token"

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
}

// Expression is the sum type of expression variants: Literal, Unary,
// Binary, Grouping, Assign, Call.
type Expression interface {
	Node
	expressionNode()
}

// Statement is the sum type of statement variants: ExpressionStmt,
// PrintStmt, VarDecl, Block, IfStmt, FnDecl, ReturnStmt.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed source file: an ordered list of
// top-level statements.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement, or "".
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// ---- Expressions ----

// NilLiteral is the `nil` literal.
type NilLiteral struct {
	Token token.Token
}

func (n *NilLiteral) TokenLiteral() string { return n.Token.Lexeme }
func (n *NilLiteral) expressionNode()      {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (b *BoolLiteral) TokenLiteral() string { return b.Token.Lexeme }
func (b *BoolLiteral) expressionNode()      {}

// NumberLiteral is a numeric literal, carried as a 64-bit float.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) TokenLiteral() string { return n.Token.Lexeme }
func (n *NumberLiteral) expressionNode()      {}

// StringLiteral is a string literal; Value excludes the surrounding quotes.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) TokenLiteral() string { return s.Token.Lexeme }
func (s *StringLiteral) expressionNode()      {}

// Variable is a reference to a bound name. The identifier token is carried
// verbatim so evaluation errors can report the line the name was used on.
type Variable struct {
	Name token.Token
}

func (v *Variable) TokenLiteral() string { return v.Name.Lexeme }
func (v *Variable) expressionNode()      {}

// Unary is a prefix operator (`-` or `!`) applied to a single operand.
type Unary struct {
	Operator token.Token
	Right    Expression
}

func (u *Unary) TokenLiteral() string { return u.Operator.Lexeme }
func (u *Unary) expressionNode()      {}

// Binary is an infix operator applied to two operands.
type Binary struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (b *Binary) TokenLiteral() string { return b.Operator.Lexeme }
func (b *Binary) expressionNode()      {}

// Grouping is a parenthesised sub-expression, kept as its own node rather
// than collapsed away so Print has something distinct to re-emit.
type Grouping struct {
	Expr Expression
}

func (g *Grouping) TokenLiteral() string { return "(" }
func (g *Grouping) expressionNode()      {}

// Assign assigns Value to the existing binding Name.
type Assign struct {
	Name  token.Token
	Value Expression
}

func (a *Assign) TokenLiteral() string { return a.Name.Lexeme }
func (a *Assign) expressionNode()      {}

// Call invokes Callee with an ordered list of argument expressions.
type Call struct {
	Callee Expression
	Paren  token.Token // the closing ')' — used for error line reporting
	Args   []Expression
}

func (c *Call) TokenLiteral() string { return "(" }
func (c *Call) expressionNode()      {}

// ---- Statements ----

// ExpressionStmt evaluates Expr for its side effects and discards the
// result.
type ExpressionStmt struct {
	Expr Expression
}

func (e *ExpressionStmt) TokenLiteral() string { return e.Expr.TokenLiteral() }
func (e *ExpressionStmt) statementNode()       {}

// PrintStmt evaluates Expr and writes its human representation to stdout.
type PrintStmt struct {
	Token token.Token
	Expr  Expression
}

func (p *PrintStmt) TokenLiteral() string { return p.Token.Lexeme }
func (p *PrintStmt) statementNode()       {}

// VarDecl declares Name in the current scope, bound to Initializer's value
// (Nil if Initializer is nil).
type VarDecl struct {
	Token       token.Token
	Name        string
	Initializer Expression // may be nil
}

func (v *VarDecl) TokenLiteral() string { return v.Token.Lexeme }
func (v *VarDecl) statementNode()       {}

// Block executes Statements in a fresh child scope.
type Block struct {
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return "{" }
func (b *Block) statementNode()       {}

// IfStmt is a conditional branch; Else may be nil.
type IfStmt struct {
	Token     token.Token
	Condition Expression
	Then      Statement
	Else      Statement // may be nil
}

func (i *IfStmt) TokenLiteral() string { return i.Token.Lexeme }
func (i *IfStmt) statementNode()       {}

// FnDecl declares a named function. Body is always a *Block.
type FnDecl struct {
	Token  token.Token
	Name   string
	Params []string
	Body   *Block
}

func (f *FnDecl) TokenLiteral() string { return f.Token.Lexeme }
func (f *FnDecl) statementNode()       {}

// ReturnStmt aborts the current function invocation with Value's result
// (Nil if Value is nil).
type ReturnStmt struct {
	Token token.Token
	Value Expression // may be nil
}

func (r *ReturnStmt) TokenLiteral() string { return r.Token.Lexeme }
func (r *ReturnStmt) statementNode()       {}
