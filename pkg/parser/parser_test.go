package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spade/pkg/ast"
	"spade/pkg/lexer"
)

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	toks, err := lexer.Scan(src)
	require.NoError(t, err)
	p := New(toks)
	expr, err := p.ParseExpression()
	require.NoError(t, err)
	return expr
}

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Scan(src)
	require.NoError(t, err)
	p := New(toks)
	program, err := p.Parse()
	require.NoError(t, err)
	return program
}

func TestParseExpression_Literals(t *testing.T) {
	assert.IsType(t, &ast.NumberLiteral{}, parseExpr(t, "42"))
	assert.IsType(t, &ast.StringLiteral{}, parseExpr(t, `"hi"`))
	assert.IsType(t, &ast.BoolLiteral{}, parseExpr(t, "true"))
	assert.IsType(t, &ast.NilLiteral{}, parseExpr(t, "nil"))
}

func TestParseExpression_ArithmeticPrecedence(t *testing.T) {
	// 3 + 4 * 2 parses as 3 + (4 * 2): top node is Plus.
	expr := parseExpr(t, "3 + 4 * 2")
	bin, ok := expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator.Lexeme)
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Operator.Lexeme)
}

func TestParseExpression_LeftAssociativity(t *testing.T) {
	// 1 - 2 - 3 parses as (1 - 2) - 3: top node's left is itself a Binary.
	expr := parseExpr(t, "1 - 2 - 3")
	bin, ok := expr.(*ast.Binary)
	require.True(t, ok)
	_, leftIsBinary := bin.Left.(*ast.Binary)
	assert.True(t, leftIsBinary)
	_, rightIsBinary := bin.Right.(*ast.Binary)
	assert.False(t, rightIsBinary)
}

func TestParseExpression_UnaryRightAssociative(t *testing.T) {
	// --x parses as -(-x).
	expr := parseExpr(t, "--x")
	outer, ok := expr.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "-", outer.Operator.Lexeme)
	inner, ok := outer.Right.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "-", inner.Operator.Lexeme)
}

func TestParseExpression_Grouping(t *testing.T) {
	expr := parseExpr(t, "(3 + 4) * 2")
	bin, ok := expr.(*ast.Binary)
	require.True(t, ok)
	_, ok = bin.Left.(*ast.Grouping)
	assert.True(t, ok)
}

func TestParseExpression_CallChain(t *testing.T) {
	// f()() should parse syntactically: a Call wrapping a Call.
	expr := parseExpr(t, "f()()")
	outer, ok := expr.(*ast.Call)
	require.True(t, ok)
	_, ok = outer.Callee.(*ast.Call)
	assert.True(t, ok)
}

func TestParseExpression_Assignment(t *testing.T) {
	expr := parseExpr(t, "x = 5")
	assign, ok := expr.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name.Lexeme)
}

func TestParseExpression_InvalidAssignmentTarget(t *testing.T) {
	toks, err := lexer.Scan("1 = 2")
	require.NoError(t, err)
	p := New(toks)
	_, err = p.ParseExpression()
	require.Error(t, err)
}

func TestParseExpression_LogicalOperators(t *testing.T) {
	expr := parseExpr(t, "true or false and true")
	// `and` binds tighter than `or`: top node is Or.
	bin, ok := expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "or", bin.Operator.Lexeme)
	_, rightIsAnd := bin.Right.(*ast.Binary)
	assert.True(t, rightIsAnd)
}

func TestParse_VarDeclarationWithoutInitializer(t *testing.T) {
	program := parseProgram(t, "let x;")
	require.Len(t, program.Statements, 1)
	decl, ok := program.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	assert.Nil(t, decl.Initializer)
}

func TestParse_Block(t *testing.T) {
	program := parseProgram(t, "{ let x = 1; print x; }")
	require.Len(t, program.Statements, 1)
	block, ok := program.Statements[0].(*ast.Block)
	require.True(t, ok)
	assert.Len(t, block.Statements, 2)
}

func TestParse_IfElse(t *testing.T) {
	program := parseProgram(t, `if (true) { print 1; } else { print 2; }`)
	require.Len(t, program.Statements, 1)
	ifStmt, ok := program.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParse_DanglingElseBindsToNearestIf(t *testing.T) {
	program := parseProgram(t, `if (true) if (false) print 1; else print 2;`)
	outer, ok := program.Statements[0].(*ast.IfStmt)
	require.True(t, ok)
	inner, ok := outer.Then.(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, inner.Else)
	assert.Nil(t, outer.Else)
}

func TestParse_FnDeclaration(t *testing.T) {
	program := parseProgram(t, `fn add(a, b) { return a + b; }`)
	fn, ok := program.Statements[0].(*ast.FnDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body.Statements, 1)
	_, ok = fn.Body.Statements[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParse_MissingSemicolonErrors(t *testing.T) {
	toks, err := lexer.Scan("print 1")
	require.NoError(t, err)
	p := New(toks)
	_, err = p.Parse()
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParse_UnbalancedParensErrors(t *testing.T) {
	toks, err := lexer.Scan("print (1 + 2;")
	require.NoError(t, err)
	p := New(toks)
	_, err = p.Parse()
	require.Error(t, err)
}

func TestRoundTrip_PrintThenReparseIsAFixedPoint(t *testing.T) {
	// ast.Print emits parentheses only where the tree has a Grouping node,
	// so re-parsing and re-printing a printed expression should reproduce
	// exactly the text that was printed the first time.
	cases := []string{
		"3 + 4 * 2",
		"(3 + 4) * 2",
		`"hi"`,
		"true",
		"nil",
		"-5",
		"1 < 2 == true",
	}
	for _, src := range cases {
		expr := parseExpr(t, src)
		printed := ast.Print(expr)

		reparsed := parseExpr(t, printed)
		assert.Equalf(t, printed, ast.Print(reparsed), "round-trip mismatch for %q", src)
	}
}
