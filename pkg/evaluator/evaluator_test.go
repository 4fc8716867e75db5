package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spade/pkg/environment"
	"spade/pkg/lexer"
	"spade/pkg/parser"
)

// run parses and executes src, returning everything `print` wrote.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	toks, err := lexer.Scan(src)
	require.NoError(t, err)
	p := parser.New(toks)
	program, err := p.Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	ev := &Evaluator{Stdout: &buf}
	env := environment.New()
	runErr := ev.ExecuteProgram(program, env)
	return buf.String(), runErr
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "print (3 + 4) * 2;")
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)

	out, err = run(t, "print 3 + 4 * 2;")
	require.NoError(t, err)
	assert.Equal(t, "11\n", out)
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, "print 1 / 0;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Division by zero")
}

func TestScopeAndShadowing(t *testing.T) {
	out, err := run(t, `let x = 1; { let x = 2; print x; } print x;`)
	require.NoError(t, err)
	assert.Equal(t, "2\n1\n", out)
}

func TestUndefinedVariableAfterBlockExit(t *testing.T) {
	out, err := run(t, `let x = 1; { let y = 2; print x; } print y;`)
	require.Error(t, err)
	assert.Equal(t, "1\n", out)
	assert.Contains(t, err.Error(), "Undefined variable 'y'")
}

func TestIfElseOnNil(t *testing.T) {
	out, err := run(t, `if (nil) { print "t"; } else { print "f"; }`)
	require.NoError(t, err)
	assert.Equal(t, "f\n", out)
}

func TestFunctionWithReturn(t *testing.T) {
	out, err := run(t, `fn add(a, b) { return a + b; } print add(2, 3);`)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestUnaryOnNonNumber(t *testing.T) {
	_, err := run(t, `-"x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid operand for unary -")
}

func TestPrintFormatting(t *testing.T) {
	out, err := run(t, `print nil; print true; print false; print 3; print 3.5; print "hi";`)
	require.NoError(t, err)
	assert.Equal(t, "nil\ntrue\nfalse\n3\n3.5\nhi\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestNumberPlusStringIsError(t *testing.T) {
	_, err := run(t, `print 1 + "x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid operands for +")
}

func TestBangUniversalNegation(t *testing.T) {
	out, err := run(t, `print !5; print !0; print !""; print !nil; print !true;`)
	require.NoError(t, err)
	assert.Equal(t, "false\nfalse\nfalse\ntrue\nfalse\n", out)
}

func TestComparisonOperators(t *testing.T) {
	out, err := run(t, `print 1 < 2; print 2 <= 2; print 3 > 2; print 2 >= 3; print 1 == 1; print 1 != 2;`)
	require.NoError(t, err)
	assert.Equal(t, "true\ntrue\ntrue\nfalse\ntrue\ntrue\n", out)
}

func TestEqualityAcrossKindsIsFalse(t *testing.T) {
	out, err := run(t, `print 1 == "1"; print nil == false; print nil == nil;`)
	require.NoError(t, err)
	assert.Equal(t, "false\nfalse\ntrue\n", out)
}

func TestShortCircuitOr(t *testing.T) {
	// The right operand of `or` must not be evaluated once the left is
	// truthy: calling an undefined function would otherwise error.
	out, err := run(t, `print true or undefined_fn();`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestShortCircuitAnd(t *testing.T) {
	out, err := run(t, `print false and undefined_fn();`)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestLogicalOperatorsReturnOperandNotBool(t *testing.T) {
	out, err := run(t, `print nil or "fallback"; print "left" and "right";`)
	require.NoError(t, err)
	assert.Equal(t, "fallback\nright\n", out)
}

func TestArityMismatchErrors(t *testing.T) {
	_, err := run(t, `fn add(a, b) { return a + b; } print add(1);`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 arguments but got 1")
}

func TestCallingNonFunctionErrors(t *testing.T) {
	_, err := run(t, `let x = 1; x();`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can only call functions")
}

func TestNestedFunctionInBlockVanishesOnExit(t *testing.T) {
	out, err := run(t, `
		{
			fn greet() { print "hi"; }
			greet();
		}
		print greet;
	`)
	require.Error(t, err)
	assert.Equal(t, "hi\n", out)
	assert.Contains(t, err.Error(), "Undefined variable 'greet'")
}

func TestClosureSnapshotQuirk(t *testing.T) {
	// The environment chain is a snapshot copy, not a live parent pointer,
	// so a function does not see a later mutation of an outer variable made
	// from outside the function body.
	out, err := run(t, `
		let x = 1;
		fn show() { print x; }
		x = 2;
		show();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestAssignmentToUndefinedErrors(t *testing.T) {
	_, err := run(t, `x = 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'x'")
}

func TestReturnAtTopLevelIsRuntimeError(t *testing.T) {
	_, err := run(t, `return 1;`)
	require.Error(t, err)
}

func TestFunctionStringification(t *testing.T) {
	out, err := run(t, `fn add(a, b) { return a + b; } print add;`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "fn add"))
}

func TestArgumentsEvaluatedLeftToRightBeforeCall(t *testing.T) {
	out, err := run(t, `
		fn id(x) { return x; }
		let log = "";
		fn sideEffect(tag, value) {
			print tag;
			return value;
		}
		print id(sideEffect("first", 1)) + id(sideEffect("second", 2));
	`)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n3\n", out)
}
