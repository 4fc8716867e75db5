// Package evaluator implements the tree-walking evaluator for spade: the
// stage that executes an AST (pkg/ast) against a lexically-scoped
// environment (pkg/environment), producing runtime values and side
// effects (print).
//
// There is no intermediate instruction stream here: executeStatement and
// evaluateExpression recurse straight over the ast.Statement/ast.Expression
// trees the parser produced. The dispatch shape (a big type switch per AST
// node kind) and the error-carries-a-line-number discipline are carried
// over from smog's own error handling in pkg/vm/errors.go.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"spade/pkg/ast"
	"spade/pkg/environment"
	"spade/pkg/token"
)

// Evaluator executes a parsed program. Stdout receives `print` output; it
// defaults to os.Stdout but can be swapped for a buffer in tests so printed
// output is directly observable.
type Evaluator struct {
	Stdout io.Writer
}

// New returns an Evaluator that prints to os.Stdout.
func New() *Evaluator {
	return &Evaluator{Stdout: os.Stdout}
}

// ExecuteProgram executes every top-level statement in order against env.
// A return statement reaching the top level (not inside any function call)
// is reported as a runtime error rather than allowed to escape.
func (e *Evaluator) ExecuteProgram(program *ast.Program, env *environment.Environment) error {
	for _, stmt := range program.Statements {
		if err := e.executeStatement(stmt, env); err != nil {
			if rs, ok := asReturnSignal(err); ok {
				_ = rs
				return &RuntimeError{Message: "cannot return from outside a function"}
			}
			return err
		}
	}
	return nil
}

// EvaluateExpression evaluates a single expression against env. It is
// exposed for callers (tests, a REPL) that want a single expression's
// value rather than a whole program's side effects.
func (e *Evaluator) EvaluateExpression(expr ast.Expression, env *environment.Environment) (Value, error) {
	return e.evaluateExpression(expr, env)
}

// executeStatement executes one statement. Its error return doubles as the
// return-signal channel: a *returnSignal means a `return` is unwinding and
// must propagate up to the nearest Call boundary undisturbed.
func (e *Evaluator) executeStatement(stmt ast.Statement, env *environment.Environment) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := e.evaluateExpression(s.Expr, env)
		return err

	case *ast.PrintStmt:
		v, err := e.evaluateExpression(s.Expr, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.Stdout, Stringify(v))
		return nil

	case *ast.VarDecl:
		var value Value = Nil{}
		if s.Initializer != nil {
			var err error
			value, err = e.evaluateExpression(s.Initializer, env)
			if err != nil {
				return err
			}
		}
		env.Define(s.Name, value)
		return nil

	case *ast.Block:
		return e.executeBlock(s, env)

	case *ast.IfStmt:
		cond, err := e.evaluateExpression(s.Condition, env)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return e.executeStatement(s.Then, env)
		}
		if s.Else != nil {
			return e.executeStatement(s.Else, env)
		}
		return nil

	case *ast.FnDecl:
		// Closure captures a snapshot of env as it exists right now, not a
		// live pointer — see pkg/environment's Child/Snapshot doc for why.
		fn := &Function{Name: s.Name, Params: s.Params, Body: s.Body, Closure: env.Snapshot()}
		env.Define(s.Name, fn)
		return nil

	case *ast.ReturnStmt:
		var value Value = Nil{}
		if s.Value != nil {
			var err error
			value, err = e.evaluateExpression(s.Value, env)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: value}

	default:
		return &RuntimeError{Message: fmt.Sprintf("unhandled statement type %T", stmt)}
	}
}

// executeBlock opens a child scope, runs every statement in it, and
// unconditionally discards that scope on the way out — on normal
// completion, on a propagating RuntimeError, and on a propagating
// returnSignal alike.
func (e *Evaluator) executeBlock(block *ast.Block, env *environment.Environment) error {
	child := env.Child()
	defer child.Pop()
	for _, stmt := range block.Statements {
		if err := e.executeStatement(stmt, child); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evaluateExpression(expr ast.Expression, env *environment.Environment) (Value, error) {
	switch n := expr.(type) {
	case *ast.NilLiteral:
		return Nil{}, nil

	case *ast.BoolLiteral:
		return n.Value, nil

	case *ast.NumberLiteral:
		return n.Value, nil

	case *ast.StringLiteral:
		return n.Value, nil

	case *ast.Variable:
		v, err := env.Get(n.Name.Lexeme)
		if err != nil {
			return nil, &RuntimeError{Message: err.Error(), Line: n.Name.Line}
		}
		return v, nil

	case *ast.Grouping:
		return e.evaluateExpression(n.Expr, env)

	case *ast.Unary:
		return e.evaluateUnary(n, env)

	case *ast.Binary:
		return e.evaluateBinary(n, env)

	case *ast.Assign:
		value, err := e.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(n.Name.Lexeme, value); err != nil {
			return nil, &RuntimeError{Message: err.Error(), Line: n.Name.Line}
		}
		return value, nil

	case *ast.Call:
		return e.evaluateCall(n, env)

	default:
		return nil, &RuntimeError{Message: fmt.Sprintf("unhandled expression type %T", expr)}
	}
}

func (e *Evaluator) evaluateUnary(n *ast.Unary, env *environment.Environment) (Value, error) {
	right, err := e.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.Minus:
		num, ok := right.(float64)
		if !ok {
			return nil, &RuntimeError{Message: "Invalid operand for unary -", Line: n.Operator.Line}
		}
		return -num, nil

	case token.Bang:
		// Universal truthiness negation: `!x` is always `Bool(!is_truthy(x))`,
		// including for Number and String operands.
		return !IsTruthy(right), nil

	default:
		return nil, &RuntimeError{Message: fmt.Sprintf("unsupported unary operator %s", n.Operator.Lexeme), Line: n.Operator.Line}
	}
}

func (e *Evaluator) evaluateBinary(n *ast.Binary, env *environment.Environment) (Value, error) {
	// `and`/`or` short-circuit: the right operand is only evaluated when
	// the left doesn't already determine the result, and the result is the
	// determining operand itself, not coerced to Bool.
	if n.Operator.Kind == token.And || n.Operator.Kind == token.Or {
		return e.evaluateLogical(n, env)
	}

	left, err := e.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	return applyBinaryOp(n.Operator, left, right)
}

func (e *Evaluator) evaluateLogical(n *ast.Binary, env *environment.Environment) (Value, error) {
	left, err := e.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	if n.Operator.Kind == token.Or {
		if IsTruthy(left) {
			return left, nil
		}
	} else { // token.And
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return e.evaluateExpression(n.Right, env)
}

// applyBinaryOp implements every non-short-circuiting binary operator:
// arithmetic (+ with Number/Number addition and String/String
// concatenation, - * / numeric only), numeric comparison, and structural
// equality.
func applyBinaryOp(op token.Token, left, right Value) (Value, error) {
	switch op.Kind {
	case token.Plus:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Message: "Invalid operands for +", Line: op.Line}

	case token.Minus:
		return numericOp(op, left, right, func(l, r float64) float64 { return l - r })
	case token.Star:
		return numericOp(op, left, right, func(l, r float64) float64 { return l * r })
	case token.Slash:
		lf, rf, ok := bothNumbers(left, right)
		if !ok {
			return nil, &RuntimeError{Message: "Invalid operands for /", Line: op.Line}
		}
		if rf == 0 {
			return nil, &RuntimeError{Message: "Division by zero", Line: op.Line}
		}
		return lf / rf, nil

	case token.Greater:
		return numericCompare(op, left, right, func(l, r float64) bool { return l > r })
	case token.GreaterEqual:
		return numericCompare(op, left, right, func(l, r float64) bool { return l >= r })
	case token.Less:
		return numericCompare(op, left, right, func(l, r float64) bool { return l < r })
	case token.LessEqual:
		return numericCompare(op, left, right, func(l, r float64) bool { return l <= r })

	case token.EqualEqual:
		return ValuesEqual(left, right), nil
	case token.BangEqual:
		return !ValuesEqual(left, right), nil

	default:
		return nil, &RuntimeError{Message: "Unsupported binary operator", Line: op.Line}
	}
}

func bothNumbers(left, right Value) (float64, float64, bool) {
	lf, ok := left.(float64)
	if !ok {
		return 0, 0, false
	}
	rf, ok := right.(float64)
	if !ok {
		return 0, 0, false
	}
	return lf, rf, true
}

func numericOp(op token.Token, left, right Value, fn func(l, r float64) float64) (Value, error) {
	lf, rf, ok := bothNumbers(left, right)
	if !ok {
		return nil, &RuntimeError{Message: fmt.Sprintf("Invalid operands for %s", op.Lexeme), Line: op.Line}
	}
	return fn(lf, rf), nil
}

func numericCompare(op token.Token, left, right Value, fn func(l, r float64) bool) (Value, error) {
	lf, rf, ok := bothNumbers(left, right)
	if !ok {
		return nil, &RuntimeError{Message: fmt.Sprintf("Invalid operands for %s", op.Lexeme), Line: op.Line}
	}
	return fn(lf, rf), nil
}

// evaluateCall implements function invocation: the callee must evaluate to
// a Function; arity is checked before any argument is evaluated, so a
// side-effecting argument to a mismatched call never runs; arguments are
// then evaluated left-to-right in the caller's environment before any
// parameter is bound; the body runs in a fresh scope derived from the
// function's closure, not the caller's environment. A returnSignal is
// consumed here and converted to its carried value — it never propagates
// past this call boundary.
func (e *Evaluator) evaluateCall(n *ast.Call, env *environment.Environment) (Value, error) {
	callee, err := e.evaluateExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*Function)
	if !ok {
		return nil, &RuntimeError{Message: "can only call functions", Line: n.Paren.Line}
	}

	if len(n.Args) != len(fn.Params) {
		return nil, &RuntimeError{
			Message: fmt.Sprintf("expected %d arguments but got %d", len(fn.Params), len(n.Args)),
			Line:    n.Paren.Line,
		}
	}

	args := make([]Value, len(n.Args))
	for i, argExpr := range n.Args {
		v, err := e.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callEnv := fn.Closure.Child()
	defer callEnv.Pop()
	for i, param := range fn.Params {
		callEnv.Define(param, args[i])
	}

	for _, stmt := range fn.Body.Statements {
		if err := e.executeStatement(stmt, callEnv); err != nil {
			if rs, ok := asReturnSignal(err); ok {
				return rs.value, nil
			}
			return nil, err
		}
	}
	return Nil{}, nil
}
