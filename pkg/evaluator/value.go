package evaluator

import (
	"fmt"
	"strconv"

	"spade/pkg/ast"
	"spade/pkg/environment"
)

// Value is the runtime value type the evaluator produces and consumes. It
// is one of: Nil, bool, float64, string, or *Function. This mirrors
// environment.Value (interface{}) — kept as a separate name in this
// package purely for readability at call sites.
type Value = environment.Value

// Nil is the runtime representation of the `nil` literal. It is a distinct
// type rather than Go's untyped nil so a missing map entry (which Go would
// also report as nil) can never be silently confused with a bound Nil
// value.
type Nil struct{}

func (Nil) String() string { return "nil" }

// Function is a runtime function value: an ordered parameter list, a body
// block, and the environment it closed over at declaration time.
//
// Closure is captured by the snapshot-copy Environment.Snapshot() scheme (see
// pkg/environment's design note): it is a value-copy of the scope stack as
// it existed when the `fn` statement ran, not a live pointer into the
// defining scope. A later mutation of an outer variable from outside the
// function will not be visible inside it.
type Function struct {
	Name    string
	Params  []string
	Body    *ast.Block
	Closure *environment.Environment
}

func (f *Function) String() string { return fmt.Sprintf("fn %s", f.Name) }

// IsTruthy projects any Value to a bool: Nil is false, Bool carries its own
// value, everything else (Number, String, Function) is true.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}

// ValuesEqual implements structural equality for `==`/`!=`: Nil equals
// Nil, Bool/Number/String compare by value, Function compares by identity,
// and any cross-kind comparison is false.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	default:
		return false
	}
}

// Stringify renders a Value as the human representation `print` emits:
// nil/true/false as their literal spellings, a Number with zero fractional
// part in integer form, a String verbatim (no quotes), and a Function as
// `fn <name>`.
func Stringify(v Value) string {
	switch val := v.(type) {
	case Nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return ast.FormatNumber(val)
	case string:
		return val
	case *Function:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
