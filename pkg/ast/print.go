package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Print renders an expression back into valid spade surface syntax, e.g.
// `(3 + 4) * 2` for the tree parsed from `(3 + 4) * 2`. Parentheses are
// emitted only for Grouping nodes, i.e. exactly where the source had them,
// so for any tree the parser produced, re-parsing the printed text yields
// a tree of the same shape — the way smog's disassembler prints bytecode
// back into re-checkable text. A hand-built tree whose nesting runs against
// operator precedence without a Grouping node is printed the same way and
// does not re-parse to the same shape.
func Print(e Expression) string {
	switch n := e.(type) {
	case *NilLiteral:
		return "nil"
	case *BoolLiteral:
		return strconv.FormatBool(n.Value)
	case *NumberLiteral:
		return FormatNumber(n.Value)
	case *StringLiteral:
		// spade strings have no escapes and cannot contain '"', so the
		// body is emitted verbatim between quotes.
		return `"` + n.Value + `"`
	case *Variable:
		return n.Name.Lexeme
	case *Unary:
		return n.Operator.Lexeme + Print(n.Right)
	case *Binary:
		return fmt.Sprintf("%s %s %s", Print(n.Left), n.Operator.Lexeme, Print(n.Right))
	case *Grouping:
		return fmt.Sprintf("(%s)", Print(n.Expr))
	case *Assign:
		return fmt.Sprintf("%s = %s", n.Name.Lexeme, Print(n.Value))
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = Print(a)
		}
		return fmt.Sprintf("%s(%s)", Print(n.Callee), strings.Join(args, ", "))
	default:
		return fmt.Sprintf("<unknown %T>", e)
	}
}

// FormatNumber renders a spade Number the way source code and `print`
// output both spell it: integral values in plain integer form, everything
// else in plain decimal notation (no exponent) with the fewest digits that
// round-trip. Inf and NaN come out as strconv spells them.
func FormatNumber(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
