// Package token defines the lexical token kinds produced by pkg/lexer and
// consumed by pkg/parser.
//
// A Kind is a closed enumeration (see spec §6 of the token model); a Token
// pairs a Kind with the exact source lexeme, an optional literal payload,
// and the 1-based source line it was scanned from. Tokens are immutable
// once produced — callers never mutate a Token in place.
package token

import "fmt"

// Kind identifies the syntactic category of a Token.
type Kind int

// The closed set of token kinds. Punctuation and operators first, then
// literals, then keywords, then the EOF sentinel.
const (
	// Punctuation
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Semicolon

	// Operators
	Minus
	Plus
	Slash
	Star
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	Fn
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Let
	While

	// EOF sentinel
	EOF
)

var kindNames = map[Kind]string{
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Comma:        "COMMA",
	Dot:          "DOT",
	Semicolon:    "SEMICOLON",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Slash:        "SLASH",
	Star:         "STAR",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	And:          "AND",
	Class:        "CLASS",
	Else:         "ELSE",
	False:        "FALSE",
	Fn:           "FN",
	For:          "FOR",
	If:           "IF",
	Nil:          "NIL",
	Or:           "OR",
	Print:        "PRINT",
	Return:       "RETURN",
	Super:        "SUPER",
	This:         "THIS",
	True:         "TRUE",
	Let:          "LET",
	While:        "WHILE",
	EOF:          "EOF",
}

// String renders the Kind's name, used in error messages and tests.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps reserved lexemes to their Kind. The scanner consults this
// table after consuming a run of identifier characters; anything absent
// from the table is an Identifier.
var Keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fn":     Fn,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"let":    Let,
	"while":  While,
}

// Token is an immutable lexical unit: a Kind, the exact source substring
// that produced it (Lexeme), an optional literal payload, and the 1-based
// line it was scanned on.
//
// Literal is populated only for Number and String tokens: a Number token's
// Literal is a float64, a String token's Literal is the unescaped string
// body (the text between the quotes, exclusive). All other kinds leave
// Literal nil.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal interface{}
	Line    int
}

// New constructs a Token. It exists mainly so callers don't have to name
// every field at each call site.
func New(kind Kind, lexeme string, literal interface{}, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

// String renders the token for diagnostics: "KIND 'lexeme' @line".
func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d", t.Kind, t.Lexeme, t.Line)
}
