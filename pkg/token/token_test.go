package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "PLUS", Plus.String())
	assert.Equal(t, "FN", Fn.String())
	assert.Equal(t, "UNKNOWN", Kind(9999).String())
}

func TestKeywordsTableCoversEveryKeywordKind(t *testing.T) {
	for lexeme, kind := range Keywords {
		assert.NotEqual(t, Identifier, kind, "lexeme %q mapped to Identifier", lexeme)
	}
	assert.Equal(t, And, Keywords["and"])
	assert.Equal(t, Let, Keywords["let"])
	assert.Equal(t, Fn, Keywords["fn"])

	covered := make(map[Kind]bool)
	for _, kind := range Keywords {
		covered[kind] = true
	}
	for k := And; k <= While; k++ {
		assert.Truef(t, covered[k], "keyword kind %s has no lexeme", k)
	}
}

func TestNewAndString(t *testing.T) {
	tok := New(Number, "42", 42.0, 3)
	assert.Equal(t, Number, tok.Kind)
	assert.Equal(t, "42", tok.Lexeme)
	assert.Equal(t, 42.0, tok.Literal)
	assert.Equal(t, 3, tok.Line)
	assert.Contains(t, tok.String(), "NUMBER")
	assert.Contains(t, tok.String(), "42")
}
