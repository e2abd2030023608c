package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, tk Tokenizer, text string) ([]string, error) {
	t.Helper()
	var toks []string
	for tok, err := range tk.Tokens(text) {
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func TestFields(t *testing.T) {
	toks, err := collect(t, Fields{}, "  I am\ta cat\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"I", "am", "a", "cat"}, toks)
}

func TestWords(t *testing.T) {
	toks, err := collect(t, Words{}, "[[Cat]]s, don't-stop; x=42 café")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cat", "s", "don't", "stop", "x", "42", "café"}, toks)
}

func TestTokens_Empty(t *testing.T) {
	for _, tk := range []Tokenizer{Fields{}, Words{}} {
		toks, err := collect(t, tk, "   ")
		require.NoError(t, err)
		assert.Empty(t, toks)
	}
}

func TestTokens_InvalidUTF8(t *testing.T) {
	for _, tk := range []Tokenizer{Fields{}, Words{}} {
		toks, err := collect(t, tk, "ok \xff\xfe bad")
		assert.ErrorIs(t, err, ErrInvalidUTF8)
		assert.Empty(t, toks)
	}
}

func TestTokens_Restartable(t *testing.T) {
	seq := Fields{}.Tokens("one two three")

	var first []string
	for tok := range seq {
		first = append(first, tok)
		break
	}
	var all []string
	for tok := range seq {
		all = append(all, tok)
	}

	assert.Equal(t, []string{"one"}, first)
	assert.Equal(t, []string{"one", "two", "three"}, all)
}

func TestLookup(t *testing.T) {
	tk, err := Lookup("fields")
	require.NoError(t, err)
	assert.IsType(t, Fields{}, tk)

	tk, err = Lookup("")
	require.NoError(t, err)
	assert.IsType(t, Words{}, tk)

	_, err = Lookup("stemmer")
	assert.Error(t, err)
}
