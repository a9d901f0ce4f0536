package keygen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaults(t *testing.T) {
	t.Parallel()

	key, err := Generate(Options{})
	require.NoError(t, err)
	assert.Len(t, key, DefaultLength)
	for _, r := range key {
		assert.True(t, strings.ContainsRune(DjangoCharset, r), string(r))
	}

	other, err := Generate(Options{})
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestGenerateNoSpecial(t *testing.T) {
	t.Parallel()

	key, err := Generate(Options{Length: 200, NoSpecial: true})
	require.NoError(t, err)
	assert.Len(t, key, 200)
	assert.False(t, strings.ContainsAny(key, Special))
}

func TestGenerateEnsureDiversity(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		key, err := Generate(Options{Length: 3, EnsureDiversity: true})
		require.NoError(t, err)
		require.Len(t, key, 3)
		assert.True(t, strings.ContainsAny(key, Lowercase), key)
		assert.True(t, strings.ContainsAny(key, Digits), key)
		assert.True(t, strings.ContainsAny(key, Special), key)
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	_, err := Generate(Options{Length: MaxLength + 1})
	assert.Error(t, err)
	_, err = Generate(Options{Charset: "a"})
	assert.Error(t, err)

	_, err = Generate(Options{Rand: bytes.NewReader(nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read randomness")
}

func TestStrength(t *testing.T) {
	t.Parallel()

	rep := Strength(strings.Repeat("a1!", 17))
	assert.Equal(t, 100, rep.Score)
	assert.Equal(t, "strong", rep.Label())
	require.Len(t, rep.Checks, 4)

	rep = Strength("abc")
	assert.Equal(t, 25, rep.Score)
	assert.Equal(t, "weak", rep.Label())
	assert.Equal(t, []Check{
		{Name: "length", Passed: false},
		{Name: "lowercase", Passed: true},
		{Name: "numbers", Passed: false},
		{Name: "special", Passed: false},
	}, rep.Checks)

	// Parentheses alone do not count as special characters.
	rep = Strength(strings.Repeat("a", 49) + "1()")
	assert.Equal(t, 75, rep.Score)
	assert.Equal(t, "medium", rep.Label())

	assert.Equal(t, 0, Strength("").Score)
}
