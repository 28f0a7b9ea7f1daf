package sexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAtoms(t *testing.T) {
	forms, err := Read([]byte(`hello :keyword 42 -7 #x1b2a "a string"`))
	require.NoError(t, err)
	require.Len(t, forms, 6)

	assert.True(t, forms[0].IsSymbol("hello"))
	assert.True(t, forms[1].IsKeyword())
	assert.Equal(t, 42, forms[2].Int)
	assert.Equal(t, -7, forms[3].Int)
	assert.Equal(t, 0x1b2a, forms[4].Int)
	assert.Equal(t, "a string", forms[5].Str)
}

func TestReadNestedLists(t *testing.T) {
	forms, err := Read([]byte(`(language-id 0 1)
("intro" (10 "text" :speaker "jak"))`))
	require.NoError(t, err)
	require.Len(t, forms, 2)

	head, ok := forms[0].Head()
	require.True(t, ok)
	assert.True(t, head.IsSymbol("language-id"))
	assert.Len(t, forms[0].List, 3)

	scene := forms[1]
	require.Equal(t, KindList, scene.Kind)
	assert.Equal(t, "intro", scene.List[0].Str)
	line := scene.List[1]
	assert.Equal(t, 10, line.List[0].Int)
	assert.Equal(t, 2, line.Line)
}

func TestReadStringEscapes(t *testing.T) {
	forms, err := Read([]byte(`"tab\there \"quoted\" and\nnewline"`))
	require.NoError(t, err)
	assert.Equal(t, "tab\there \"quoted\" and\nnewline", forms[0].Str)
}

func TestReadSkipsComments(t *testing.T) {
	forms, err := Read([]byte("; a header comment\n(a 1) ; trailing\n(b 2)"))
	require.NoError(t, err)
	assert.Len(t, forms, 2)
}

func TestReadErrors(t *testing.T) {
	cases := map[string]string{
		"unterminated list":   "(a (b 1)",
		"unterminated string": `"never closed`,
		"stray paren":         "(a 1)) ",
		"bad hex":             "#xzz",
		"bad escape":          `"\q"`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestReadEmptyDocument(t *testing.T) {
	forms, err := Read([]byte("  ; nothing but a comment\n"))
	require.NoError(t, err)
	assert.Empty(t, forms)
}
