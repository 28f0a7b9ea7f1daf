package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locdb/internal/sexp"
	"locdb/internal/textdb"
)

func readForms(t *testing.T, src string) []sexp.Node {
	t.Helper()
	forms, err := sexp.Read([]byte(src))
	require.NoError(t, err)
	return forms
}

func TestParseTextTwoLanguages(t *testing.T) {
	doc := `
(group-name "common")
(text-version jak1-v2)
(language-id 0 1)
(7 "seven" "sept")
(#x10 "sixteen" "seize")
`
	db := textdb.NewDB()
	require.NoError(t, ParseText(readForms(t, doc), db, TextFileInfo{Format: FormatGOAL}))

	en, ok := db.BankByID("common", 0)
	require.True(t, ok)
	fr, ok := db.BankByID("common", 1)
	require.True(t, ok)

	text, err := en.Line(7)
	require.NoError(t, err)
	assert.Equal(t, "seven", text)
	text, err = fr.Line(7)
	require.NoError(t, err)
	assert.Equal(t, "sept", text)

	text, err = en.Line(16)
	require.NoError(t, err)
	assert.Equal(t, "sixteen", text)
}

func TestParseTextReingestOverwrites(t *testing.T) {
	db := textdb.NewDB()
	info := TextFileInfo{Format: FormatGOAL}

	require.NoError(t, ParseText(readForms(t, `(language-id 0) (7 "old")`), db, info))
	// The same file rewritten: only SetLine runs, never a second AddBank.
	require.NoError(t, ParseText(readForms(t, `(language-id 0) (7 "new")`), db, info))

	bank, ok := db.BankByID("common", 0)
	require.True(t, ok)
	text, err := bank.Line(7)
	require.NoError(t, err)
	assert.Equal(t, "new", text)
}

func TestParseTextRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"entry before language-id": `(7 "seven")`,
		"string count mismatch":    `(language-id 0 1) (7 "only one")`,
		"non-string entry":         `(language-id 0) (7 12)`,
		"unknown form":             `(language-id 0) (mystery 1)`,
		"bad version":              `(text-version jak9) (language-id 0)`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ParseText(readForms(t, doc), textdb.NewDB(), TextFileInfo{})
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestParseTextJSON(t *testing.T) {
	db := textdb.NewDB()
	info := TextFileInfo{Format: FormatJSON, LanguageID: 6, GroupName: "menu"}
	require.NoError(t, ParseTextJSON([]byte(`{"7": "seven", "12": "twelve"}`), db, info))

	bank, ok := db.BankByID("menu", 6)
	require.True(t, ok)
	assert.Equal(t, []int{7, 12}, bank.LineIDs())
}

func TestParseTextJSONRejectsBadKey(t *testing.T) {
	db := textdb.NewDB()
	err := ParseTextJSON([]byte(`{"seven": "x"}`), db, TextFileInfo{LanguageID: 0})
	assert.True(t, errors.Is(err, ErrMalformed))
	// Nothing may be partially populated.
	_, ok := db.BankByID(DefaultGroupName, 0)
	assert.False(t, ok)
}

func TestParseTextOnlyVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_text.gs")
	require.NoError(t, os.WriteFile(path, []byte(`(text-version jak1-v1) (language-id 0)`), 0644))

	v, err := ParseTextOnlyVersion(path)
	require.NoError(t, err)
	assert.Equal(t, textdb.VersionJak1V1, v)
}

func TestParseTextOnlyVersionDocMissing(t *testing.T) {
	_, err := ParseTextOnlyVersionDoc(readForms(t, `(language-id 0)`))
	assert.True(t, errors.Is(err, ErrMalformed))
}
