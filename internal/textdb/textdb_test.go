package textdb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankSetAndGetLine(t *testing.T) {
	bank := NewBank(0)

	assert.False(t, bank.LineExists(7))
	_, err := bank.Line(7)
	assert.True(t, errors.Is(err, ErrNotFound))

	bank.SetLine(7, "seven")
	require.True(t, bank.LineExists(7))
	text, err := bank.Line(7)
	require.NoError(t, err)
	assert.Equal(t, "seven", text)

	// Overwrite is allowed so re-ingesting a changed file just updates.
	bank.SetLine(7, "SEVEN")
	text, err = bank.Line(7)
	require.NoError(t, err)
	assert.Equal(t, "SEVEN", text)
	assert.Equal(t, 1, bank.Len())
}

func TestBankLineIDsAscending(t *testing.T) {
	bank := NewBank(1)
	for _, id := range []int{42, 3, 17, 8} {
		bank.SetLine(id, "x")
	}
	assert.Equal(t, []int{3, 8, 17, 42}, bank.LineIDs())
}

func TestDBAddBankRejectsDuplicate(t *testing.T) {
	db := NewDB()

	_, err := db.AddBank("common", NewBank(0))
	require.NoError(t, err)

	_, err = db.AddBank("common", NewBank(0))
	assert.True(t, errors.Is(err, ErrDuplicateBank))

	// Same language in a different group is fine.
	_, err = db.AddBank("menu", NewBank(0))
	assert.NoError(t, err)
}

func TestDBBankByIDAbsent(t *testing.T) {
	db := NewDB()
	_, ok := db.BankByID("common", 3)
	assert.False(t, ok)

	_, err := db.AddBank("common", NewBank(3))
	require.NoError(t, err)
	bank, ok := db.BankByID("common", 3)
	require.True(t, ok)
	assert.Equal(t, 3, bank.Lang())
}

func TestDBGroupsAndLangsSorted(t *testing.T) {
	db := NewDB()
	for _, g := range []string{"menu", "common", "hud"} {
		for _, lang := range []int{2, 0} {
			_, err := db.AddBank(g, NewBank(lang))
			require.NoError(t, err)
		}
	}
	assert.Equal(t, []string{"common", "hud", "menu"}, db.Groups())
	assert.Equal(t, []int{0, 2}, db.Langs("common"))
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("jak1-v2")
	require.NoError(t, err)
	assert.Equal(t, VersionJak1V2, v)

	_, err = ParseVersion("jak9")
	assert.Error(t, err)
}
