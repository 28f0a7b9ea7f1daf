package subdb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedScene(name string) *SceneInfo {
	scene := NewSceneInfo(KindMovie)
	scene.SetName(name)
	return scene
}

func TestBankAddSceneRejectsDuplicate(t *testing.T) {
	bank := NewBank(0)
	require.NoError(t, bank.AddScene(namedScene("intro")))
	err := bank.AddScene(namedScene("intro"))
	assert.True(t, errors.Is(err, ErrDuplicateScene))
	assert.Equal(t, 1, bank.SceneCount())
}

func TestBankSceneByName(t *testing.T) {
	bank := NewBank(0)
	_, err := bank.SceneByName("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, bank.AddScene(namedScene("intro")))
	scene, err := bank.SceneByName("intro")
	require.NoError(t, err)
	assert.Equal(t, "intro", scene.Name())
}

func TestBankSceneNamesSorted(t *testing.T) {
	bank := NewBank(0)
	for _, name := range []string{"village1", "intro", "misty"} {
		require.NoError(t, bank.AddScene(namedScene(name)))
	}
	assert.Equal(t, []string{"intro", "misty", "village1"}, bank.SceneNames())
}

func TestDBAddBankRejectsDuplicateLanguage(t *testing.T) {
	db := NewDB()
	_, err := db.AddBank(NewBank(0))
	require.NoError(t, err)
	_, err = db.AddBank(NewBank(0))
	assert.True(t, errors.Is(err, ErrDuplicateBank))

	_, err = db.AddBank(NewBank(1))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, db.Langs())
}

func TestDBBankByIDAbsent(t *testing.T) {
	db := NewDB()
	_, ok := db.BankByID(6)
	assert.False(t, ok)

	_, err := db.AddBank(NewBank(6))
	require.NoError(t, err)
	bank, ok := db.BankByID(6)
	require.True(t, ok)
	assert.Equal(t, 6, bank.Lang())
}
