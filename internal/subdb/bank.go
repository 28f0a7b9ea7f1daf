package subdb

import (
	"errors"
	"fmt"
	"sort"

	"locdb/internal/textdb"
)

var (
	// ErrNotFound is returned when a scene name is absent from a bank.
	ErrNotFound = errors.New("subtitle scene not found")
	// ErrDuplicateScene is returned when a scene name is added twice to a bank.
	ErrDuplicateScene = errors.New("duplicate subtitle scene")
	// ErrDuplicateBank is returned when a second bank is added for a language.
	ErrDuplicateBank = errors.New("duplicate subtitle bank")
)

// Bank contains subtitles for all scenes in a language.
type Bank struct {
	langID      int
	textVersion textdb.Version
	filePath    string
	scenes      map[string]*SceneInfo
}

// NewBank creates an empty subtitle bank for the given language id.
func NewBank(langID int) *Bank {
	return &Bank{
		langID: langID,
		scenes: make(map[string]*SceneInfo),
	}
}

func (b *Bank) Lang() int { return b.langID }

func (b *Bank) TextVersion() textdb.Version { return b.textVersion }

func (b *Bank) FilePath() string { return b.filePath }

func (b *Bank) SetTextVersion(v textdb.Version) { b.textVersion = v }

func (b *Bank) SetFilePath(path string) { b.filePath = path }

// SceneExists reports whether the bank holds a scene with the given name.
func (b *Bank) SceneExists(name string) bool {
	_, ok := b.scenes[name]
	return ok
}

// SceneByName looks up a scene by name.
func (b *Bank) SceneByName(name string) (*SceneInfo, error) {
	scene, ok := b.scenes[name]
	if !ok {
		return nil, fmt.Errorf("scene %q in language %d: %w", name, b.langID, ErrNotFound)
	}
	return scene, nil
}

// AddScene registers a scene. A duplicate name within the bank is a
// structural violation that must abort the build.
func (b *Bank) AddScene(scene *SceneInfo) error {
	if b.SceneExists(scene.Name()) {
		return fmt.Errorf("scene %q in language %d: %w", scene.Name(), b.langID, ErrDuplicateScene)
	}
	b.scenes[scene.Name()] = scene
	return nil
}

// SceneNames returns every scene name in sorted order.
func (b *Bank) SceneNames() []string {
	names := make([]string, 0, len(b.scenes))
	for name := range b.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SceneCount returns the number of scenes in the bank.
func (b *Bank) SceneCount() int { return len(b.scenes) }

// DB contains a subtitle bank for each language, plus the single groups
// structure categorizing scene names for display ordering.
type DB struct {
	banks  map[int]*Bank
	groups *Groups
}

// NewDB creates an empty subtitle database with an empty groups structure.
func NewDB() *DB {
	return &DB{
		banks:  make(map[int]*Bank),
		groups: NewGroups(),
	}
}

// Groups returns the database's scene categorization structure.
func (db *DB) Groups() *Groups { return db.groups }

// BankExists reports whether a bank exists for the language id.
func (db *DB) BankExists(langID int) bool {
	_, ok := db.banks[langID]
	return ok
}

// AddBank registers a bank. A second bank for the same language id is a
// structural violation that must abort the build.
func (db *DB) AddBank(bank *Bank) (*Bank, error) {
	if db.BankExists(bank.Lang()) {
		return nil, fmt.Errorf("language %d: %w", bank.Lang(), ErrDuplicateBank)
	}
	db.banks[bank.Lang()] = bank
	return bank, nil
}

// BankByID looks up the bank for a language id. Absence is not an error so
// callers can lazily create banks on first reference.
func (db *DB) BankByID(langID int) (*Bank, bool) {
	bank, ok := db.banks[langID]
	return bank, ok
}

// Langs returns the registered language ids in ascending order.
func (db *DB) Langs() []int {
	langs := make([]int, 0, len(db.banks))
	for id := range db.banks {
		langs = append(langs, id)
	}
	sort.Ints(langs)
	return langs
}
