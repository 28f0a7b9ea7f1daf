package textdb

import (
	"errors"
	"fmt"
	"sort"
)

// Version identifies the structural grammar revision a text source file
// was authored against. It selects the decoding rules upstream of ingestion.
type Version string

const (
	VersionJak1V1 Version = "jak1-v1"
	VersionJak1V2 Version = "jak1-v2"
	VersionJak2   Version = "jak2"
)

// KnownVersions lists every version tag the tool understands.
var KnownVersions = []Version{VersionJak1V1, VersionJak1V2, VersionJak2}

// ParseVersion maps a version tag to a known Version.
func ParseVersion(s string) (Version, error) {
	for _, v := range KnownVersions {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown text version %q", s)
}

var (
	// ErrNotFound is returned when a line id is absent from a bank.
	ErrNotFound = errors.New("text line not found")
	// ErrDuplicateBank is returned when a bank is added for a
	// (group, language) pair that already has one.
	ErrDuplicateBank = errors.New("duplicate text bank")
)

// Bank contains all lines (accessed with an id) for a language.
type Bank struct {
	langID int
	lines  map[int]string
}

// NewBank creates an empty bank for the given language id.
func NewBank(langID int) *Bank {
	return &Bank{
		langID: langID,
		lines:  make(map[int]string),
	}
}

// Lang returns the bank's language id.
func (b *Bank) Lang() int { return b.langID }

// LineExists reports whether the bank holds a line with the given id.
func (b *Bank) LineExists(id int) bool {
	_, ok := b.lines[id]
	return ok
}

// Line returns the text for a line id.
func (b *Bank) Line(id int) (string, error) {
	text, ok := b.lines[id]
	if !ok {
		return "", fmt.Errorf("line %d in language %d: %w", id, b.langID, ErrNotFound)
	}
	return text, nil
}

// SetLine inserts or overwrites the text for a line id. Re-ingesting an
// unchanged source file is therefore safe at the line level.
func (b *Bank) SetLine(id int, text string) {
	b.lines[id] = text
}

// LineIDs returns every line id in ascending order, for reproducible output.
func (b *Bank) LineIDs() []int {
	ids := make([]int, 0, len(b.lines))
	for id := range b.lines {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of lines in the bank.
func (b *Bank) Len() int { return len(b.lines) }

// DB holds one text bank per language for each text group. Banks are
// exclusively owned by the database; lookups hand out borrowed pointers.
type DB struct {
	banks map[string]map[int]*Bank
}

// NewDB creates an empty text database.
func NewDB() *DB {
	return &DB{banks: make(map[string]map[int]*Bank)}
}

// Groups returns all group names in sorted order.
func (db *DB) Groups() []string {
	groups := make([]string, 0, len(db.banks))
	for g := range db.banks {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Langs returns the language ids registered for a group, in ascending order.
func (db *DB) Langs(group string) []int {
	langs := make([]int, 0, len(db.banks[group]))
	for id := range db.banks[group] {
		langs = append(langs, id)
	}
	sort.Ints(langs)
	return langs
}

// BankExists reports whether a bank exists for the (group, language) pair.
func (db *DB) BankExists(group string, langID int) bool {
	_, ok := db.banks[group][langID]
	return ok
}

// AddBank registers a bank under a group. A second bank for the same
// (group, language) pair is a structural violation that must abort the build.
func (db *DB) AddBank(group string, bank *Bank) (*Bank, error) {
	if db.BankExists(group, bank.Lang()) {
		return nil, fmt.Errorf("group %q language %d: %w", group, bank.Lang(), ErrDuplicateBank)
	}
	if db.banks[group] == nil {
		db.banks[group] = make(map[int]*Bank)
	}
	db.banks[group][bank.Lang()] = bank
	return bank, nil
}

// BankByID looks up the bank for a (group, language) pair. Absence is not an
// error so callers can lazily create banks on first reference.
func (db *DB) BankByID(group string, langID int) (*Bank, bool) {
	bank, ok := db.banks[group][langID]
	return bank, ok
}
