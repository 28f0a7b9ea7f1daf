package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"locdb/internal/sexp"
	"locdb/internal/textdb"
)

// ErrMalformed marks a source document that cannot be decoded under its
// declared format; ingestion of the file aborts with it.
var ErrMalformed = errors.New("malformed source document")

// ParseText decodes a GOAL text definition document into the database.
// The document may override the descriptor's group name and must list its
// language ids before any line entry; each entry supplies one string per
// listed language. Line values overwrite, so re-ingestion is safe.
func ParseText(forms []sexp.Node, db *textdb.DB, info TextFileInfo) error {
	group := info.Group()
	var langs []int

	for _, form := range forms {
		head, ok := form.Head()
		if !ok {
			return fmt.Errorf("line %d: expected a list form: %w", form.Line, ErrMalformed)
		}

		switch {
		case head.IsSymbol("group-name"):
			if len(form.List) != 2 || form.List[1].Kind != sexp.KindString {
				return fmt.Errorf("line %d: group-name takes one string: %w", form.Line, ErrMalformed)
			}
			group = form.List[1].Str

		case head.IsSymbol("text-version"):
			if _, err := docVersion(form); err != nil {
				return err
			}

		case head.IsSymbol("language-id"):
			langs = langs[:0]
			for _, arg := range form.List[1:] {
				if arg.Kind != sexp.KindInt {
					return fmt.Errorf("line %d: language-id takes integers: %w", form.Line, ErrMalformed)
				}
				langs = append(langs, arg.Int)
			}

		case head.Kind == sexp.KindInt:
			if len(langs) == 0 {
				return fmt.Errorf("line %d: text entry before language-id: %w", form.Line, ErrMalformed)
			}
			if len(form.List)-1 != len(langs) {
				return fmt.Errorf("line %d: entry %d has %d strings for %d languages: %w",
					form.Line, head.Int, len(form.List)-1, len(langs), ErrMalformed)
			}
			for i, lang := range langs {
				arg := form.List[i+1]
				if arg.Kind != sexp.KindString {
					return fmt.Errorf("line %d: entry %d: expected string: %w", form.Line, head.Int, ErrMalformed)
				}
				bank, err := textBank(db, group, lang)
				if err != nil {
					return err
				}
				bank.SetLine(head.Int, arg.Str)
			}

		default:
			return fmt.Errorf("line %d: unknown form: %w", form.Line, ErrMalformed)
		}
	}

	log.Debug().Str("group", group).Ints("languages", langs).Msg("Ingested text document")
	return nil
}

// ParseTextJSON decodes a JSON text document ({"id": "string", ...}) for the
// descriptor's (group, language) pair.
func ParseTextJSON(data []byte, db *textdb.DB, info TextFileInfo) error {
	var doc map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode text json: %v: %w", err, ErrMalformed)
	}

	// Validate every key before touching the database so a bad document
	// cannot leave it partially populated.
	lines := make(map[int]string, len(doc))
	for key, text := range doc {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("text json key %q is not a line id: %w", key, ErrMalformed)
		}
		lines[id] = text
	}

	bank, err := textBank(db, info.Group(), info.LanguageID)
	if err != nil {
		return err
	}
	for id, text := range lines {
		bank.SetLine(id, text)
	}

	log.Debug().Str("group", info.Group()).Int("language", info.LanguageID).
		Int("lines", len(lines)).Msg("Ingested text json document")
	return nil
}

// textBank fetches the bank for a (group, language) pair, creating it on
// first reference.
func textBank(db *textdb.DB, group string, langID int) (*textdb.Bank, error) {
	if bank, ok := db.BankByID(group, langID); ok {
		return bank, nil
	}
	return db.AddBank(group, textdb.NewBank(langID))
}

// ParseTextOnlyVersion reads a GOAL document and returns the text version it
// declares, used to select decoding rules upstream of ingestion.
func ParseTextOnlyVersion(filename string) (textdb.Version, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	forms, err := sexp.Read(data)
	if err != nil {
		return "", fmt.Errorf("parse %s: %v: %w", filename, err, ErrMalformed)
	}
	return ParseTextOnlyVersionDoc(forms)
}

// ParseTextOnlyVersionDoc returns the text version a parsed document declares.
func ParseTextOnlyVersionDoc(forms []sexp.Node) (textdb.Version, error) {
	for _, form := range forms {
		if head, ok := form.Head(); ok && head.IsSymbol("text-version") {
			return docVersion(form)
		}
	}
	return "", fmt.Errorf("document declares no text-version: %w", ErrMalformed)
}

// docVersion validates a (text-version X) form. The tag may be a symbol or
// a string.
func docVersion(form sexp.Node) (textdb.Version, error) {
	if len(form.List) != 2 {
		return "", fmt.Errorf("line %d: text-version takes one tag: %w", form.Line, ErrMalformed)
	}
	arg := form.List[1]
	var tag string
	switch arg.Kind {
	case sexp.KindSymbol:
		tag = arg.Sym
	case sexp.KindString:
		tag = arg.Str
	default:
		return "", fmt.Errorf("line %d: bad text-version tag: %w", form.Line, ErrMalformed)
	}
	v, err := textdb.ParseVersion(tag)
	if err != nil {
		return "", fmt.Errorf("line %d: %v: %w", form.Line, err, ErrMalformed)
	}
	return v, nil
}
