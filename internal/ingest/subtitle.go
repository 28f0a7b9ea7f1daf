package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"locdb/internal/sexp"
	"locdb/internal/subdb"
	"locdb/internal/textdb"
)

// ParseSubtitle decodes a GOAL subtitle document into the database. The
// document declares its language id and text version, then one form per
// scene. A scene already present in the bank is replaced wholesale, letting
// a later file supersede an earlier definition.
func ParseSubtitle(forms []sexp.Node, db *subdb.DB, filePath string) error {
	langID := -1
	var version textdb.Version
	var sceneForms []sexp.Node

	for _, form := range forms {
		head, ok := form.Head()
		if !ok {
			return fmt.Errorf("line %d: expected a list form: %w", form.Line, ErrMalformed)
		}

		switch {
		case head.IsSymbol("language-id"):
			if len(form.List) != 2 || form.List[1].Kind != sexp.KindInt {
				return fmt.Errorf("line %d: language-id takes one integer: %w", form.Line, ErrMalformed)
			}
			langID = form.List[1].Int

		case head.IsSymbol("text-version"):
			v, err := docVersion(form)
			if err != nil {
				return err
			}
			version = v

		case head.Kind == sexp.KindString:
			sceneForms = append(sceneForms, form)

		default:
			return fmt.Errorf("line %d: unknown form: %w", form.Line, ErrMalformed)
		}
	}

	if langID < 0 {
		return fmt.Errorf("%s declares no language-id: %w", filePath, ErrMalformed)
	}

	bank, err := subtitleBank(db, langID)
	if err != nil {
		return err
	}
	bank.SetFilePath(filePath)
	if version != "" {
		bank.SetTextVersion(version)
	}

	for _, form := range sceneForms {
		scene, err := parseSceneForm(form)
		if err != nil {
			return err
		}
		if err := insertScene(db, bank, scene); err != nil {
			return err
		}
	}

	log.Debug().Int("language", langID).Int("scenes", len(sceneForms)).
		Str("file", filePath).Msg("Ingested subtitle document")
	return nil
}

// parseSceneForm decodes one ("name" flags... lines...) scene form.
// A plain scene is a movie; :hint marks an ambient hint whose name is its
// hex id; :hint :named marks a named hint carrying an :id flag.
func parseSceneForm(form sexp.Node) (*subdb.SceneInfo, error) {
	name := form.List[0].Str

	kind := subdb.KindMovie
	id := 0
	var lineForms []sexp.Node

	rest := form.List[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg.IsSymbol(":hint"):
			if kind == subdb.KindMovie {
				kind = subdb.KindHint
			}
		case arg.IsSymbol(":named"):
			kind = subdb.KindHintNamed
		case arg.IsSymbol(":id"):
			if i+1 >= len(rest) || rest[i+1].Kind != sexp.KindInt {
				return nil, fmt.Errorf("line %d: scene %q: :id takes an integer: %w", arg.Line, name, ErrMalformed)
			}
			i++
			id = rest[i].Int
		case arg.Kind == sexp.KindList:
			lineForms = append(lineForms, arg)
		default:
			return nil, fmt.Errorf("line %d: scene %q: unexpected %v: %w", arg.Line, name, arg.Kind, ErrMalformed)
		}
	}

	if kind == subdb.KindHint {
		// An ambient hint's name is its hex id.
		v, err := strconv.ParseInt(name, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: hint name %q is not a hex id: %w", form.Line, name, ErrMalformed)
		}
		id = int(v)
	}

	scene := subdb.NewSceneInfo(kind)
	scene.SetName(name)
	scene.SetID(id)

	for _, lf := range lineForms {
		if err := parseLineForm(scene, lf); err != nil {
			return nil, fmt.Errorf("scene %q: %w", name, err)
		}
	}
	return scene, nil
}

// parseLineForm decodes a (frame "text" [:speaker "who"] [:offscreen]) or
// (frame :clear) form into the scene.
func parseLineForm(scene *subdb.SceneInfo, form sexp.Node) error {
	if len(form.List) < 2 || form.List[0].Kind != sexp.KindInt {
		return fmt.Errorf("line %d: subtitle line needs a frame: %w", form.Line, ErrMalformed)
	}
	frame := form.List[0].Int

	var text, speaker string
	offscreen := false
	clear := false

	rest := form.List[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg.Kind == sexp.KindString:
			text = arg.Str
		case arg.IsSymbol(":clear"):
			clear = true
		case arg.IsSymbol(":offscreen"):
			offscreen = true
		case arg.IsSymbol(":speaker"):
			if i+1 >= len(rest) || rest[i+1].Kind != sexp.KindString {
				return fmt.Errorf("line %d: :speaker takes a string: %w", arg.Line, ErrMalformed)
			}
			i++
			speaker = rest[i].Str
		default:
			return fmt.Errorf("line %d: unexpected line element: %w", arg.Line, ErrMalformed)
		}
	}

	if clear {
		scene.AddClearEntry(frame)
		return nil
	}
	if text == "" {
		return fmt.Errorf("line %d: subtitle line at frame %d has no text: %w", form.Line, frame, ErrMalformed)
	}
	scene.AddLine(frame, text, speaker, offscreen)
	return nil
}

// ParseSubtitleJSON reads the descriptor's meta and lines documents and
// merges them per scene: the meta document supplies frames, speakers and
// clear entries, the lines document supplies display text in order.
func ParseSubtitleJSON(db *subdb.DB, info SubtitleFileInfo) error {
	var meta subdb.MetadataFile
	if err := readJSON(info.ResolvedMetaPath(), &meta); err != nil {
		return err
	}
	var lines subdb.LinesFile
	if err := readJSON(info.ResolvedLinesPath(), &lines); err != nil {
		return err
	}

	bank, err := subtitleBank(db, info.LanguageID)
	if err != nil {
		return err
	}
	bank.SetFilePath(info.ResolvedLinesPath())
	bank.SetTextVersion(info.TextVersion)

	// Scene names are walked in sorted order so repeated runs behave
	// identically.
	for _, name := range sortedKeys(meta.Cutscenes) {
		scene := subdb.NewSceneInfo(subdb.KindMovie)
		scene.SetName(name)
		texts := lines.Cutscenes[name]
		textIdx := 0
		for _, m := range meta.Cutscenes[name] {
			if m.Clear {
				scene.AddClearEntry(m.Frame)
				continue
			}
			if textIdx >= len(texts) {
				return fmt.Errorf("cutscene %q: %d texts for more line entries: %w", name, len(texts), ErrMalformed)
			}
			scene.AddLine(m.Frame, texts[textIdx], speakerName(lines.Speakers, m.Speaker), m.Offscreen)
			textIdx++
		}
		if textIdx != len(texts) {
			return fmt.Errorf("cutscene %q: %d texts left unconsumed: %w", name, len(texts)-textIdx, ErrMalformed)
		}
		if err := insertScene(db, bank, scene); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(meta.Hints) {
		hint := meta.Hints[name]
		kind := subdb.KindHintNamed
		id := 0
		if hint.ID != "" {
			v, err := strconv.ParseInt(hint.ID, 16, 64)
			if err != nil {
				return fmt.Errorf("hint %q: id %q is not hex: %w", name, hint.ID, ErrMalformed)
			}
			kind = subdb.KindHint
			id = int(v)
		}
		scene := subdb.NewSceneInfo(kind)
		scene.SetName(name)
		scene.SetID(id)

		texts := lines.Hints[name]
		textIdx := 0
		for _, m := range hint.Lines {
			if m.Clear {
				scene.AddClearEntry(m.Frame)
				continue
			}
			if textIdx >= len(texts) {
				return fmt.Errorf("hint %q: %d texts for more line entries: %w", name, len(texts), ErrMalformed)
			}
			// Hints always play offscreen.
			scene.AddLine(m.Frame, texts[textIdx], speakerName(lines.Speakers, m.Speaker), true)
			textIdx++
		}
		if textIdx != len(texts) {
			return fmt.Errorf("hint %q: %d texts left unconsumed: %w", name, len(texts)-textIdx, ErrMalformed)
		}
		if err := insertScene(db, bank, scene); err != nil {
			return err
		}
	}

	log.Debug().Int("language", info.LanguageID).
		Int("cutscenes", len(meta.Cutscenes)).Int("hints", len(meta.Hints)).
		Msg("Ingested subtitle json documents")
	return nil
}

// insertScene adds a new scene to the bank or replaces an existing
// definition, and records the scene's categorization group. Scenes no group
// claims are appended to the uncategorized group.
func insertScene(db *subdb.DB, bank *subdb.Bank, scene *subdb.SceneInfo) error {
	if bank.SceneExists(scene.Name()) {
		existing, err := bank.SceneByName(scene.Name())
		if err != nil {
			return err
		}
		existing.FromOtherScene(scene)
		return nil
	}

	groups := db.Groups()
	group := groups.FindGroup(scene.Name())
	scene.SetSortingGroup(group, groups.FindGroupIndex(group))
	if group == subdb.UncategorizedGroup {
		groups.AddScene(subdb.UncategorizedGroup, scene.Name())
	}
	return bank.AddScene(scene)
}

// subtitleBank fetches the bank for a language id, creating it on first
// reference.
func subtitleBank(db *subdb.DB, langID int) (*subdb.Bank, error) {
	if bank, ok := db.BankByID(langID); ok {
		return bank, nil
	}
	return db.AddBank(subdb.NewBank(langID))
}

// speakerName resolves a speaker code through the lines document's speaker
// table, falling back to the raw code.
func speakerName(speakers map[string]string, code string) string {
	if code == "" {
		return ""
	}
	if name, ok := speakers[code]; ok {
		return name
	}
	return code
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read subtitle document: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %v: %w", path, err, ErrMalformed)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
