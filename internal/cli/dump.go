package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"locdb/internal/subdb"
	"locdb/internal/textdb"
)

// Dump shapes for the JSON files handed to downstream asset tools.

type lineDump struct {
	Frame     int    `json:"frame"`
	Text      string `json:"text"`
	Speaker   string `json:"speaker"`
	Offscreen bool   `json:"offscreen"`
	Clear     bool   `json:"clear"`
}

type sceneDump struct {
	Name            string     `json:"name"`
	Kind            string     `json:"kind"`
	ID              int        `json:"id"`
	SortingGroup    string     `json:"sorting_group"`
	SortingGroupIdx int        `json:"sorting_group_idx"`
	Lines           []lineDump `json:"lines"`
}

type subtitleDump struct {
	GroupOrder []string               `json:"group_order"`
	Groups     map[string][]string    `json:"groups"`
	Languages  map[string][]sceneDump `json:"languages"`
}

// writeTextDump writes group → language → line id → text. Map keys are
// strings so encoding/json emits them sorted, keeping output reproducible.
func writeTextDump(db *textdb.DB, path string) error {
	dump := make(map[string]map[string]map[string]string)
	for _, group := range db.Groups() {
		dump[group] = make(map[string]map[string]string)
		for _, lang := range db.Langs(group) {
			bank, ok := db.BankByID(group, lang)
			if !ok {
				continue
			}
			lines := make(map[string]string, bank.Len())
			for _, id := range bank.LineIDs() {
				text, err := bank.Line(id)
				if err != nil {
					return err
				}
				lines[strconv.Itoa(id)] = text
			}
			dump[group][strconv.Itoa(lang)] = lines
		}
	}
	return writeJSON(path, dump)
}

// writeSubtitleDump writes every bank's scenes ordered by declared group
// precedence, plus the group structure itself.
func writeSubtitleDump(db *subdb.DB, path string) error {
	groups := db.Groups()

	dump := subtitleDump{
		GroupOrder: groups.Order(),
		Groups:     make(map[string][]string),
		Languages:  make(map[string][]sceneDump),
	}
	for _, g := range groups.Order() {
		dump.Groups[g] = groups.Scenes(g)
	}
	if scenes := groups.Scenes(subdb.UncategorizedGroup); len(scenes) > 0 {
		dump.Groups[subdb.UncategorizedGroup] = scenes
	}

	for _, lang := range db.Langs() {
		bank, ok := db.BankByID(lang)
		if !ok {
			continue
		}
		var scenes []sceneDump
		for _, name := range bank.SceneNames() {
			scene, err := bank.SceneByName(name)
			if err != nil {
				return err
			}
			sd := sceneDump{
				Name:            scene.Name(),
				Kind:            scene.Kind().String(),
				ID:              scene.ID(),
				SortingGroup:    scene.SortingGroup(),
				SortingGroupIdx: scene.SortingGroupIdx(),
			}
			for _, line := range scene.Lines() {
				sd.Lines = append(sd.Lines, lineDump{
					Frame:     line.Frame,
					Text:      line.Text,
					Speaker:   line.Speaker,
					Offscreen: line.Offscreen,
					Clear:     line.IsClear(),
				})
			}
			scenes = append(scenes, sd)
		}
		// Undeclared groups sort after every declared one.
		sort.SliceStable(scenes, func(i, j int) bool {
			ri, rj := scenes[i].SortingGroupIdx, scenes[j].SortingGroupIdx
			if ri < 0 {
				ri = len(dump.GroupOrder)
			}
			if rj < 0 {
				rj = len(dump.GroupOrder)
			}
			if ri != rj {
				return ri < rj
			}
			return scenes[i].Name < scenes[j].Name
		})
		dump.Languages[strconv.Itoa(lang)] = scenes
	}

	return writeJSON(path, dump)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
