package subdb

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

const (
	// GroupOrderKey is the reserved key in the group asset file whose value
	// is the declared display order of groups.
	GroupOrderKey = "_groups"
	// UncategorizedGroup collects scenes not listed in any declared group.
	UncategorizedGroup = "uncategorized"
)

// Groups categorizes scene names into ordered named groups for display.
// A scene belongs to at most one group; scenes nobody claimed fall into
// the uncategorized group.
type Groups struct {
	order  []string
	groups map[string][]string
}

// NewGroups creates an empty categorization.
func NewGroups() *Groups {
	return &Groups{groups: make(map[string][]string)}
}

// Order returns the declared group display order.
func (g *Groups) Order() []string { return g.order }

// Scenes returns the scene names listed under a group.
func (g *Groups) Scenes(group string) []string { return g.groups[group] }

// HydrateFromAssetFile populates the group order and membership from a JSON
// document keyed by group name. The reserved order key supplies the declared
// ordering; every other top-level key is a group name mapping to its scenes.
func (g *Groups) HydrateFromAssetFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read group asset file: %w", err)
	}
	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode group asset file %s: %w", path, err)
	}

	g.order = nil
	g.groups = make(map[string][]string, len(doc))
	for key, scenes := range doc {
		if key == GroupOrderKey {
			g.order = scenes
			continue
		}
		g.groups[key] = scenes
	}
	return nil
}

// FindGroup returns the group a scene belongs to. Absence is expected for
// new or ungrouped scenes and falls back to the uncategorized group.
func (g *Groups) FindGroup(sceneName string) string {
	for group, scenes := range g.groups {
		if slices.Contains(scenes, sceneName) {
			return group
		}
	}
	return UncategorizedGroup
}

// FindGroupIndex returns the 0-based position of a group in the declared
// order, or -1 when the group is not declared. The sentinel lets callers
// stable-sort scenes by declared group precedence.
func (g *Groups) FindGroupIndex(groupName string) int {
	return slices.Index(g.order, groupName)
}

// AddScene appends a scene to a group's list, creating the group if needed.
// New groups do not become visible in the declared order automatically.
func (g *Groups) AddScene(groupName, sceneName string) {
	if !slices.Contains(g.groups[groupName], sceneName) {
		g.groups[groupName] = append(g.groups[groupName], sceneName)
	}
}

// RemoveScene removes a scene from a group's list.
func (g *Groups) RemoveScene(groupName, sceneName string) {
	scenes, ok := g.groups[groupName]
	if !ok {
		return
	}
	if idx := slices.Index(scenes, sceneName); idx >= 0 {
		g.groups[groupName] = slices.Delete(scenes, idx, idx+1)
	}
}
