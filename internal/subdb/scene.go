package subdb

import "sort"

// SceneKind classifies a subtitle scene.
type SceneKind int

const (
	KindInvalid   SceneKind = -1
	KindMovie     SceneKind = 0
	KindHint      SceneKind = 1
	KindHintNamed SceneKind = 2
)

func (k SceneKind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindHint:
		return "hint"
	case KindHintNamed:
		return "hint-named"
	default:
		return "invalid"
	}
}

// Line is a single timed subtitle event. A clear entry (empty text and
// speaker) marks the frame at which the displayed line is removed.
type Line struct {
	Frame     int
	Text      string
	Speaker   string
	Offscreen bool
}

// IsClear reports whether the line is a clear entry.
func (l Line) IsClear() bool {
	return l.Text == "" && l.Speaker == ""
}

// SceneInfo holds all lines and their timestamps for one subtitle scene,
// accessed through the scene name. Lines stay sorted by frame after every
// mutation; equal-frame entries keep their insertion order.
type SceneInfo struct {
	name            string
	id              int
	kind            SceneKind
	lines           []Line
	sortingGroup    string
	sortingGroupIdx int
}

// NewSceneInfo creates an empty scene of the given kind.
func NewSceneInfo(kind SceneKind) *SceneInfo {
	return &SceneInfo{kind: kind, sortingGroupIdx: -1}
}

func (s *SceneInfo) Name() string { return s.name }

func (s *SceneInfo) ID() int { return s.id }

func (s *SceneInfo) Kind() SceneKind { return s.kind }

func (s *SceneInfo) Lines() []Line { return s.lines }

func (s *SceneInfo) SortingGroup() string { return s.sortingGroup }

func (s *SceneInfo) SortingGroupIdx() int { return s.sortingGroupIdx }

func (s *SceneInfo) SetName(name string) { s.name = name }

func (s *SceneInfo) SetID(id int) { s.id = id }

// SetSortingGroup records the display group the scene was categorized into
// and its position in the declared group order.
func (s *SceneInfo) SetSortingGroup(group string, idx int) {
	s.sortingGroup = group
	s.sortingGroupIdx = idx
}

// FromOtherScene copies all fields from another scene, letting a later
// definition completely replace an earlier one.
func (s *SceneInfo) FromOtherScene(other *SceneInfo) {
	s.name = other.name
	s.id = other.id
	s.kind = other.kind
	s.lines = append([]Line(nil), other.lines...)
}

// AddLine inserts a timed line and restores frame order. Scenes are tiny
// (tens of lines) and ingestion is one-shot, so the full re-sort is fine.
func (s *SceneInfo) AddLine(frame int, text, speaker string, offscreen bool) {
	s.lines = append(s.lines, Line{Frame: frame, Text: text, Speaker: speaker, Offscreen: offscreen})
	s.sortLines()
}

// AddClearEntry inserts a clear entry at the given frame.
func (s *SceneInfo) AddClearEntry(frame int) {
	s.lines = append(s.lines, Line{Frame: frame})
	s.sortLines()
}

// ClearLines truncates the scene, used when a later source fully redefines it.
func (s *SceneInfo) ClearLines() {
	s.lines = s.lines[:0]
}

func (s *SceneInfo) sortLines() {
	sort.SliceStable(s.lines, func(i, j int) bool {
		return s.lines[i].Frame < s.lines[j].Frame
	})
}
