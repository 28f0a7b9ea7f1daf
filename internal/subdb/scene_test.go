package subdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frames(lines []Line) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = l.Frame
	}
	return out
}

func TestSceneLinesStaySorted(t *testing.T) {
	scene := NewSceneInfo(KindMovie)
	scene.AddLine(50, "third", "daxter", false)
	scene.AddLine(10, "first", "jak", false)
	scene.AddLine(30, "second", "jak", true)
	scene.AddClearEntry(60)

	assert.Equal(t, []int{10, 30, 50, 60}, frames(scene.Lines()))
	assert.Equal(t, "first", scene.Lines()[0].Text)
	assert.True(t, scene.Lines()[3].IsClear())
}

func TestSceneEqualFramesKeepInsertionOrder(t *testing.T) {
	scene := NewSceneInfo(KindMovie)
	scene.AddLine(20, "a", "s1", false)
	scene.AddLine(20, "b", "s2", false)
	scene.AddLine(5, "zero", "s0", false)

	require.Equal(t, []int{5, 20, 20}, frames(scene.Lines()))
	assert.Equal(t, "a", scene.Lines()[1].Text)
	assert.Equal(t, "b", scene.Lines()[2].Text)
}

func TestSceneClearLines(t *testing.T) {
	scene := NewSceneInfo(KindHint)
	scene.AddLine(1, "x", "", false)
	scene.ClearLines()
	assert.Empty(t, scene.Lines())
}

func TestSceneFromOtherScene(t *testing.T) {
	older := NewSceneInfo(KindMovie)
	older.SetName("intro")
	older.AddLine(99, "stub", "", false)

	newer := NewSceneInfo(KindHintNamed)
	newer.SetName("intro")
	newer.SetID(0x42)
	newer.AddLine(10, "real", "jak", true)

	older.FromOtherScene(newer)
	assert.Equal(t, "intro", older.Name())
	assert.Equal(t, 0x42, older.ID())
	assert.Equal(t, KindHintNamed, older.Kind())
	require.Len(t, older.Lines(), 1)
	assert.Equal(t, "real", older.Lines()[0].Text)

	// The copy is detached from the source scene.
	newer.AddClearEntry(20)
	assert.Len(t, older.Lines(), 1)
}

func TestClearEntryCarriesNoPayload(t *testing.T) {
	line := Line{Frame: 60}
	assert.True(t, line.IsClear())
	assert.False(t, Line{Frame: 60, Text: "hi"}.IsClear())
	assert.False(t, Line{Frame: 60, Speaker: "jak"}.IsClear())
}
