package subdb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFileRoundTrip(t *testing.T) {
	original := MetadataFile{
		Cutscenes: map[string][]CutsceneLineMeta{
			"intro": {
				{Frame: 10, Offscreen: true, Speaker: "jak"},
				{Frame: 60, Clear: true},
			},
		},
		Hints: map[string]HintMeta{
			"1b2a": {
				ID: "1b2a",
				Lines: []HintLineMeta{
					{Frame: 5, Speaker: "pre"},
					{Frame: 90, Clear: true},
				},
			},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded MetadataFile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestLinesFileRoundTrip(t *testing.T) {
	original := LinesFile{
		Speakers:  map[string]string{"jak": "Jak", "pre": "Precursor"},
		Cutscenes: map[string][]string{"intro": {"line one", "line two"}},
		Hints:     map[string][]string{"1b2a": {"a hint"}},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded LinesFile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
