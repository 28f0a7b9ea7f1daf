package subdb

// Serialization types for the JSON subtitle source documents. Metadata and
// line text live in separate documents that ingestion merges per scene; both
// round-trip losslessly through encoding/json.

// CutsceneLineMeta is the timing/speaker half of one cutscene line.
type CutsceneLineMeta struct {
	// Frame is always required.
	Frame int `json:"frame"`
	// Actual lines.
	Offscreen bool   `json:"offscreen"`
	Speaker   string `json:"speaker"`
	// Clear entries.
	Clear bool `json:"clear"`
}

// HintLineMeta is the timing/speaker half of one hint line.
type HintLineMeta struct {
	Frame   int    `json:"frame"`
	Speaker string `json:"speaker"`
	Clear   bool   `json:"clear"`
}

// HintMeta describes one hint scene: its hex id and line metadata.
type HintMeta struct {
	ID    string         `json:"id"`
	Lines []HintLineMeta `json:"lines"`
}

// MetadataFile is the meta document: per-scene line metadata without text.
type MetadataFile struct {
	Cutscenes map[string][]CutsceneLineMeta `json:"cutscenes"`
	Hints     map[string]HintMeta           `json:"hints"`
}

// LinesFile is the lines document: per-scene display text plus the speaker
// code lookup table.
type LinesFile struct {
	Speakers  map[string]string   `json:"speakers"`
	Cutscenes map[string][]string `json:"cutscenes"`
	Hints     map[string][]string `json:"hints"`
}
