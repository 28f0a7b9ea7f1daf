package ingest

import (
	"fmt"
	"path/filepath"

	"locdb/internal/textdb"
)

// Format selects the source document grammar for a definition file.
type Format string

const (
	FormatGOAL Format = "goal"
	FormatJSON Format = "json"
)

// ParseFormat maps a manifest format tag to a known Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatGOAL, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown source format %q", s)
}

// DefaultGroupName is used for text files whose descriptor names no group.
const DefaultGroupName = "common"

// TextFileInfo describes one text definition file to ingest.
type TextFileInfo struct {
	Format      Format
	LanguageID  int
	TextVersion textdb.Version
	Path        string
	// BasePath, when set, is joined in front of Path.
	BasePath  string
	GroupName string
}

// ResolvedPath returns the path to read, honoring the optional base path.
func (i TextFileInfo) ResolvedPath() string {
	if i.BasePath != "" {
		return filepath.Join(i.BasePath, i.Path)
	}
	return i.Path
}

// Group returns the descriptor's group name or the default.
func (i TextFileInfo) Group() string {
	if i.GroupName != "" {
		return i.GroupName
	}
	return DefaultGroupName
}

// SubtitleFileInfo describes one subtitle definition to ingest. JSON sources
// split each scene across a meta document (timing, speakers, clears) and a
// lines document (display text); GOAL sources carry both in LinesPath.
type SubtitleFileInfo struct {
	Format        Format
	LanguageID    int
	TextVersion   textdb.Version
	LinesPath     string
	LinesBasePath string
	MetaPath      string
	MetaBasePath  string
}

// ResolvedLinesPath returns the lines document path, honoring the base path.
func (i SubtitleFileInfo) ResolvedLinesPath() string {
	if i.LinesBasePath != "" {
		return filepath.Join(i.LinesBasePath, i.LinesPath)
	}
	return i.LinesPath
}

// ResolvedMetaPath returns the meta document path, honoring the base path.
func (i SubtitleFileInfo) ResolvedMetaPath() string {
	if i.MetaBasePath != "" {
		return filepath.Join(i.MetaBasePath, i.MetaPath)
	}
	return i.MetaPath
}
