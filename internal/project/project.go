// Package project resolves GOAL project manifests into ordered lists of
// definition-file descriptors and drives their ingestion.
package project

import (
	"fmt"
	"os"

	"locdb/internal/ingest"
	"locdb/internal/sexp"
	"locdb/internal/textdb"
)

// TextProjectKind and SubtitleProjectKind are the manifest head symbols.
const (
	TextProjectKind     = "text-project"
	SubtitleProjectKind = "subtitle-project"
)

// OpenTextProject resolves a manifest into text file descriptors, in
// declaration order.
func OpenTextProject(kind, filename string) ([]ingest.TextFileInfo, error) {
	fileForms, err := manifestForms(kind, filename)
	if err != nil {
		return nil, err
	}

	var inputs []ingest.TextFileInfo
	for _, form := range fileForms {
		args, err := keywordArgs(form)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}

		info := ingest.TextFileInfo{LanguageID: -1}
		if info.Format, err = formatArg(args); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if v, ok := args[":language-id"]; ok {
			info.LanguageID = v.Int
		}
		if v, ok := args[":text-version"]; ok {
			if info.TextVersion, err = textdb.ParseVersion(v.Str); err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}
		}
		info.Path = args[":path"].Str
		info.BasePath = args[":base-path"].Str
		info.GroupName = args[":group-name"].Str

		if info.Path == "" {
			return nil, fmt.Errorf("%s: file entry missing :path: %w", filename, ingest.ErrMalformed)
		}
		if info.Format == ingest.FormatJSON && info.LanguageID < 0 {
			return nil, fmt.Errorf("%s: json text file %s needs :language-id: %w", filename, info.Path, ingest.ErrMalformed)
		}
		inputs = append(inputs, info)
	}
	return inputs, nil
}

// OpenSubtitleProject resolves a manifest into subtitle file descriptors, in
// declaration order.
func OpenSubtitleProject(kind, filename string) ([]ingest.SubtitleFileInfo, error) {
	fileForms, err := manifestForms(kind, filename)
	if err != nil {
		return nil, err
	}

	var inputs []ingest.SubtitleFileInfo
	for _, form := range fileForms {
		args, err := keywordArgs(form)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}

		info := ingest.SubtitleFileInfo{LanguageID: -1}
		if info.Format, err = formatArg(args); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if v, ok := args[":language-id"]; ok {
			info.LanguageID = v.Int
		}
		if v, ok := args[":text-version"]; ok {
			if info.TextVersion, err = textdb.ParseVersion(v.Str); err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}
		}
		info.LinesPath = args[":lines-path"].Str
		info.LinesBasePath = args[":lines-base-path"].Str
		info.MetaPath = args[":meta-path"].Str
		info.MetaBasePath = args[":meta-base-path"].Str

		if info.LinesPath == "" {
			return nil, fmt.Errorf("%s: file entry missing :lines-path: %w", filename, ingest.ErrMalformed)
		}
		if info.Format == ingest.FormatJSON {
			if info.MetaPath == "" {
				return nil, fmt.Errorf("%s: json subtitle file %s needs :meta-path: %w", filename, info.LinesPath, ingest.ErrMalformed)
			}
			if info.LanguageID < 0 {
				return nil, fmt.Errorf("%s: json subtitle file %s needs :language-id: %w", filename, info.LinesPath, ingest.ErrMalformed)
			}
		}
		inputs = append(inputs, info)
	}
	return inputs, nil
}

// manifestForms reads a manifest and returns its (file ...) forms. The
// manifest is a single top-level list whose head names the project kind.
func manifestForms(kind, filename string) ([]sexp.Node, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read project manifest: %w", err)
	}
	forms, err := sexp.Read(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", filename, err, ingest.ErrMalformed)
	}
	if len(forms) != 1 {
		return nil, fmt.Errorf("%s: expected a single project form: %w", filename, ingest.ErrMalformed)
	}
	head, ok := forms[0].Head()
	if !ok || !head.IsSymbol(kind) {
		return nil, fmt.Errorf("%s: not a %s manifest: %w", filename, kind, ingest.ErrMalformed)
	}

	var fileForms []sexp.Node
	for _, form := range forms[0].List[1:] {
		fh, ok := form.Head()
		if !ok || !fh.IsSymbol("file") {
			return nil, fmt.Errorf("%s: line %d: expected a (file ...) entry: %w", filename, form.Line, ingest.ErrMalformed)
		}
		fileForms = append(fileForms, form)
	}
	return fileForms, nil
}

// keywordArgs collects the :keyword value pairs of a (file ...) form.
func keywordArgs(form sexp.Node) (map[string]sexp.Node, error) {
	args := make(map[string]sexp.Node)
	rest := form.List[1:]
	for i := 0; i < len(rest); i++ {
		if !rest[i].IsKeyword() {
			return nil, fmt.Errorf("line %d: expected a keyword: %w", rest[i].Line, ingest.ErrMalformed)
		}
		if i+1 >= len(rest) {
			return nil, fmt.Errorf("line %d: keyword %s has no value: %w", rest[i].Line, rest[i].Sym, ingest.ErrMalformed)
		}
		args[rest[i].Sym] = rest[i+1]
		i++
	}
	return args, nil
}

// formatArg resolves the :format keyword, which may be a symbol or string.
func formatArg(args map[string]sexp.Node) (ingest.Format, error) {
	v, ok := args[":format"]
	if !ok {
		return "", fmt.Errorf("file entry missing :format: %w", ingest.ErrMalformed)
	}
	tag := v.Sym
	if v.Kind == sexp.KindString {
		tag = v.Str
	}
	return ingest.ParseFormat(tag)
}
