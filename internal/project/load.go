package project

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"locdb/internal/ingest"
	"locdb/internal/sexp"
	"locdb/internal/subdb"
	"locdb/internal/textdb"
	"locdb/internal/worker"
)

// LoadTextProject resolves a text manifest and ingests every file into a
// fresh database. Source bytes are read concurrently; database mutation
// stays sequential in manifest order.
func LoadTextProject(ctx context.Context, filename string, workers int) (*textdb.DB, error) {
	inputs, err := OpenTextProject(TextProjectKind, filename)
	if err != nil {
		return nil, err
	}

	readPool := worker.NewPool[ingest.TextFileInfo, []byte](workers,
		func(ctx context.Context, info ingest.TextFileInfo) ([]byte, error) {
			return os.ReadFile(info.ResolvedPath())
		},
	)
	reads := readPool.Execute(ctx, inputs)

	// A cancelled run must never surface a partial database as a success.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load text project: %w", err)
	}

	db := textdb.NewDB()
	for _, task := range reads {
		info := task.Input
		if task.Err != nil {
			return nil, fmt.Errorf("read text file %s: %w", info.ResolvedPath(), task.Err)
		}

		switch info.Format {
		case ingest.FormatGOAL:
			forms, err := sexp.Read(task.Result)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %v: %w", info.ResolvedPath(), err, ingest.ErrMalformed)
			}
			if err := ingest.ParseText(forms, db, info); err != nil {
				return nil, fmt.Errorf("ingest %s: %w", info.ResolvedPath(), err)
			}
		case ingest.FormatJSON:
			if err := ingest.ParseTextJSON(task.Result, db, info); err != nil {
				return nil, fmt.Errorf("ingest %s: %w", info.ResolvedPath(), err)
			}
		}
	}

	log.Info().Str("manifest", filename).Int("files", len(inputs)).
		Int("groups", len(db.Groups())).Msg("Compiled text project")
	return db, nil
}

// LoadSubtitleProject resolves a subtitle manifest and ingests every
// definition into a fresh database. When groupAssetPath is set the scene
// categorization is hydrated first so scenes land in their declared groups.
func LoadSubtitleProject(filename, groupAssetPath string) (*subdb.DB, error) {
	db := subdb.NewDB()
	if groupAssetPath != "" {
		if err := db.Groups().HydrateFromAssetFile(groupAssetPath); err != nil {
			return nil, err
		}
	}

	inputs, err := OpenSubtitleProject(SubtitleProjectKind, filename)
	if err != nil {
		return nil, err
	}

	for _, info := range inputs {
		switch info.Format {
		case ingest.FormatGOAL:
			path := info.ResolvedLinesPath()
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read subtitle file: %w", err)
			}
			forms, err := sexp.Read(data)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %v: %w", path, err, ingest.ErrMalformed)
			}
			if err := ingest.ParseSubtitle(forms, db, path); err != nil {
				return nil, fmt.Errorf("ingest %s: %w", path, err)
			}
		case ingest.FormatJSON:
			if err := ingest.ParseSubtitleJSON(db, info); err != nil {
				return nil, fmt.Errorf("ingest %s: %w", info.ResolvedLinesPath(), err)
			}
		}
	}

	log.Info().Str("manifest", filename).Int("files", len(inputs)).
		Ints("languages", db.Langs()).Msg("Compiled subtitle project")
	return db, nil
}
