// Package export persists a compiled localization database to PostgreSQL so
// QA tooling can diff and search text between builds.
package export

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"locdb/internal/subdb"
	"locdb/internal/textdb"
	"locdb/internal/textutil"
	"locdb/internal/worker"
)

// Exporter writes compiled databases into PostgreSQL tables.
type Exporter struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewExporter creates an exporter on an existing connection pool.
func NewExporter(pool *pgxpool.Pool) *Exporter {
	return &Exporter{pool: pool, batchSize: 500}
}

// Connect opens and verifies a connection pool.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pool, nil
}

// EnsureSchema creates the export tables if they do not exist.
func (e *Exporter) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS text_lines (
			group_name TEXT NOT NULL,
			language_id INT NOT NULL,
			line_id INT NOT NULL,
			line_text TEXT NOT NULL,
			hash TEXT NOT NULL,
			PRIMARY KEY (group_name, language_id, line_id)
		)`,
		`CREATE TABLE IF NOT EXISTS subtitle_scenes (
			language_id INT NOT NULL,
			scene_name TEXT NOT NULL,
			kind TEXT NOT NULL,
			scene_id INT NOT NULL,
			sorting_group TEXT NOT NULL,
			sorting_group_idx INT NOT NULL,
			PRIMARY KEY (language_id, scene_name)
		)`,
		`CREATE TABLE IF NOT EXISTS subtitle_lines (
			language_id INT NOT NULL,
			scene_name TEXT NOT NULL,
			line_idx INT NOT NULL,
			frame INT NOT NULL,
			line_text TEXT NOT NULL,
			speaker TEXT NOT NULL,
			offscreen BOOL NOT NULL,
			clear_entry BOOL NOT NULL,
			hash TEXT NOT NULL,
			PRIMARY KEY (language_id, scene_name, line_idx)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := e.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure export schema: %w", err)
		}
	}
	return nil
}

type row struct {
	sql  string
	args []any
}

// flush sends rows to the server in batches.
func (e *Exporter) flush(ctx context.Context, rows []row) error {
	for _, chunk := range worker.Batch(rows, e.batchSize) {
		batch := &pgx.Batch{}
		for _, r := range chunk {
			batch.Queue(r.sql, r.args...)
		}
		if err := e.pool.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("send export batch: %w", err)
		}
	}
	return nil
}

// ExportText upserts every line of every bank.
func (e *Exporter) ExportText(ctx context.Context, db *textdb.DB) error {
	const upsert = `INSERT INTO text_lines (group_name, language_id, line_id, line_text, hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (group_name, language_id, line_id)
		DO UPDATE SET line_text = EXCLUDED.line_text, hash = EXCLUDED.hash`

	var rows []row
	for _, group := range db.Groups() {
		for _, lang := range db.Langs(group) {
			bank, ok := db.BankByID(group, lang)
			if !ok {
				continue
			}
			for _, id := range bank.LineIDs() {
				text, err := bank.Line(id)
				if err != nil {
					return err
				}
				rows = append(rows, row{upsert, []any{group, lang, id, text, textutil.Hash(text)}})
			}
		}
	}

	if err := e.flush(ctx, rows); err != nil {
		return err
	}
	log.Info().Int("lines", len(rows)).Msg("Exported text lines")
	return nil
}

// ExportSubtitles upserts every scene and line of every bank.
func (e *Exporter) ExportSubtitles(ctx context.Context, db *subdb.DB) error {
	const upsertScene = `INSERT INTO subtitle_scenes
		(language_id, scene_name, kind, scene_id, sorting_group, sorting_group_idx)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (language_id, scene_name)
		DO UPDATE SET kind = EXCLUDED.kind, scene_id = EXCLUDED.scene_id,
			sorting_group = EXCLUDED.sorting_group, sorting_group_idx = EXCLUDED.sorting_group_idx`
	const upsertLine = `INSERT INTO subtitle_lines
		(language_id, scene_name, line_idx, frame, line_text, speaker, offscreen, clear_entry, hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (language_id, scene_name, line_idx)
		DO UPDATE SET frame = EXCLUDED.frame, line_text = EXCLUDED.line_text,
			speaker = EXCLUDED.speaker, offscreen = EXCLUDED.offscreen,
			clear_entry = EXCLUDED.clear_entry, hash = EXCLUDED.hash`

	var rows []row
	scenes, lineCount := 0, 0
	for _, lang := range db.Langs() {
		bank, ok := db.BankByID(lang)
		if !ok {
			continue
		}
		for _, name := range bank.SceneNames() {
			scene, err := bank.SceneByName(name)
			if err != nil {
				return err
			}
			rows = append(rows, row{upsertScene, []any{
				lang, name, scene.Kind().String(), scene.ID(),
				scene.SortingGroup(), scene.SortingGroupIdx(),
			}})
			scenes++
			for idx, line := range scene.Lines() {
				rows = append(rows, row{upsertLine, []any{
					lang, name, idx, line.Frame, line.Text, line.Speaker,
					line.Offscreen, line.IsClear(), textutil.Hash(line.Text),
				}})
				lineCount++
			}
		}
	}

	if err := e.flush(ctx, rows); err != nil {
		return err
	}
	log.Info().Int("scenes", scenes).Int("lines", lineCount).Msg("Exported subtitles")
	return nil
}
