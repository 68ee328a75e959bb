package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/perevod/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_history (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		translation TEXT NOT NULL DEFAULT '',
		error_kind TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		cached BOOLEAN DEFAULT FALSE,
		latency_ms INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS translation_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		final_text TEXT NOT NULL,
		usage_count INTEGER DEFAULT 1,
		invalidated BOOLEAN DEFAULT FALSE,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, source_lang, target_lang)
	);

	-- glossary holds user terms appended to the system prompt
	CREATE TABLE IF NOT EXISTS glossary (
		id TEXT PRIMARY KEY,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		source_term TEXT NOT NULL,
		target_term TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_lang, target_lang, source_term)
	);

	CREATE INDEX IF NOT EXISTS idx_history_created ON translation_history(created_at);
	CREATE INDEX IF NOT EXISTS idx_memory_lookup ON translation_memory(source_text, source_lang, target_lang);
	CREATE INDEX IF NOT EXISTS idx_glossary_lookup ON glossary(source_lang, target_lang);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRecord appends one invocation to the history.
func (s *Store) SaveRecord(ctx context.Context, rec internal.TranslationRecord) error {
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_history (id, source_text, source_lang, target_lang, translation, error_kind, error_message, cached, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SourceText, rec.SourceLang, rec.TargetLang, rec.Translation,
		rec.ErrorKind, rec.ErrorMessage, rec.Cached, rec.LatencyMs, ts)
	return err
}

// ListRecords returns the most recent history entries, newest first.
// limit ≤ 0 returns everything.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]internal.TranslationRecord, error) {
	query := `SELECT id, source_text, source_lang, target_lang, translation, error_kind, error_message, cached, latency_ms, created_at
		FROM translation_history ORDER BY created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []internal.TranslationRecord
	for rows.Next() {
		var r internal.TranslationRecord
		if err := rows.Scan(&r.ID, &r.SourceText, &r.SourceLang, &r.TargetLang, &r.Translation,
			&r.ErrorKind, &r.ErrorMessage, &r.Cached, &r.LatencyMs, &r.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ClearHistory removes all history entries.
func (s *Store) ClearHistory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) GetCachedTranslation(ctx context.Context, sourceText, sourceLang, targetLang string) (string, bool, error) {
	var finalText string
	var invalidated bool

	err := s.db.QueryRowContext(ctx,
		`SELECT final_text, invalidated FROM translation_memory WHERE source_text = ? AND source_lang = ? AND target_lang = ?`,
		normalizeText(sourceText), sourceLang, targetLang).Scan(&finalText, &invalidated)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if invalidated {
		return "", false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE translation_memory SET usage_count = usage_count + 1, last_used = ? WHERE source_text = ? AND source_lang = ? AND target_lang = ?`,
		time.Now(), normalizeText(sourceText), sourceLang, targetLang)

	return finalText, true, err
}

// SaveToMemory stores finalText for the pair, replacing any earlier entry
// and clearing its invalidated flag.
func (s *Store) SaveToMemory(ctx context.Context, sourceText, sourceLang, targetLang, finalText string) error {
	id := "mem_" + internal.NewID()
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_memory (id, source_text, source_lang, target_lang, final_text, usage_count, invalidated, last_used, created_at)
		 VALUES (?, ?, ?, ?, ?, 1, FALSE, ?, ?)
		 ON CONFLICT(source_text, source_lang, target_lang) DO UPDATE SET
			final_text = excluded.final_text,
			invalidated = FALSE,
			last_used = excluded.last_used`,
		id, normalizeText(sourceText), sourceLang, targetLang, finalText, now, now)
	return err
}

// MemoryEntry is a row from the translation_memory table.
type MemoryEntry struct {
	ID          string
	SourceText  string
	SourceLang  string
	TargetLang  string
	FinalText   string
	UsageCount  int
	Invalidated bool
	LastUsed    time.Time
}

// Stats summarises translation memory and history.
type Stats struct {
	TotalEntries   int
	ActiveEntries  int
	InvalidEntries int
	TotalUsage     int

	Translations int
	Failed       int
	CacheHits    int
}

func (s *Store) InvalidateMemory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE translation_memory SET invalidated = TRUE WHERE id = ?`, id)
	return err
}

// DeleteMemory permanently removes a translation memory entry by ID.
func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory WHERE id = ?`, id)
	return err
}

// ClearMemory removes all translation memory entries.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListMemory returns all translation memory entries ordered by most recently used.
func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_text, source_lang, target_lang, final_text, usage_count, invalidated, last_used FROM translation_memory ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.SourceLang, &e.TargetLang, &e.FinalText, &e.UsageCount, &e.Invalidated, &e.LastUsed); err != nil {
			return nil, err
		}
		results = append(results, e)
	}

	return results, rows.Err()
}

// Stats returns summary statistics for the translation memory and history.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN NOT invalidated THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN invalidated THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(usage_count), 0)
		FROM translation_memory`).Scan(
		&stats.TotalEntries,
		&stats.ActiveEntries,
		&stats.InvalidEntries,
		&stats.TotalUsage,
	)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN error_message != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN cached THEN 1 ELSE 0 END), 0)
		FROM translation_history`).Scan(
		&stats.Translations,
		&stats.Failed,
		&stats.CacheHits,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization
// for consistent cache key comparison.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// GlossaryEntry represents a row in the glossary table.
type GlossaryEntry struct {
	ID         string
	SourceLang string
	TargetLang string
	SourceTerm string
	TargetTerm string
	CreatedAt  time.Time
}

// AddGlossaryTerm inserts or replaces a glossary entry.
func (s *Store) AddGlossaryTerm(ctx context.Context, sourceLang, targetLang, sourceTerm, targetTerm string) error {
	id := "gl_" + internal.NewID()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO glossary (id, source_lang, target_lang, source_term, target_term)
		 VALUES (?, ?, ?, ?, ?)`,
		id, sourceLang, targetLang, sourceTerm, targetTerm)
	return err
}

// GetGlossaryTerms returns all glossary terms for a language pair as a
// source-term → target-term map, ready to embed in a translation prompt.
func (s *Store) GetGlossaryTerms(ctx context.Context, sourceLang, targetLang string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_term, target_term FROM glossary WHERE source_lang = ? AND target_lang = ?`,
		sourceLang, targetLang)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make(map[string]string)
	for rows.Next() {
		var src, tgt string
		if err := rows.Scan(&src, &tgt); err != nil {
			return nil, err
		}
		terms[src] = tgt
	}
	return terms, rows.Err()
}

// ListGlossaryTerms returns all glossary entries, optionally filtered by language
// pair (pass empty strings to return everything).
func (s *Store) ListGlossaryTerms(ctx context.Context, sourceLang, targetLang string) ([]GlossaryEntry, error) {
	query := `SELECT id, source_lang, target_lang, source_term, target_term, created_at FROM glossary`
	var args []interface{}

	switch {
	case sourceLang != "" && targetLang != "":
		query += ` WHERE source_lang = ? AND target_lang = ?`
		args = append(args, sourceLang, targetLang)
	case sourceLang != "":
		query += ` WHERE source_lang = ?`
		args = append(args, sourceLang)
	case targetLang != "":
		query += ` WHERE target_lang = ?`
		args = append(args, targetLang)
	}
	query += ` ORDER BY source_lang, target_lang, source_term`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []GlossaryEntry
	for rows.Next() {
		var e GlossaryEntry
		if err := rows.Scan(&e.ID, &e.SourceLang, &e.TargetLang, &e.SourceTerm, &e.TargetTerm, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteGlossaryTerm removes a glossary entry by ID.
func (s *Store) DeleteGlossaryTerm(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM glossary WHERE id = ?`, id)
	return err
}
