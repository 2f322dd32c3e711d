package lang

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is one stored translation: the serialized document for a single
// (urn, lang) pair plus bookkeeping fields.
type Record struct {
	ID        string    `json:"id"`
	URN       string    `json:"urn"`
	Lang      string    `json:"lang"`
	KeyCount  int       `json:"key_count"`
	Document  string    `json:"document"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the interface for translation catalog persistence.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// Upsert stores a translation record, replacing any existing row for
	// the same (urn, lang) pair while preserving its creation time.
	Upsert(ctx context.Context, rec *Record) error

	// Get retrieves the stored translation for a (urn, lang) pair.
	// Returns ErrNotFound if no such translation exists.
	Get(ctx context.Context, urn, langTag string) (*Record, error)

	// ListByURN retrieves all stored translations for a URN, one per
	// language. Returns ErrNotFound if the URN has no translations.
	ListByURN(ctx context.Context, urn string) ([]Record, error)

	// List retrieves all stored translations.
	List(ctx context.Context) ([]Record, error)

	// DeleteByURN removes all stored translations for a URN.
	// Returns ErrNotFound if the URN had no translations.
	DeleteByURN(ctx context.Context, urn string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection with the
// translations schema migrated.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert stores a translation record, replacing any existing row for the
// same (urn, lang) pair.
func (r *SQLiteRepository) Upsert(ctx context.Context, rec *Record) error {
	rec.URN = strings.TrimSpace(rec.URN)
	rec.Lang = strings.TrimSpace(rec.Lang)
	if rec.URN == "" {
		return ErrEmptyURN
	}
	if rec.Lang == "" {
		return ErrEmptyLang
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	query := `
		INSERT INTO translations (id, urn, lang, key_count, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (urn, lang) DO UPDATE SET
			key_count = excluded.key_count,
			document = excluded.document,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.URN,
		rec.Lang,
		rec.KeyCount,
		rec.Document,
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting translation: %w", err)
	}

	return nil
}

// Get retrieves the stored translation for a (urn, lang) pair.
func (r *SQLiteRepository) Get(ctx context.Context, urn, langTag string) (*Record, error) {
	query := `
		SELECT id, urn, lang, key_count, document, created_at, updated_at
		FROM translations
		WHERE urn = ? AND lang = ?`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, urn, langTag))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying translation: %w", err)
	}
	return rec, nil
}

// ListByURN retrieves all stored translations for a URN.
func (r *SQLiteRepository) ListByURN(ctx context.Context, urn string) ([]Record, error) {
	query := `
		SELECT id, urn, lang, key_count, document, created_at, updated_at
		FROM translations
		WHERE urn = ?
		ORDER BY lang`

	records, err := r.queryRecords(ctx, query, urn)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// List retrieves all stored translations.
func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, urn, lang, key_count, document, created_at, updated_at
		FROM translations
		ORDER BY urn, lang`

	return r.queryRecords(ctx, query)
}

// DeleteByURN removes all stored translations for a URN.
func (r *SQLiteRepository) DeleteByURN(ctx context.Context, urn string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM translations WHERE urn = ?`, urn)
	if err != nil {
		return fmt.Errorf("deleting translations: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// queryRecords executes a query and scans all resulting rows.
func (r *SQLiteRepository) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying translations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning translation row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating translation rows: %w", err)
	}

	return records, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single translations row.
func scanRecord(s scanner) (*Record, error) {
	var (
		rec       Record
		createdAt string
		updatedAt string
	)

	err := s.Scan(
		&rec.ID,
		&rec.URN,
		&rec.Lang,
		&rec.KeyCount,
		&rec.Document,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &rec, nil
}
