package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-vault/internal/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

// currentProfileKey is the settings row holding the selected resume id.
const currentProfileKey = "current_profile"

// Postgres stores resume documents, drafts, and settings in PostgreSQL.
// Every mutation is a single upsert or delete statement, so concurrent
// writers serialize at the row level instead of clobbering a shared map.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Migrate creates the storage tables if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resumes (
			id TEXT PRIMARY KEY,
			doc JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS drafts (
			key TEXT PRIMARY KEY,
			doc JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// ResumeDocs returns every stored resume document keyed by id.
func (p *Postgres) ResumeDocs(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, doc FROM resumes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query resumes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		out[id] = json.RawMessage(doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resume rows: %w", err)
	}
	return out, nil
}

// ResumeDoc returns one stored document.
func (p *Postgres) ResumeDoc(ctx context.Context, id string) (json.RawMessage, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM resumes WHERE id = $1`, id).Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resume %s: %w", id, err)
	}
	return json.RawMessage(doc), nil
}

// PutResumeDoc inserts or replaces the document for id.
func (p *Postgres) PutResumeDoc(ctx context.Context, id string, doc json.RawMessage) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO resumes (id, doc, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET doc = $2, updated_at = NOW()`,
		id, []byte(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to save resume %s: %w", id, err)
	}
	return nil
}

// PutResumeDocs inserts or replaces every given document inside one
// transaction, so a failing write rolls back the whole batch.
func (p *Postgres) PutResumeDocs(ctx context.Context, docs map[string]json.RawMessage) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for id, doc := range docs {
		_, err := tx.Exec(ctx,
			`INSERT INTO resumes (id, doc, updated_at) VALUES ($1, $2, NOW())
			 ON CONFLICT (id) DO UPDATE SET doc = $2, updated_at = NOW()`,
			id, []byte(doc),
		)
		if err != nil {
			return fmt.Errorf("failed to save resume %s: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit resume batch: %w", err)
	}
	return nil
}

// DeleteResume removes the document for id.
func (p *Postgres) DeleteResume(ctx context.Context, id string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete resume %s: %w", id, err)
	}
	return nil
}

// CurrentProfile returns the selected resume id, or "".
func (p *Postgres) CurrentProfile(ctx context.Context) (string, error) {
	var value string
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM settings WHERE key = $1`, currentProfileKey,
	).Scan(&value)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query current profile: %w", err)
	}
	return value, nil
}

// SetCurrentProfile selects a resume id; "" clears the selection.
func (p *Postgres) SetCurrentProfile(ctx context.Context, id string) error {
	if id == "" {
		_, err := p.pool.Exec(ctx, `DELETE FROM settings WHERE key = $1`, currentProfileKey)
		if err != nil {
			return fmt.Errorf("failed to clear current profile: %w", err)
		}
		return nil
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2`,
		currentProfileKey, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set current profile: %w", err)
	}
	return nil
}

// Draft returns the stored draft for key, or nil.
func (p *Postgres) Draft(ctx context.Context, key string) (*types.Draft, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM drafts WHERE key = $1`, key).Scan(&doc)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query draft %s: %w", key, err)
	}

	var d types.Draft
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", key, err)
	}
	return &d, nil
}

// PutDraft inserts or replaces the draft for key.
func (p *Postgres) PutDraft(ctx context.Context, key string, d *types.Draft) error {
	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", key, err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO drafts (key, doc, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET doc = $2, updated_at = NOW()`,
		key, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", key, err)
	}
	return nil
}

// ClearDraft removes the draft for key.
func (p *Postgres) ClearDraft(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM drafts WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to clear draft %s: %w", key, err)
	}
	return nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
