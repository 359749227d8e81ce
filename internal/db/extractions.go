package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Extraction History Methods
// -----------------------------------------------------------------------------

// SaveExtraction stores an extraction result and returns the stored record
func (db *DB) SaveExtraction(ctx context.Context, input *ExtractionInput) (*Extraction, error) {
	if !IsValidKind(input.Kind) {
		return nil, fmt.Errorf("invalid extraction kind %q", input.Kind)
	}

	resultJSON, err := json.Marshal(input.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction result: %w", err)
	}

	method := input.Method
	if method == "" {
		method = MethodHeuristic
	}

	e := &Extraction{
		ID:     uuid.New(),
		Kind:   input.Kind,
		Method: method,
		Source: input.Source,
		Result: resultJSON,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO extractions (id, kind, method, source, result)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		e.ID, e.Kind, e.Method, e.Source, resultJSON,
	).Scan(&e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save extraction: %w", err)
	}
	return e, nil
}

// GetExtraction retrieves one extraction by ID, or nil when it does not exist
func (db *DB) GetExtraction(ctx context.Context, id uuid.UUID) (*Extraction, error) {
	var e Extraction
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, method, source, result, created_at
		 FROM extractions WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Kind, &e.Method, &e.Source, &e.Result, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}
	return &e, nil
}

// ListExtractions returns stored extractions, newest first
func (db *DB) ListExtractions(ctx context.Context, opts ListOptions) ([]Extraction, error) {
	opts = opts.normalize()

	rows, err := db.pool.Query(ctx,
		`SELECT id, kind, method, source, result, created_at
		 FROM extractions
		 WHERE $1 = '' OR kind = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		opts.Kind, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	defer rows.Close()

	extractions := []Extraction{}
	for rows.Next() {
		var e Extraction
		if err := rows.Scan(&e.ID, &e.Kind, &e.Method, &e.Source, &e.Result, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		extractions = append(extractions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate extractions: %w", err)
	}
	return extractions, nil
}
