// operations.go — persistence for merge/extract/split operation records.
package database

import (
	"context"
	"fmt"

	"github.com/Shimizu-Technology/pagedeck-api/internal/models"
)

// CreateOperation inserts a new operation record.
// Returns the created operation with its generated ID and timestamps.
func (db *DB) CreateOperation(ctx context.Context, op *models.Operation) error {
	query := `
		INSERT INTO operations (type, source_name, input_files, input_pages, output_pages, page_spec, status, error_message, result_path, api_key_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	return db.QueryRowContext(ctx, query,
		op.Type, op.SourceName, op.InputFiles, op.InputPages, op.OutputPages,
		op.PageSpec, op.Status, op.ErrorMessage, op.ResultPath, op.APIKeyID,
	).Scan(&op.ID, &op.CreatedAt, &op.UpdatedAt)
}

// GetOperation retrieves a single operation by ID.
func (db *DB) GetOperation(ctx context.Context, id string) (*models.Operation, error) {
	var op models.Operation
	err := db.GetContext(ctx, &op, `SELECT * FROM operations WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("operation not found: %w", err)
	}
	return &op, nil
}

// UpdateOperation updates an operation's fields after processing.
func (db *DB) UpdateOperation(ctx context.Context, op *models.Operation) error {
	query := `
		UPDATE operations
		SET output_pages = $2, status = $3, error_message = $4, result_path = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return db.QueryRowContext(ctx, query,
		op.ID, op.OutputPages, op.Status, op.ErrorMessage, op.ResultPath,
	).Scan(&op.UpdatedAt)
}

// ListOperations returns recent operations, newest first, optionally scoped
// to the owning API key.
func (db *DB) ListOperations(ctx context.Context, limit int, apiKeyID *string) ([]models.Operation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var ops []models.Operation
	var apiKeyValue interface{} = nil
	if apiKeyID != nil {
		apiKeyValue = *apiKeyID
	}
	err := db.SelectContext(ctx, &ops,
		`SELECT * FROM operations
		 WHERE ($1::uuid IS NULL OR api_key_id = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		apiKeyValue, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return ops, nil
}

// DeleteOperation removes an operation by ID.
func (db *DB) DeleteOperation(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM operations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("operation not found")
	}
	return nil
}
