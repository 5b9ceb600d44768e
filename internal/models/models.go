// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// The `db` tags work with sqlx for database column mapping; the database
// package handles persistence — no ORM magic.
package models

import (
	"time"
)

// OperationStatus represents the processing state of a PDF operation.
type OperationStatus string

const (
	StatusPending    OperationStatus = "pending"
	StatusProcessing OperationStatus = "processing"
	StatusCompleted  OperationStatus = "completed"
	StatusFailed     OperationStatus = "failed"
)

// OperationType identifies what a recorded operation did with its input.
type OperationType string

const (
	OpMerge   OperationType = "merge"
	OpExtract OperationType = "extract"
	OpSplit   OperationType = "split"
)

// Operation is the persisted record of one merge/extract/split run.
// Synchronous runs are written already completed; async runs start pending
// and are updated by the worker as they progress.
type Operation struct {
	ID           string          `json:"id" db:"id"`
	Type         OperationType   `json:"type" db:"type"`
	SourceName   string          `json:"source_name" db:"source_name"`
	InputFiles   int             `json:"input_files" db:"input_files"`
	InputPages   int             `json:"input_pages" db:"input_pages"`
	OutputPages  int             `json:"output_pages" db:"output_pages"`
	PageSpec     string          `json:"page_spec,omitempty" db:"page_spec"` // range text the run was submitted with
	Status       OperationStatus `json:"status" db:"status"`
	ErrorMessage string          `json:"error_message,omitempty" db:"error_message"`
	ResultPath   *string         `json:"-" db:"result_path"`                   // async only: scratch file holding the output
	APIKeyID     *string         `json:"api_key_id,omitempty" db:"api_key_id"` // Pointer = nullable
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// User represents a registered account.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // "-" means never serialize to JSON
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// APIKey represents an API key for authentication.
// Note: We store the HASH of the key, never the raw key itself.
type APIKey struct {
	ID         string     `json:"id" db:"id"`
	KeyHash    string     `json:"-" db:"key_hash"`
	KeyPrefix  string     `json:"key_prefix" db:"key_prefix"` // First 8 chars for identification
	Name       string     `json:"name" db:"name"`
	Active     bool       `json:"active" db:"active"`
	RateLimit  int        `json:"rate_limit" db:"rate_limit"` // Requests per hour
	UserID     *string    `json:"user_id,omitempty" db:"user_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
}

// --- Request/Response DTOs ---
// Go Pattern: Separate structs for API input/output vs database models.
// This keeps the API contract independent of the database schema.

// DocumentResponse is the projection of a document session returned by the
// upload and state endpoints: the fixed page count plus the current
// selection in visual order and its derived range text. Clients render
// from this — never the other way around.
type DocumentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PageCount int    `json:"page_count"`
	Selection []int  `json:"selection"`
	RangeText string `json:"range_text"`
}

// TogglePageRequest is the JSON body for selection/toggle.
type TogglePageRequest struct {
	Page int `json:"page" binding:"required"`
}

// MovePageRequest is the JSON body for selection/move. Position says which
// half of the target the drop landed on.
type MovePageRequest struct {
	Page     int    `json:"page" binding:"required"`
	Target   int    `json:"target" binding:"required"`
	Position string `json:"position" binding:"required,oneof=before after"`
}

// ReorderRequest is the JSON body for the reorder endpoints (pages and
// merge files alike). Indexes are 0-based positions in the current order.
// Pointers so that 0 survives the required-field validation.
type ReorderRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// RangeTextRequest is the JSON body for the typed-text selection update.
type RangeTextRequest struct {
	Text string `json:"text"`
}

// ExtractRequest is the JSON body for the extract endpoint. Pages is a
// one-shot range text; when empty, the session's current selection is used.
type ExtractRequest struct {
	Pages string `json:"pages"`
	Async bool   `json:"async"`
}

// MergeFileInfo describes one queued merge input.
type MergeFileInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
}

// MergeSessionResponse is the projection of a merge session.
type MergeSessionResponse struct {
	ID    string          `json:"id"`
	Files []MergeFileInfo `json:"files"`
}

// MergeSubmitRequest is the JSON body for merge submit.
type MergeSubmitRequest struct {
	Async bool `json:"async"`
}

// RegisterRequest is the JSON body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateAPIKeyRequest is the JSON body for POST /api/v1/keys.
type CreateAPIKeyRequest struct {
	Name      string `json:"name" binding:"required"`
	RateLimit int    `json:"rate_limit,omitempty"` // 0 = use default
}

// CreateAPIKeyResponse includes the raw key — shown only once at creation time.
type CreateAPIKeyResponse struct {
	APIKey
	RawKey string `json:"raw_key"` // The actual API key — save it! Only shown once.
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Sessions int    `json:"sessions"`
	Workers  int    `json:"workers"`
}
