// Package handlers contains HTTP handler functions for the API.
//
// Go Pattern: Handlers are methods on a Handler struct that holds shared
// dependencies — dependency injection via struct fields instead of globals.
// This keeps testing easy: build a Handler with whatever fakes you need.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pagedeck-api/internal/database"
	"github.com/Shimizu-Technology/pagedeck-api/internal/models"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/selection"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/worker"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	DB            *database.DB
	Worker        *worker.Pool
	Sessions      *selection.Store
	JWTSecret     string
	AdminAPIKey   string
	MaxUploadSize int64
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(db *database.DB, wp *worker.Pool, sessions *selection.Store, jwtSecret, adminAPIKey string, maxUploadSize int64) *Handler {
	return &Handler{
		DB:            db,
		Worker:        wp,
		Sessions:      sessions,
		JWTSecret:     jwtSecret,
		AdminAPIKey:   adminAPIKey,
		MaxUploadSize: maxUploadSize,
	}
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	dbStatus := "healthy"
	if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  "1.0.0",
		Database: dbStatus,
		Sessions: h.Sessions.SessionCount(),
		Workers:  h.Worker.WorkerCount(),
	})
}
