// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pagedeck-api/internal/database"
	"github.com/Shimizu-Technology/pagedeck-api/internal/handlers"
	"github.com/Shimizu-Technology/pagedeck-api/internal/middleware"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/selection"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/worker"
)

// Setup creates and configures the Gin router with all routes.
func Setup(db *database.DB, wp *worker.Pool, sessions *selection.Store, jwtSecret, adminAPIKey string, maxUploadSize int64, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	h := handlers.NewHandler(db, wp, sessions, jwtSecret, adminAPIKey, maxUploadSize)
	rateLimiter := middleware.NewRateLimiter()

	// --- Public Routes (no auth required) ---
	r.GET("/api/v1/health", h.HealthCheck)
	r.POST("/api/v1/keys", h.CreateAPIKey)

	// --- Auth Routes — public ---
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)

	// --- JWT-protected routes ---
	jwtProtected := r.Group("/api/v1")
	jwtProtected.Use(middleware.JWTAuth(db, jwtSecret))
	{
		jwtProtected.GET("/auth/me", h.GetMe)
	}

	// --- Protected Routes (API key OR JWT) ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.DualAuth(db, jwtSecret))
	protected.Use(rateLimiter.RateLimit())
	{
		// Document sessions: upload once, then operate on the selection.
		protected.POST("/documents", h.UploadDocument)
		protected.GET("/documents/:id", h.GetDocument)
		protected.DELETE("/documents/:id", h.DeleteDocument)

		// Selection manipulation. Every mutation returns the full document
		// state so clients never have to reconstruct it locally.
		protected.POST("/documents/:id/selection/toggle", h.TogglePage)
		protected.POST("/documents/:id/selection/select-all", h.SelectAllPages)
		protected.POST("/documents/:id/selection/deselect-all", h.DeselectAllPages)
		protected.POST("/documents/:id/selection/move", h.MovePage)
		protected.POST("/documents/:id/selection/reorder", h.ReorderPages)
		protected.PUT("/documents/:id/selection/range", h.SetSelectionRange)

		// Page extraction and per-page split
		protected.POST("/documents/:id/extract", h.ExtractDocument)
		protected.POST("/documents/:id/split", h.SplitDocument)

		// Merge sessions: accumulate files, reorder, submit.
		protected.POST("/merge", h.CreateMergeSession)
		protected.GET("/merge/:id", h.GetMergeSession)
		protected.DELETE("/merge/:id", h.DeleteMergeSession)
		protected.POST("/merge/:id/files", h.AddMergeFile)
		protected.DELETE("/merge/:id/files/:index", h.RemoveMergeFile)
		protected.POST("/merge/:id/reorder", h.ReorderMergeFiles)
		protected.POST("/merge/:id/submit", h.SubmitMerge)

		// Operation tracking for async jobs
		protected.GET("/operations", h.ListOperations)
		protected.GET("/operations/:id", h.GetOperation)
		protected.GET("/operations/:id/download", h.DownloadOperation)
		protected.DELETE("/operations/:id", h.DeleteOperation)

		// API key management
		protected.GET("/keys", h.ListAPIKeys)
		protected.DELETE("/keys/:id", h.RevokeAPIKey)
	}

	return r
}
