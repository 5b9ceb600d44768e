// apikeys.go handles API key management endpoints.
//
// POST   /api/v1/keys — create a new API key (admin-gated in production)
// GET    /api/v1/keys — list keys
// DELETE /api/v1/keys/:id — revoke a key
package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pagedeck-api/internal/middleware"
	"github.com/Shimizu-Technology/pagedeck-api/internal/models"
)

// defaultRateLimit is applied when a key is created without one.
const defaultRateLimit = 100

// CreateAPIKey generates a new API key. The raw key is returned exactly
// once; only its hash is stored.
// POST /api/v1/keys
func (h *Handler) CreateAPIKey(c *gin.Context) {
	// When an admin key is configured, creation requires it. Without one
	// (local dev), creation is open.
	if h.AdminAPIKey != "" && c.GetHeader("X-Admin-Key") != h.AdminAPIKey {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "API key creation requires the X-Admin-Key header",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	var req models.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "A key name is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// 32 random bytes, hex-encoded, with a recognizable prefix.
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Printf("❌ Failed to generate API key: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "server_error",
			Message: "Failed to generate key",
			Code:    http.StatusInternalServerError,
		})
		return
	}
	rawKey := "pd_" + hex.EncodeToString(raw)

	rateLimit := req.RateLimit
	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}

	key := &models.APIKey{
		KeyHash:   middleware.HashAPIKey(rawKey),
		KeyPrefix: rawKey[:8],
		Name:      req.Name,
		Active:    true,
		RateLimit: rateLimit,
	}
	if user := middleware.GetUser(c); user != nil {
		key.UserID = &user.ID
	}

	if err := h.DB.CreateAPIKey(c.Request.Context(), key); err != nil {
		log.Printf("❌ Failed to save API key: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to create key",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusCreated, models.CreateAPIKeyResponse{
		APIKey: *key,
		RawKey: rawKey,
	})
}

// ListAPIKeys returns all API keys (hashes excluded by the model's tags).
// GET /api/v1/keys
func (h *Handler) ListAPIKeys(c *gin.Context) {
	keys, err := h.DB.ListAPIKeys(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list API keys: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list keys",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if keys == nil {
		keys = []models.APIKey{}
	}
	c.JSON(http.StatusOK, keys)
}

// RevokeAPIKey deactivates a key.
// DELETE /api/v1/keys/:id
func (h *Handler) RevokeAPIKey(c *gin.Context) {
	if err := h.DB.RevokeAPIKey(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "API key not found",
			Code:    http.StatusNotFound,
		})
		return
	}
	c.Status(http.StatusNoContent)
}
