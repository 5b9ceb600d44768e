// operations.go handles the operation-history endpoints.
//
// GET    /api/v1/operations — recent operations for the authenticated key
// GET    /api/v1/operations/:id — one operation
// GET    /api/v1/operations/:id/download — result of a completed async run
// DELETE /api/v1/operations/:id — drop the record and its stored result
package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pagedeck-api/internal/models"
)

// ListOperations returns recent operations for the authenticated API key.
// GET /api/v1/operations
func (h *Handler) ListOperations(c *gin.Context) {
	ops, err := h.DB.ListOperations(c.Request.Context(), 50, requestAPIKeyID(c))
	if err != nil {
		log.Printf("Failed to list operations: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list operations",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if ops == nil {
		ops = []models.Operation{}
	}
	c.JSON(http.StatusOK, ops)
}

// GetOperation retrieves a single operation by ID.
// GET /api/v1/operations/:id
func (h *Handler) GetOperation(c *gin.Context) {
	op, err := h.DB.GetOperation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Operation not found",
			Code:    http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, op)
}

// DownloadOperation serves the stored result of a completed async
// operation.
// GET /api/v1/operations/:id/download
func (h *Handler) DownloadOperation(c *gin.Context) {
	op, err := h.DB.GetOperation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Operation not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	if op.Status != models.StatusCompleted || op.ResultPath == nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "not_ready",
			Message: "Operation has no downloadable result (status: " + string(op.Status) + ")",
			Code:    http.StatusConflict,
		})
		return
	}

	contentType := "application/pdf"
	if filepath.Ext(*op.ResultPath) == ".zip" {
		contentType = "application/zip"
	}
	c.Header("Content-Type", contentType)
	c.FileAttachment(*op.ResultPath, outputName(op.SourceName, string(op.Type))+filepath.Ext(*op.ResultPath))
}

// DeleteOperation removes an operation record and any stored result file.
// DELETE /api/v1/operations/:id
func (h *Handler) DeleteOperation(c *gin.Context) {
	op, err := h.DB.GetOperation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Operation not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	if op.ResultPath != nil {
		if err := os.Remove(*op.ResultPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove result file %s: %v", *op.ResultPath, err)
		}
	}

	if err := h.DB.DeleteOperation(c.Request.Context(), op.ID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to delete operation",
			Code:    http.StatusInternalServerError,
		})
		return
	}
	c.Status(http.StatusNoContent)
}
