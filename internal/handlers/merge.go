// merge.go handles the merge workflow: an ordered queue of uploaded PDFs
// that gets concatenated in queue order on submit.
//
// POST   /api/v1/merge — open a merge session
// GET    /api/v1/merge/:id — ordered file list
// POST   /api/v1/merge/:id/files — append an upload to the queue
// DELETE /api/v1/merge/:id/files/:index — drop a queued file by position
// POST   /api/v1/merge/:id/reorder — move a queued file
// POST   /api/v1/merge/:id/submit — merged PDF download
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pagedeck-api/internal/models"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/pdfops"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/selection"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/worker"
)

// CreateMergeSession opens an empty merge queue.
// POST /api/v1/merge
func (h *Handler) CreateMergeSession(c *gin.Context) {
	sess := h.Sessions.CreateMerge()
	c.JSON(http.StatusCreated, mergeResponse(sess))
}

// GetMergeSession returns the queued files in order.
// GET /api/v1/merge/:id
func (h *Handler) GetMergeSession(c *gin.Context) {
	sess, ok := h.Sessions.Merge(c.Param("id"))
	if !ok {
		mergeNotFound(c)
		return
	}
	c.JSON(http.StatusOK, mergeResponse(sess))
}

// DeleteMergeSession discards the queue.
// DELETE /api/v1/merge/:id
func (h *Handler) DeleteMergeSession(c *gin.Context) {
	if !h.Sessions.RemoveMerge(c.Param("id")) {
		mergeNotFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMergeFile appends an uploaded PDF to the end of the queue. Adding the
// same file twice queues it twice — entries are positions, not identities.
// POST /api/v1/merge/:id/files
func (h *Handler) AddMergeFile(c *gin.Context) {
	sess, ok := h.Sessions.Merge(c.Param("id"))
	if !ok {
		mergeNotFound(c)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "No PDF file provided. Upload a file with the field name 'file'.",
			Code:    http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: fmt.Sprintf("Unsupported file format '%s'. Only .pdf files are accepted.", ext),
			Code:    http.StatusBadRequest,
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if !pdfops.Validate(data) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_pdf",
			Message: "The uploaded file does not appear to be a valid PDF",
			Code:    http.StatusBadRequest,
		})
		return
	}

	sess.Update(func(fl *selection.FileList) {
		fl.Append(selection.FileEntry{
			Name: filepath.Base(header.Filename),
			Size: int64(len(data)),
			Data: data,
		})
	})
	c.JSON(http.StatusOK, mergeResponse(sess))
}

// RemoveMergeFile drops the queued file at the given position.
// DELETE /api/v1/merge/:id/files/:index
func (h *Handler) RemoveMergeFile(c *gin.Context) {
	sess, ok := h.Sessions.Merge(c.Param("id"))
	if !ok {
		mergeNotFound(c)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "File index must be an integer",
			Code:    http.StatusBadRequest,
		})
		return
	}

	sess.Update(func(fl *selection.FileList) {
		fl.RemoveAt(index)
	})
	c.JSON(http.StatusOK, mergeResponse(sess))
}

// ReorderMergeFiles moves the queued file at index from to index to.
// POST /api/v1/merge/:id/reorder
func (h *Handler) ReorderMergeFiles(c *gin.Context) {
	sess, ok := h.Sessions.Merge(c.Param("id"))
	if !ok {
		mergeNotFound(c)
		return
	}

	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Body must include from and to indexes",
			Code:    http.StatusBadRequest,
		})
		return
	}

	sess.Update(func(fl *selection.FileList) {
		fl.Reorder(*req.From, *req.To)
	})
	c.JSON(http.StatusOK, mergeResponse(sess))
}

// SubmitMerge concatenates the queued files in order and returns the
// merged PDF as a download.
// POST /api/v1/merge/:id/submit
func (h *Handler) SubmitMerge(c *gin.Context) {
	sess, ok := h.Sessions.Merge(c.Param("id"))
	if !ok {
		mergeNotFound(c)
		return
	}

	var req models.MergeSubmitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_request",
				Message: "Malformed request body",
				Code:    http.StatusBadRequest,
			})
			return
		}
	}

	var entries []selection.FileEntry
	sess.Update(func(fl *selection.FileList) {
		entries = fl.Files()
	})
	if len(entries) < 2 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "not_enough_files",
			Message: "Add at least two PDF files to merge",
			Code:    http.StatusBadRequest,
		})
		return
	}

	files := make([][]byte, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		files[i] = e.Data
		names[i] = e.Name
	}

	op := &models.Operation{
		Type:       models.OpMerge,
		SourceName: strings.Join(names, ", "),
		InputFiles: len(entries),
		APIKeyID:   requestAPIKeyID(c),
	}

	if req.Async {
		h.submitAsync(c, op, worker.Job{
			Type:       models.OpMerge,
			SourceName: op.SourceName,
			Files:      files,
		})
		return
	}

	output, err := pdfops.Merge(files)
	if err != nil {
		h.recordFailure(c, op, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "merge_failed",
			Message: "Merge failed: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if pages, err := pdfops.PageCount(output); err == nil {
		op.OutputPages = pages
	}
	op.Status = models.StatusCompleted
	if err := h.DB.CreateOperation(c.Request.Context(), op); err != nil {
		log.Printf("Failed to save merge operation record: %v", err)
	}

	sendPDF(c, output, outputName(entries[0].Name, "merged"))
}

// --- helpers ---

// mergeResponse projects a merge session into its API shape under the
// session lock.
func mergeResponse(sess *selection.MergeSession) models.MergeSessionResponse {
	resp := models.MergeSessionResponse{
		ID:    sess.ID,
		Files: []models.MergeFileInfo{},
	}
	sess.Update(func(fl *selection.FileList) {
		for i, e := range fl.Files() {
			resp.Files = append(resp.Files, models.MergeFileInfo{
				Index: i,
				Name:  e.Name,
				Size:  e.Size,
			})
		}
	})
	return resp
}

func mergeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "Merge session not found or expired",
		Code:    http.StatusNotFound,
	})
}
