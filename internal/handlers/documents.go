// documents.go handles document session HTTP endpoints: upload, state,
// discard, and the extract/split submit operations.
//
// POST   /api/v1/documents — upload a PDF, open a session
// GET    /api/v1/documents/:id — session state (selection + range text)
// DELETE /api/v1/documents/:id — discard the session
// POST   /api/v1/documents/:id/extract — PDF of selected pages, in order
// POST   /api/v1/documents/:id/split — ZIP of selected pages, one PDF each
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pagedeck-api/internal/middleware"
	"github.com/Shimizu-Technology/pagedeck-api/internal/models"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/pagerange"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/pdfops"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/selection"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/worker"
)

// UploadDocument accepts a PDF upload and opens a document session for it.
// POST /api/v1/documents
//
// Accepts multipart file upload with field name "file". The page count is
// fixed here for the session's lifetime; the selection starts empty.
func (h *Handler) UploadDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: fmt.Sprintf("No PDF file provided. Upload a file with the field name 'file'. Max size: %dMB.", h.MaxUploadSize>>20),
			Code:    http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: fmt.Sprintf("Unsupported file format '%s'. Only .pdf files are accepted.", ext),
			Code:    http.StatusBadRequest,
		})
		return
	}

	// The whole document lives in memory for the session — the PDF engine
	// needs random access anyway.
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

	pageCount, err := pdfops.PageCount(data)
	if err != nil {
		log.Printf("Page count failed for %s: %v", header.Filename, err)
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "unreadable_pdf",
			Message: "Could not read the PDF's page structure: " + err.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
		return
	}
	if pageCount == 0 {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "empty_pdf",
			Message: "The PDF has no pages",
			Code:    http.StatusUnprocessableEntity,
		})
		return
	}

	sess := h.Sessions.CreateDocument(header.Filename, pageCount, data)
	c.JSON(http.StatusCreated, documentResponse(sess))
}

// GetDocument returns the current session state.
// GET /api/v1/documents/:id
func (h *Handler) GetDocument(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
		return
	}
	c.JSON(http.StatusOK, documentResponse(sess))
}

// DeleteDocument discards a session — the "source file removed" reset.
// DELETE /api/v1/documents/:id
func (h *Handler) DeleteDocument(c *gin.Context) {
	if !h.Sessions.RemoveDocument(c.Param("id")) {
		documentNotFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExtractDocument produces a PDF containing the selected pages in selection
// order and returns it as a download.
// POST /api/v1/documents/:id/extract
//
// With a "pages" range text in the body, that one-shot range is used instead
// of the session's selection; the two must agree on membership since both
// run through the same parser.
func (h *Handler) ExtractDocument(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
		return
	}

	var req models.ExtractRequest
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

	var pages []int
	var pageSpec string
	if strings.TrimSpace(req.Pages) != "" {
		// One-shot typed range overrides the session's selection.
		pages = pagerange.Parse(req.Pages, sess.PageCount)
		if len(pages) == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "no_valid_pages",
				Message: "No valid page numbers in the given range",
				Code:    http.StatusBadRequest,
			})
			return
		}
		pageSpec = req.Pages
	} else {
		sess.Update(func(m *selection.Model) {
			pages = m.Pages()
			pageSpec = m.RangeText()
		})
		if len(pages) == 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "empty_selection",
				Message: "No pages selected. Select pages or provide a page range.",
				Code:    http.StatusBadRequest,
			})
			return
		}
	}

	op := &models.Operation{
		Type:       models.OpExtract,
		SourceName: sess.Name,
		InputFiles: 1,
		InputPages: sess.PageCount,
		PageSpec:   pageSpec,
		APIKeyID:   requestAPIKeyID(c),
	}

	if req.Async {
		h.submitAsync(c, op, worker.Job{
			Type:       models.OpExtract,
			SourceName: sess.Name,
			Data:       sess.Data,
			Pages:      pages,
		})
		return
	}

	output, err := pdfops.ExtractPages(sess.Data, pages)
	if err != nil {
		h.recordFailure(c, op, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "extraction_failed",
			Message: "Page extraction failed: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	op.OutputPages = len(pages)
	op.Status = models.StatusCompleted
	if err := h.DB.CreateOperation(c.Request.Context(), op); err != nil {
		log.Printf("Failed to save extract operation record: %v", err)
		// Still return the result even if the record didn't save
	}

	sendPDF(c, output, outputName(sess.Name, "extracted"))
}

// SplitDocument extracts every selected page into its own PDF and returns
// them as a ZIP download.
// POST /api/v1/documents/:id/split
func (h *Handler) SplitDocument(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
		return
	}

	var req models.ExtractRequest
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

	var pages []int
	var pageSpec string
	sess.Update(func(m *selection.Model) {
		pages = m.Pages()
		pageSpec = m.RangeText()
	})
	if len(pages) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "empty_selection",
			Message: "No pages selected to split",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// One group per selected page, in selection order.
	groups := make([][]int, len(pages))
	for i, p := range pages {
		groups[i] = []int{p}
	}

	op := &models.Operation{
		Type:       models.OpSplit,
		SourceName: sess.Name,
		InputFiles: 1,
		InputPages: sess.PageCount,
		PageSpec:   pageSpec,
		APIKeyID:   requestAPIKeyID(c),
	}

	if req.Async {
		h.submitAsync(c, op, worker.Job{
			Type:       models.OpSplit,
			SourceName: sess.Name,
			Data:       sess.Data,
			Groups:     groups,
		})
		return
	}

	output, err := pdfops.SplitToZip(sess.Data, groups, sess.Name)
	if err != nil {
		h.recordFailure(c, op, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "split_failed",
			Message: "Split failed: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	op.OutputPages = len(pages)
	op.Status = models.StatusCompleted
	if err := h.DB.CreateOperation(c.Request.Context(), op); err != nil {
		log.Printf("Failed to save split operation record: %v", err)
	}

	sendZip(c, output, outputName(sess.Name, "split")+".zip")
}

// --- shared helpers ---

// classifyPageSpec applies the validation taxonomy for typed range text:
// nothing entered is a different user error than nothing valid. Returns an
// empty code when the text deserves a parse attempt.
func classifyPageSpec(text string) (errCode, message string) {
	if strings.TrimSpace(text) == "" {
		return "empty_pages", "No page range entered"
	}
	return "", ""
}

// requestAPIKeyID pulls the owning API key out of the request, if any.
func requestAPIKeyID(c *gin.Context) *string {
	if apiKey := middleware.GetAPIKey(c); apiKey != nil {
		return &apiKey.ID
	}
	return nil
}

// submitAsync persists a pending operation and hands the job to the pool.
func (h *Handler) submitAsync(c *gin.Context, op *models.Operation, job worker.Job) {
	op.Status = models.StatusPending
	if err := h.DB.CreateOperation(c.Request.Context(), op); err != nil {
		log.Printf("Failed to create pending operation: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to queue operation",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	job.OperationID = op.ID
	if err := h.Worker.Submit(job); err != nil {
		op.Status = models.StatusFailed
		op.ErrorMessage = err.Error()
		h.DB.UpdateOperation(c.Request.Context(), op)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "queue_full",
			Message: "Processing queue is full. Try again shortly.",
			Code:    http.StatusServiceUnavailable,
		})
		return
	}

	c.JSON(http.StatusAccepted, op)
}

// recordFailure persists a failed operation row; the HTTP error is the
// caller's business.
func (h *Handler) recordFailure(c *gin.Context, op *models.Operation, cause error) {
	op.Status = models.StatusFailed
	op.ErrorMessage = cause.Error()
	if err := h.DB.CreateOperation(c.Request.Context(), op); err != nil {
		log.Printf("Failed to save failed operation record: %v", err)
	}
}

// documentResponse projects a session into its API shape under the session
// lock, so selection and range text always agree.
func documentResponse(sess *selection.DocumentSession) models.DocumentResponse {
	resp := models.DocumentResponse{
		ID:        sess.ID,
		Name:      sess.Name,
		PageCount: sess.PageCount,
	}
	sess.Update(func(m *selection.Model) {
		resp.Selection = m.Pages()
		resp.RangeText = m.RangeText()
	})
	if resp.Selection == nil {
		resp.Selection = []int{}
	}
	return resp
}

func documentNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "Document session not found or expired",
		Code:    http.StatusNotFound,
	})
}

// outputName derives a download filename from the upload's name.
func outputName(original, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		base = "document"
	}
	return base + "_" + suffix
}

func sendPDF(c *gin.Context, data []byte, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

func sendZip(c *gin.Context, data []byte, name string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/zip", data)
}
