// selection.go handles the page-picker mutation endpoints. Every mutation
// answers with the full session projection so the client can redraw from
// the model instead of patching its own copy of the order.
//
// POST /api/v1/documents/:id/selection/toggle
// POST /api/v1/documents/:id/selection/select-all
// POST /api/v1/documents/:id/selection/deselect-all
// POST /api/v1/documents/:id/selection/move
// POST /api/v1/documents/:id/selection/reorder
// PUT  /api/v1/documents/:id/selection/range
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pagedeck-api/internal/models"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/pagerange"
	"github.com/Shimizu-Technology/pagedeck-api/internal/services/selection"
)

// TogglePage selects an unselected page (appending it to the order) or
// deselects a selected one.
// POST /api/v1/documents/:id/selection/toggle
func (h *Handler) TogglePage(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
		return
	}

	var req models.TogglePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Body must include a page number",
			Code:    http.StatusBadRequest,
		})
		return
	}

	sess.Update(func(m *selection.Model) {
		m.Toggle(req.Page)
	})
	c.JSON(http.StatusOK, documentResponse(sess))
}

// SelectAllPages resets the selection to every page, ascending.
// POST /api/v1/documents/:id/selection/select-all
func (h *Handler) SelectAllPages(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
		return
	}

	sess.Update(func(m *selection.Model) {
		m.SelectAll()
	})
	c.JSON(http.StatusOK, documentResponse(sess))
}

// DeselectAllPages empties the selection.
// POST /api/v1/documents/:id/selection/deselect-all
func (h *Handler) DeselectAllPages(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
		return
	}

	sess.Update(func(m *selection.Model) {
		m.DeselectAll()
	})
	c.JSON(http.StatusOK, documentResponse(sess))
}

// MovePage reinserts a selected page before or after another selected
// page — the thumbnail drag-and-drop drop. Unknown pages are no-ops, so
// a stale drag against a changed selection degrades to nothing instead of
// erroring.
// POST /api/v1/documents/:id/selection/move
func (h *Handler) MovePage(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
		return
	}

	var req models.MovePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Body must include page, target, and position (before/after)",
			Code:    http.StatusBadRequest,
		})
		return
	}

	sess.Update(func(m *selection.Model) {
		if req.Position == "after" {
			m.MoveAfter(req.Page, req.Target)
		} else {
			m.MoveBefore(req.Page, req.Target)
		}
	})
	c.JSON(http.StatusOK, documentResponse(sess))
}

// ReorderPages moves the page at index from to index to in the current
// order — the list-style drag handle.
// POST /api/v1/documents/:id/selection/reorder
func (h *Handler) ReorderPages(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
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

	sess.Update(func(m *selection.Model) {
		m.Reorder(*req.From, *req.To)
	})
	c.JSON(http.StatusOK, documentResponse(sess))
}

// SetSelectionRange replaces the selection from typed range text — the
// text-field regime. First-occurrence order and dedup come from the
// parser; the response's range text is the canonical re-rendering, which
// may be shorter than what was typed.
// PUT /api/v1/documents/:id/selection/range
func (h *Handler) SetSelectionRange(c *gin.Context) {
	sess, ok := h.Sessions.Document(c.Param("id"))
	if !ok {
		documentNotFound(c)
		return
	}

	var req models.RangeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Body must include the range text",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Nothing entered and nothing valid are different user errors — the
	// parser returns empty for both, so the distinction is made here from
	// the raw input.
	if errCode, msg := classifyPageSpec(req.Text); errCode != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   errCode,
			Message: msg,
			Code:    http.StatusBadRequest,
		})
		return
	}

	pages := pagerange.Parse(req.Text, sess.PageCount)
	if len(pages) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no_valid_pages",
			Message: "No valid page numbers in the given range",
			Code:    http.StatusBadRequest,
		})
		return
	}

	sess.Update(func(m *selection.Model) {
		m.SetPages(pages)
	})
	c.JSON(http.StatusOK, documentResponse(sess))
}
