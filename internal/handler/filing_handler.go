package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstpilot/internal/service"
)

// FilingHandler handles return lifecycle endpoints.
type FilingHandler struct {
	filingService service.FilingService
}

// NewFilingHandler creates a new FilingHandler.
func NewFilingHandler(filingService service.FilingService) *FilingHandler {
	return &FilingHandler{filingService: filingService}
}

// Generate handles POST /api/v1/profiles/:id/filings/generate
func (h *FilingHandler) Generate(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	var input service.GenerateFilingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filing, err := h.filingService.Generate(c.Request.Context(), profileID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, filing)
}

// List handles GET /api/v1/profiles/:id/filings
func (h *FilingHandler) List(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}
	offset, limit := pagination(c)

	filings, total, err := h.filingService.ListByProfile(c.Request.Context(), profileID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, filings, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/profiles/:id/filings/:filingID
func (h *FilingHandler) GetByID(c *gin.Context) {
	profileID, filingID, ok := filingParams(c)
	if !ok {
		return
	}

	filing, err := h.filingService.GetByID(c.Request.Context(), profileID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, filing)
}

// Submit handles POST /api/v1/profiles/:id/filings/:filingID/submit
func (h *FilingHandler) Submit(c *gin.Context) {
	profileID, filingID, ok := filingParams(c)
	if !ok {
		return
	}

	filing, err := h.filingService.Submit(c.Request.Context(), profileID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, filing)
}

// Review handles POST /api/v1/profiles/:id/filings/:filingID/review
func (h *FilingHandler) Review(c *gin.Context) {
	profileID, filingID, ok := filingParams(c)
	if !ok {
		return
	}

	var input service.ReviewFilingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filing, err := h.filingService.Review(c.Request.Context(), profileID, filingID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, filing)
}

// Export handles POST /api/v1/profiles/:id/filings/:filingID/export
// It transitions the filing and returns the official JSON payload.
func (h *FilingHandler) Export(c *gin.Context) {
	profileID, filingID, ok := filingParams(c)
	if !ok {
		return
	}

	filing, err := h.filingService.Export(c.Request.Context(), profileID, filingID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, json.RawMessage(filing.Payload))
}

// ExportXLSX handles GET /api/v1/profiles/:id/filings/:filingID/export.xlsx
func (h *FilingHandler) ExportXLSX(c *gin.Context) {
	profileID, filingID, ok := filingParams(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("filing-%s.xlsx", filingID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.filingService.ExportXLSX(c.Request.Context(), c.Writer, profileID, filingID); err != nil {
		HandleError(c, err)
		return
	}
}

// File handles POST /api/v1/profiles/:id/filings/:filingID/file
func (h *FilingHandler) File(c *gin.Context) {
	profileID, filingID, ok := filingParams(c)
	if !ok {
		return
	}

	var input service.FileFilingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filing, err := h.filingService.File(c.Request.Context(), profileID, filingID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, filing)
}

// Penalty handles GET /api/v1/profiles/:id/filings/:filingID/penalty
// ?as_of=YYYY-MM-DD defaults to today.
func (h *FilingHandler) Penalty(c *gin.Context) {
	profileID, filingID, ok := filingParams(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "as_of must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	penalty, err := h.filingService.Penalty(c.Request.Context(), profileID, filingID, asOf)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, penalty)
}

func filingParams(c *gin.Context) (profileID, filingID uuid.UUID, ok bool) {
	profileID, ok = profileParam(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	filingID, err := uuid.Parse(c.Param("filingID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid filing ID")
		return uuid.Nil, uuid.Nil, false
	}
	return profileID, filingID, true
}
