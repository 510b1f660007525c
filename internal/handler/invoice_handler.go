package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstpilot/internal/service"
)

// InvoiceHandler handles invoice register endpoints. All routes are
// nested under a profile so the register stays scoped to one taxpayer.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/profiles/:id/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), profileID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// List handles GET /api/v1/profiles/:id/invoices
// With ?period=MMYYYY it returns the full period unpaginated; otherwise
// it pages through the whole register.
func (h *InvoiceHandler) List(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	if period := c.Query("period"); period != "" {
		invoices, err := h.invoiceService.ListByPeriod(c.Request.Context(), profileID, period)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, invoices)
		return
	}

	offset, limit := pagination(c)
	invoices, total, err := h.invoiceService.ListByProfile(c.Request.Context(), profileID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/profiles/:id/invoices/:invoiceID
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}
	invoiceID, ok := invoiceParam(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), profileID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// Cancel handles POST /api/v1/profiles/:id/invoices/:invoiceID/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}
	invoiceID, ok := invoiceParam(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Cancel(c.Request.Context(), profileID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "cancelled"})
}

// Delete handles DELETE /api/v1/profiles/:id/invoices/:invoiceID
func (h *InvoiceHandler) Delete(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}
	invoiceID, ok := invoiceParam(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), profileID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Anomalies handles GET /api/v1/profiles/:id/anomalies
// The scan always covers the profile's full invoice history.
func (h *InvoiceHandler) Anomalies(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	anomalies, err := h.invoiceService.DetectAnomalies(c.Request.Context(), profileID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, anomalies)
}

func profileParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid profile ID")
		return uuid.Nil, false
	}
	return id, true
}

func invoiceParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("invoiceID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return uuid.Nil, false
	}
	return id, true
}
