package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"gstpilot/internal/csvexport"
	"gstpilot/internal/service"
)

// ReconHandler handles ITC reconciliation endpoints.
type ReconHandler struct {
	reconService   service.ReconService
	maxImportBytes int64
}

// NewReconHandler creates a new ReconHandler. maxImportBytes caps uploaded
// GSTR-2A/2B documents.
func NewReconHandler(reconService service.ReconService, maxImportBytes int64) *ReconHandler {
	return &ReconHandler{reconService: reconService, maxImportBytes: maxImportBytes}
}

// Run handles POST /api/v1/profiles/:id/recon
// Multipart upload: "file" is the portal export, "period" is MMYYYY. The
// parser is chosen by file extension.
func (h *ReconHandler) Run(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}

	period := c.PostForm("period")
	if period == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_PERIOD", "period form field is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file form field is required")
		return
	}
	if fileHeader.Size > h.maxImportBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "import exceeds maximum allowed size")
		return
	}

	var format service.ImportFormat
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".json":
		format = service.ImportFormatJSON
	case ".xlsx":
		format = service.ImportFormatXLSX
	default:
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: json, xlsx")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	out, err := h.reconService.Run(c.Request.Context(), profileID, period, format, f)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// Records handles GET /api/v1/profiles/:id/recon?period=MMYYYY
func (h *ReconHandler) Records(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}
	period := c.Query("period")
	if period == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_PERIOD", "period query parameter is required")
		return
	}

	records, err := h.reconService.ListRecords(c.Request.Context(), profileID, period)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, records)
}

// ExportCSV handles GET /api/v1/profiles/:id/recon.csv?period=MMYYYY
// It streams the latest run's records as a BOM-prefixed CSV download.
func (h *ReconHandler) ExportCSV(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}
	period := c.Query("period")
	if period == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_PERIOD", "period query parameter is required")
		return
	}

	records, err := h.reconService.ListRecords(c.Request.Context(), profileID, period)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("recon_" + period)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRecords(records); err != nil {
		return
	}
	w.Flush()
}

// InvoiceRisk handles GET /api/v1/profiles/:id/invoices/:invoiceID/risk
func (h *ReconHandler) InvoiceRisk(c *gin.Context) {
	profileID, ok := profileParam(c)
	if !ok {
		return
	}
	invoiceID, ok := invoiceParam(c)
	if !ok {
		return
	}

	risk, err := h.reconService.InvoiceRisk(c.Request.Context(), profileID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, risk)
}
