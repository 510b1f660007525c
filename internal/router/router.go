package router

import (
	"github.com/gin-gonic/gin"

	"gstpilot/internal/config"
	"gstpilot/internal/handler"
	"gstpilot/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	profileH *handler.ProfileHandler,
	invoiceH *handler.InvoiceHandler,
	filingH *handler.FilingHandler,
	reconH *handler.ReconHandler,
	gstinH *handler.GSTINHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Stateless GSTIN validation
	v1.GET("/gstin/:gstin", gstinH.Validate)

	// Taxpayer profiles
	profiles := v1.Group("/profiles")
	profiles.POST("", profileH.Create)
	profiles.GET("", profileH.List)
	profiles.GET("/:id", profileH.GetByID)
	profiles.PUT("/:id", profileH.Update)
	profiles.DELETE("/:id", profileH.Delete)

	// Invoice register (profile-scoped)
	invoices := profiles.Group("/:id/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:invoiceID", invoiceH.GetByID)
	invoices.POST("/:invoiceID/cancel", invoiceH.Cancel)
	invoices.DELETE("/:invoiceID", invoiceH.Delete)
	invoices.GET("/:invoiceID/risk", reconH.InvoiceRisk)

	// Anomaly scan
	profiles.GET("/:id/anomalies", invoiceH.Anomalies)

	// Return lifecycle
	filings := profiles.Group("/:id/filings")
	filings.POST("/generate", filingH.Generate)
	filings.GET("", filingH.List)
	filings.GET("/:filingID", filingH.GetByID)
	filings.POST("/:filingID/submit", filingH.Submit)
	filings.POST("/:filingID/review", filingH.Review)
	filings.POST("/:filingID/export", filingH.Export)
	filings.GET("/:filingID/export.xlsx", filingH.ExportXLSX)
	filings.POST("/:filingID/file", filingH.File)
	filings.GET("/:filingID/penalty", filingH.Penalty)

	// ITC reconciliation
	profiles.POST("/:id/recon", reconH.Run)
	profiles.GET("/:id/recon", reconH.Records)
	profiles.GET("/:id/recon.csv", reconH.ExportCSV)

	return r
}
