package main

import (
	"context"
	"fmt"
	"log"

	"gstpilot/internal/config"
	"gstpilot/internal/gst"
	"gstpilot/internal/handler"
	"gstpilot/internal/repository/postgres"
	"gstpilot/internal/router"
	"gstpilot/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	profileRepo := postgres.NewProfileRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	filingRepo := postgres.NewFilingRepo(db)
	itcRepo := postgres.NewITCRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)

	// Load the HSN rate table once at startup; it is static reference data.
	hsnCodes, err := hsnRepo.LoadAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load HSN codes: %w", err)
	}
	log.Printf("loaded %d HSN codes", len(hsnCodes))
	calc := gst.NewCalculator(gst.NewHSNLookup(hsnCodes))

	// Initialize services
	profileSvc := service.NewProfileService(profileRepo, filingRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, profileRepo, filingRepo, calc)
	filingSvc := service.NewFilingService(filingRepo, invoiceRepo, profileRepo)
	reconSvc := service.NewReconService(invoiceRepo, itcRepo)

	// Initialize handlers
	profileH := handler.NewProfileHandler(profileSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	filingH := handler.NewFilingHandler(filingSvc)
	reconH := handler.NewReconHandler(reconSvc, cfg.GST.MaxImportSizeMB<<20)
	gstinH := handler.NewGSTINHandler()
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, profileH, invoiceH, filingH, reconH, gstinH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
