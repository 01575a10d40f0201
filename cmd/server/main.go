package main

import (
	"fmt"
	"log"
	"os"

	"github.com/labellens/backend/config"
	httpDelivery "github.com/labellens/backend/internal/delivery/http"
	"github.com/labellens/backend/internal/infrastructure/cache"
	"github.com/labellens/backend/internal/infrastructure/ocr"
	"github.com/labellens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting LabelLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Upload dir: %s (max %d MB)", cfg.Upload.Dir, cfg.Upload.MaxSizeMB)

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("OCR cache TTL: %s", cfg.Cache.TTL)

	ocrClient := ocr.NewClient(cfg.OCR.Language, cfg.OCR.TessdataPrefix, cfg.OCR.MinTextLength)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		ocrClient.SetDebug(true)
		log.Printf("OCR client debug mode enabled")
	}

	if version, err := ocrClient.Available(); err == nil {
		log.Printf("Tesseract available: version %s (language: %s)", version, cfg.OCR.Language)
	} else {
		log.Printf("WARNING: Tesseract not available (%v) - verification requests will fail!", err)
	}

	// Initialize usecase layer
	verifier := usecase.NewVerificationService(usecase.VerificationConfig{
		BrandThreshold:       cfg.Verification.BrandThreshold,
		ProductTypeThreshold: cfg.Verification.ProductTypeThreshold,
		ABVTolerance:         cfg.Verification.ABVTolerance,
		VolumeTolerance:      cfg.Verification.VolumeTolerance,
		EnableFuzzyMatching:  cfg.Verification.EnableFuzzyMatching,
		EnableDebugLogging:   cfg.Verification.EnableDebugLogging,
	})

	labelService := usecase.NewLabelService(
		memoryCache,
		ocrClient,
		verifier,
		usecase.LabelServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Verification.EnableDebugLogging,
		},
	)

	log.Printf("Verification: brand=%.2f type=%.2f abv_tol=%.2f vol_tol=%.2f fuzzy=%v",
		cfg.Verification.BrandThreshold,
		cfg.Verification.ProductTypeThreshold,
		cfg.Verification.ABVTolerance,
		cfg.Verification.VolumeTolerance,
		cfg.Verification.EnableFuzzyMatching)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(labelService, ocrClient, cfg.Upload)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
