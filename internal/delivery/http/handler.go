package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/labellens/backend/config"
	"github.com/labellens/backend/internal/domain"
)

// LabelVerifier is the pipeline the verify endpoint delegates to
type LabelVerifier interface {
	ProcessLabel(ctx context.Context, imagePath string, form domain.FormFields) (*domain.VerificationRun, error)
}

// OCRProber reports whether the OCR engine is installed and usable
type OCRProber interface {
	Available() (string, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	labels            LabelVerifier
	ocr               OCRProber
	uploadDir         string
	maxUploadBytes    int64
	allowedExtensions map[string]bool
}

// verifyResponse is the JSON body returned by the verify endpoint
type verifyResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	OCRText string                `json:"ocrText,omitempty"`
	Details []domain.FieldVerdict `json:"details"`
}

// NewHandler creates a new HTTP handler
func NewHandler(labels LabelVerifier, ocr OCRProber, uploadCfg config.UploadConfig) *Handler {
	extensions := make(map[string]bool, len(uploadCfg.AllowedExtensions))
	for _, ext := range uploadCfg.AllowedExtensions {
		extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	return &Handler{
		labels:            labels,
		ocr:               ocr,
		uploadDir:         uploadCfg.Dir,
		maxUploadBytes:    uploadCfg.MaxSizeMB * 1024 * 1024,
		allowedExtensions: extensions,
	}
}

// HealthCheck returns the health status of the API including OCR availability
func (h *Handler) HealthCheck(c *gin.Context) {
	ocrStatus := gin.H{"available": false}
	if h.ocr != nil {
		if version, err := h.ocr.Available(); err == nil {
			ocrStatus = gin.H{"available": true, "version": version}
		} else {
			ocrStatus["error"] = err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "labellens-backend",
		"version": "1.0.0",
		"ocr":     ocrStatus,
	})
}

// VerifyLabel handles multipart label verification requests: form fields
// plus an image file. Verification failure is a result, not a transport
// error, so mismatches still return HTTP 200.
func (h *Handler) VerifyLabel(c *gin.Context) {
	if h.labels == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Label verification not configured",
		})
		return
	}

	var form domain.FormFields
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Missing or invalid form fields: %v", err),
		})
		return
	}

	if err := validateAlcoholContent(form.AlcoholContent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No image file provided.",
		})
		return
	}

	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"message": fmt.Sprintf("Image exceeds the %d MB upload limit.", h.maxUploadBytes/(1024*1024)),
		})
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !h.allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("%v: %s", domain.ErrUnsupportedFile, file.Filename),
		})
		return
	}

	// Store under a generated name; the OCR engine reads from disk
	imagePath := filepath.Join(h.uploadDir, uuid.New().String()+"."+ext)
	if err := c.SaveUploadedFile(file, imagePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to store uploaded image.",
		})
		return
	}
	defer func() {
		if err := os.Remove(imagePath); err != nil {
			log.Printf("[HTTP] failed to clean up %s: %v", imagePath, err)
		}
	}()

	run, err := h.labels.ProcessLabel(c.Request.Context(), imagePath, form)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrOCRUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": fmt.Sprintf("Label processing failed: %v", err),
		})
		return
	}

	message := "All required label information matches the application form."
	if !run.Passed {
		message = "Discrepancies found between the label and the application form."
	}

	c.JSON(http.StatusOK, verifyResponse{
		Success: run.Passed,
		Message: message,
		OCRText: run.OCRText,
		Details: run.Verdicts,
	})
}

// validateAlcoholContent enforces the caller-side precondition: numeric and
// within the 0-100 percentage range
func validateAlcoholContent(value string) error {
	abv, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("alcohol content must be numeric, got: %q", value)
	}
	if abv < 0 || abv > 100 {
		return fmt.Errorf("alcohol content must be between 0 and 100, got: %v", abv)
	}
	return nil
}
