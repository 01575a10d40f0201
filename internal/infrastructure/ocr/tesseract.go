// Package ocr extracts text from label images using Tesseract (via
// gosseract). Tesseract and its language data must be installed on the
// system, e.g. apt-get install tesseract-ocr tesseract-ocr-eng.
package ocr

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/labellens/backend/internal/domain"
)

// defaultMinTextLength is the fewest non-whitespace characters an extraction
// must produce before it counts as readable text
const defaultMinTextLength = 5

// Client runs OCR over label image files. A gosseract client is created per
// call because the underlying Tesseract handle is not goroutine-safe.
type Client struct {
	language       string
	tessdataPrefix string
	minTextLength  int
	debug          bool
}

// NewClient creates a new OCR client. language is a Tesseract language code
// ("eng" when empty); tessdataPrefix overrides the training-data directory
// when non-empty.
func NewClient(language, tessdataPrefix string, minTextLength int) *Client {
	if language == "" {
		language = "eng"
	}
	if minTextLength <= 0 {
		minTextLength = defaultMinTextLength
	}

	return &Client{
		language:       language,
		tessdataPrefix: tessdataPrefix,
		minTextLength:  minTextLength,
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ExtractText performs OCR on an image file and returns the recognized text.
// The image is preprocessed first (grayscale, upscaling of small images) to
// improve recognition. Extractions shorter than the configured minimum
// return domain.ErrNoTextFound.
func (c *Client) ExtractText(ctx context.Context, imagePath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	ocrPath, cleanup := preprocessForOCR(imagePath)
	defer cleanup()

	client := gosseract.NewClient()
	defer client.Close()

	if c.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(c.tessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(c.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(ocrPath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	if c.debug {
		log.Printf("[OCR] extracted %d characters from %s", len(text), imagePath)
	}

	if len(strings.TrimSpace(text)) < c.minTextLength {
		return "", domain.ErrNoTextFound
	}

	return text, nil
}

// Available probes the Tesseract installation and returns its version,
// for startup checks and the health endpoint
func (c *Client) Available() (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	if version == "" {
		return "", domain.ErrOCRUnavailable
	}
	return version, nil
}
