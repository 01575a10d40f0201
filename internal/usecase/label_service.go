package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labellens/backend/internal/domain"
)

// LabelServiceConfig holds configuration for the label service
type LabelServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// LabelService handles label verification with OCR result caching.
// OCR is the expensive step, so extracted text is cached per image digest;
// verification always re-runs because form values change between requests.
type LabelService struct {
	cache              domain.CacheRepository
	ocrClient          domain.OCRClient
	verifier           *VerificationService
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewLabelService creates a new label service with dependencies
func NewLabelService(
	cache domain.CacheRepository,
	ocrClient domain.OCRClient,
	verifier *VerificationService,
	config LabelServiceConfig,
) *LabelService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &LabelService{
		cache:              cache,
		ocrClient:          ocrClient,
		verifier:           verifier,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ProcessLabel verifies one uploaded label image against the submitted form.
// Flow: check cache -> run OCR -> verify -> return.
//
// An image from which OCR finds no usable text still produces a run (every
// field reports not_found); only an unreachable OCR engine is an error.
func (s *LabelService) ProcessLabel(ctx context.Context, imagePath string, form domain.FormFields) (*domain.VerificationRun, error) {
	if imagePath == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := s.imageCacheKey(imagePath)

	if cacheKey != "" {
		if text, err := s.cache.Get(ctx, cacheKey); err == nil && text != "" {
			if s.enableDebugLogging {
				log.Printf("[LABEL] OCR cache hit for %s", cacheKey)
			}
			return s.verifier.VerifyLabel(form, text), nil
		}
	}

	text, err := s.ocrClient.ExtractText(ctx, imagePath)
	if err != nil {
		if errors.Is(err, domain.ErrNoTextFound) {
			// The engine degrades an empty extraction to not_found verdicts
			return s.verifier.VerifyLabel(form, ""), nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
	}

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, text, s.cacheTTL); err != nil && s.enableDebugLogging {
			log.Printf("[LABEL] failed to cache OCR text: %v", err)
		}
	}

	return s.verifier.VerifyLabel(form, text), nil
}

// imageCacheKey derives a cache key from the image content so identical
// uploads reuse the same OCR result regardless of filename. Returns "" when
// the file cannot be read; the pipeline then just skips caching.
func (s *LabelService) imageCacheKey(imagePath string) string {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return "ocr:" + hex.EncodeToString(sum[:])
}
