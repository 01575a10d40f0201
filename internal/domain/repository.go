package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching OCR results
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// OCRClient defines the interface for the OCR collaborator. It turns an
// image file into raw text; an empty or too-short result is signaled with
// ErrNoTextFound rather than an empty string.
type OCRClient interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}
