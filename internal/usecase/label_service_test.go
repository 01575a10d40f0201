package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labellens/backend/internal/domain"
)

// fakeOCRClient returns canned text and counts invocations
type fakeOCRClient struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCRClient) ExtractText(ctx context.Context, imagePath string) (string, error) {
	f.calls++
	return f.text, f.err
}

// fakeCache is a minimal in-memory CacheRepository for tests
type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", domain.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "label.png")
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

func newTestLabelService(ocrClient domain.OCRClient, cache domain.CacheRepository) *LabelService {
	return NewLabelService(cache, ocrClient, newTestVerifier(), LabelServiceConfig{})
}

func TestProcessLabel(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for empty image path", func(t *testing.T) {
		svc := newTestLabelService(&fakeOCRClient{}, newFakeCache())
		_, err := svc.ProcessLabel(ctx, "", sampleForm())
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("runs OCR and verifies on cache miss", func(t *testing.T) {
		ocrClient := &fakeOCRClient{text: sampleLabelText}
		svc := newTestLabelService(ocrClient, newFakeCache())

		run, err := svc.ProcessLabel(ctx, writeTestImage(t), sampleForm())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ocrClient.calls != 1 {
			t.Errorf("OCR calls = %d, want 1", ocrClient.calls)
		}
		if !run.Passed {
			t.Errorf("Passed = false, want true; verdicts: %+v", run.Verdicts)
		}
	})

	t.Run("second request for same image hits the cache", func(t *testing.T) {
		ocrClient := &fakeOCRClient{text: sampleLabelText}
		svc := newTestLabelService(ocrClient, newFakeCache())
		imagePath := writeTestImage(t)

		if _, err := svc.ProcessLabel(ctx, imagePath, sampleForm()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ProcessLabel(ctx, imagePath, sampleForm()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if ocrClient.calls != 1 {
			t.Errorf("OCR calls = %d, want 1 (second call should hit cache)", ocrClient.calls)
		}
	})

	t.Run("verification still runs on cached text", func(t *testing.T) {
		ocrClient := &fakeOCRClient{text: sampleLabelText}
		svc := newTestLabelService(ocrClient, newFakeCache())
		imagePath := writeTestImage(t)

		if _, err := svc.ProcessLabel(ctx, imagePath, sampleForm()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Same image, contradicting form: the cached OCR text must be
		// re-verified against the new values
		form := sampleForm()
		form.AlcoholContent = "40"
		run, err := svc.ProcessLabel(ctx, imagePath, form)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run.Passed {
			t.Error("Passed = true, want false for contradicting form")
		}
	})

	t.Run("no readable text degrades to not_found verdicts", func(t *testing.T) {
		ocrClient := &fakeOCRClient{err: domain.ErrNoTextFound}
		svc := newTestLabelService(ocrClient, newFakeCache())

		run, err := svc.ProcessLabel(ctx, writeTestImage(t), sampleForm())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run.Passed {
			t.Error("Passed = true, want false")
		}
		for _, v := range run.Verdicts {
			if v.Status != domain.StatusNotFound {
				t.Errorf("%s: status = %v, want not_found", v.Field, v.Status)
			}
		}
	})

	t.Run("OCR engine failure propagates as ErrOCRUnavailable", func(t *testing.T) {
		ocrClient := &fakeOCRClient{err: errors.New("tesseract exploded")}
		svc := newTestLabelService(ocrClient, newFakeCache())

		_, err := svc.ProcessLabel(ctx, writeTestImage(t), sampleForm())
		if !errors.Is(err, domain.ErrOCRUnavailable) {
			t.Errorf("error = %v, want ErrOCRUnavailable", err)
		}
	})

	t.Run("unreadable image path skips caching but still verifies", func(t *testing.T) {
		ocrClient := &fakeOCRClient{text: sampleLabelText}
		cache := newFakeCache()
		svc := newTestLabelService(ocrClient, cache)

		run, err := svc.ProcessLabel(ctx, filepath.Join(t.TempDir(), "missing.png"), sampleForm())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !run.Passed {
			t.Error("Passed = false, want true")
		}
		if len(cache.data) != 0 {
			t.Errorf("cache entries = %d, want 0", len(cache.data))
		}
	})
}
