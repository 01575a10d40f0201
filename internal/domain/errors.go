package domain

import "errors"

var (
	// ErrNoTextFound is returned when OCR extracts no usable text from an image
	ErrNoTextFound = errors.New("no readable text found in image")

	// ErrOCRUnavailable is returned when the OCR engine cannot be reached
	ErrOCRUnavailable = errors.New("OCR engine unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnsupportedFile is returned for uploads with a disallowed extension
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
