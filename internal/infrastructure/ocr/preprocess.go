package ocr

import (
	"image"
	"math"
	"os"

	"github.com/disintegration/imaging"
)

// minOCRDimension is the smallest image dimension Tesseract handles well;
// images below it are upscaled before recognition
const minOCRDimension = 1000

// preprocessForOCR prepares an image for Tesseract: grayscale plus Lanczos
// upscaling when the image is small. The processed copy is written to a temp
// PNG; the returned cleanup removes it. Any preprocessing failure falls back
// to the original file so OCR still gets a chance.
func preprocessForOCR(imagePath string) (string, func()) {
	noop := func() {}

	img, err := imaging.Open(imagePath, imaging.AutoOrientation(true))
	if err != nil {
		return imagePath, noop
	}

	processed := preprocess(img)

	tmpFile, err := os.CreateTemp("", "labellens-ocr-*.png")
	if err != nil {
		return imagePath, noop
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()

	if err := imaging.Save(processed, tmpPath); err != nil {
		os.Remove(tmpPath)
		return imagePath, noop
	}

	return tmpPath, func() { os.Remove(tmpPath) }
}

// preprocess converts to grayscale and upscales images whose smaller
// dimension is below minOCRDimension, preserving aspect ratio
func preprocess(img image.Image) image.Image {
	img = imaging.Grayscale(img)

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width >= minOCRDimension && height >= minOCRDimension {
		return img
	}

	scale := math.Max(
		float64(minOCRDimension)/float64(width),
		float64(minOCRDimension)/float64(height),
	)

	return imaging.Resize(img, int(math.Round(float64(width)*scale)), 0, imaging.Lanczos)
}
