package media

import (
	"errors"
	"strings"
)

// Upload limits for gallery images.
const (
	MaxImageBytes = 10 << 20
	MaxWidth      = 1920
	MaxHeight     = 1080
	JPEGQuality   = 85

	// MaxSourcePixels bounds what a decoder may allocate: 50 MP is about 200 MB as RGBA.
	MaxSourcePixels = 50_000_000
)

// Domain errors
var (
	ErrNotImage      = errors.New("file is not an image")
	ErrFileTooLarge  = errors.New("file exceeds 10 MiB")
	ErrEmptyFile     = errors.New("file is empty")
	ErrTooManyPixels = errors.New("image dimensions exceed 50 megapixels")
)

// CheckUpload applies the pre-decode checks: declared type must be image/*, size within MaxImageBytes.
// POST: a nil result guarantees the payload may be handed to a decoder
func CheckUpload(mimeType string, size int64) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/") {
		return ErrNotImage
	}
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > MaxImageBytes {
		return ErrFileTooLarge
	}
	return nil
}

// CheckDimensions applies the header check run before a full decode.
// POST: a nil result guarantees 0 < w*h <= MaxSourcePixels
func CheckDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return ErrEmptyFile
	}
	if int64(w)*int64(h) > MaxSourcePixels {
		return ErrTooManyPixels
	}
	return nil
}

// FitWithin scales (w, h) down to fit the MaxWidth x MaxHeight box, preserving aspect ratio.
// Images already inside the box are returned unchanged.
// PRE: w > 0, h > 0
// POST: result <= box in both dimensions, each side >= 1
func FitWithin(w, h int) (int, int) {
	if w <= MaxWidth && h <= MaxHeight {
		return w, h
	}
	// Compare w/MaxWidth with h/MaxHeight without floats.
	if w*MaxHeight >= h*MaxWidth {
		nh := h * MaxWidth / w
		return MaxWidth, max(nh, 1)
	}
	nw := w * MaxHeight / h
	return max(nw, 1), MaxHeight
}
