// Package imaging prepares gallery uploads: bounded decode, downscale, JPEG re-encode.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"sporthall/internal/domain/media"
)

// DataURLPrefix is what every prepared image starts with.
const DataURLPrefix = "data:image/jpeg;base64,"

// ErrUndecodable means the bytes claimed to be an image but no registered decoder accepted them.
var ErrUndecodable = errors.New("image could not be decoded")

// Prepared is a resized, re-encoded image ready for the Upload Store.
type Prepared struct {
	DataURL string
	Width   int
	Height  int
	Bytes   int
}

// PrepareImage validates, downsizes and re-encodes an uploaded image.
// PRE: none
// POST: on success the image fits media.MaxWidth x media.MaxHeight and is JPEG at media.JPEGQuality
// INVARIANT: type and size are rejected before any decoding work
// INVARIANT: pixel dimensions are read from the header and capped before the full decode allocates
func PrepareImage(data []byte, mimeType string) (Prepared, error) {
	if err := media.CheckUpload(mimeType, int64(len(data))); err != nil {
		return Prepared{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Prepared{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if err := media.CheckDimensions(cfg.Width, cfg.Height); err != nil {
		return Prepared{}, err
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Prepared{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	b := src.Bounds()
	w, h := media.FitWithin(b.Dx(), b.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: media.JPEGQuality}); err != nil {
		return Prepared{}, fmt.Errorf("encode jpeg: %w", err)
	}

	slog.Debug("image_prepared",
		"format", format,
		"src_w", b.Dx(), "src_h", b.Dy(),
		"dst_w", w, "dst_h", h,
		"in_bytes", len(data), "out_bytes", buf.Len(),
	)

	return Prepared{
		DataURL: DataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   w,
		Height:  h,
		Bytes:   buf.Len(),
	}, nil
}
