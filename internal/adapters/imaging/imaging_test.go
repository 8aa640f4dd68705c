package imaging

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"sporthall/internal/domain/media"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func decodeResult(t *testing.T, p Prepared) image.Config {
	t.Helper()
	if !strings.HasPrefix(p.DataURL, DataURLPrefix) {
		t.Fatalf("DataURL prefix = %q", p.DataURL[:min(len(p.DataURL), 30)])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(p.DataURL, DataURLPrefix))
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("result is not a JPEG: %v", err)
	}
	return cfg
}

func TestPrepareImage_DownscalesPreservingAspect(t *testing.T) {
	p, err := PrepareImage(pngBytes(t, 3840, 1080), "image/png")
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	cfg := decodeResult(t, p)
	if cfg.Width != 1920 || cfg.Height != 540 {
		t.Errorf("size = %dx%d, want 1920x540", cfg.Width, cfg.Height)
	}
	if p.Width != cfg.Width || p.Height != cfg.Height {
		t.Errorf("Prepared dims %dx%d disagree with encoded %dx%d", p.Width, p.Height, cfg.Width, cfg.Height)
	}
}

func TestPrepareImage_NeverUpscales(t *testing.T) {
	p, err := PrepareImage(pngBytes(t, 64, 48), "image/png")
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	cfg := decodeResult(t, p)
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("size = %dx%d, want 64x48", cfg.Width, cfg.Height)
	}
}

func TestPrepareImage_RejectsBeforeDecoding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mime string
		want error
	}{
		{"not an image", []byte("%PDF-1.4"), "application/pdf", media.ErrNotImage},
		{"too large", make([]byte, media.MaxImageBytes+1), "image/png", media.ErrFileTooLarge},
		{"empty", nil, "image/png", media.ErrEmptyFile},
		{"garbage", []byte("not really a png"), "image/png", ErrUndecodable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PrepareImage(tt.data, tt.mime); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

// pngWithHeader rewrites the IHDR of a tiny real PNG to declare w x h.
// The pixel data stays 1x1, so only a header-first check can reject it cheaply.
func pngWithHeader(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := pngBytes(t, 1, 1)
	// signature(8) length(4) "IHDR"(4) width(4) height(4) ... crc over type+data(17 bytes)
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestPrepareImage_RejectsHugeDimensionsFromHeader(t *testing.T) {
	for _, side := range []uint32{12000, 60000} {
		data := pngWithHeader(t, side, side)
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("crafted header unreadable: %v", err)
		}
		if cfg.Width != int(side) {
			t.Fatalf("crafted width = %d", cfg.Width)
		}

		if _, err := PrepareImage(data, "image/png"); !errors.Is(err, media.ErrTooManyPixels) {
			t.Errorf("%dx%d: err = %v, want %v", side, side, err, media.ErrTooManyPixels)
		}
	}
}
