package adb

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/wsyqhh/Accessibility-Service/internal/platform"
)

// Screenshotter captures the device screen via `screencap`.
type Screenshotter struct {
	shell *Shell
}

// NewScreenshotter returns a Screenshotter backed by shell.
func NewScreenshotter(shell *Shell) *Screenshotter {
	return &Screenshotter{shell: shell}
}

// Capture grabs a screenshot and re-encodes it per opts. Scaling uses
// bilinear interpolation; device screens are large enough that a 0.5 scale
// keeps captures usable at a quarter of the payload.
func (s *Screenshotter) Capture(ctx context.Context, opts platform.ScreenshotOptions) ([]byte, error) {
	raw, err := s.shell.exec(ctx, "exec-out", "screencap", "-p")
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = "png"
	}

	// PNG passthrough when no re-encoding is needed.
	if format == "png" && (opts.Scale == 0 || opts.Scale == 1) {
		return raw, nil
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode screencap: %w", err)
	}

	if opts.Scale > 0 && opts.Scale < 1 {
		img = scaleImage(img, opts.Scale)
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpg", "jpeg":
		quality := opts.Quality
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		return nil, fmt.Errorf("unsupported format: %s (use png or jpg)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

func scaleImage(img image.Image, scale float64) image.Image {
	b := img.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
