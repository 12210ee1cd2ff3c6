package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// ProfileMaxDimension bounds the longer edge of stored avatars and logos.
	ProfileMaxDimension = 512
	DefaultQuality      = 85
	// MaxPixels caps width*height before a full decode is attempted.
	MaxPixels           = 40_000_000
)

var ErrTooManyPixels = errors.New("image dimensions exceed pixel limit")

// Compress decodes any registered format, scales it so the longer edge is at
// most maxDimension and re-encodes it as JPEG. Transparent pixels become white.
func Compress(data []byte, maxDimension int, quality int) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header (format: %s): %w", format, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	newWidth, newHeight := fit(bounds.Dx(), bounds.Dy(), maxDimension)

	canvas := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(canvas, canvas.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fit keeps the aspect ratio and never upscales.
func fit(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}
	if width >= height {
		h := int(float64(height) * float64(maxDimension) / float64(width))
		if h < 1 {
			h = 1
		}
		return maxDimension, h
	}
	w := int(float64(width) * float64(maxDimension) / float64(height))
	if w < 1 {
		w = 1
	}
	return w, maxDimension
}
