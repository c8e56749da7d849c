package undgraph

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// ExportPNG writes a raw framebuffer snapshot as a PNG file. pixels is RGBA,
// 4 bytes per pixel, rows top-down (the order the viewer reads them in).
// Fully opaque frames encode as 24-bit truecolor.
func ExportPNG(pixels []byte, width, height int, path string) error {
	if len(pixels) != 4*width*height {
		return fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d RGBA", len(pixels), 4*width*height, width, height)
	}

	img := &image.RGBA{
		Pix:    pixels,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	return nil
}
