// Package imaging prepares library images for the AI tagger and for
// dashboard previews.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"

	img "github.com/disintegration/imaging"
)

// DefaultSize is the edge length images are scaled to before tagging.
const DefaultSize = 512

// Open reads an image file from disk.
func Open(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return data, nil
}

// Resize scales an image to width x height and re-encodes it as JPEG.
// With preserveRatio the image is fitted and padded onto a black canvas
// instead of being stretched.
func Resize(data []byte, width, height int, preserveRatio bool) ([]byte, error) {
	src, err := img.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var resized image.Image
	if preserveRatio {
		resized = img.Fit(src, width, height, img.Lanczos)
	} else {
		resized = img.Resize(src, width, height, img.Lanczos)
	}

	canvas := img.New(width, height, color.NRGBA{0, 0, 0, 255})
	out := img.PasteCenter(canvas, resized)

	var buf bytes.Buffer
	if err := img.Encode(&buf, out, img.JPEG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// FileToJPEG loads an image file and returns it resized as JPEG bytes.
func FileToJPEG(path string, size int) ([]byte, error) {
	data, err := Open(path)
	if err != nil {
		return nil, err
	}
	return Resize(data, size, size, false)
}
