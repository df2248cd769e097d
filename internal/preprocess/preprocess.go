package preprocess

import (
	"bytes"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when Options.JPEGQuality is zero
const DefaultJPEGQuality = 85

// Options control image preprocessing before upload
type Options struct {
	// MaxDimension bounds the longest edge in pixels; zero disables
	// preprocessing entirely
	MaxDimension int

	// JPEGQuality is the re-encode quality (1-100)
	JPEGQuality int
}

// Enabled reports whether preprocessing should run at all
func (o Options) Enabled() bool {
	return o.MaxDimension > 0
}

// Shrink decodes an image, downscales it to fit within MaxDimension on its
// longest edge, and re-encodes it as JPEG. Data that does not decode is
// returned unchanged with an empty content type: the asset endpoint stays
// the authority on what it accepts. The returned content type is
// "image/jpeg" for re-encoded data.
func Shrink(data []byte, opts Options) ([]byte, string) {
	if !opts.Enabled() {
		return data, ""
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, ""
	}

	bounds := img.Bounds()
	if bounds.Dx() > opts.MaxDimension || bounds.Dy() > opts.MaxDimension {
		// Lanczos keeps text on progress photos legible after downscaling
		img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
	}

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return data, ""
	}

	return buf.Bytes(), "image/jpeg"
}
