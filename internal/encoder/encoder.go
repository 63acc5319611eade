package encoder

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
)

// Encoder writes a preview thumbnail in one format.
type Encoder interface {
	// Format returns the output format name ("png", "jpeg").
	Format() string

	// Encode writes img to w. quality (1-100) is ignored by lossless formats.
	Encode(w io.Writer, img image.Image, quality int) error

	// Extension returns the file extension without dot.
	Extension() string
}

// PNGEncoder is lossless and keeps transparency.
type PNGEncoder struct{}

func (PNGEncoder) Format() string    { return "png" }
func (PNGEncoder) Extension() string { return "png" }

func (PNGEncoder) Encode(w io.Writer, img image.Image, _ int) error {
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

// JPEGEncoder is smaller for photos; transparency is lost.
type JPEGEncoder struct{}

func (JPEGEncoder) Format() string    { return "jpeg" }
func (JPEGEncoder) Extension() string { return "jpg" }

func (JPEGEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = 82
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
