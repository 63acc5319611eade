// Package preview decodes dropped images into bounded thumbnails so a
// caller can show what is about to be imported. Imported files themselves
// are never re-encoded.
package preview

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/imgdrop-cli/internal/encoder"
)

// ErrUnsupported is returned for formats that cannot be previewed (svg).
var ErrUnsupported = errors.New("preview not supported for this format")

// DefaultSize bounds thumbnails on both axes.
const DefaultSize = 256

var decodable = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true,
	"bmp": true, "webp": true, "tif": true, "tiff": true,
}

// Supported reports whether files with ext can be previewed.
func Supported(ext string) bool {
	return decodable[strings.ToLower(ext)]
}

// Info is the header-level description of an image.
type Info struct {
	Width  int
	Height int
	Format string
}

// Probe reads only the image header.
func Probe(r io.Reader, ext string) (Info, error) {
	if !Supported(ext) {
		return Info{}, ErrUnsupported
	}
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("decode header: %w", err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Thumbnail decodes r and scales it down to fit maxW x maxH, keeping the
// aspect ratio. Images already inside the box are returned unscaled.
func Thumbnail(r io.Reader, ext string, maxW, maxH int) (image.Image, error) {
	if !Supported(ext) {
		return nil, ErrUnsupported
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	if maxW <= 0 || maxH <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return img, nil
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos), nil
}

// Save encodes img into dir as name.<ext> and returns the written path.
func Save(img image.Image, dir, name string, enc encoder.Encoder, quality int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name+"."+enc.Extension())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := enc.Encode(f, img, quality); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
