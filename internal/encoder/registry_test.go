package encoder

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestRegistry_Aliases(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"png", "PNG", ".png", "jpeg", "jpg", ".JPG"} {
		if r.Get(name) == nil {
			t.Errorf("Get(%q) = nil", name)
		}
	}
	if r.Get("jpg").Format() != "jpeg" {
		t.Error("jpg should alias jpeg")
	}
	if r.Get("webp") != nil {
		t.Error("webp should not be registered")
	}
	if _, err := r.Resolve("gif"); err == nil {
		t.Error("expected error for gif")
	}
}

func TestEncoders_ProduceDecodableImages(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})

	for _, enc := range []Encoder{PNGEncoder{}, JPEGEncoder{}} {
		var buf bytes.Buffer
		if err := enc.Encode(&buf, img, 0); err != nil {
			t.Fatalf("%s: %v", enc.Format(), err)
		}
		cfg, format, err := image.DecodeConfig(&buf)
		if err != nil {
			t.Fatalf("%s: decode: %v", enc.Format(), err)
		}
		if format != enc.Format() || cfg.Width != 8 || cfg.Height != 4 {
			t.Errorf("%s: got %s %dx%d", enc.Format(), format, cfg.Width, cfg.Height)
		}
	}
}
