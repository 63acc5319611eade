package encoder

import (
	"fmt"
	"strings"
)

// Registry maps format names and aliases to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with the built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{PNGEncoder{}, JPEGEncoder{}} {
		r.encoders[enc.Format()] = enc
	}
	r.encoders["jpg"] = r.encoders["jpeg"]
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(strings.TrimPrefix(format, "."))]
}

// Resolve is Get with an error naming the supported formats.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported thumbnail format %q (supported: %s)", format, strings.Join(r.Available(), ", "))
}

// Available returns the canonical format names.
func (r *Registry) Available() []string {
	return []string{"png", "jpeg"}
}
