package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RawFile is one user-selected filesystem entry.
type RawFile interface {
	// Name is the base name including extension.
	Name() string
	// NameWithoutExtension is Name up to its last '.'.
	NameWithoutExtension() string
	// Extension is the text after the last '.', or "" when there is none.
	Extension() string
	IsDir() bool
	// Path identifies the entry; for on-disk files it is absolute.
	Path() string
	Open() (io.ReadCloser, error)
	// Children lists the immediate entries of a directory.
	Children() ([]RawFile, error)
}

// SplitName splits a file name at its last '.'.
func SplitName(name string) (base, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// OSFile is a RawFile backed by the local filesystem.
type OSFile struct {
	path string
	dir  bool
}

// Stat returns an OSFile for path.
func Stat(path string) (*OSFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	return &OSFile{path: abs, dir: info.IsDir()}, nil
}

// StatAll resolves every path, failing on the first missing one.
func StatAll(paths []string) ([]RawFile, error) {
	files := make([]RawFile, 0, len(paths))
	for _, p := range paths {
		f, err := Stat(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (f *OSFile) Name() string { return filepath.Base(f.path) }
func (f *OSFile) IsDir() bool  { return f.dir }
func (f *OSFile) Path() string { return f.path }

func (f *OSFile) NameWithoutExtension() string {
	base, _ := SplitName(f.Name())
	return base
}

func (f *OSFile) Extension() string {
	_, ext := SplitName(f.Name())
	return ext
}

func (f *OSFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

func (f *OSFile) Children() ([]RawFile, error) {
	if !f.dir {
		return nil, nil
	}
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return nil, err
	}
	// ReadDir sorts by name already.
	children := make([]RawFile, 0, len(entries))
	for _, e := range entries {
		children = append(children, &OSFile{
			path: filepath.Join(f.path, e.Name()),
			dir:  e.IsDir(),
		})
	}
	return children, nil
}

// Expand replaces each top-level directory with its immediate children.
// Nested directories are kept as entries and not descended into.
func Expand(files []RawFile) ([]RawFile, error) {
	var out []RawFile
	for _, f := range files {
		if !f.IsDir() {
			out = append(out, f)
			continue
		}
		children, err := f.Children()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", f.Path(), err)
		}
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].Name() < children[j].Name()
		})
		out = append(out, children...)
	}
	return out, nil
}
