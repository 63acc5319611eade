package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// New creates an empty manifest for a project root.
func New(projectRoot string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ProjectRoot: projectRoot,
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates aggregate statistics from assets.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalAssets = len(m.Assets)
	for _, a := range m.Assets {
		s.TotalFiles += len(a.Files)
		for _, f := range a.Files {
			s.TotalBytes += f.Size
		}
		if a.Placement == PlacementUnplaced {
			s.Unplaced++
		} else {
			s.Placed++
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to path, creating parent directories.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest. A directory argument is taken as a project
// root and DefaultPath is read inside it.
func ReadJSON(path string) (*Manifest, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, path, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, filepath.FromSlash(DefaultPath))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, path, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, path, nil
}
