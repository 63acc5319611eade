// Package config loads and saves the project settings file: scale mappings,
// the rename toggle and the ordered import rules.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/imgdrop-cli/internal/codegen"
	"github.com/AnyUserName/imgdrop-cli/internal/profile"
	"github.com/AnyUserName/imgdrop-cli/internal/rule"
	"github.com/AnyUserName/imgdrop-cli/internal/scale"
)

// DefaultFile is the settings file name looked up in the project root.
const DefaultFile = "imgdrop.yaml"

// Environment variables, also read from <root>/.env.
const (
	EnvConfig  = "IMGDROP_CONFIG"
	EnvProfile = "IMGDROP_PROFILE"
)

// Settings is the persisted configuration.
type Settings struct {
	ScaleMappings    string      `yaml:"scale_mappings"`
	ShowRenameDialog bool        `yaml:"show_rename_dialog"`
	ImportRules      []rule.Rule `yaml:"import_rules"`

	Path   string `yaml:"-"` // file the settings came from or will be saved to
	Seeded bool   `yaml:"-"` // no file existed; values come from a profile
}

// Default returns the settings of a built-in profile with fresh rule ids.
func Default(profileName string) *Settings {
	p := profile.Get(profileName)
	return &Settings{
		ScaleMappings:    p.ScaleMappings,
		ShowRenameDialog: p.ShowRenameDialog,
		ImportRules:      p.NewRules(),
	}
}

// Scales parses the scale mappings.
func (s *Settings) Scales() scale.Map {
	return scale.Parse(s.ScaleMappings)
}

// LoadEnv loads <root>/.env into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadEnv(root string) {
	_ = godotenv.Load(filepath.Join(root, ".env"))
}

// ProfileName returns $IMGDROP_PROFILE or "default".
func ProfileName() string {
	if p := os.Getenv(EnvProfile); p != "" {
		return p
	}
	return "default"
}

// ResolvePath picks the settings file: the explicit path, then
// $IMGDROP_CONFIG (relative to root), then <root>/imgdrop.yaml.
func ResolvePath(root, path string) (resolved string, explicit bool) {
	if path != "" {
		return path, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		if !filepath.IsAbs(env) {
			env = filepath.Join(root, env)
		}
		return env, true
	}
	return filepath.Join(root, DefaultFile), false
}

// Load reads the settings for root. Keys absent from the file keep the
// profile defaults. When no file was named and the default one does not
// exist, the profile settings are returned with Seeded set.
func Load(root, path string) (*Settings, error) {
	path, explicit := ResolvePath(root, path)
	s := Default(ProfileName())
	s.Path = path

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			s.Seeded = true
			return s, nil
		}
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expandEnv(string(raw)))))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}

	for i := range s.ImportRules {
		if s.ImportRules[i].ID == "" {
			s.ImportRules[i].ID = uuid.NewString()
		}
	}
	return s, nil
}

// Save writes s as YAML to s.Path, creating parent directories.
func (s *Settings) Save() error {
	if s.Path == "" {
		return errors.New("config path not set")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return errors.Wrap(os.WriteFile(s.Path, buf.Bytes(), 0o644), "writing config file")
}

// expandEnv substitutes environment variables that are set. Template
// placeholders and unset variables are kept verbatim.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		ref := "${" + key + "}"
		switch ref {
		case codegen.PlaceholderVariableName, codegen.PlaceholderFileName, codegen.PlaceholderRelativePath:
			return ref
		}
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return ref
	})
}
