package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgdrop-cli/internal/config"
	"github.com/AnyUserName/imgdrop-cli/internal/hasher"
	"github.com/AnyUserName/imgdrop-cli/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manifest_path]",
	Short: "Lint the settings and check an import manifest against the disk",
	Long: `Prints warnings for settings the importer silently ignores (malformed
scale mappings or paste targets, overlapping rules), then checks the manifest:
every copied file must exist with the recorded size and hash.

Without an argument the manifest under the project root is used if present.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	root, settings, err := loadProject()
	if err != nil {
		return err
	}

	fmt.Println()
	warnings := config.Lint(settings)
	if len(warnings) == 0 {
		fmt.Printf("  ✓ Settings: %d rules, no warnings\n", len(settings.ImportRules))
	} else {
		fmt.Printf("  ⚠ Settings (%d warning(s)):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    • %s\n", w)
		}
	}

	path := filepath.Join(root, filepath.FromSlash(manifest.DefaultPath))
	if len(args) == 1 {
		path = args[0]
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("  - No manifest yet")
		fmt.Println()
		return nil
	}

	m, path, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	baseDir := m.ProjectRoot
	if baseDir == "" {
		baseDir = root
	}
	logVerbose("manifest %s, files relative to %s", path, baseDir)

	errs := validateManifest(m, baseDir)
	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d images, %d files, all present and unchanged\n", m.Stats.TotalAssets, m.Stats.TotalFiles)
		fmt.Println()
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	fmt.Println()
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seenPaths := map[string]string{}
	for _, key := range keys {
		asset := m.Assets[key]
		switch asset.Placement {
		case manifest.PlacementInserted, manifest.PlacementReplaced, manifest.PlacementUnplaced:
		default:
			errs = append(errs, fmt.Sprintf("asset %q: unknown placement %q", key, asset.Placement))
		}
		if asset.Declaration == "" {
			errs = append(errs, fmt.Sprintf("asset %q: empty declaration", key))
		}
		if len(asset.Files) == 0 && !m.DryRun {
			errs = append(errs, fmt.Sprintf("asset %q: no files", key))
		}

		for i, f := range asset.Files {
			if f.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q file[%d]: missing path", key, i))
				continue
			}
			if other, ok := seenPaths[f.Path]; ok {
				errs = append(errs, fmt.Sprintf("asset %q file[%d]: path %q also listed by %q", key, i, f.Path, other))
			}
			seenPaths[f.Path] = key

			fullPath := filepath.Join(baseDir, filepath.FromSlash(f.Path))
			info, err := os.Stat(fullPath)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q file[%d]: file not found: %s", key, i, f.Path))
				continue
			}
			if info.Size() != f.Size {
				errs = append(errs, fmt.Sprintf("asset %q file[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, f.Size, info.Size()))
				continue
			}
			if f.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q file[%d]: missing hash", key, i))
				continue
			}
			h, err := hasher.FileHash(fullPath, len(f.Hash))
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q file[%d]: %v", key, i, err))
			} else if h != f.Hash {
				errs = append(errs, fmt.Sprintf("asset %q file[%d]: content changed: manifest=%s, disk=%s", key, i, f.Hash, h))
			}
		}
	}

	// Verify stats consistency.
	want := *m
	want.ComputeStats()
	if m.Stats != want.Stats {
		errs = append(errs, fmt.Sprintf("stats mismatch: recorded %+v, computed %+v", m.Stats, want.Stats))
	}

	return errs
}
