package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgdrop-cli/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats [project_root_or_manifest]",
	Short: "Display statistics for the last import",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := rootDir
	if len(args) == 1 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	m, _, err := manifest.ReadJSON(abs)
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

type breakdown struct {
	count int
	files int
	bytes int64
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Project root:     %s\n", m.ProjectRoot)
	if m.DryRun {
		fmt.Println("  Dry run:          yes")
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total images:     %d\n", s.TotalAssets)
	fmt.Printf("  Total files:      %d\n", s.TotalFiles)
	fmt.Printf("  Total size:       %s\n", formatBytes(s.TotalBytes))
	fmt.Printf("  Placed:           %d\n", s.Placed)
	fmt.Printf("  Unplaced:         %d\n", s.Unplaced)
	fmt.Println()

	byRule := map[string]breakdown{}
	byPlacement := map[string]breakdown{}
	byScale := map[string]int{}
	for _, a := range m.Assets {
		var size int64
		for _, f := range a.Files {
			size += f.Size
			scale := f.Scale
			if scale == "" {
				scale = "(base)"
			}
			byScale[scale]++
		}
		add := func(set map[string]breakdown, key string) {
			b := set[key]
			b.count++
			b.files += len(a.Files)
			b.bytes += size
			set[key] = b
		}
		add(byRule, a.Rule)
		add(byPlacement, a.Placement)
	}

	fmt.Println("  Rule breakdown:")
	for _, name := range sortedKeys(byRule) {
		b := byRule[name]
		fmt.Printf("    %-24s %4d images  %4d files  %s\n", truncKey(name, 24), b.count, b.files, formatBytes(b.bytes))
	}
	fmt.Println()

	fmt.Println("  Placement breakdown:")
	for _, p := range []string{manifest.PlacementInserted, manifest.PlacementReplaced, manifest.PlacementUnplaced} {
		if b, ok := byPlacement[p]; ok {
			fmt.Printf("    %-9s %4d images\n", p, b.count)
		}
	}
	fmt.Println()

	scales := make([]string, 0, len(byScale))
	for sc := range byScale {
		scales = append(scales, sc)
	}
	sort.Strings(scales)
	fmt.Println("  Scale breakdown:")
	for _, sc := range scales {
		fmt.Printf("    %-8s %4d files\n", sc, byScale[sc])
	}
	fmt.Println()

	// Top 10 heaviest images.
	type assetSize struct {
		key  string
		size int64
	}
	var items []assetSize
	for key, a := range m.Assets {
		var sum int64
		for _, f := range a.Files {
			sum += f.Size
		}
		items = append(items, assetSize{key, sum})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].size != items[j].size {
			return items[i].size > items[j].size
		}
		return items[i].key < items[j].key
	})
	n := len(items)
	if n > 10 {
		n = 10
	}
	if n > 0 {
		fmt.Printf("  Top %d heaviest:\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8s\n", truncKey(it.key, 40), formatBytes(it.size))
		}
		fmt.Println()
	}

	var warnings []string
	for _, key := range sortedKeys(m.Assets) {
		a := m.Assets[key]
		if len(a.Files) == 0 && !m.DryRun {
			warnings = append(warnings, fmt.Sprintf("image %q has no files", key))
		}
		if a.Placement == manifest.PlacementUnplaced && a.PasteTarget != "" {
			warnings = append(warnings, fmt.Sprintf("image %q was not placed at %s", key, a.PasteTarget))
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
