package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgdrop-cli/internal/fallback"
	"github.com/AnyUserName/imgdrop-cli/internal/manifest"
	"github.com/AnyUserName/imgdrop-cli/internal/pipeline"
)

var (
	importRenames  []string
	importDryRun   bool
	importCopy     bool
	importPlain    bool
	importManifest string
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Border(lipgloss.DoubleBorder()).
	Padding(0, 4)

var importCmd = &cobra.Command{
	Use:   "import <path>...",
	Short: "Copy dropped images into the project and declare them",
	Long: `Groups the given files (directories are expanded one level) into
logical images, copies every density variant to the directory of the first
matching import rule, and renders one declaration per image.

Declarations are pasted at the rule's paste target (file::anchor[::before|after])
or printed once per rule for manual copy. A run record is written to
.imgdrop/manifest.json under the project root.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	addRenameFlag(importCmd, &importRenames)
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "plan and render declarations without touching files")
	importCmd.Flags().BoolVar(&importCopy, "copy", false, "also copy unplaced declarations to the clipboard")
	importCmd.Flags().BoolVar(&importPlain, "plain", false, "print unplaced declarations without styling")
	importCmd.Flags().StringVarP(&importManifest, "manifest", "m", "", "manifest path (default <root>/"+manifest.DefaultPath+")")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	start := time.Now()

	root, settings, err := loadProject()
	if err != nil {
		return err
	}
	groups, err := collectGroups(args, settings, importRenames)
	if err != nil {
		return err
	}

	presenter := fallback.NewTerminal(os.Stdout, importCopy)
	presenter.Plain = importPlain
	imp := newImporter(root, settings, presenter, importDryRun)

	if settings.ShowRenameDialog {
		fmt.Println()
		printPlan(root, imp.Plan(groups))
		fmt.Println()
	}

	res, runErr := imp.Run(groups)

	manifestPath := importManifest
	if manifestPath == "" {
		manifestPath = filepath.Join(root, filepath.FromSlash(manifest.DefaultPath))
	}
	if !importDryRun && len(res.Manifest.Assets) > 0 {
		if err := manifest.WriteJSON(res.Manifest, manifestPath); err != nil {
			return errors.Join(runErr, fmt.Errorf("write manifest: %w", err))
		}
		logVerbose("manifest: %s", manifestPath)
	}

	printImportReport(res, time.Since(start))
	return runErr
}

func printImportReport(res *pipeline.Result, elapsed time.Duration) {
	m := res.Manifest
	fmt.Println()
	title := "imgdrop import complete"
	if m.DryRun {
		title = "imgdrop import (dry run)"
	}
	fmt.Println(headerStyle.Render(title))
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Images:      %d\n", s.TotalAssets)
	fmt.Printf("  Files:       %d\n", s.TotalFiles)
	fmt.Printf("  Copied:      %s\n", formatBytes(s.TotalBytes))
	fmt.Printf("  Placed:      %d\n", s.Placed)
	fmt.Printf("  Unplaced:    %d (%d block(s) printed)\n", s.Unplaced, len(res.Blocks))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()

	if len(m.Assets) == 0 {
		return
	}
	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a := m.Assets[k]
		fmt.Printf("    %-9s %-40s %s\n", a.Placement, truncKey(k, 40), a.Variable)
	}
	fmt.Println()
}
