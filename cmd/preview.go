package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgdrop-cli/internal/encoder"
	"github.com/AnyUserName/imgdrop-cli/internal/pipeline"
	"github.com/AnyUserName/imgdrop-cli/internal/preview"
)

var (
	previewOut     string
	previewSize    int
	previewFormat  string
	previewQuality int
)

var previewCmd = &cobra.Command{
	Use:   "preview <path>...",
	Short: "Write a thumbnail of each grouped image",
	Long: `Groups the given files like import does and writes a thumbnail of each
group's first file, named after the group's target name. Vector files (svg)
cannot be previewed and are reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "./imgdrop_preview", "output directory")
	previewCmd.Flags().IntVarP(&previewSize, "size", "s", preview.DefaultSize, "thumbnail bounding box in pixels")
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "png", "thumbnail format (png, jpeg)")
	previewCmd.Flags().IntVarP(&previewQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = default)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	enc, err := encoder.NewRegistry().Resolve(previewFormat)
	if err != nil {
		return err
	}
	_, settings, err := loadProject()
	if err != nil {
		return err
	}
	groups, err := collectGroups(args, settings, nil)
	if err != nil {
		return err
	}
	outDir, err := filepath.Abs(previewOut)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	fmt.Println()
	var failed int
	for _, g := range groups {
		path, info, err := writePreview(g, outDir, enc)
		switch {
		case errors.Is(err, preview.ErrUnsupported):
			fmt.Printf("  -  %-32s not previewable (%s)\n", g.Key(), g.Extension)
		case err != nil:
			failed++
			fmt.Printf("  ✗  %-32s %v\n", g.Key(), err)
		default:
			fmt.Printf("  ✓  %-32s %dx%d → %s\n", g.Key(), info.Width, info.Height, path)
		}
	}
	fmt.Println()

	if failed > 0 {
		return fmt.Errorf("%d preview(s) failed", failed)
	}
	return nil
}

func writePreview(g *pipeline.ImageGroup, outDir string, enc encoder.Encoder) (string, preview.Info, error) {
	src := g.Files[0]
	if !preview.Supported(g.Extension) {
		return "", preview.Info{}, preview.ErrUnsupported
	}

	r, err := src.Open()
	if err != nil {
		return "", preview.Info{}, err
	}
	info, err := preview.Probe(r, g.Extension)
	r.Close()
	if err != nil {
		return "", info, err
	}

	r, err = src.Open()
	if err != nil {
		return "", info, err
	}
	defer r.Close()
	img, err := preview.Thumbnail(r, g.Extension, previewSize, previewSize)
	if err != nil {
		return "", info, err
	}
	logVerbose("thumbnail %s: %dx%d", g.Key(), img.Bounds().Dx(), img.Bounds().Dy())

	path, err := preview.Save(img, outDir, g.NewBaseName(), enc, previewQuality)
	return path, info, err
}
