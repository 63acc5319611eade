//go:build ignore

// gen_fixtures creates a drop folder and a small project for the E2E smoke
// test.
// Usage: go run gen_fixtures.go <output_dir>
//
// Then: imgdrop --root <output_dir>/project import <output_dir>/drop
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

const settings = `scale_mappings: |-
  @3x=3.0x
  @2x=2.0x
show_rename_dialog: true
import_rules:
  - name: Raster Images
    extensions: png, jpg, jpeg
    target_directory: lib/resources/images
    code_template: val ${VARIABLE_NAME} = "${RELATIVE_PATH}"
    apply_scaling: true
    paste_target: lib/R.kt::// END::before
  - name: Vector Images
    extensions: svg
    target_directory: lib/resources/svgs
    code_template: val ${VARIABLE_NAME} = "${RELATIVE_PATH}"
    apply_scaling: false
`

const resources = `object R {
    // START
    // END
}
`

const logo = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24"><circle cx="12" cy="12" r="10" fill="#dc3c1e"/></svg>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	drop := filepath.Join(dir, "drop")
	project := filepath.Join(dir, "project")
	for _, d := range []string{drop, filepath.Join(project, "lib")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			panic(err)
		}
	}

	// Density variants of one icon.
	for scale, size := range map[string]int{"": 32, "@2x": 64, "@3x": 96} {
		writeImage(filepath.Join(drop, "Icon"+scale+".png"), solidWithBorder(size, size, uint8(size)))
	}

	// Single banner without variants.
	writeJPEG(filepath.Join(drop, "banner.jpg"), gradient(400, 225))

	// Vector, routed to the second rule and never scaled.
	writeFile(filepath.Join(drop, "logo.svg"), logo)

	// Not accepted by any rule.
	writeFile(filepath.Join(drop, "notes.txt"), "ignored\n")

	writeFile(filepath.Join(project, "imgdrop.yaml"), settings)
	writeFile(filepath.Join(project, "lib", "R.kt"), resources)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 drop files and a project in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func solidWithBorder(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if x < 2 || x >= w-2 || y < 2 || y >= h-2 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		panic(err)
	}
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
