package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/imgdrop-cli/internal/hasher"
	"github.com/AnyUserName/imgdrop-cli/internal/manifest"
)

func testManifest(t *testing.T, root string) *manifest.Manifest {
	t.Helper()
	data := []byte("png bytes")
	path := filepath.Join(root, "img", "icon.png")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	m := manifest.New(root)
	m.Assets["img/icon.png"] = manifest.Asset{
		Rule:        "Images",
		Variable:    "icon",
		Declaration: `val icon = "img/icon.png"`,
		Placement:   manifest.PlacementInserted,
		Files: []manifest.File{{
			Source: "/drop/icon.png",
			Path:   "img/icon.png",
			Size:   int64(len(data)),
			Hash:   hasher.ContentHash(data, hasher.HexLen),
		}},
	}
	m.ComputeStats()
	return m
}

func TestValidateManifest_Valid(t *testing.T) {
	root := t.TempDir()
	m := testManifest(t, root)

	if errs := validateManifest(m, root); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateManifest_DetectsChangedContent(t *testing.T) {
	root := t.TempDir()
	m := testManifest(t, root)
	// Same size, different bytes.
	if err := os.WriteFile(filepath.Join(root, "img", "icon.png"), []byte("PNG BYTES"), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := validateManifest(m, root)
	if len(errs) != 1 || !strings.Contains(errs[0], "content changed") {
		t.Fatalf("errs = %v", errs)
	}
}

func TestValidateManifest_MissingFileAndBadStats(t *testing.T) {
	root := t.TempDir()
	m := testManifest(t, root)
	if err := os.Remove(filepath.Join(root, "img", "icon.png")); err != nil {
		t.Fatal(err)
	}
	m.Stats.TotalFiles = 7
	a := m.Assets["img/icon.png"]
	a.Placement = "pasted"
	m.Assets["img/icon.png"] = a

	joined := strings.Join(validateManifest(m, root), "\n")
	for _, want := range []string{"file not found", "stats mismatch", `unknown placement "pasted"`} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in:\n%s", want, joined)
		}
	}
}

func TestParseRenames(t *testing.T) {
	got, err := parseRenames([]string{"icon.png=logo.png", " a.jpg = b "})
	if err != nil {
		t.Fatal(err)
	}
	if got["icon.png"] != "logo.png" || got["a.jpg"] != "b" {
		t.Errorf("got %v", got)
	}

	for _, bad := range []string{"icon.png", "=x.png", "x.png=", "a.png=sub/b.png"} {
		if _, err := parseRenames([]string{bad}); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		512:     "512 B",
		2048:    "2.0 KB",
		3 << 20: "3.0 MB",
	}
	for in, want := range cases {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
