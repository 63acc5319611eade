package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestContentHash_Truncates(t *testing.T) {
	full := ContentHash([]byte("icon"), 0)
	if len(full) != 16 {
		t.Fatalf("full hash length: got %d, want 16", len(full))
	}
	short := ContentHash([]byte("icon"), 8)
	if short != full[:8] {
		t.Errorf("truncated hash: got %q, want %q", short, full[:8])
	}
}

func TestCopyHash_MatchesReaderHash(t *testing.T) {
	payload := strings.Repeat("png-bytes", 1000)

	var dst bytes.Buffer
	n, copied, err := CopyHash(&dst, strings.NewReader(payload), HexLen)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("copied bytes: got %d, want %d", n, len(payload))
	}
	if dst.String() != payload {
		t.Error("destination content differs from source")
	}

	streamed, err := ContentHashReader(strings.NewReader(payload), HexLen)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if copied != streamed || copied != ContentHash([]byte(payload), HexLen) {
		t.Errorf("hash mismatch: copy=%s stream=%s", copied, streamed)
	}
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FileHash(path, HexLen)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if got != ContentHash([]byte("abc"), HexLen) {
		t.Errorf("file hash: got %s", got)
	}

	if _, err := FileHash(filepath.Join(t.TempDir(), "missing"), HexLen); err == nil {
		t.Error("expected error for missing file")
	}
}
