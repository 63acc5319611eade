// Package anchor upserts a generated declaration into a text file: an
// existing line mentioning the same identifier is replaced, otherwise the
// line is inserted next to a literal anchor.
package anchor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/AnyUserName/imgdrop-cli/internal/rule"
)

// Outcome of one upsert.
type Outcome int

const (
	Failed Outcome = iota
	Replaced
	Inserted
)

func (o Outcome) String() string {
	switch o {
	case Replaced:
		return "replaced"
	case Inserted:
		return "inserted"
	default:
		return "failed"
	}
}

// Placed reports whether the declaration is now in the target file.
func (o Outcome) Placed() bool { return o != Failed }

var (
	ErrNoPasteTarget  = errors.New("paste target not configured")
	ErrAnchorNotFound = errors.New("anchor not found")
)

// Apply performs the upsert on text. The first whole-word occurrence of
// variableName has its line replaced by codeLine; failing that, codeLine
// is inserted before or after the line holding the first occurrence of the
// anchor. When neither is possible text is returned unchanged with Failed.
// Inserted lines use the line ending of the anchor line.
func Apply(text string, target rule.PasteTarget, variableName, codeLine string) (string, Outcome) {
	if variableName != "" {
		if pos := indexWord(text, variableName); pos >= 0 {
			start, end := lineBounds(text, pos)
			return text[:start] + codeLine + text[end:], Replaced
		}
	}

	idx := strings.Index(text, target.Anchor)
	if idx < 0 {
		return text, Failed
	}
	eol := lineEnding(text, idx)

	var offset int
	if target.Position == rule.Before {
		offset, _ = lineBounds(text, idx)
	} else {
		nl := strings.IndexByte(text[idx:], '\n')
		if nl < 0 {
			// Anchor sits on a last line without a newline.
			return text + eol + codeLine + eol, Inserted
		}
		offset = idx + nl + 1
	}
	return text[:offset] + codeLine + eol + text[offset:], Inserted
}

// indexWord returns the byte offset of the first occurrence of word that
// sits on word boundaries, or -1. Letters and digits of any script and '_'
// are word characters.
func indexWord(text, word string) int {
	for from := 0; from <= len(text); {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return -1
		}
		i += from
		if atBoundary(text, i) && atBoundary(text, i+len(word)) {
			return i
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		from = i + size
	}
	return -1
}

// atBoundary reports whether exactly one side of offset pos is a word
// character; text edges count as non-word.
func atBoundary(text string, pos int) bool {
	before, after := false, false
	if pos > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:pos])
		before = isWordRune(r)
	}
	if pos < len(text) {
		r, _ := utf8.DecodeRuneInString(text[pos:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lineEnding is "\r\n" when the line holding pos ends with one, or for a
// last line without a break when the text uses CRLF elsewhere.
func lineEnding(text string, pos int) string {
	nl := strings.IndexByte(text[pos:], '\n')
	if nl < 0 {
		if strings.Contains(text, "\r\n") {
			return "\r\n"
		}
		return "\n"
	}
	if nl > 0 && text[pos+nl-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// lineBounds returns the start offset and the end offset (excluding the
// line break, and a preceding '\r') of the line containing pos.
func lineBounds(text string, pos int) (int, int) {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := len(text)
	if nl := strings.IndexByte(text[pos:], '\n'); nl >= 0 {
		end = pos + nl
	}
	if end > start && text[end-1] == '\r' {
		end--
	}
	return start, end
}

// Editor applies upserts to files under a project root.
type Editor struct {
	Root string
}

// New returns an editor resolving paste target paths against root.
func New(root string) *Editor {
	return &Editor{Root: root}
}

// Upsert parses pasteTarget and applies the declaration to its file. It
// never panics on bad input: any problem yields Failed and an error
// describing why, and the caller falls back to manual placement. The file
// is rewritten in one step or not at all.
func (e *Editor) Upsert(pasteTarget, variableName, codeLine string) (Outcome, error) {
	target, ok := rule.ParsePasteTarget(pasteTarget)
	if !ok {
		return Failed, ErrNoPasteTarget
	}

	path := e.Resolve(target.FilePath)
	info, err := os.Stat(path)
	if err != nil {
		return Failed, fmt.Errorf("stat %s: %w", target.FilePath, err)
	}
	if info.IsDir() {
		return Failed, fmt.Errorf("%s is a directory", target.FilePath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Failed, fmt.Errorf("read %s: %w", target.FilePath, err)
	}

	updated, outcome := Apply(string(data), target, variableName, codeLine)
	if !outcome.Placed() {
		return Failed, fmt.Errorf("%w: %q in %s", ErrAnchorNotFound, target.Anchor, target.FilePath)
	}
	if updated == string(data) {
		return outcome, nil
	}
	if err := writeAtomic(path, []byte(updated), info.Mode().Perm()); err != nil {
		return Failed, fmt.Errorf("write %s: %w", target.FilePath, err)
	}
	return outcome, nil
}

// Resolve maps a paste target path to a filesystem path.
func (e *Editor) Resolve(p string) string {
	return filepath.Join(e.Root, filepath.FromSlash(p))
}

// writeAtomic replaces path with data via a sibling temp file and rename.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".imgdrop-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
