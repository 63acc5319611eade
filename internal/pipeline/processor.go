package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/imgdrop-cli/internal/codegen"
	"github.com/AnyUserName/imgdrop-cli/internal/hasher"
	"github.com/AnyUserName/imgdrop-cli/internal/manifest"
	"github.com/AnyUserName/imgdrop-cli/internal/rule"
	"github.com/AnyUserName/imgdrop-cli/internal/scale"
)

// FileMove is the planned copy of one density variant.
type FileMove struct {
	Source RawFile
	Dest   string // absolute destination path
	Rel    string // Dest relative to the project root, forward slashes
	Scale  string // matched suffix, "" when copied into the base directory
}

// Conflict marks a base destination that already exists and is not one of
// the group's own source files.
type Conflict struct {
	Path      string
	Identical bool // existing content hashes the same as the incoming file
}

// Placement is everything planned for one group.
type Placement struct {
	Group       *ImageGroup
	Rule        *rule.Rule
	TargetDir   string // absolute target base directory
	Moves       []FileMove
	BaseDest    string // absolute path of the group's base file
	Vars        codegen.Vars
	Declaration string
	Conflict    *Conflict
}

// Copier writes one source file to dst.
type Copier interface {
	Copy(src RawFile, dst string) (size int64, hash string, err error)
}

// FileCopier streams bytes to the local filesystem. Source and destination
// are closed before Copy returns, on every path.
type FileCopier struct{}

func (FileCopier) Copy(src RawFile, dst string) (size int64, hash string, err error) {
	in, err := src.Open()
	if err != nil {
		return 0, "", fmt.Errorf("open %s: %w", src.Path(), err)
	}
	defer in.Close()

	// Copying a file onto itself would truncate it first.
	if samePath(src.Path(), dst) {
		return hashOnly(in)
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, "", fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
	}()

	size, hash, err = hasher.CopyHash(out, in, hasher.HexLen)
	if err != nil {
		return size, "", fmt.Errorf("copy %s: %w", src.Path(), err)
	}
	return size, hash, nil
}

func hashOnly(r io.Reader) (int64, string, error) {
	n, hash, err := hasher.CopyHash(io.Discard, r, hasher.HexLen)
	return n, hash, err
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// planGroup computes destinations and the declaration for g under r.
func planGroup(root string, scales scale.Map, g *ImageGroup, r *rule.Rule) Placement {
	targetDir := filepath.Join(root, filepath.FromSlash(r.TargetDirectory))
	newBase := g.NewBaseName()
	newExt := g.NewExtension()
	fileName := newBase + "." + newExt

	p := Placement{
		Group:     g,
		Rule:      r,
		TargetDir: targetDir,
		BaseDest:  filepath.Join(targetDir, fileName),
	}

	for _, f := range g.Files {
		dir := targetDir
		var suffix string
		if r.ApplyScaling {
			if s, scaleDir, ok := scales.MatchSuffix(f.NameWithoutExtension()); ok {
				dir = filepath.Join(targetDir, scaleDir)
				suffix = s
			}
		}
		dest := filepath.Join(dir, fileName)
		p.Moves = append(p.Moves, FileMove{
			Source: f,
			Dest:   dest,
			Rel:    relPath(root, dest),
			Scale:  suffix,
		})
	}

	p.Vars = codegen.NewVars(newBase, newExt, relPath(root, p.BaseDest))
	p.Declaration = codegen.Render(r.CodeTemplate, p.Vars)
	p.Conflict = detectConflict(p)
	return p
}

// relPath returns dest relative to root with forward slashes and no
// leading slash.
func relPath(root, dest string) string {
	rel, err := filepath.Rel(root, dest)
	if err != nil {
		rel = strings.TrimPrefix(dest, root)
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "/")
}

func detectConflict(p Placement) *Conflict {
	info, err := os.Stat(p.BaseDest)
	if err != nil || info.IsDir() {
		return nil
	}

	var incoming *FileMove
	for i := range p.Moves {
		if samePath(p.Moves[i].Source.Path(), p.BaseDest) {
			return nil
		}
		if p.Moves[i].Dest == p.BaseDest && incoming == nil {
			incoming = &p.Moves[i]
		}
	}

	c := &Conflict{Path: p.BaseDest}
	if incoming == nil {
		return c
	}
	existing, err := hasher.FileHash(p.BaseDest, hasher.HexLen)
	if err != nil {
		return c
	}
	r, err := incoming.Source.Open()
	if err != nil {
		return c
	}
	defer r.Close()
	if h, err := hasher.ContentHashReader(r, hasher.HexLen); err == nil {
		c.Identical = h == existing
	}
	return c
}

// copyGroup creates the directories and copies every move. It stops at the
// first failure and returns the files copied so far.
func copyGroup(c Copier, p Placement) ([]manifest.File, error) {
	if err := os.MkdirAll(p.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", p.TargetDir, err)
	}

	var files []manifest.File
	for _, mv := range p.Moves {
		if err := os.MkdirAll(filepath.Dir(mv.Dest), 0o755); err != nil {
			return files, fmt.Errorf("create %s: %w", filepath.Dir(mv.Dest), err)
		}
		size, hash, err := c.Copy(mv.Source, mv.Dest)
		if err != nil {
			return files, err
		}
		files = append(files, manifest.File{
			Source: mv.Source.Path(),
			Path:   mv.Rel,
			Scale:  mv.Scale,
			Size:   size,
			Hash:   hash,
		})
	}
	return files, nil
}
