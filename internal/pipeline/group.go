package pipeline

import (
	"sort"
	"strings"

	"github.com/AnyUserName/imgdrop-cli/internal/rule"
	"github.com/AnyUserName/imgdrop-cli/internal/scale"
)

// ImageGroup is one logical image: every density variant sharing a
// stripped base name and extension.
type ImageGroup struct {
	Files     []RawFile
	BaseName  string
	Extension string
	// NewName is the file name every variant is copied under. Only the
	// rename step changes it.
	NewName string
	// Rule is the first rule accepting Extension, nil when none does.
	Rule *rule.Rule
}

// Key is the grouping key, BaseName.Extension.
func (g *ImageGroup) Key() string {
	return g.BaseName + "." + g.Extension
}

// Rename sets the name used for every copied variant.
func (g *ImageGroup) Rename(newName string) {
	g.NewName = newName
}

// NewBaseName is NewName up to its last '.'.
func (g *ImageGroup) NewBaseName() string {
	base, _ := SplitName(g.NewName)
	return base
}

// NewExtension is the extension of NewName, falling back to the group's
// own extension when NewName has none.
func (g *ImageGroup) NewExtension() string {
	if i := strings.LastIndexByte(g.NewName, '.'); i >= 0 {
		return g.NewName[i+1:]
	}
	return g.Extension
}

// Group expands directories one level, drops nested directories and files
// no rule accepts, strips the longest scale suffix from each name and merges
// files sharing the stripped name and extension. Groups keep
// first-appearance order.
func Group(files []RawFile, scales scale.Map, rules []rule.Rule) ([]*ImageGroup, error) {
	all, err := Expand(files)
	if err != nil {
		return nil, err
	}

	var groups []*ImageGroup
	index := map[string]*ImageGroup{}
	for _, f := range all {
		if f.IsDir() {
			continue
		}
		ext := f.Extension()
		if !rule.Accepted(ext, rules) {
			continue
		}

		base := scales.Strip(f.NameWithoutExtension())
		key := base + "." + ext
		g, ok := index[key]
		if !ok {
			g = &ImageGroup{
				BaseName:  base,
				Extension: ext,
				NewName:   key,
				Rule:      rule.Match(ext, rules),
			}
			index[key] = g
			groups = append(groups, g)
		}
		g.Files = append(g.Files, f)
	}
	return groups, nil
}

// ApplyRenames renames groups by their current NewName. Names in renames
// that match no group are returned.
func ApplyRenames(groups []*ImageGroup, renames map[string]string) []string {
	used := map[string]bool{}
	for _, g := range groups {
		if to, ok := renames[g.NewName]; ok && to != "" {
			used[g.NewName] = true
			g.Rename(to)
		}
	}

	var unmatched []string
	for from := range renames {
		if !used[from] {
			unmatched = append(unmatched, from)
		}
	}
	sort.Strings(unmatched)
	return unmatched
}
