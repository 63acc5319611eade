package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgdrop-cli/internal/config"
	"github.com/AnyUserName/imgdrop-cli/internal/fallback"
	"github.com/AnyUserName/imgdrop-cli/internal/pipeline"
)

// addRenameFlag registers the repeatable --rename old=new flag.
func addRenameFlag(cmd *cobra.Command, target *[]string) {
	cmd.Flags().StringArrayVar(target, "rename", nil, "rename a group, old=new (old is the grouped name, e.g. icon.png)")
}

// parseRenames turns old=new pairs into a map.
func parseRenames(pairs []string) (map[string]string, error) {
	renames := make(map[string]string, len(pairs))
	for _, p := range pairs {
		from, to, ok := strings.Cut(p, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid --rename %q, want old=new", p)
		}
		if strings.ContainsAny(to, `/\`) {
			return nil, fmt.Errorf("invalid --rename %q: new name must not contain a path separator", p)
		}
		renames[from] = to
	}
	return renames, nil
}

// collectGroups stats the dropped paths, groups them and applies renames.
func collectGroups(paths []string, settings *config.Settings, renamePairs []string) ([]*pipeline.ImageGroup, error) {
	renames, err := parseRenames(renamePairs)
	if err != nil {
		return nil, err
	}
	files, err := pipeline.StatAll(paths)
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	groups, err := pipeline.Group(files, settings.Scales(), settings.ImportRules)
	if err != nil {
		return nil, fmt.Errorf("group: %w", err)
	}
	logVerbose("%d paths → %d groups", len(paths), len(groups))

	for _, name := range pipeline.ApplyRenames(groups, renames) {
		fmt.Fprintf(os.Stderr, "warning: --rename %s matches no group\n", name)
	}
	return groups, nil
}

func newImporter(root string, settings *config.Settings, presenter fallback.Presenter, dryRun bool) *pipeline.Importer {
	return pipeline.New(pipeline.Config{
		ProjectRoot: root,
		Scales:      settings.Scales(),
		Rules:       settings.ImportRules,
		Presenter:   presenter,
		DryRun:      dryRun,
		Verbose:     verbose,
	})
}

// printPlan lists every group with its destinations and conflicts.
func printPlan(root string, placements []pipeline.Placement) {
	if len(placements) == 0 {
		fmt.Println("  Nothing to import: no file matches an import rule.")
		return
	}
	for _, p := range placements {
		g := p.Group
		name := g.NewName
		if name != g.Key() {
			name = g.Key() + " → " + g.NewName
		}
		fmt.Printf("  %s  [%s]\n", name, p.Rule.Label())
		for _, mv := range p.Moves {
			scale := mv.Scale
			if scale == "" {
				scale = "base"
			}
			fmt.Printf("    %-6s %s → %s\n", scale, mv.Source.Name(), mv.Rel)
		}
		if c := p.Conflict; c != nil {
			rel, _ := filepath.Rel(root, c.Path)
			if c.Identical {
				fmt.Printf("    ! %s exists with identical content\n", filepath.ToSlash(rel))
			} else {
				fmt.Printf("    ! %s exists and will be overwritten\n", filepath.ToSlash(rel))
			}
		}
		fmt.Printf("    %s\n", p.Declaration)
	}
}
