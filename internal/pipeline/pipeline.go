package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/AnyUserName/imgdrop-cli/internal/anchor"
	"github.com/AnyUserName/imgdrop-cli/internal/fallback"
	"github.com/AnyUserName/imgdrop-cli/internal/manifest"
	"github.com/AnyUserName/imgdrop-cli/internal/rule"
	"github.com/AnyUserName/imgdrop-cli/internal/scale"
)

// Editor places a declaration into a paste target.
type Editor interface {
	Upsert(pasteTarget, variableName, codeLine string) (anchor.Outcome, error)
}

// Config holds all parameters for an import run.
type Config struct {
	ProjectRoot string
	Scales      scale.Map
	Rules       []rule.Rule
	Copier      Copier             // defaults to FileCopier
	Editor      Editor             // defaults to anchor.New(ProjectRoot)
	Presenter   fallback.Presenter // defaults to a fallback.Collector
	DryRun      bool               // plan and render only
	Verbose     bool
}

// Importer routes groups to rules, copies them and places declarations.
type Importer struct {
	cfg Config
}

// New creates a configured importer.
func New(cfg Config) *Importer {
	if cfg.Copier == nil {
		cfg.Copier = FileCopier{}
	}
	if cfg.Editor == nil {
		cfg.Editor = anchor.New(cfg.ProjectRoot)
	}
	if cfg.Presenter == nil {
		cfg.Presenter = &fallback.Collector{}
	}
	return &Importer{cfg: cfg}
}

// Block is the unplaced output of one rule.
type Block struct {
	Rule  string
	Lines []string
}

// Text is the block as shown for manual copy.
func (b Block) Text() string { return fallback.Join(b.Lines) }

// Result is the outcome of Run.
type Result struct {
	Placements []Placement
	Unplaced   []string
	Blocks     []Block
	Manifest   *manifest.Manifest
}

type batch struct {
	rule   *rule.Rule
	groups []*ImageGroup
}

// batches buckets groups by the rule matching their extension, in order of
// first appearance. Groups no rule accepts are dropped.
func (imp *Importer) batches(groups []*ImageGroup) []batch {
	var out []batch
	index := map[*rule.Rule]int{}
	for _, g := range groups {
		r := rule.Match(g.Extension, imp.cfg.Rules)
		if r == nil {
			imp.logf("skip %s: no rule accepts %q", g.Key(), g.Extension)
			continue
		}
		i, ok := index[r]
		if !ok {
			i = len(out)
			index[r] = i
			out = append(out, batch{rule: r})
		}
		out[i].groups = append(out[i].groups, g)
	}
	return out
}

// Plan computes destinations, declarations and conflicts without touching
// the filesystem.
func (imp *Importer) Plan(groups []*ImageGroup) []Placement {
	var out []Placement
	for _, b := range imp.batches(groups) {
		for _, g := range b.groups {
			out = append(out, planGroup(imp.cfg.ProjectRoot, imp.cfg.Scales, g, b.rule))
		}
	}
	return out
}

// Run imports every group. A copy failure aborts the rest of that rule's
// batch; other rules still run and all failures are returned joined.
// Unplaced declarations are presented once per rule.
func (imp *Importer) Run(groups []*ImageGroup) (*Result, error) {
	res := &Result{Manifest: manifest.New(imp.cfg.ProjectRoot)}
	res.Manifest.DryRun = imp.cfg.DryRun

	var errs []error
	for _, b := range imp.batches(groups) {
		unplaced, err := imp.runBatch(b, res)
		if len(unplaced) > 0 {
			imp.cfg.Presenter.Present(unplaced)
			res.Blocks = append(res.Blocks, Block{Rule: b.rule.Label(), Lines: unplaced})
			res.Unplaced = append(res.Unplaced, unplaced...)
		}
		if err != nil {
			imp.logf("rule %s aborted: %v", b.rule.Label(), err)
			errs = append(errs, fmt.Errorf("rule %s: %w", b.rule.Label(), err))
		}
	}

	res.Manifest.ComputeStats()
	return res, errors.Join(errs...)
}

func (imp *Importer) runBatch(b batch, res *Result) ([]string, error) {
	var unplaced []string
	for _, g := range b.groups {
		p := planGroup(imp.cfg.ProjectRoot, imp.cfg.Scales, g, b.rule)
		res.Placements = append(res.Placements, p)

		var files []manifest.File
		if !imp.cfg.DryRun {
			if p.Conflict != nil && !p.Conflict.Identical {
				imp.logf("overwrite %s", p.Vars.RelativePath)
			}
			copied, err := copyGroup(imp.cfg.Copier, p)
			if err != nil {
				imp.record(res, p, copied, manifest.PlacementUnplaced)
				return unplaced, err
			}
			files = copied
			imp.logf("copied %s (%d files)", g.Key(), len(files))
		}

		placement := manifest.PlacementUnplaced
		switch {
		case imp.cfg.DryRun:
			unplaced = append(unplaced, p.Declaration)
		case b.rule.HasPasteTarget():
			outcome, err := imp.cfg.Editor.Upsert(b.rule.PasteTarget, p.Vars.VariableName, p.Declaration)
			if outcome.Placed() {
				placement = outcome.String()
				imp.logf("%s %s in %s", outcome, p.Vars.VariableName, b.rule.PasteTarget)
			} else {
				imp.logf("fallback for %s: %v", p.Vars.VariableName, err)
				unplaced = append(unplaced, p.Declaration)
			}
		default:
			unplaced = append(unplaced, p.Declaration)
		}
		imp.record(res, p, files, placement)
	}
	return unplaced, nil
}

func (imp *Importer) record(res *Result, p Placement, files []manifest.File, placement string) {
	if len(files) == 0 && !imp.cfg.DryRun {
		return
	}
	res.Manifest.Assets[p.Vars.RelativePath] = manifest.Asset{
		Rule:        p.Rule.Label(),
		Variable:    p.Vars.VariableName,
		Declaration: p.Declaration,
		Placement:   placement,
		PasteTarget: p.Rule.PasteTarget,
		Files:       files,
	}
}

func (imp *Importer) logf(format string, args ...any) {
	if imp.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[imgdrop] "+format+"\n", args...)
	}
}
