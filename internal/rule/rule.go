// Package rule holds the user-defined import rules and the first-match
// routing of file extensions to rules.
package rule

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Defaults applied by New.
const (
	DefaultName            = "New Rule"
	DefaultExtensions      = "png, jpg"
	DefaultTargetDirectory = "lib/resources/images"
	DefaultCodeTemplate    = `val ${VARIABLE_NAME} = "${RELATIVE_PATH}"`
)

// Rule maps a set of file extensions to a destination directory, a code
// template and an optional paste target.
type Rule struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	Extensions      string `yaml:"extensions" json:"extensions"` // comma-separated, case-insensitive
	TargetDirectory string `yaml:"target_directory" json:"target_directory"`
	CodeTemplate    string `yaml:"code_template" json:"code_template"`
	ApplyScaling    bool   `yaml:"apply_scaling" json:"apply_scaling"`
	PasteTarget     string `yaml:"paste_target,omitempty" json:"paste_target,omitempty"` // file::anchor[::before|after]
}

// New returns a rule with default values and a fresh id.
func New() Rule {
	return Rule{
		ID:              uuid.NewString(),
		Name:            DefaultName,
		Extensions:      DefaultExtensions,
		TargetDirectory: DefaultTargetDirectory,
		CodeTemplate:    DefaultCodeTemplate,
		ApplyScaling:    true,
	}
}

// ExtensionSet returns the split, trimmed, lowercased extensions. Empty
// entries from stray commas are dropped.
func (r *Rule) ExtensionSet() []string {
	parts := strings.Split(r.Extensions, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Accepts reports whether ext (without dot) belongs to the rule. Files
// without an extension are never accepted.
func (r *Rule) Accepts(ext string) bool {
	if ext == "" {
		return false
	}
	ext = strings.ToLower(ext)
	for _, e := range r.ExtensionSet() {
		if e == ext {
			return true
		}
	}
	return false
}

// HasPasteTarget reports whether a paste target string is configured at all.
// It may still be malformed; see ParsePasteTarget.
func (r *Rule) HasPasteTarget() bool {
	return strings.TrimSpace(r.PasteTarget) != ""
}

// Label is a short human name for logs and reports.
func (r *Rule) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Match returns the first rule in list order that accepts ext, or nil.
// The returned pointer refers into rules.
func Match(ext string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].Accepts(ext) {
			return &rules[i]
		}
	}
	return nil
}

// Accepted reports whether any rule accepts ext.
func Accepted(ext string, rules []Rule) bool {
	return Match(ext, rules) != nil
}

// Overlap is an extension claimed by more than one rule. Only the first
// rule (list order) ever receives it.
type Overlap struct {
	Extension string
	Rules     []string // labels in list order
}

func (o Overlap) String() string {
	return fmt.Sprintf("extension %q is claimed by %s; only %q receives it",
		o.Extension, strings.Join(o.Rules, ", "), o.Rules[0])
}

// Overlaps lists extensions accepted by several rules.
func Overlaps(rules []Rule) []Overlap {
	owners := map[string][]string{}
	var order []string
	for i := range rules {
		seen := map[string]bool{}
		for _, ext := range rules[i].ExtensionSet() {
			if ext == "" || seen[ext] {
				continue
			}
			seen[ext] = true
			if _, ok := owners[ext]; !ok {
				order = append(order, ext)
			}
			owners[ext] = append(owners[ext], rules[i].Label())
		}
	}

	var out []Overlap
	for _, ext := range order {
		if len(owners[ext]) > 1 {
			out = append(out, Overlap{Extension: ext, Rules: owners[ext]})
		}
	}
	return out
}
