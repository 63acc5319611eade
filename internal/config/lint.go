package config

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/imgdrop-cli/internal/codegen"
	"github.com/AnyUserName/imgdrop-cli/internal/rule"
	"github.com/AnyUserName/imgdrop-cli/internal/scale"
)

// Lint reports settings the importer accepts but silently ignores or
// resolves in a way the user may not expect.
func Lint(s *Settings) []string {
	warnings := scale.Lint(s.ScaleMappings)

	ids := map[string]bool{}
	for i := range s.ImportRules {
		r := &s.ImportRules[i]
		label := fmt.Sprintf("rule %d (%s)", i+1, r.Label())

		if ids[r.ID] {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate id %s", label, r.ID))
		}
		ids[r.ID] = true

		if len(r.ExtensionSet()) == 0 {
			warnings = append(warnings, label+": no extensions, it never matches")
		}
		if strings.TrimSpace(r.TargetDirectory) == "" {
			warnings = append(warnings, label+": empty target directory, files go to the project root")
		}
		if !r.HasPasteTarget() {
			continue
		}
		pt, ok := rule.ParsePasteTarget(r.PasteTarget)
		switch {
		case !ok:
			warnings = append(warnings, fmt.Sprintf("%s: paste target %q needs <file>%s<anchor>, declarations fall back to manual copy",
				label, r.PasteTarget, rule.FieldSeparator))
		case pt.Anchor == "":
			warnings = append(warnings, fmt.Sprintf("%s: paste target %q has an empty anchor", label, r.PasteTarget))
		}
		if ok && !strings.Contains(r.CodeTemplate, codegen.PlaceholderVariableName) {
			warnings = append(warnings, fmt.Sprintf("%s: code template lacks %s, re-imports insert instead of replace",
				label, codegen.PlaceholderVariableName))
		}
	}

	for _, o := range rule.Overlaps(s.ImportRules) {
		warnings = append(warnings, o.String())
	}
	return warnings
}
