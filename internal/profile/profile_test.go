package profile

import (
	"testing"

	"github.com/AnyUserName/imgdrop-cli/internal/rule"
	"github.com/AnyUserName/imgdrop-cli/internal/scale"
)

func TestGet_Known(t *testing.T) {
	p := Get("flutter")
	if p.Name != "flutter" {
		t.Fatalf("name = %q", p.Name)
	}
	if len(p.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(p.Rules))
	}
}

func TestGet_UnknownFallsBackToDefault(t *testing.T) {
	p := Get("ios")
	if p.Name != "ios" {
		t.Errorf("requested name not preserved: %q", p.Name)
	}
	if p.ScaleMappings != DefaultScaleMappings {
		t.Errorf("scale mappings = %q", p.ScaleMappings)
	}
	if Known("ios") {
		t.Error("ios should not be a built-in profile")
	}
}

func TestDefault_RoutesRasterAndVector(t *testing.T) {
	rules := Get("default").NewRules()

	if r := rule.Match("JPEG", rules); r == nil || r.TargetDirectory != "lib/resources/images" {
		t.Errorf("jpeg routed to %+v", r)
	}
	if r := rule.Match("svg", rules); r == nil || r.ApplyScaling {
		t.Errorf("svg routed to %+v", r)
	}
	if r := rule.Match("gif", rules); r != nil {
		t.Errorf("gif should not match, got %q", r.Name)
	}
}

func TestNewRules_FreshIDs(t *testing.T) {
	p := Get("default")
	a := p.NewRules()
	b := p.NewRules()

	seen := map[string]bool{}
	for _, r := range append(a, b...) {
		if r.ID == "" {
			t.Fatal("empty id")
		}
		if seen[r.ID] {
			t.Fatalf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
	}
	for _, r := range profiles["default"].Rules {
		if r.ID != "" {
			t.Error("built-in rules must stay without ids")
		}
	}
}

func TestBuiltins_Lint(t *testing.T) {
	for _, name := range Names() {
		p := Get(name)
		if w := scale.Lint(p.ScaleMappings); len(w) > 0 {
			t.Errorf("%s: scale warnings %v", name, w)
		}
		if o := rule.Overlaps(p.Rules); len(o) > 0 {
			t.Errorf("%s: overlapping rules %v", name, o)
		}
		for _, r := range p.Rules {
			if !r.HasPasteTarget() {
				continue
			}
			if _, ok := rule.ParsePasteTarget(r.PasteTarget); !ok {
				t.Errorf("%s: malformed paste target %q", name, r.PasteTarget)
			}
		}
	}
}
