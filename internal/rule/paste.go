package rule

import "strings"

// Position says where a declaration goes relative to its anchor line.
type Position string

const (
	Before Position = "before"
	After  Position = "after"
)

// FieldSeparator splits the fields of a paste target.
const FieldSeparator = "::"

// PasteTarget is the parsed form of "<file>::<anchor>[::before|after]".
type PasteTarget struct {
	FilePath string
	Anchor   string
	Position Position
}

// ParsePasteTarget parses s. Fewer than two fields means no paste target is
// configured. Any position other than "before" is treated as After.
func ParsePasteTarget(s string) (PasteTarget, bool) {
	if strings.TrimSpace(s) == "" {
		return PasteTarget{}, false
	}
	parts := strings.Split(s, FieldSeparator)
	if len(parts) < 2 {
		return PasteTarget{}, false
	}

	pt := PasteTarget{
		FilePath: strings.TrimSpace(parts[0]),
		Anchor:   strings.TrimSpace(parts[1]),
		Position: After,
	}
	if len(parts) > 2 && strings.ToLower(strings.TrimSpace(parts[2])) == string(Before) {
		pt.Position = Before
	}
	return pt, true
}

// String renders the target in its source form.
func (p PasteTarget) String() string {
	return p.FilePath + FieldSeparator + p.Anchor + FieldSeparator + string(p.Position)
}
