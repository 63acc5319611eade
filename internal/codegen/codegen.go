// Package codegen renders a declaration line from a rule's code template.
// Substitution is a fixed-key string replace; unknown placeholders are left
// in place.
package codegen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Recognized placeholders.
const (
	PlaceholderVariableName = "${VARIABLE_NAME}"
	PlaceholderFileName     = "${FILE_NAME}"
	PlaceholderRelativePath = "${RELATIVE_PATH}"
)

// Vars are the values substituted into a template.
type Vars struct {
	VariableName string
	FileName     string
	RelativePath string
}

// Render substitutes vars into template.
func Render(template string, vars Vars) string {
	return strings.NewReplacer(
		PlaceholderVariableName, vars.VariableName,
		PlaceholderFileName, vars.FileName,
		PlaceholderRelativePath, vars.RelativePath,
	).Replace(template)
}

// VariableName lower-cases the first character of base.
func VariableName(base string) string {
	r, size := utf8.DecodeRuneInString(base)
	if r == utf8.RuneError {
		return base
	}
	return string(unicode.ToLower(r)) + base[size:]
}

// NewVars builds the template values for a file named newBase.ext whose
// project-relative destination is relPath.
func NewVars(newBase, ext, relPath string) Vars {
	return Vars{
		VariableName: VariableName(newBase),
		FileName:     newBase + "." + ext,
		RelativePath: strings.TrimPrefix(relPath, "/"),
	}
}
