package profile

import (
	"sort"

	"github.com/google/uuid"

	"github.com/AnyUserName/imgdrop-cli/internal/rule"
)

// DefaultScaleMappings maps @3x and @2x files into density directories.
const DefaultScaleMappings = "@3x=3.0x\n@2x=2.0x"

// Profile is a named starting configuration for a project type.
type Profile struct {
	Name             string
	Description      string
	ScaleMappings    string
	ShowRenameDialog bool
	Rules            []rule.Rule // ids are assigned by NewRules
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:             "default",
		Description:      "raster images and svgs under lib/resources",
		ScaleMappings:    DefaultScaleMappings,
		ShowRenameDialog: true,
		Rules: []rule.Rule{
			{
				Name:            "Raster Images",
				Extensions:      "png, jpg, jpeg",
				TargetDirectory: "lib/resources/images",
				CodeTemplate:    rule.DefaultCodeTemplate,
				ApplyScaling:    true,
			},
			{
				Name:            "Vector Images",
				Extensions:      "svg",
				TargetDirectory: "lib/resources/svgs",
				CodeTemplate:    rule.DefaultCodeTemplate,
				ApplyScaling:    false,
			},
		},
	},
	"flutter": {
		Name:             "flutter",
		Description:      "Flutter assets with density folders and a Dart constants class",
		ScaleMappings:    DefaultScaleMappings,
		ShowRenameDialog: true,
		Rules: []rule.Rule{
			{
				Name:            "Images",
				Extensions:      "png, jpg, jpeg, webp, gif",
				TargetDirectory: "assets/images",
				CodeTemplate:    `static const ${VARIABLE_NAME} = '${RELATIVE_PATH}';`,
				ApplyScaling:    true,
				PasteTarget:     "lib/resources/images.dart::// END",
			},
			{
				Name:            "Icons",
				Extensions:      "svg",
				TargetDirectory: "assets/icons",
				CodeTemplate:    `static const ${VARIABLE_NAME} = '${RELATIVE_PATH}';`,
				ApplyScaling:    false,
				PasteTarget:     "lib/resources/icons.dart::// END",
			},
		},
	},
	"android": {
		Name:             "android",
		Description:      "Android drawables split by density qualifier",
		ScaleMappings:    "@4x=drawable-xxxhdpi\n@3x=drawable-xxhdpi\n@2x=drawable-xhdpi\n@1.5x=drawable-hdpi",
		ShowRenameDialog: false,
		Rules: []rule.Rule{
			{
				Name:            "Drawables",
				Extensions:      "png, webp",
				TargetDirectory: "app/src/main/res/drawable",
				CodeTemplate:    `val ${VARIABLE_NAME} = R.drawable.${FILE_NAME}`,
				ApplyScaling:    true,
			},
		},
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewRules returns a copy of the profile's rules, each with a fresh id.
func (p Profile) NewRules() []rule.Rule {
	out := make([]rule.Rule, len(p.Rules))
	for i, r := range p.Rules {
		r.ID = uuid.NewString()
		out[i] = r
	}
	return out
}
