package manifest

// Manifest is the record of one import run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	ProjectRoot string           `json:"project_root"`
	DryRun      bool             `json:"dry_run,omitempty"`
	Assets      map[string]Asset `json:"assets"` // keyed by the base destination, relative to project_root
	Stats       Stats            `json:"stats"`
}

// Asset is one logical image and where its declaration ended up.
type Asset struct {
	Rule        string `json:"rule"`
	Variable    string `json:"variable"`
	Declaration string `json:"declaration"`
	Placement   string `json:"placement"`              // "inserted", "replaced" or "unplaced"
	PasteTarget string `json:"paste_target,omitempty"` // as configured on the rule
	Files       []File `json:"files"`
}

// File is one copied density variant.
type File struct {
	Source string `json:"source"`          // absolute source path
	Path   string `json:"path"`            // relative to project_root, forward slashes
	Scale  string `json:"scale,omitempty"` // matched suffix, e.g. "@2x"
	Size   int64  `json:"size"`            // bytes on disk
	Hash   string `json:"hash"`            // 16 hex chars of xxhash64
}

// Placement values.
const (
	PlacementInserted = "inserted"
	PlacementReplaced = "replaced"
	PlacementUnplaced = "unplaced"
)

// Stats aggregates run metrics.
type Stats struct {
	TotalAssets int   `json:"total_assets"`
	TotalFiles  int   `json:"total_files"`
	TotalBytes  int64 `json:"total_bytes"`
	Placed      int   `json:"placed"`
	Unplaced    int   `json:"unplaced"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// DefaultPath is where import writes the manifest, relative to the project root.
const DefaultPath = ".imgdrop/manifest.json"
