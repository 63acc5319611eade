package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgdrop-cli/internal/config"
)

var (
	version    = "0.1.0"
	verbose    bool
	rootDir    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "imgdrop",
	Short: "Import image assets into a project and declare them in code",
	Long: `imgdrop copies dropped image files into a project according to
user-defined import rules.

Density variants (icon@2x.png, icon@3x.png) are grouped into one logical
image, routed to scale directories, and declared once with a code template.
Declarations are pasted at an anchor line in a source file, or printed for
manual copy when no anchor is configured.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "project root")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (default <root>/imgdrop.yaml or $IMGDROP_CONFIG)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgdrop %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgdrop] "+format+"\n", args...)
	}
}

// loadProject resolves the project root and loads its settings.
func loadProject() (string, *config.Settings, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", nil, fmt.Errorf("resolve project root: %w", err)
	}
	config.LoadEnv(root)

	settings, err := config.Load(root, configPath)
	if err != nil {
		return "", nil, err
	}
	if settings.Seeded {
		logVerbose("no settings at %s, using profile %q", settings.Path, config.ProfileName())
	} else {
		logVerbose("settings: %s", settings.Path)
	}
	logVerbose("root:     %s", root)
	logVerbose("rules:    %d, scale mappings: %d", len(settings.ImportRules), settings.Scales().Len())
	return root, settings, nil
}
