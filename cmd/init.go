package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgdrop-cli/internal/config"
	"github.com/AnyUserName/imgdrop-cli/internal/profile"
)

var (
	initProfile string
	initForce   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file seeded from a built-in profile",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initProfile, "profile", "p", "", "profile to seed from ("+strings.Join(profile.Names(), ", ")+"; default $IMGDROP_PROFILE or default)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing settings file")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}
	config.LoadEnv(root)

	name := initProfile
	if name == "" {
		name = config.ProfileName()
	}
	if !profile.Known(name) {
		return fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(profile.Names(), ", "))
	}

	path, _ := config.ResolvePath(root, configPath)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	s := config.Default(name)
	s.Path = path
	if err := s.Save(); err != nil {
		return err
	}

	fmt.Printf("  ✓ Wrote %s (profile %s, %d rules)\n", path, name, len(s.ImportRules))
	for _, r := range s.ImportRules {
		fmt.Printf("    %-16s %-24s → %s\n", r.Name, r.Extensions, r.TargetDirectory)
	}
	return nil
}
