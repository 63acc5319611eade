package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgdrop-cli/internal/fallback"
)

var planRenames []string

var planCmd = &cobra.Command{
	Use:   "plan <path>...",
	Short: "Show how dropped images would be grouped, named and placed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

func init() {
	addRenameFlag(planCmd, &planRenames)
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, args []string) error {
	root, settings, err := loadProject()
	if err != nil {
		return err
	}
	groups, err := collectGroups(args, settings, planRenames)
	if err != nil {
		return err
	}

	imp := newImporter(root, settings, &fallback.Collector{}, true)
	fmt.Println()
	printPlan(root, imp.Plan(groups))
	fmt.Println()
	return nil
}
