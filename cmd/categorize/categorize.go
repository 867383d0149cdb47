// Package categorize suggests a category for a description
package categorize

import (
	"strings"

	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize <description>",
	Short: "Categorize transactions by description",
	Long: `Categorize transactions based on their description: learned mappings
from earlier explicit choices are tried first, then keyword rules.
Descriptions nothing matches are filed as Other.`,
	Args: cobra.MinimumNArgs(1),
	RunE: categorizeFunc,
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")
	root.Log.Debug("Categorize command called")

	category, strategy, err := root.Service().Categorize(cmd.Context(), description)
	if err != nil {
		return err
	}
	return root.Renderer().Category(report.CategorySuggestion{
		Description: description,
		Category:    category,
		Strategy:    strategy,
	})
}
