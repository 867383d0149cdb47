// Package predict lists purchases expected around today
package predict

import (
	"fjacquet/butterfly-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the predict command
var Cmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict which groceries and shopping items are due again",
	Long: `Look at how often each food and shopping item was bought in the last
year and list the ones whose next purchase falls within a week of today.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		today, err := root.Today()
		if err != nil {
			return err
		}
		items, err := root.Service().Predictions(cmd.Context(), today)
		if err != nil {
			return err
		}
		return root.Renderer().Predictions(items)
	},
}
