// Package dashboard shows the session overview
package dashboard

import (
	"fjacquet/butterfly-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the rollover and show budget, summary, predictions and savings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		today, err := root.Today()
		if err != nil {
			return err
		}
		d, err := root.Service().Dashboard(cmd.Context(), today)
		if err != nil {
			return err
		}
		return root.Renderer().Dashboard(d)
	},
}
