// Package yoy compares this month's spending with the same month last year
package yoy

import (
	"fjacquet/butterfly-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the yoy command
var Cmd = &cobra.Command{
	Use:   "yoy",
	Short: "Compare this month's spending with the same month last year",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		today, err := root.Today()
		if err != nil {
			return err
		}
		stats, err := root.Service().YoY(cmd.Context(), today)
		if err != nil {
			return err
		}
		return root.Renderer().YoY(stats)
	},
}
