// Package budget shows and changes the monthly allowance
package budget

import (
	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/internal/currencyutils"

	"github.com/spf13/cobra"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Show or change the monthly budget",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show base allowance, carry-over and effective limit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		today, err := root.Today()
		if err != nil {
			return err
		}
		b, err := root.Service().Budget(cmd.Context(), today)
		if err != nil {
			return err
		}
		return root.Renderer().Budget(b)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the base allowance; the carry-over is kept",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := root.Today()
		if err != nil {
			return err
		}
		amount, err := currencyutils.ParseAmount(args[0])
		if err != nil {
			return err
		}
		b, err := root.Service().UpdateBudget(cmd.Context(), today, amount)
		if err != nil {
			return err
		}
		return root.Renderer().Budget(b)
	},
}

func init() {
	Cmd.AddCommand(showCmd, setCmd)
}
