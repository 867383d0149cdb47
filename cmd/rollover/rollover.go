// Package rollover settles last month into the budget
package rollover

import (
	"fjacquet/butterfly-ledger/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the rollover command
var Cmd = &cobra.Command{
	Use:   "rollover",
	Short: "Carry last month's surplus or overspending into the budget",
	Long: `Settle the month before today: what was left of last month's limit
(or what was overspent) becomes the carry-over of the current month.
Running it again in the same month changes nothing.`,
	Args: cobra.NoArgs,
	RunE: rolloverFunc,
}

func rolloverFunc(cmd *cobra.Command, _ []string) error {
	today, err := root.Today()
	if err != nil {
		return err
	}

	svc := root.Service()
	res, applied, err := svc.StartSession(cmd.Context(), today)
	if err != nil {
		return err
	}

	budget := res.Budget
	if !applied {
		if budget, err = svc.Budget(cmd.Context(), today); err != nil {
			return err
		}
	}
	return root.Renderer().Rollover(res, applied, budget)
}
