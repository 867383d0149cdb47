// Package savings tracks the savings goal
package savings

import (
	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/internal/currencyutils"

	"github.com/spf13/cobra"
)

var (
	name    string
	target  string
	current string
)

// Cmd represents the savings command
var Cmd = &cobra.Command{
	Use:   "savings",
	Short: "Show or update the savings goal",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show progress towards the savings goal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		goal, err := root.Service().SavingsGoal(cmd.Context())
		if err != nil {
			return err
		}
		return root.Renderer().Savings(goal)
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the goal name, target or saved amount",
	Args:  cobra.NoArgs,
	RunE:  setFunc,
}

func init() {
	setCmd.Flags().StringVar(&name, "name", "", "Goal name")
	setCmd.Flags().StringVar(&target, "target", "", "Target amount")
	setCmd.Flags().StringVar(&current, "current", "", "Amount saved so far")
	Cmd.AddCommand(showCmd, setCmd)
}

func setFunc(cmd *cobra.Command, _ []string) error {
	svc := root.Service()
	goal, err := svc.SavingsGoal(cmd.Context())
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("name") {
		goal.Name = name
	}
	if cmd.Flags().Changed("target") {
		if goal.TargetAmount, err = currencyutils.ParseAmount(target); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("current") {
		if goal.CurrentAmount, err = currencyutils.ParseAmount(current); err != nil {
			return err
		}
	}

	goal, err = svc.SetSavingsGoal(cmd.Context(), goal)
	if err != nil {
		return err
	}
	return root.Renderer().Savings(goal)
}
