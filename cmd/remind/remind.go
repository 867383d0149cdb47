// Package remind notifies upcoming unpaid expenses
package remind

import (
	"fjacquet/butterfly-ledger/cmd/root"

	"github.com/spf13/cobra"
)

var dryRun bool

// Cmd represents the remind command
var Cmd = &cobra.Command{
	Use:   "remind",
	Short: "Send reminders for unpaid expenses due soon",
	Long: `Send one reminder for every unpaid expense due within the configured
number of days. Each expense is reminded once; failed deliveries are
retried on the next run.`,
	Args: cobra.NoArgs,
	RunE: remindFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "List due reminders without sending them")
}

func remindFunc(cmd *cobra.Command, _ []string) error {
	today, err := root.Today()
	if err != nil {
		return err
	}

	svc := root.Service()
	if dryRun {
		due, err := svc.Reminders(cmd.Context(), today)
		if err != nil {
			return err
		}
		return root.Renderer().Reminders(due, nil)
	}

	due, delivered, err := svc.SendReminders(cmd.Context(), today)
	if err != nil {
		return err
	}
	return root.Renderer().Reminders(due, delivered)
}
