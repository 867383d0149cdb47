package tx

import (
	"fmt"
	"path/filepath"

	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/internal/validation"

	"github.com/spf13/cobra"
)

var exportMonth string

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Append transactions from a CSV file",
	Long: `Append transactions from a CSV file with the columns
ID, Date, Description, Amount, Category, Type, IsRecurring, IsPaid, ReminderSent.
Only Date, Description and Amount are required. Negative amounts without a
Type are read as expenses. Nothing is imported unless every row is valid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := inputPath(args[0])
		if err != nil {
			return err
		}
		res, err := root.Service().ImportCSV(cmd.Context(), path)
		if err != nil {
			return err
		}
		return root.Renderer().Message(fmt.Sprintf("Imported %d transactions (%d auto-categorized)",
			res.Imported, res.Categorization.Successful))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Write transactions to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := root.Service().ExportCSV(cmd.Context(), args[0], exportMonth)
		if err != nil {
			return err
		}
		return root.Renderer().Message(fmt.Sprintf("Exported %d transactions to %s", n, args[0]))
	},
}

var importJSONCmd = &cobra.Command{
	Use:   "import-json <file.json>",
	Short: "Replace the ledger with a JSON export",
	Long: `Replace transactions, budget and savings goal with the content of a
JSON export. Budgets exported before rollover tracking are upgraded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := inputPath(args[0])
		if err != nil {
			return err
		}
		today, err := root.Today()
		if err != nil {
			return err
		}
		res, err := root.Service().ImportJSON(cmd.Context(), path, today)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Replaced ledger with %d transactions", res.Imported)
		if res.BudgetMigrated {
			msg += " (budget upgraded)"
		}
		return root.Renderer().Message(msg)
	},
}

var exportJSONCmd = &cobra.Command{
	Use:   "export-json <file.json>",
	Short: "Write the whole ledger as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := root.Today()
		if err != nil {
			return err
		}
		n, err := root.Service().ExportJSON(cmd.Context(), args[0], today)
		if err != nil {
			return err
		}
		return root.Renderer().Message(fmt.Sprintf("Exported %d transactions to %s", n, args[0]))
	},
}

// inputPath resolves an import file and checks that it exists.
func inputPath(arg string) (string, error) {
	path, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	if err := validation.IsValidPath(path); err != nil {
		return "", err
	}
	return path, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportMonth, "month", "m", "", "Only this month, YYYY-MM")
}
