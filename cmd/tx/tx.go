// Package tx manages ledger transactions
package tx

import (
	"fmt"
	"strings"

	"fjacquet/butterfly-ledger/cmd/root"
	"fjacquet/butterfly-ledger/internal/currencyutils"
	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/models"

	"github.com/spf13/cobra"
)

// AddFlags are the flags of tx add
type AddFlags struct {
	Description string
	Amount      string
	Date        string
	Category    string
	Income      bool
	Recurring   bool
	Paid        bool
}

var (
	addFlags AddFlags
	month    string
	unpaid   bool
)

// Cmd represents the tx command
var Cmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transaction"},
	Short:   "Add, list, pay, import and export transactions",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense or income",
	Long: `Record an expense or income. Expenses without --category are
categorized from their description; an explicit category is remembered
for the same description next time.`,
	Args: cobra.NoArgs,
	RunE: addFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions by date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		txs, err := root.Service().Transactions(cmd.Context(), month)
		if err != nil {
			return err
		}
		return root.Renderer().Transactions(txs)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.Service().DeleteTransaction(cmd.Context(), args[0]); err != nil {
			return err
		}
		return root.Renderer().Message("Deleted transaction " + args[0])
	},
}

var payCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark an expense as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tx, err := root.Service().MarkPaid(cmd.Context(), args[0], !unpaid)
		if err != nil {
			return err
		}
		return root.Renderer().Transactions([]models.Transaction{tx})
	},
}

func init() {
	addCmd.Flags().StringVarP(&addFlags.Description, "desc", "d", "", "Description")
	addCmd.Flags().StringVarP(&addFlags.Amount, "amount", "a", "", "Amount, e.g. 12.50")
	addCmd.Flags().StringVar(&addFlags.Date, "date", "", "Date YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVarP(&addFlags.Category, "category", "c", "", "Category (default: suggested from the description)")
	addCmd.Flags().BoolVar(&addFlags.Income, "income", false, "Record income instead of an expense")
	addCmd.Flags().BoolVar(&addFlags.Recurring, "recurring", false, "Mark as a recurring bill")
	addCmd.Flags().BoolVar(&addFlags.Paid, "paid", false, "Mark as already paid")
	_ = addCmd.MarkFlagRequired("desc")
	_ = addCmd.MarkFlagRequired("amount")

	listCmd.Flags().StringVarP(&month, "month", "m", "", "Only this month, YYYY-MM")
	payCmd.Flags().BoolVar(&unpaid, "unpaid", false, "Clear the paid flag instead")

	Cmd.AddCommand(addCmd, listCmd, deleteCmd, payCmd, importCmd, exportCmd, importJSONCmd, exportJSONCmd)
}

// BuildTransaction turns the add flags into a transaction. The category is
// left empty when none was given so it can be suggested.
func BuildTransaction(f AddFlags, today string) (models.Transaction, error) {
	amount, err := currencyutils.ParseAmount(f.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	date := today
	if f.Date != "" {
		if date, err = dateutils.NormalizeDate(f.Date); err != nil {
			return models.Transaction{}, err
		}
	}

	builder := models.NewTransactionBuilder().
		WithDate(date).
		WithDescription(f.Description).
		WithAmount(amount).
		Recurring(f.Recurring).
		Paid(f.Paid)

	if f.Income {
		builder = builder.AsIncome()
	} else if f.Category != "" {
		category, ok := models.ParseCategory(f.Category)
		if !ok {
			return models.Transaction{}, fmt.Errorf("unknown category %q, expected one of: %s", f.Category, categoryNames())
		}
		builder = builder.WithCategory(category)
	}

	tx, err := builder.Build()
	if err != nil {
		return models.Transaction{}, err
	}
	if !f.Income && f.Category == "" {
		tx.Category = ""
	}
	return tx, nil
}

func categoryNames() string {
	names := make([]string, 0, len(models.AllCategories()))
	for _, c := range models.AllCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func addFunc(cmd *cobra.Command, _ []string) error {
	today, err := root.Today()
	if err != nil {
		return err
	}

	tx, err := BuildTransaction(addFlags, dateutils.ToISODate(today))
	if err != nil {
		return err
	}
	saved, err := root.Service().AddTransaction(cmd.Context(), tx)
	if err != nil {
		return err
	}
	return root.Renderer().Transactions([]models.Transaction{saved})
}
