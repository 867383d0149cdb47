package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/fileutils"
	"fjacquet/butterfly-ledger/internal/models"
	"fjacquet/butterfly-ledger/internal/parsererror"

	"github.com/shopspring/decimal"
)

// jsonExport is the layout of a JSON ledger export. Older exports carry a
// budget without the rollover fields, or no budget and goal at all.
type jsonExport struct {
	Transactions []models.Transaction `json:"transactions"`
	Budget       *models.BudgetRecord `json:"budget,omitempty"`
	SavingsGoal  *models.SavingsGoal  `json:"savingsGoal,omitempty"`
}

// ImportJSONSnapshot reads a JSON export. A legacy budget is migrated for the
// month of today and a missing one starts at initial. The boolean reports
// whether a legacy budget was migrated.
func ImportJSONSnapshot(path string, today time.Time, initial decimal.Decimal) (Snapshot, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read %s: %w", path, err)
	}

	var export jsonExport
	if err := json.Unmarshal(data, &export); err != nil {
		return Snapshot{}, false, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "JSON ledger export",
			Msg:            err.Error(),
		}
	}

	month := dateutils.MonthKey(today)
	snap := Snapshot{
		Transactions: export.Transactions,
		Budget:       models.NewBudgetState(initial, month),
		Goal:         models.DefaultSavingsGoal(),
	}
	if snap.Transactions == nil {
		snap.Transactions = []models.Transaction{}
	}

	migrated := false
	if export.Budget != nil {
		snap.Budget, migrated = models.MigrateBudget(*export.Budget, month)
	}
	if export.SavingsGoal != nil {
		snap.Goal = *export.SavingsGoal
	}
	return snap, migrated, nil
}

// WriteJSONSnapshot writes snap in the export layout ImportJSONSnapshot reads.
func WriteJSONSnapshot(path string, snap Snapshot) error {
	record := snap.Budget.Record()
	goal := snap.Goal
	data, err := json.MarshalIndent(jsonExport{
		Transactions: snap.Transactions,
		Budget:       &record,
		SavingsGoal:  &goal,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := fileutils.EnsureParentDirectory(path); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
