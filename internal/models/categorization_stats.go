package models

import (
	"fjacquet/butterfly-ledger/internal/logging"
)

// CategorizationStats counts how imported transactions got their category
type CategorizationStats struct {
	Total         int // Total number of transactions processed
	Provided      int // Category came with the record
	Successful    int // Category suggested by a strategy
	Failed        int // Suggestion returned an error
	Uncategorized int // Filed under Other
}

// LogSummary logs a summary of categorization statistics
func (cs CategorizationStats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: "total_transactions", Value: cs.Total},
		logging.Field{Key: "provided", Value: cs.Provided},
		logging.Field{Key: "successful", Value: cs.Successful},
		logging.Field{Key: "failed", Value: cs.Failed},
		logging.Field{Key: "uncategorized", Value: cs.Uncategorized},
		logging.Field{Key: "success_rate", Value: cs.GetSuccessRate()},
	)
}

// GetSuccessRate is the share of suggested transactions, among those that
// needed a suggestion, that landed in a real category, in percent.
func (cs CategorizationStats) GetSuccessRate() float64 {
	needed := cs.Total - cs.Provided
	if needed <= 0 {
		return 0.0
	}
	return float64(cs.Successful) / float64(needed) * 100.0
}
