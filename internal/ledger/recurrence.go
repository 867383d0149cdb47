package ledger

import (
	"math"
	"sort"
	"time"

	"fjacquet/butterfly-ledger/internal/dateutils"
	"fjacquet/butterfly-ledger/internal/models"
)

// DefaultGenericTerms are descriptions that name a shop or a kind of spending
// rather than a specific item.
var DefaultGenericTerms = []string{"grocery", "groceries", "supermarket", "market", "food"}

// MinPurchaseFloor is the fewest purchase dates an item may be predicted from.
const MinPurchaseFloor = 3

// PredictorOptions tune the recurrence predictor.
type PredictorOptions struct {
	// WindowDays is the half width of the window around today a predicted
	// date must fall into.
	WindowDays int
	// MinPurchases is the minimum number of purchase dates per item.
	MinPurchases int
	// LookbackDays limits the history to the trailing period.
	LookbackDays int
	// GenericTerms are normalized descriptions that are never predicted.
	GenericTerms []string
	// Categories are the expense categories scanned for purchases.
	Categories []models.Category
}

// DefaultPredictorOptions returns the stock tuning.
func DefaultPredictorOptions() PredictorOptions {
	return PredictorOptions{
		WindowDays:   7,
		MinPurchases: 3,
		LookbackDays: 365,
		GenericTerms: DefaultGenericTerms,
		Categories:   []models.Category{models.CategoryFood, models.CategoryShopping},
	}
}

// Predictor forecasts when recurring purchases are due again.
type Predictor struct {
	opts       PredictorOptions
	generic    map[string]struct{}
	categories map[models.Category]struct{}
}

// NewPredictor builds a predictor. Non-positive numeric options, fewer than
// MinPurchaseFloor purchases and empty lists fall back to the defaults.
func NewPredictor(opts PredictorOptions) *Predictor {
	def := DefaultPredictorOptions()
	if opts.WindowDays <= 0 {
		opts.WindowDays = def.WindowDays
	}
	if opts.MinPurchases < MinPurchaseFloor {
		opts.MinPurchases = def.MinPurchases
	}
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = def.LookbackDays
	}
	if len(opts.GenericTerms) == 0 {
		opts.GenericTerms = def.GenericTerms
	}
	if len(opts.Categories) == 0 {
		opts.Categories = def.Categories
	}

	p := &Predictor{
		opts:       opts,
		generic:    make(map[string]struct{}, len(opts.GenericTerms)),
		categories: make(map[models.Category]struct{}, len(opts.Categories)),
	}
	for _, term := range opts.GenericTerms {
		p.generic[models.NormalizeDescription(term)] = struct{}{}
	}
	for _, c := range opts.Categories {
		p.categories[c] = struct{}{}
	}
	return p
}

// Options returns the effective options.
func (p *Predictor) Options() PredictorOptions {
	return p.opts
}

type purchaseHistory struct {
	name  string
	dates []time.Time
}

// Predict returns the items whose next purchase is due within the window
// around today. Items are listed in the order their key first appears in txs.
func (p *Predictor) Predict(txs []models.Transaction, today time.Time) []models.PredictedItem {
	today = dateutils.Truncate(today)
	cutoff := today.AddDate(0, 0, -p.opts.LookbackDays)

	var order []string
	histories := make(map[string]*purchaseHistory)

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		if _, ok := p.categories[tx.Category]; !ok {
			continue
		}
		bought, err := dateutils.ParseISODate(tx.Date)
		if err != nil || bought.Before(cutoff) {
			continue
		}

		key := tx.NormalizedDescription()
		if _, skip := p.generic[key]; skip {
			continue
		}

		h, ok := histories[key]
		if !ok {
			h = &purchaseHistory{name: tx.Description}
			histories[key] = h
			order = append(order, key)
		}
		h.dates = append(h.dates, bought)
	}

	predictions := []models.PredictedItem{}
	windowStart := today.AddDate(0, 0, -p.opts.WindowDays)
	windowEnd := today.AddDate(0, 0, p.opts.WindowDays)

	for _, key := range order {
		h := histories[key]
		if len(h.dates) < p.opts.MinPurchases {
			continue
		}
		sort.Slice(h.dates, func(i, j int) bool { return h.dates[i].Before(h.dates[j]) })

		avg := averageGapDays(h.dates)
		last := h.dates[len(h.dates)-1]
		next := dateutils.AddFractionalDays(last, avg)

		if next.Before(windowStart) || next.After(windowEnd) {
			continue
		}

		predictions = append(predictions, models.PredictedItem{
			Name:             h.name,
			LastBoughtDate:   dateutils.ToISODate(last),
			DaysAgo:          dateutils.DaysBetweenFloor(last, today),
			PredictedDate:    dateutils.ToISODate(next),
			AvgFrequencyDays: int(math.Round(avg)),
		})
	}
	return predictions
}

// averageGapDays is the mean of the day gaps between consecutive sorted dates,
// each gap rounded up to whole days first.
func averageGapDays(dates []time.Time) float64 {
	total := 0
	for i := 1; i < len(dates); i++ {
		total += dateutils.DaysBetweenCeil(dates[i-1], dates[i])
	}
	return float64(total) / float64(len(dates)-1)
}

var defaultPredictor = NewPredictor(DefaultPredictorOptions())

// PredictShoppingItems runs the predictor with the default options.
func PredictShoppingItems(txs []models.Transaction, today time.Time) []models.PredictedItem {
	return defaultPredictor.Predict(txs, today)
}
