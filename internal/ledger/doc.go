// Package ledger holds the budget engine: the monthly rollover processor, the
// purchase recurrence predictor, the year-over-year comparator and the helpers
// built on the same data (reminders, monthly summary).
//
// Every function here is pure. Inputs are taken by value, nothing is mutated,
// nothing is logged and no I/O happens. Callers validate transactions before
// handing them over and persist whatever state comes back.
package ledger
