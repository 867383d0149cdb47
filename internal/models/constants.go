package models

import "strings"

// TransactionType tells expenses and income apart.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// ParseTransactionType accepts the type case-insensitively.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TransactionTypeExpense:
		return TransactionTypeExpense, true
	case TransactionTypeIncome:
		return TransactionTypeIncome, true
	default:
		return "", false
	}
}

// Category is one of the fixed spending categories.
type Category string

// Categories
const (
	CategoryHousing       Category = "Housing"
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryPersonal      Category = "Personal"
	CategoryShopping      Category = "Shopping"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

var allCategories = []Category{
	CategoryHousing,
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryPersonal,
	CategoryShopping,
	CategoryIncome,
	CategoryOther,
}

// AllCategories returns the categories in display order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a category name ignoring case and surrounding spaces.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range allCategories {
		if strings.EqualFold(string(known), s) {
			return known, true
		}
	}
	return "", false
}

// Defaults for a fresh ledger
const (
	InitialBudget        = 2000
	DefaultSavingsName   = "Dream Vacation"
	DefaultSavingsTarget = 5000
	DefaultSavingsSaved  = 1250
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
