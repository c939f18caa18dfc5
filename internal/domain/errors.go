package domain

import "errors"

// Domain errors
var (
	ErrEntryNotFound    = errors.New("entry not found")
	ErrBudgetNotFound   = errors.New("budget not found")
	ErrSettingsNotFound = errors.New("settings not found")

	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrCategoryRequired     = errors.New("category is required for expense entries")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrInvalidPeriod        = errors.New("invalid budget period")
	ErrDescriptionTooLong   = errors.New("description exceeds maximum length")
	ErrNameTooLong          = errors.New("name exceeds maximum length")
	ErrBudgetExists         = errors.New("budget already exists for category")
	ErrIncomeCategoryBudget = errors.New("budgets cannot target the income category")
	ErrInvalidCurrency      = errors.New("unsupported currency code")
	ErrInvalidNumberFormat  = errors.New("unsupported number format")

	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrReconciliationFailed marks a budget adjustment that could not be
	// applied. When it surfaces from an entry mutation the entry write
	// itself may already have succeeded, so callers must treat it as a
	// partial failure rather than a plain error.
	ErrReconciliationFailed = errors.New("budget reconciliation failed")
)

// Validation constants
const (
	MaxDescriptionLength = 500
	MaxBudgetNameLength  = 255
)
