package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetPeriod string

const (
	BudgetPeriodDaily   BudgetPeriod = "daily"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether the period is one of the known labels.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodDaily, BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// Budget is a per-category spending limit. CurrentSpending is the
// running total of expense entries reconciled against the category; it
// never goes below zero. Period is an advisory label: nothing resets
// the total automatically, callers invoke ResetSpending explicitly.
type Budget struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	CategoryID      int32           `json:"categoryId"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	CurrentSpending decimal.Decimal `json:"currentSpending"`
	Period          BudgetPeriod    `json:"period"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// BudgetPatch enumerates the budget fields an update may change.
type BudgetPatch struct {
	Name   *string
	Amount *decimal.Decimal
	Period *BudgetPeriod
}

// BudgetRepository persists budgets. At most one budget exists per
// (user, category); the store enforces this and Create returns
// ErrBudgetExists on a duplicate. IncrementSpending applies
// `current_spending = max(current_spending + delta, 0)` as a single
// atomic update so concurrent reconciliations cannot lose writes.
type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(userID, id uuid.UUID) (*Budget, error)
	FindByUserAndCategory(userID uuid.UUID, categoryID int32) (*Budget, error)
	ListByUser(userID uuid.UUID) ([]*Budget, error)
	Update(userID, id uuid.UUID, patch BudgetPatch) (*Budget, error)
	Delete(userID, id uuid.UUID) error
	IncrementSpending(budgetID uuid.UUID, delta decimal.Decimal) error
	ResetSpending(userID, id uuid.UUID) (*Budget, error)
}
