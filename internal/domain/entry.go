package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is a single ledger line item. Amount is always positive; the
// direction is carried by IsIncome, never by the sign.
type Entry struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CategoryID  int32           `json:"categoryId"`
	IsIncome    bool            `json:"isIncome"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// EffectiveContribution is the amount the entry contributes to its
// category's budget: the amount for an expense, zero for income.
func (e *Entry) EffectiveContribution() decimal.Decimal {
	if e.IsIncome {
		return decimal.Zero
	}
	return e.Amount
}

// EntryPatch enumerates exactly which entry fields an edit changes.
// Nil means "leave unchanged", so update logic branches on presence
// instead of comparing values.
type EntryPatch struct {
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
	CategoryID  *int32
	IsIncome    *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Amount == nil && p.Description == nil && p.Date == nil &&
		p.CategoryID == nil && p.IsIncome == nil
}

// ApplyTo returns a copy of the entry with the patch applied.
func (p EntryPatch) ApplyTo(e *Entry) Entry {
	next := *e
	if p.Amount != nil {
		next.Amount = *p.Amount
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Date != nil {
		next.Date = *p.Date
	}
	if p.CategoryID != nil {
		next.CategoryID = *p.CategoryID
	}
	if p.IsIncome != nil {
		next.IsIncome = *p.IsIncome
	}
	return next
}

// BudgetAdjustment is a single signed delta against one budget's running
// spending total. Deltas are applied with clamping at zero.
type BudgetAdjustment struct {
	BudgetID uuid.UUID
	Delta    decimal.Decimal
}

// EntryRepository persists ledger entries. The mutation methods accept
// the budget adjustments computed for the mutation so stores that
// support transactions can apply both as one atomic unit. Adjustment
// failures are reported wrapped in ErrReconciliationFailed so callers
// can tell them apart from entry-write failures.
type EntryRepository interface {
	Create(entry *Entry, adjustments []BudgetAdjustment) (*Entry, error)
	GetByID(userID, id uuid.UUID) (*Entry, error)
	Update(userID, id uuid.UUID, patch EntryPatch, adjustments []BudgetAdjustment) (*Entry, error)
	Delete(userID, id uuid.UUID, adjustments []BudgetAdjustment) error
	ListByUser(userID uuid.UUID) ([]*Entry, error)
}
