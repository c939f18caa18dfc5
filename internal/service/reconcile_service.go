package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
)

// ReconcileService keeps each budget's running spending total consistent
// with the ledger. For every entry mutation it computes the exact
// deltas to apply to the affected budgets and applies them as clamped
// atomic increments, so currentSpending always equals the sum of the
// expense entries reconciled against the category.
//
// Income never adjusts a budget. The original product had a second code
// path that subtracted income amounts from spending; that was a defect
// and is not reproduced here.
type ReconcileService struct {
	budgetRepo domain.BudgetRepository
}

// NewReconcileService creates a new ReconcileService.
func NewReconcileService(budgetRepo domain.BudgetRepository) *ReconcileService {
	return &ReconcileService{budgetRepo: budgetRepo}
}

// PlanNewEntry computes the budget adjustments for persisting a new
// entry. A missing budget is not an error: users may log expenses
// against categories they never budgeted.
func (s *ReconcileService) PlanNewEntry(entry *domain.Entry) ([]domain.BudgetAdjustment, error) {
	if entry.IsIncome {
		return nil, nil
	}
	return s.adjustmentFor(entry.UserID, entry.CategoryID, entry.Amount)
}

// PlanEntryEdit computes the budget adjustments for an edit, given the
// entry's state immediately before and after. Category, amount and
// income-flag changes compose: a category move reverses the old entry's
// full effective contribution from the old category's budget and
// applies the new entry's full contribution to the new one, never
// netting across budgets.
func (s *ReconcileService) PlanEntryEdit(oldEntry, newEntry *domain.Entry) ([]domain.BudgetAdjustment, error) {
	effectiveOld := oldEntry.EffectiveContribution()
	effectiveNew := newEntry.EffectiveContribution()

	if oldEntry.CategoryID == newEntry.CategoryID {
		return s.adjustmentFor(oldEntry.UserID, oldEntry.CategoryID, effectiveNew.Sub(effectiveOld))
	}

	reverse, err := s.adjustmentFor(oldEntry.UserID, oldEntry.CategoryID, effectiveOld.Neg())
	if err != nil {
		return nil, err
	}
	apply, err := s.adjustmentFor(newEntry.UserID, newEntry.CategoryID, effectiveNew)
	if err != nil {
		return nil, err
	}
	return append(reverse, apply...), nil
}

// PlanEntryDelete computes the budget adjustments for removing an entry.
func (s *ReconcileService) PlanEntryDelete(entry *domain.Entry) ([]domain.BudgetAdjustment, error) {
	if entry.IsIncome {
		return nil, nil
	}
	return s.adjustmentFor(entry.UserID, entry.CategoryID, entry.Amount.Neg())
}

// adjustmentFor resolves the budget for (user, category) and returns a
// single adjustment with the given delta. No budget, or a zero delta,
// yields no adjustment.
func (s *ReconcileService) adjustmentFor(userID uuid.UUID, categoryID int32, delta decimal.Decimal) ([]domain.BudgetAdjustment, error) {
	if delta.IsZero() {
		return nil, nil
	}

	budget, err := s.budgetRepo.FindByUserAndCategory(userID, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: locating budget for category %d: %v", domain.ErrReconciliationFailed, categoryID, err)
	}

	return []domain.BudgetAdjustment{{BudgetID: budget.ID, Delta: delta}}, nil
}

// Apply issues the planned adjustments to the budget store. Each one is
// a single atomic clamped increment; a failure is reported as
// ErrReconciliationFailed so callers can distinguish it from a failed
// entry write.
func (s *ReconcileService) Apply(adjustments []domain.BudgetAdjustment) error {
	for _, adj := range adjustments {
		if err := s.budgetRepo.IncrementSpending(adj.BudgetID, adj.Delta); err != nil {
			return fmt.Errorf("%w: adjusting budget %s by %s: %v", domain.ErrReconciliationFailed, adj.BudgetID, adj.Delta, err)
		}
	}
	return nil
}

// ApplyNewEntry plans and immediately applies the adjustments for a new
// entry. Used directly when the entry write is handled elsewhere;
// EntryService instead pairs the plan with the entry mutation in one
// store transaction.
func (s *ReconcileService) ApplyNewEntry(entry *domain.Entry) error {
	adjustments, err := s.PlanNewEntry(entry)
	if err != nil {
		return err
	}
	return s.Apply(adjustments)
}

// ApplyEntryEdit plans and immediately applies the adjustments for an
// edit.
func (s *ReconcileService) ApplyEntryEdit(oldEntry, newEntry *domain.Entry) error {
	adjustments, err := s.PlanEntryEdit(oldEntry, newEntry)
	if err != nil {
		return err
	}
	return s.Apply(adjustments)
}

// ApplyEntryDelete plans and immediately applies the adjustments for a
// delete.
func (s *ReconcileService) ApplyEntryDelete(entry *domain.Entry) error {
	adjustments, err := s.PlanEntryDelete(entry)
	if err != nil {
		return err
	}
	return s.Apply(adjustments)
}
