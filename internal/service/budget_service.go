package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
)

// BudgetService handles budget business logic. CurrentSpending is owned
// by the reconciler; this service only ever touches it through the
// explicit reset operation.
type BudgetService struct {
	budgetRepo domain.BudgetRepository
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo}
}

// CreateBudgetInput holds the input for creating a budget.
type CreateBudgetInput struct {
	CategoryID int32
	Name       string
	Amount     decimal.Decimal
	Period     domain.BudgetPeriod
}

// CreateBudget creates a budget for a category. Each user gets at most
// one budget per category; the store's uniqueness constraint backs
// this, and a duplicate surfaces as ErrBudgetExists.
func (s *BudgetService) CreateBudget(userID uuid.UUID, input CreateBudgetInput) (*domain.Budget, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) > domain.MaxBudgetNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if !input.Period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	if !domain.ValidCategoryID(input.CategoryID) {
		return nil, domain.ErrCategoryNotFound
	}
	if input.CategoryID == domain.IncomeCategoryID {
		return nil, domain.ErrIncomeCategoryBudget
	}

	if name == "" {
		name = domain.CategoryByID(input.CategoryID).Name + " Budget"
	}

	budget := &domain.Budget{
		UserID:          userID,
		CategoryID:      input.CategoryID,
		Name:            name,
		Amount:          input.Amount,
		CurrentSpending: decimal.Zero,
		Period:          input.Period,
	}

	return s.budgetRepo.Create(budget)
}

// GetBudget retrieves a budget by ID.
func (s *BudgetService) GetBudget(userID, id uuid.UUID) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(userID, id)
}

// ListBudgets retrieves all budgets for a user.
func (s *BudgetService) ListBudgets(userID uuid.UUID) ([]*domain.Budget, error) {
	return s.budgetRepo.ListByUser(userID)
}

// UpdateBudget applies a patch to a budget's name, amount or period.
// The category and the running total are not editable.
func (s *BudgetService) UpdateBudget(userID, id uuid.UUID, patch domain.BudgetPatch) (*domain.Budget, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if len(trimmed) > domain.MaxBudgetNameLength {
			return nil, domain.ErrNameTooLong
		}
		patch.Name = &trimmed
	}
	if patch.Amount != nil && patch.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if patch.Period != nil && !patch.Period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}

	return s.budgetRepo.Update(userID, id, patch)
}

// DeleteBudget removes a budget. Ledger entries are untouched; future
// entries for the category simply stop reconciling.
func (s *BudgetService) DeleteBudget(userID, id uuid.UUID) error {
	return s.budgetRepo.Delete(userID, id)
}

// ResetSpending zeroes a budget's running total. Period boundaries are
// advisory only, so resets happen exactly when a caller asks for one,
// typically from a scheduler aligned with the budget's period.
func (s *BudgetService) ResetSpending(userID, id uuid.UUID) (*domain.Budget, error) {
	return s.budgetRepo.ResetSpending(userID, id)
}
