package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
	"github.com/pocketfolio/pocketfolio-backend/internal/testutil"
)

func TestCreateBudget_Success(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)
	userID := uuid.New()

	budget, err := budgetService.CreateBudget(userID, CreateBudgetInput{
		CategoryID: 1,
		Name:       "Food Budget",
		Amount:     decimal.RequireFromString("500"),
		Period:     domain.BudgetPeriodMonthly,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if budget.Name != "Food Budget" {
		t.Errorf("Expected name 'Food Budget', got %s", budget.Name)
	}
	if !budget.CurrentSpending.IsZero() {
		t.Errorf("Expected fresh budget to start at zero spending, got %s", budget.CurrentSpending)
	}
	if budget.Period != domain.BudgetPeriodMonthly {
		t.Errorf("Expected monthly period, got %s", budget.Period)
	}
}

func TestCreateBudget_DefaultsNameFromCategory(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	budget, err := budgetService.CreateBudget(uuid.New(), CreateBudgetInput{
		CategoryID: 2,
		Amount:     decimal.RequireFromString("200"),
		Period:     domain.BudgetPeriodWeekly,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if budget.Name != "Transportation Budget" {
		t.Errorf("Expected defaulted name 'Transportation Budget', got %s", budget.Name)
	}
}

func TestCreateBudget_RejectsDuplicateCategory(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)
	userID := uuid.New()

	input := CreateBudgetInput{
		CategoryID: 1,
		Amount:     decimal.RequireFromString("500"),
		Period:     domain.BudgetPeriodMonthly,
	}
	if _, err := budgetService.CreateBudget(userID, input); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err := budgetService.CreateBudget(userID, input)
	if !errors.Is(err, domain.ErrBudgetExists) {
		t.Errorf("Expected ErrBudgetExists, got %v", err)
	}
}

func TestCreateBudget_SameCategoryDifferentUsersAllowed(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	input := CreateBudgetInput{
		CategoryID: 1,
		Amount:     decimal.RequireFromString("500"),
		Period:     domain.BudgetPeriodMonthly,
	}
	if _, err := budgetService.CreateBudget(uuid.New(), input); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := budgetService.CreateBudget(uuid.New(), input); err != nil {
		t.Errorf("Expected no error for a different user, got %v", err)
	}
}

func TestCreateBudget_RejectsIncomeCategory(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	_, err := budgetService.CreateBudget(uuid.New(), CreateBudgetInput{
		CategoryID: domain.IncomeCategoryID,
		Amount:     decimal.RequireFromString("100"),
		Period:     domain.BudgetPeriodMonthly,
	})
	if !errors.Is(err, domain.ErrIncomeCategoryBudget) {
		t.Errorf("Expected ErrIncomeCategoryBudget, got %v", err)
	}
}

func TestCreateBudget_RejectsInvalidInput(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	_, err := budgetService.CreateBudget(uuid.New(), CreateBudgetInput{
		CategoryID: 1,
		Amount:     decimal.Zero,
		Period:     domain.BudgetPeriodMonthly,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}

	_, err = budgetService.CreateBudget(uuid.New(), CreateBudgetInput{
		CategoryID: 1,
		Amount:     decimal.RequireFromString("100"),
		Period:     domain.BudgetPeriod("quarterly"),
	})
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}

	_, err = budgetService.CreateBudget(uuid.New(), CreateBudgetInput{
		CategoryID: 99,
		Amount:     decimal.RequireFromString("100"),
		Period:     domain.BudgetPeriodMonthly,
	})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}

	_, err = budgetService.CreateBudget(uuid.New(), CreateBudgetInput{
		CategoryID: 1,
		Name:       strings.Repeat("x", domain.MaxBudgetNameLength+1),
		Amount:     decimal.RequireFromString("100"),
		Period:     domain.BudgetPeriodMonthly,
	})
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestUpdateBudget_PatchesFields(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)
	userID := uuid.New()

	budget := &domain.Budget{
		UserID:     userID,
		CategoryID: 1,
		Name:       "Food Budget",
		Amount:     decimal.RequireFromString("500"),
		Period:     domain.BudgetPeriodMonthly,
	}
	budgetRepo.AddBudget(budget)

	newAmount := decimal.RequireFromString("650")
	newPeriod := domain.BudgetPeriodYearly
	updated, err := budgetService.UpdateBudget(userID, budget.ID, domain.BudgetPatch{
		Amount: &newAmount,
		Period: &newPeriod,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !updated.Amount.Equal(newAmount) {
		t.Errorf("Expected amount 650, got %s", updated.Amount)
	}
	if updated.Period != domain.BudgetPeriodYearly {
		t.Errorf("Expected yearly period, got %s", updated.Period)
	}
	if updated.Name != "Food Budget" {
		t.Errorf("Expected name untouched, got %s", updated.Name)
	}
}

func TestUpdateBudget_NotFound(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)

	amount := decimal.RequireFromString("100")
	_, err := budgetService.UpdateBudget(uuid.New(), uuid.New(), domain.BudgetPatch{Amount: &amount})
	if !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("Expected ErrBudgetNotFound, got %v", err)
	}
}

func TestResetSpending_ZeroesRunningTotal(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)
	userID := uuid.New()

	budget := &domain.Budget{
		UserID:          userID,
		CategoryID:      1,
		Amount:          decimal.RequireFromString("500"),
		CurrentSpending: decimal.RequireFromString("312.40"),
	}
	budgetRepo.AddBudget(budget)

	reset, err := budgetService.ResetSpending(userID, budget.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reset.CurrentSpending.IsZero() {
		t.Errorf("Expected spending 0 after reset, got %s", reset.CurrentSpending)
	}
}

func TestDeleteBudget(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	budgetService := NewBudgetService(budgetRepo)
	userID := uuid.New()

	budget := &domain.Budget{
		UserID:     userID,
		CategoryID: 1,
		Amount:     decimal.RequireFromString("500"),
	}
	budgetRepo.AddBudget(budget)

	if err := budgetService.DeleteBudget(userID, budget.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := budgetService.GetBudget(userID, budget.ID); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("Expected ErrBudgetNotFound after delete, got %v", err)
	}
}
