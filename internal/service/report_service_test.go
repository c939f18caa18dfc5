package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
	"github.com/pocketfolio/pocketfolio-backend/internal/testutil"
)

func TestGetCategoryTotals(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	entryRepo := testutil.NewMockEntryRepository(budgetRepo)
	reportService := NewReportService(entryRepo)
	userID := uuid.New()

	entryRepo.AddEntry(&domain.Entry{UserID: userID, Amount: decimal.RequireFromString("45.99"), CategoryID: 1, Date: time.Now()})
	entryRepo.AddEntry(&domain.Entry{UserID: userID, Amount: decimal.RequireFromString("25.50"), CategoryID: 2, Date: time.Now()})
	entryRepo.AddEntry(&domain.Entry{UserID: userID, Amount: decimal.RequireFromString("3500.00"), CategoryID: domain.IncomeCategoryID, IsIncome: true, Date: time.Now()})
	// Another user's ledger must not bleed in.
	entryRepo.AddEntry(&domain.Entry{UserID: uuid.New(), Amount: decimal.RequireFromString("99.00"), CategoryID: 1, Date: time.Now()})

	totals, err := reportService.GetCategoryTotals(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("Expected 2 totals, got %d", len(totals))
	}
	if !totals[0].Amount.Equal(decimal.RequireFromString("45.99")) {
		t.Errorf("Expected food total 45.99, got %s", totals[0].Amount)
	}
}

func TestGetMonthlyTotals_DefaultsWindow(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	entryRepo := testutil.NewMockEntryRepository(budgetRepo)
	reportService := NewReportService(entryRepo)
	reportService.now = func() time.Time {
		return time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	}
	userID := uuid.New()

	entryRepo.AddEntry(&domain.Entry{
		UserID:     userID,
		Amount:     decimal.RequireFromString("100.00"),
		CategoryID: 1,
		Date:       time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
	})

	for _, window := range []int{0, -3, MaxMonthsBack + 1} {
		totals, err := reportService.GetMonthlyTotals(userID, window)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(totals) != DefaultMonthsBack {
			t.Errorf("Expected %d buckets for window %d, got %d", DefaultMonthsBack, window, len(totals))
		}
	}

	totals, err := reportService.GetMonthlyTotals(userID, 12)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(totals) != 12 {
		t.Fatalf("Expected 12 buckets, got %d", len(totals))
	}
	if !totals[10].Amount.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("Expected July total 100.00, got %s", totals[10].Amount)
	}
}

func TestGetIncomeVsExpense(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	entryRepo := testutil.NewMockEntryRepository(budgetRepo)
	reportService := NewReportService(entryRepo)
	userID := uuid.New()

	entryRepo.AddEntry(&domain.Entry{UserID: userID, Amount: decimal.RequireFromString("3500.00"), CategoryID: domain.IncomeCategoryID, IsIncome: true, Date: time.Now()})
	entryRepo.AddEntry(&domain.Entry{UserID: userID, Amount: decimal.RequireFromString("1200.00"), CategoryID: 3, Date: time.Now()})

	summary, err := reportService.GetIncomeVsExpense(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !summary.Income.Equal(decimal.RequireFromString("3500.00")) {
		t.Errorf("Expected income 3500.00, got %s", summary.Income)
	}
	if !summary.Expense.Equal(decimal.RequireFromString("1200.00")) {
		t.Errorf("Expected expense 1200.00, got %s", summary.Expense)
	}
	if !summary.Net.Equal(decimal.RequireFromString("2300.00")) {
		t.Errorf("Expected net 2300.00, got %s", summary.Net)
	}
}
