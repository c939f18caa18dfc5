package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
	"github.com/pocketfolio/pocketfolio-backend/internal/service"
	"github.com/pocketfolio/pocketfolio-backend/internal/testutil"
)

func newReportHandler() (*ReportHandler, *testutil.MockEntryRepository, *testutil.MockBudgetRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	entryRepo := testutil.NewMockEntryRepository(budgetRepo)
	settingsRepo := testutil.NewMockSettingsRepository()
	reportService := service.NewReportService(entryRepo)
	budgetService := service.NewBudgetService(budgetRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	return NewReportHandler(reportService, budgetService, settingsService), entryRepo, budgetRepo
}

func TestGetCategoryTotals(t *testing.T) {
	e := echo.New()
	handler, entryRepo, _ := newReportHandler()

	userID := uuid.New()
	entryRepo.AddEntry(&domain.Entry{
		ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(30),
		CategoryID: 1, Date: time.Now(),
	})
	entryRepo.AddEntry(&domain.Entry{
		ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(20),
		CategoryID: 1, Date: time.Now(),
	})
	entryRepo.AddEntry(&domain.Entry{
		ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(1000),
		CategoryID: domain.IncomeCategoryID, IsIncome: true, Date: time.Now(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/category-totals", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUserContext(c, userID)

	if err := handler.GetCategoryTotals(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var responses []CategoryTotalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &responses); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("Expected 1 category total, got %d", len(responses))
	}
	if responses[0].Amount != "50.00" {
		t.Errorf("Expected amount '50.00', got %s", responses[0].Amount)
	}
	if responses[0].Name != "Food & Dining" {
		t.Errorf("Expected name 'Food & Dining', got %s", responses[0].Name)
	}
}

func TestGetMonthlyTotals_DefaultWindow(t *testing.T) {
	e := echo.New()
	handler, entryRepo, _ := newReportHandler()

	userID := uuid.New()
	entryRepo.AddEntry(&domain.Entry{
		ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(75),
		CategoryID: 2, Date: time.Now(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly-totals", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUserContext(c, userID)

	if err := handler.GetMonthlyTotals(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var responses []MonthlyTotalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &responses); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(responses) != service.ReportMonthsBack {
		t.Fatalf("Expected %d months, got %d", service.ReportMonthsBack, len(responses))
	}
	// Newest month is last and carries the only expense
	if responses[len(responses)-1].Amount != "75.00" {
		t.Errorf("Expected current month amount '75.00', got %s", responses[len(responses)-1].Amount)
	}
	for _, r := range responses[:len(responses)-1] {
		if r.Amount != "0.00" {
			t.Errorf("Expected zero-filled month %s, got %s", r.Month, r.Amount)
		}
	}
}

func TestGetMonthlyTotals_InvalidMonths(t *testing.T) {
	e := echo.New()
	handler, _, _ := newReportHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly-totals?months=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUserContext(c, uuid.New())

	if err := handler.GetMonthlyTotals(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetIncomeVsExpense(t *testing.T) {
	e := echo.New()
	handler, entryRepo, _ := newReportHandler()

	userID := uuid.New()
	entryRepo.AddEntry(&domain.Entry{
		ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(3000),
		CategoryID: domain.IncomeCategoryID, IsIncome: true, Date: time.Now(),
	})
	entryRepo.AddEntry(&domain.Entry{
		ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(1200),
		CategoryID: 3, Date: time.Now(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/income-vs-expense", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUserContext(c, userID)

	if err := handler.GetIncomeVsExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response IncomeVsExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Income != "3000.00" {
		t.Errorf("Expected income '3000.00', got %s", response.Income)
	}
	if response.Expense != "1200.00" {
		t.Errorf("Expected expense '1200.00', got %s", response.Expense)
	}
	if response.Net != "1800.00" {
		t.Errorf("Expected net '1800.00', got %s", response.Net)
	}
}

func TestGetSummary_Dashboard(t *testing.T) {
	e := echo.New()
	handler, entryRepo, budgetRepo := newReportHandler()

	userID := uuid.New()
	budgetRepo.AddBudget(&domain.Budget{
		ID:              uuid.New(),
		UserID:          userID,
		CategoryID:      1,
		Name:            "Food & Dining Budget",
		Amount:          decimal.NewFromInt(500),
		CurrentSpending: decimal.NewFromInt(50),
		Period:          domain.BudgetPeriodMonthly,
	})
	entryRepo.AddEntry(&domain.Entry{
		ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(2000),
		CategoryID: domain.IncomeCategoryID, IsIncome: true, Date: time.Now(),
	})
	entryRepo.AddEntry(&domain.Entry{
		ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(50),
		CategoryID: 1, Date: time.Now(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUserContext(c, userID)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response DashboardSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.NetBalance != "1950.00" {
		t.Errorf("Expected net balance '1950.00', got %s", response.NetBalance)
	}
	// Defaults to INR display settings for a fresh user
	if response.FormattedBalance != "₹1,950.00" {
		t.Errorf("Expected formatted balance '₹1,950.00', got %s", response.FormattedBalance)
	}
	if len(response.Budgets) != 1 {
		t.Fatalf("Expected 1 budget, got %d", len(response.Budgets))
	}
	if response.Budgets[0].Remaining != "450.00" {
		t.Errorf("Expected remaining '450.00', got %s", response.Budgets[0].Remaining)
	}
	if len(response.MonthlySpending) != service.DefaultMonthsBack {
		t.Errorf("Expected %d months, got %d", service.DefaultMonthsBack, len(response.MonthlySpending))
	}
}
