package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/pocketfolio/pocketfolio-backend/internal/middleware"
	"github.com/pocketfolio/pocketfolio-backend/internal/report"
	"github.com/pocketfolio/pocketfolio-backend/internal/service"
	"github.com/pocketfolio/pocketfolio-backend/internal/settings"
)

// ReportHandler handles report and dashboard HTTP requests
type ReportHandler struct {
	reportService   *service.ReportService
	budgetService   *service.BudgetService
	settingsService *service.SettingsService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService, budgetService *service.BudgetService, settingsService *service.SettingsService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		budgetService:   budgetService,
		settingsService: settingsService,
	}
}

// CategoryTotalResponse represents one category's expense total
type CategoryTotalResponse struct {
	CategoryID int32  `json:"categoryId"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Amount     string `json:"amount"`
}

// MonthlyTotalResponse represents one month's expense total
type MonthlyTotalResponse struct {
	Month  string `json:"month"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// IncomeVsExpenseResponse represents the two ledger sides and their net
type IncomeVsExpenseResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// DashboardSummaryResponse aggregates the dashboard's opening view
type DashboardSummaryResponse struct {
	TotalIncome      string                  `json:"totalIncome"`
	TotalExpense     string                  `json:"totalExpense"`
	NetBalance       string                  `json:"netBalance"`
	FormattedBalance string                  `json:"formattedBalance"`
	MonthlySpending  []MonthlyTotalResponse  `json:"monthlySpending"`
	CategorySpending []CategoryTotalResponse `json:"categorySpending"`
	Budgets          []BudgetResponse        `json:"budgets"`
}

func toCategoryTotalResponses(totals []report.CategoryTotal) []CategoryTotalResponse {
	responses := make([]CategoryTotalResponse, len(totals))
	for i, t := range totals {
		responses[i] = CategoryTotalResponse{
			CategoryID: t.CategoryID,
			Name:       t.Name,
			Color:      t.Color,
			Amount:     t.Amount.StringFixed(2),
		}
	}
	return responses
}

func toMonthlyTotalResponses(totals []report.MonthlyTotal) []MonthlyTotalResponse {
	responses := make([]MonthlyTotalResponse, len(totals))
	for i, t := range totals {
		responses[i] = MonthlyTotalResponse{
			Month:  t.Month,
			Label:  t.Label,
			Amount: t.Amount.StringFixed(2),
		}
	}
	return responses
}

// GetCategoryTotals handles GET /api/v1/reports/category-totals
func (h *ReportHandler) GetCategoryTotals(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	totals, err := h.reportService.GetCategoryTotals(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get category totals")
		return NewInternalError(c, "Failed to get category totals")
	}

	return c.JSON(http.StatusOK, toCategoryTotalResponses(totals))
}

// GetMonthlyTotals handles GET /api/v1/reports/monthly-totals
func (h *ReportHandler) GetMonthlyTotals(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	monthsBack := service.ReportMonthsBack
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid months", []ValidationError{
				{Field: "months", Message: "Must be a whole number"},
			})
		}
		monthsBack = parsed
	}

	totals, err := h.reportService.GetMonthlyTotals(userID, monthsBack)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Int("months_back", monthsBack).Msg("Failed to get monthly totals")
		return NewInternalError(c, "Failed to get monthly totals")
	}

	return c.JSON(http.StatusOK, toMonthlyTotalResponses(totals))
}

// GetIncomeVsExpense handles GET /api/v1/reports/income-vs-expense
func (h *ReportHandler) GetIncomeVsExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	summary, err := h.reportService.GetIncomeVsExpense(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get income vs expense")
		return NewInternalError(c, "Failed to get income vs expense")
	}

	return c.JSON(http.StatusOK, IncomeVsExpenseResponse{
		Income:  summary.Income.StringFixed(2),
		Expense: summary.Expense.StringFixed(2),
		Net:     summary.Net.StringFixed(2),
	})
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *ReportHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	summary, err := h.reportService.GetIncomeVsExpense(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	monthly, err := h.reportService.GetMonthlyTotals(userID, service.DefaultMonthsBack)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard monthly totals")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	categories, err := h.reportService.GetCategoryTotals(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard category totals")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	budgets, err := h.budgetService.ListBudgets(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard budgets")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	cfg, err := h.settingsService.FormatConfig(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get display settings")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	budgetResponses := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		budgetResponses[i] = toBudgetResponse(budget)
	}

	return c.JSON(http.StatusOK, DashboardSummaryResponse{
		TotalIncome:      summary.Income.StringFixed(2),
		TotalExpense:     summary.Expense.StringFixed(2),
		NetBalance:       summary.Net.StringFixed(2),
		FormattedBalance: settings.FormatAmount(cfg, summary.Net),
		MonthlySpending:  toMonthlyTotalResponses(monthly),
		CategorySpending: toCategoryTotalResponses(categories),
		Budgets:          budgetResponses,
	})
}
