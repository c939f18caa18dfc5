package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pocketfolio/pocketfolio-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, entryHandler *EntryHandler, budgetHandler *BudgetHandler, categoryHandler *CategoryHandler, reportHandler *ReportHandler, settingsHandler *SettingsHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API version 1; every route resolves the caller from X-User-ID
	api := e.Group("/api/v1")
	api.Use(middleware.UserContext())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Entry routes
	entries := api.Group("/entries")
	entries.POST("", entryHandler.CreateEntry)
	entries.GET("", entryHandler.GetEntries)
	entries.GET("/:id", entryHandler.GetEntry)
	entries.PUT("/:id", entryHandler.UpdateEntry)
	entries.DELETE("/:id", entryHandler.DeleteEntry)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.POST("/:id/reset", budgetHandler.ResetSpending)

	// Category catalogue
	api.GET("/categories", categoryHandler.GetCategories)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/category-totals", reportHandler.GetCategoryTotals)
	reports.GET("/monthly-totals", reportHandler.GetMonthlyTotals)
	reports.GET("/income-vs-expense", reportHandler.GetIncomeVsExpense)

	// Dashboard routes
	api.GET("/dashboard/summary", reportHandler.GetSummary)

	// Settings routes
	settings := api.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)
}
