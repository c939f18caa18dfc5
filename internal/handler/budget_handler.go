package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
	"github.com/pocketfolio/pocketfolio-backend/internal/middleware"
	"github.com/pocketfolio/pocketfolio-backend/internal/service"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	CategoryID int32  `json:"categoryId"`
	Name       string `json:"name,omitempty"`
	Amount     string `json:"amount"`
	Period     string `json:"period"`
}

// UpdateBudgetRequest represents the update budget request body
type UpdateBudgetRequest struct {
	Name   *string `json:"name,omitempty"`
	Amount *string `json:"amount,omitempty"`
	Period *string `json:"period,omitempty"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID              string `json:"id"`
	CategoryID      int32  `json:"categoryId"`
	CategoryName    string `json:"categoryName"`
	Name            string `json:"name"`
	Amount          string `json:"amount"`
	CurrentSpending string `json:"currentSpending"`
	Remaining       string `json:"remaining"`
	Percentage      string `json:"percentage"`
	Period          string `json:"period"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toBudgetResponse(budget *domain.Budget) BudgetResponse {
	remaining := budget.Amount.Sub(budget.CurrentSpending)
	percentage := decimal.Zero
	if budget.Amount.IsPositive() {
		percentage = budget.CurrentSpending.Div(budget.Amount).Mul(decimal.NewFromInt(100))
	}
	return BudgetResponse{
		ID:              budget.ID.String(),
		CategoryID:      budget.CategoryID,
		CategoryName:    domain.CategoryByID(budget.CategoryID).Name,
		Name:            budget.Name,
		Amount:          budget.Amount.StringFixed(2),
		CurrentSpending: budget.CurrentSpending.StringFixed(2),
		Remaining:       remaining.StringFixed(2),
		Percentage:      percentage.StringFixed(2),
		Period:          string(budget.Period),
		CreatedAt:       budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       budget.UpdatedAt.Format(time.RFC3339),
	}
}

// budgetValidationError maps budget validation errors shared by create
// and update.
func budgetValidationError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		}), true
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		}), true
	case errors.Is(err, domain.ErrInvalidPeriod):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "period", Message: "Period must be one of: daily, weekly, monthly, yearly"},
		}), true
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category not found"},
		}), true
	case errors.Is(err, domain.ErrIncomeCategoryBudget):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Budgets cannot target the income category"},
		}), true
	}
	return nil, false
}

// CreateBudget handles POST /api/v1/budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	input := service.CreateBudgetInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Amount:     amount,
		Period:     domain.BudgetPeriod(req.Period),
	}

	budget, err := h.budgetService.CreateBudget(userID, input)
	if err != nil {
		if resp, handled := budgetValidationError(c, err); handled {
			return resp
		}
		if errors.Is(err, domain.ErrBudgetExists) {
			return NewConflictError(c, "A budget already exists for this category")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", req.CategoryID).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Str("user_id", userID.String()).Str("budget_id", budget.ID.String()).Int32("category_id", budget.CategoryID).Msg("Budget created")

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	budgets, err := h.budgetService.ListBudgets(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	responses := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		responses[i] = toBudgetResponse(budget)
	}

	return c.JSON(http.StatusOK, responses)
}

// GetBudget handles GET /api/v1/budgets/:id
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.budgetService.GetBudget(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("budget_id", id.String()).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// UpdateBudget handles PUT /api/v1/budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var patch domain.BudgetPatch
	patch.Name = req.Name

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		patch.Amount = &amount
	}

	if req.Period != nil {
		period := domain.BudgetPeriod(*req.Period)
		patch.Period = &period
	}

	budget, err := h.budgetService.UpdateBudget(userID, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		if resp, handled := budgetValidationError(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("budget_id", id.String()).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Str("user_id", userID.String()).Str("budget_id", id.String()).Msg("Budget updated")

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(userID, id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("budget_id", id.String()).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Str("user_id", userID.String()).Str("budget_id", id.String()).Msg("Budget deleted")

	return c.NoContent(http.StatusNoContent)
}

// ResetSpending handles POST /api/v1/budgets/:id/reset
func (h *BudgetHandler) ResetSpending(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	budget, err := h.budgetService.ResetSpending(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("budget_id", id.String()).Msg("Failed to reset budget spending")
		return NewInternalError(c, "Failed to reset budget spending")
	}

	log.Info().Str("user_id", userID.String()).Str("budget_id", id.String()).Msg("Budget spending reset")

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}
