package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
)

// CategoryHandler serves the fixed category catalogue
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	IsIncome bool   `json:"isIncome"`
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	responses := make([]CategoryResponse, len(domain.Categories))
	for i, cat := range domain.Categories {
		responses[i] = CategoryResponse{
			ID:       cat.ID,
			Name:     cat.Name,
			Color:    cat.Color,
			Icon:     cat.Icon,
			IsIncome: cat.ID == domain.IncomeCategoryID,
		}
	}
	return c.JSON(http.StatusOK, responses)
}
