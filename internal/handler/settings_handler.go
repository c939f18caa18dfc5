package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
	"github.com/pocketfolio/pocketfolio-backend/internal/middleware"
	"github.com/pocketfolio/pocketfolio-backend/internal/service"
	"github.com/pocketfolio/pocketfolio-backend/internal/settings"
)

// SettingsHandler handles display settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents the update settings request body
type UpdateSettingsRequest struct {
	CurrencyCode string `json:"currencyCode"`
	NumberFormat string `json:"numberFormat"`
}

// SettingsResponse represents user settings in API responses
type SettingsResponse struct {
	CurrencyCode   string `json:"currencyCode"`
	CurrencySymbol string `json:"currencySymbol"`
	NumberFormat   string `json:"numberFormat"`
}

func toSettingsResponse(stored *domain.Settings) SettingsResponse {
	cfg := settings.Config{CurrencyCode: stored.CurrencyCode, NumberFormat: stored.NumberFormat}
	return SettingsResponse{
		CurrencyCode:   stored.CurrencyCode,
		CurrencySymbol: cfg.Symbol(),
		NumberFormat:   stored.NumberFormat,
	}
}

// GetSettings handles GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	stored, err := h.settingsService.GetSettings(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get settings")
		return NewInternalError(c, "Failed to get settings")
	}

	return c.JSON(http.StatusOK, toSettingsResponse(stored))
}

// UpdateSettings handles PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	stored, err := h.settingsService.UpdateSettings(userID, service.UpdateSettingsInput{
		CurrencyCode: req.CurrencyCode,
		NumberFormat: req.NumberFormat,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCurrency) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "currencyCode", Message: "Unsupported currency code"},
			})
		}
		if errors.Is(err, domain.ErrInvalidNumberFormat) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "numberFormat", Message: "Unsupported number format"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update settings")
		return NewInternalError(c, "Failed to update settings")
	}

	log.Info().Str("user_id", userID.String()).Str("currency", stored.CurrencyCode).Msg("Settings updated")

	return c.JSON(http.StatusOK, toSettingsResponse(stored))
}
