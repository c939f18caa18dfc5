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

// EntryHandler handles ledger entry HTTP requests
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// CreateEntryRequest represents the create entry request body
type CreateEntryRequest struct {
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	Date        *string `json:"date,omitempty"`
	CategoryID  *int32  `json:"categoryId,omitempty"`
	IsIncome    bool    `json:"isIncome"`
}

// UpdateEntryRequest represents the update entry request body
type UpdateEntryRequest struct {
	Amount      *string `json:"amount,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	CategoryID  *int32  `json:"categoryId,omitempty"`
	IsIncome    *bool   `json:"isIncome,omitempty"`
}

// EntryResponse represents an entry in API responses
type EntryResponse struct {
	ID           string `json:"id"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	CategoryID   int32  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	IsIncome     bool   `json:"isIncome"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// parseEntryDate accepts full RFC 3339 timestamps or bare dates.
func parseEntryDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

func toEntryResponse(entry *domain.Entry) EntryResponse {
	return EntryResponse{
		ID:           entry.ID.String(),
		Amount:       entry.Amount.StringFixed(2),
		Description:  entry.Description,
		Date:         entry.Date.Format("2006-01-02"),
		CategoryID:   entry.CategoryID,
		CategoryName: domain.CategoryByID(entry.CategoryID).Name,
		IsIncome:     entry.IsIncome,
		CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    entry.UpdatedAt.Format(time.RFC3339),
	}
}

// entryServiceError maps service errors to problem responses shared by
// create and update.
func entryServiceError(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		}), true
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 500 characters or less"},
		}), true
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category is required for expenses"},
		}), true
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category not found"},
		}), true
	case errors.Is(err, domain.ErrReconciliationFailed):
		return NewInternalError(c, "Failed to reconcile budget spending"), true
	}
	return nil, false
}

// CreateEntry handles POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	var req CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date *time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, err := parseEntryDate(*req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD or RFC 3339 format"},
			})
		}
		date = &parsed
	}

	input := service.RecordEntryInput{
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		CategoryID:  req.CategoryID,
		IsIncome:    req.IsIncome,
	}

	entry, err := h.entryService.RecordEntry(userID, input)
	if err != nil {
		if resp, handled := entryServiceError(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create entry")
		return NewInternalError(c, "Failed to create entry")
	}

	log.Info().Str("user_id", userID.String()).Str("entry_id", entry.ID.String()).Str("amount", entry.Amount.String()).Bool("is_income", entry.IsIncome).Msg("Entry created")

	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// GetEntries handles GET /api/v1/entries
func (h *EntryHandler) GetEntries(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	entries, err := h.entryService.ListEntries(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list entries")
		return NewInternalError(c, "Failed to list entries")
	}

	responses := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = toEntryResponse(entry)
	}

	return c.JSON(http.StatusOK, responses)
}

// GetEntry handles GET /api/v1/entries/:id
func (h *EntryHandler) GetEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	entry, err := h.entryService.GetEntry(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("entry_id", id.String()).Msg("Failed to get entry")
		return NewInternalError(c, "Failed to get entry")
	}

	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// UpdateEntry handles PUT /api/v1/entries/:id
func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	var req UpdateEntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var patch domain.EntryPatch

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		patch.Amount = &amount
	}

	patch.Description = req.Description

	if req.Date != nil && *req.Date != "" {
		parsed, err := parseEntryDate(*req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD or RFC 3339 format"},
			})
		}
		patch.Date = &parsed
	}

	patch.CategoryID = req.CategoryID
	patch.IsIncome = req.IsIncome

	entry, err := h.entryService.EditEntry(userID, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		if resp, handled := entryServiceError(c, err); handled {
			return resp
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("entry_id", id.String()).Msg("Failed to update entry")
		return NewInternalError(c, "Failed to update entry")
	}

	log.Info().Str("user_id", userID.String()).Str("entry_id", id.String()).Msg("Entry updated")

	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "User required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid entry ID", nil)
	}

	if err := h.entryService.RemoveEntry(userID, id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NewNotFoundError(c, "Entry not found")
		}
		if errors.Is(err, domain.ErrReconciliationFailed) {
			return NewInternalError(c, "Failed to reconcile budget spending")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("entry_id", id.String()).Msg("Failed to delete entry")
		return NewInternalError(c, "Failed to delete entry")
	}

	log.Info().Str("user_id", userID.String()).Str("entry_id", id.String()).Msg("Entry deleted")

	return c.NoContent(http.StatusNoContent)
}
