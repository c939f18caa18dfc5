package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
	"github.com/pocketfolio/pocketfolio-backend/internal/settings"
)

// SettingsService handles per-user display settings.
type SettingsService struct {
	settingsRepo domain.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo domain.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings retrieves the user's settings, falling back to defaults
// for users who never saved any.
func (s *SettingsService) GetSettings(userID uuid.UUID) (*domain.Settings, error) {
	stored, err := s.settingsRepo.GetByUser(userID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return &domain.Settings{
			UserID:       userID,
			CurrencyCode: settings.DefaultCurrency,
			NumberFormat: settings.DefaultNumberFormat,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// UpdateSettingsInput holds the input for updating settings.
type UpdateSettingsInput struct {
	CurrencyCode string
	NumberFormat string
}

// UpdateSettings validates and stores the user's display settings.
func (s *SettingsService) UpdateSettings(userID uuid.UUID, input UpdateSettingsInput) (*domain.Settings, error) {
	if !settings.ValidCurrency(input.CurrencyCode) {
		return nil, domain.ErrInvalidCurrency
	}
	if !settings.ValidNumberFormat(input.NumberFormat) {
		return nil, domain.ErrInvalidNumberFormat
	}

	return s.settingsRepo.Upsert(&domain.Settings{
		UserID:       userID,
		CurrencyCode: input.CurrencyCode,
		NumberFormat: input.NumberFormat,
	})
}

// FormatConfig converts stored settings into the formatting
// configuration passed to settings.FormatAmount.
func (s *SettingsService) FormatConfig(userID uuid.UUID) (settings.Config, error) {
	stored, err := s.GetSettings(userID)
	if err != nil {
		return settings.Config{}, err
	}
	return settings.Config{
		CurrencyCode: stored.CurrencyCode,
		NumberFormat: stored.NumberFormat,
	}, nil
}
