package domain

import (
	"time"

	"github.com/google/uuid"
)

// Settings holds a user's display preferences. They are an explicit
// record passed into formatting code, not ambient global state.
type Settings struct {
	UserID       uuid.UUID `json:"userId"`
	CurrencyCode string    `json:"currencyCode"`
	NumberFormat string    `json:"numberFormat"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SettingsRepository interface {
	GetByUser(userID uuid.UUID) (*Settings, error)
	Upsert(settings *Settings) (*Settings, error)
}
