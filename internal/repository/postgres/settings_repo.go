package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
)

// SettingsRepository implements domain.SettingsRepository using
// PostgreSQL.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&s.UserID, &s.CurrencyCode, &s.NumberFormat, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

// GetByUser retrieves a user's settings.
func (r *SettingsRepository) GetByUser(userID uuid.UUID) (*domain.Settings, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT user_id, currency_code, number_format, created_at, updated_at
		FROM user_settings WHERE user_id = $1`, userID)
	settings, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}
	return settings, nil
}

// Upsert creates or replaces a user's settings.
func (r *SettingsRepository) Upsert(settings *domain.Settings) (*domain.Settings, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_settings (user_id, currency_code, number_format)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET currency_code = EXCLUDED.currency_code,
		    number_format = EXCLUDED.number_format,
		    updated_at = now()
		RETURNING user_id, currency_code, number_format, created_at, updated_at`,
		settings.UserID, settings.CurrencyCode, settings.NumberFormat)

	return scanSettings(row)
}
