package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
)

// EntryRepository implements domain.EntryRepository using PostgreSQL.
// Every mutation runs in one transaction together with its budget
// adjustments, so the ledger and the running totals can never diverge
// through a partial write. Failures on the adjustment side are wrapped
// in ErrReconciliationFailed before the rollback is reported.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, user_id, amount, description, date, category_id, is_income, created_at, updated_at`

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var e domain.Entry
	var amount pgtype.Numeric
	var date, createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&e.ID, &e.UserID, &amount, &e.Description, &date, &e.CategoryID, &e.IsIncome, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.Amount = pgNumericToDecimal(amount)
	e.Date = date.Time
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	return &e, nil
}

func applyAdjustments(ctx context.Context, tx pgx.Tx, adjustments []domain.BudgetAdjustment) error {
	for _, adj := range adjustments {
		delta, err := decimalToPgNumeric(adj.Delta)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrReconciliationFailed, err)
		}
		_, err = tx.Exec(ctx, `
			UPDATE budgets
			SET current_spending = GREATEST(current_spending + $2, 0),
			    updated_at = now()
			WHERE id = $1`,
			adj.BudgetID, delta)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrReconciliationFailed, err)
		}
	}
	return nil
}

// Create inserts a new entry and applies its budget adjustments in one
// transaction.
func (r *EntryRepository) Create(entry *domain.Entry, adjustments []domain.BudgetAdjustment) (*domain.Entry, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(entry.Amount)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO entries (id, user_id, amount, description, date, category_id, is_income)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+entryColumns,
		uuid.New(), entry.UserID, amount, entry.Description, entry.Date, entry.CategoryID, entry.IsIncome)

	created, err := scanEntry(row)
	if err != nil {
		return nil, err
	}

	if err := applyAdjustments(ctx, tx, adjustments); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an entry by ID within a user's scope.
func (r *EntryRepository) GetByID(userID, id uuid.UUID) (*domain.Entry, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// Update applies an entry patch and its budget adjustments in one
// transaction.
func (r *EntryRepository) Update(userID, id uuid.UUID, patch domain.EntryPatch, adjustments []domain.BudgetAdjustment) (*domain.Entry, error) {
	ctx := context.Background()

	var amount pgtype.Numeric
	if patch.Amount != nil {
		converted, err := decimalToPgNumeric(*patch.Amount)
		if err != nil {
			return nil, err
		}
		amount = converted
	}
	var description pgtype.Text
	if patch.Description != nil {
		description.String = *patch.Description
		description.Valid = true
	}
	var date pgtype.Timestamptz
	if patch.Date != nil {
		date.Time = *patch.Date
		date.Valid = true
	}
	var categoryID pgtype.Int4
	if patch.CategoryID != nil {
		categoryID.Int32 = *patch.CategoryID
		categoryID.Valid = true
	}
	var isIncome pgtype.Bool
	if patch.IsIncome != nil {
		isIncome.Bool = *patch.IsIncome
		isIncome.Valid = true
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE entries
		SET amount = COALESCE($3, amount),
		    description = COALESCE($4, description),
		    date = COALESCE($5, date),
		    category_id = COALESCE($6, category_id),
		    is_income = COALESCE($7, is_income),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+entryColumns,
		id, userID, amount, description, date, categoryID, isIncome)

	updated, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	if err := applyAdjustments(ctx, tx, adjustments); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an entry and applies its budget adjustments in one
// transaction.
func (r *EntryRepository) Delete(userID, id uuid.UUID, adjustments []domain.BudgetAdjustment) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	if err := applyAdjustments(ctx, tx, adjustments); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByUser retrieves the user's full ledger, newest date first.
func (r *EntryRepository) ListByUser(userID uuid.UUID) ([]*domain.Entry, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
