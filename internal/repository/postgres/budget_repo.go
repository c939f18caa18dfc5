package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL.
// The budgets table carries a UNIQUE (user_id, category_id) constraint,
// so the one-budget-per-category rule is enforced by the store rather
// than by first-match lookup.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, user_id, category_id, name, amount, current_spending, period, created_at, updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var amount, spending pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Name, &amount, &spending, &b.Period, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	b.Amount = pgNumericToDecimal(amount)
	b.CurrentSpending = pgNumericToDecimal(spending)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

// Create inserts a new budget. A duplicate (user, category) pair
// surfaces as ErrBudgetExists.
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, err
	}
	spending, err := decimalToPgNumeric(budget.CurrentSpending)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (id, user_id, category_id, name, amount, current_spending, period)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+budgetColumns,
		uuid.New(), budget.UserID, budget.CategoryID, budget.Name, amount, spending, string(budget.Period))

	created, err := scanBudget(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrBudgetExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a budget by ID within a user's scope.
func (r *BudgetRepository) GetByID(userID, id uuid.UUID) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// FindByUserAndCategory retrieves the budget for a (user, category) pair.
func (r *BudgetRepository) FindByUserAndCategory(userID uuid.UUID, categoryID int32) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 AND category_id = $2`, userID, categoryID)
	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// ListByUser retrieves all budgets for a user, newest first.
func (r *BudgetRepository) ListByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// Update applies a budget patch.
func (r *BudgetRepository) Update(userID, id uuid.UUID, patch domain.BudgetPatch) (*domain.Budget, error) {
	ctx := context.Background()

	var name pgtype.Text
	if patch.Name != nil {
		name.String = *patch.Name
		name.Valid = true
	}
	var amount pgtype.Numeric
	if patch.Amount != nil {
		converted, err := decimalToPgNumeric(*patch.Amount)
		if err != nil {
			return nil, err
		}
		amount = converted
	}
	var period pgtype.Text
	if patch.Period != nil {
		period.String = string(*patch.Period)
		period.Valid = true
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE budgets
		SET name = COALESCE($3, name),
		    amount = COALESCE($4, amount),
		    period = COALESCE($5, period),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+budgetColumns,
		id, userID, name, amount, period)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// Delete removes a budget.
func (r *BudgetRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

// IncrementSpending applies a clamped spending delta as a single
// conditional update, so concurrent reconciliations serialize on the
// row instead of racing through read-modify-write. A missing budget is
// a no-op: the budget may have been deleted after the adjustment was
// planned, and a vanished budget needs no bookkeeping.
func (r *BudgetRepository) IncrementSpending(budgetID uuid.UUID, delta decimal.Decimal) error {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(delta)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		UPDATE budgets
		SET current_spending = GREATEST(current_spending + $2, 0),
		    updated_at = now()
		WHERE id = $1`,
		budgetID, amount)
	return err
}

// ResetSpending zeroes the running total.
func (r *BudgetRepository) ResetSpending(userID, id uuid.UUID) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE budgets
		SET current_spending = 0, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+budgetColumns,
		id, userID)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}
