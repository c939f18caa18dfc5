package testutil

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
)

// MockBudgetRepository is an in-memory implementation of
// domain.BudgetRepository. It enforces the one-budget-per-category
// constraint and applies IncrementSpending with the same clamp-at-zero
// semantics as the Postgres store.
type MockBudgetRepository struct {
	Budgets map[uuid.UUID]*domain.Budget

	// FindErr and IncrementErr, when set, are returned by the
	// corresponding methods to simulate store failures.
	FindErr      error
	IncrementErr error
}

// NewMockBudgetRepository creates a new MockBudgetRepository.
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: make(map[uuid.UUID]*domain.Budget)}
}

// AddBudget adds a budget to the mock repository (helper for tests).
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	m.Budgets[budget.ID] = budget
}

// Create creates a new budget, rejecting duplicates per (user, category).
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	for _, b := range m.Budgets {
		if b.UserID == budget.UserID && b.CategoryID == budget.CategoryID {
			return nil, domain.ErrBudgetExists
		}
	}
	budget.ID = uuid.New()
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget by ID within a user's scope.
func (m *MockBudgetRepository) GetByID(userID, id uuid.UUID) (*domain.Budget, error) {
	if b, ok := m.Budgets[id]; ok && b.UserID == userID {
		return b, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// FindByUserAndCategory retrieves the budget for a (user, category) pair.
func (m *MockBudgetRepository) FindByUserAndCategory(userID uuid.UUID, categoryID int32) (*domain.Budget, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, b := range m.Budgets {
		if b.UserID == userID && b.CategoryID == categoryID {
			return b, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// ListByUser retrieves all budgets for a user, newest first.
func (m *MockBudgetRepository) ListByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for _, b := range m.Budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].CreatedAt.After(budgets[j].CreatedAt)
	})
	return budgets, nil
}

// Update applies a budget patch.
func (m *MockBudgetRepository) Update(userID, id uuid.UUID, patch domain.BudgetPatch) (*domain.Budget, error) {
	budget, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		budget.Name = *patch.Name
	}
	if patch.Amount != nil {
		budget.Amount = *patch.Amount
	}
	if patch.Period != nil {
		budget.Period = *patch.Period
	}
	budget.UpdatedAt = time.Now()
	return budget, nil
}

// Delete removes a budget.
func (m *MockBudgetRepository) Delete(userID, id uuid.UUID) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.Budgets, id)
	return nil
}

// IncrementSpending adjusts a budget's running total, clamped at zero.
// Unknown budget IDs are a silent no-op, mirroring the conditional
// update in the Postgres store.
func (m *MockBudgetRepository) IncrementSpending(budgetID uuid.UUID, delta decimal.Decimal) error {
	if m.IncrementErr != nil {
		return m.IncrementErr
	}
	budget, ok := m.Budgets[budgetID]
	if !ok {
		return nil
	}
	next := budget.CurrentSpending.Add(delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	budget.CurrentSpending = next
	budget.UpdatedAt = time.Now()
	return nil
}

// ResetSpending zeroes a budget's running total.
func (m *MockBudgetRepository) ResetSpending(userID, id uuid.UUID) (*domain.Budget, error) {
	budget, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	budget.CurrentSpending = decimal.Zero
	budget.UpdatedAt = time.Now()
	return budget, nil
}

// MockEntryRepository is an in-memory implementation of
// domain.EntryRepository. Budget adjustments passed to the mutation
// methods are forwarded to the paired budget repository, imitating the
// single transaction the Postgres store uses for both writes.
type MockEntryRepository struct {
	Entries    map[uuid.UUID]*domain.Entry
	BudgetRepo *MockBudgetRepository

	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewMockEntryRepository creates a new MockEntryRepository whose
// adjustments apply against the given budget repository.
func NewMockEntryRepository(budgetRepo *MockBudgetRepository) *MockEntryRepository {
	return &MockEntryRepository{
		Entries:    make(map[uuid.UUID]*domain.Entry),
		BudgetRepo: budgetRepo,
	}
}

// AddEntry adds an entry to the mock repository (helper for tests).
func (m *MockEntryRepository) AddEntry(entry *domain.Entry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.Entries[entry.ID] = entry
}

func (m *MockEntryRepository) applyAdjustments(adjustments []domain.BudgetAdjustment) error {
	for _, adj := range adjustments {
		if err := m.BudgetRepo.IncrementSpending(adj.BudgetID, adj.Delta); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrReconciliationFailed, err)
		}
	}
	return nil
}

// Create persists a new entry and applies its budget adjustments.
func (m *MockEntryRepository) Create(entry *domain.Entry, adjustments []domain.BudgetAdjustment) (*domain.Entry, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	m.Entries[entry.ID] = entry
	if err := m.applyAdjustments(adjustments); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetByID retrieves an entry by ID within a user's scope.
func (m *MockEntryRepository) GetByID(userID, id uuid.UUID) (*domain.Entry, error) {
	if e, ok := m.Entries[id]; ok && e.UserID == userID {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

// Update applies an entry patch and its budget adjustments.
func (m *MockEntryRepository) Update(userID, id uuid.UUID, patch domain.EntryPatch, adjustments []domain.BudgetAdjustment) (*domain.Entry, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	entry, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	next := patch.ApplyTo(entry)
	next.UpdatedAt = time.Now()
	m.Entries[id] = &next
	if err := m.applyAdjustments(adjustments); err != nil {
		return nil, err
	}
	return &next, nil
}

// Delete removes an entry and applies its budget adjustments.
func (m *MockEntryRepository) Delete(userID, id uuid.UUID, adjustments []domain.BudgetAdjustment) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.Entries, id)
	return m.applyAdjustments(adjustments)
}

// ListByUser retrieves all entries for a user, newest date first.
func (m *MockEntryRepository) ListByUser(userID uuid.UUID) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for _, e := range m.Entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// MockSettingsRepository is an in-memory implementation of
// domain.SettingsRepository.
type MockSettingsRepository struct {
	Settings map[uuid.UUID]*domain.Settings
}

// NewMockSettingsRepository creates a new MockSettingsRepository.
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{Settings: make(map[uuid.UUID]*domain.Settings)}
}

// GetByUser retrieves a user's settings.
func (m *MockSettingsRepository) GetByUser(userID uuid.UUID) (*domain.Settings, error) {
	if s, ok := m.Settings[userID]; ok {
		return s, nil
	}
	return nil, domain.ErrSettingsNotFound
}

// Upsert creates or replaces a user's settings.
func (m *MockSettingsRepository) Upsert(settings *domain.Settings) (*domain.Settings, error) {
	settings.UpdatedAt = time.Now()
	if existing, ok := m.Settings[settings.UserID]; ok {
		settings.CreatedAt = existing.CreatedAt
	} else {
		settings.CreatedAt = settings.UpdatedAt
	}
	m.Settings[settings.UserID] = settings
	return settings, nil
}
