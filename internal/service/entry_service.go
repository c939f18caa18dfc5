package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
)

// EntryService handles ledger entry business logic. Every mutation is
// paired with the budget adjustments the reconciler plans for it, and
// the repository applies both as one unit.
type EntryService struct {
	entryRepo  domain.EntryRepository
	reconciler *ReconcileService
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo domain.EntryRepository, reconciler *ReconcileService) *EntryService {
	return &EntryService{
		entryRepo:  entryRepo,
		reconciler: reconciler,
	}
}

// RecordEntryInput holds the input for recording a new entry.
type RecordEntryInput struct {
	Amount      decimal.Decimal
	Description string
	Date        *time.Time
	CategoryID  *int32
	IsIncome    bool
}

// RecordEntry validates, persists and reconciles a new ledger entry.
func (s *EntryService) RecordEntry(userID uuid.UUID, input RecordEntryInput) (*domain.Entry, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if len(input.Description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}

	// Income entries always live in the reserved category; expenses
	// must name one of the known categories.
	categoryID := domain.IncomeCategoryID
	if !input.IsIncome {
		if input.CategoryID == nil {
			return nil, domain.ErrCategoryRequired
		}
		if !domain.ValidCategoryID(*input.CategoryID) {
			return nil, domain.ErrCategoryNotFound
		}
		categoryID = *input.CategoryID
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	entry := &domain.Entry{
		UserID:      userID,
		Amount:      input.Amount,
		Description: input.Description,
		Date:        date,
		CategoryID:  categoryID,
		IsIncome:    input.IsIncome,
	}

	adjustments, err := s.reconciler.PlanNewEntry(entry)
	if err != nil {
		return nil, err
	}

	return s.entryRepo.Create(entry, adjustments)
}

// EditEntry validates and applies a patch to an existing entry,
// reconciling the affected budgets against the entry's prior state.
// Category, amount and income-flag changes may arrive in any
// combination.
func (s *EntryService) EditEntry(userID, id uuid.UUID, patch domain.EntryPatch) (*domain.Entry, error) {
	if patch.Amount != nil && patch.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if patch.Description != nil && len(*patch.Description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}
	if patch.CategoryID != nil && !domain.ValidCategoryID(*patch.CategoryID) {
		return nil, domain.ErrCategoryNotFound
	}

	prior, err := s.entryRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return prior, nil
	}

	next := patch.ApplyTo(prior)
	adjustments, err := s.reconciler.PlanEntryEdit(prior, &next)
	if err != nil {
		return nil, err
	}

	return s.entryRepo.Update(userID, id, patch, adjustments)
}

// RemoveEntry deletes an entry and reverses its effective contribution
// from the matching budget.
func (s *EntryService) RemoveEntry(userID, id uuid.UUID) error {
	prior, err := s.entryRepo.GetByID(userID, id)
	if err != nil {
		return err
	}

	adjustments, err := s.reconciler.PlanEntryDelete(prior)
	if err != nil {
		return err
	}

	return s.entryRepo.Delete(userID, id, adjustments)
}

// GetEntry retrieves a single entry.
func (s *EntryService) GetEntry(userID, id uuid.UUID) (*domain.Entry, error) {
	return s.entryRepo.GetByID(userID, id)
}

// ListEntries retrieves the user's full ledger, newest first.
func (s *EntryService) ListEntries(userID uuid.UUID) ([]*domain.Entry, error) {
	return s.entryRepo.ListByUser(userID)
}
