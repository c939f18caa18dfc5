package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
	"github.com/pocketfolio/pocketfolio-backend/internal/report"
)

// Default and maximum trailing-month windows for monthly totals. The
// dashboard asks for six months, the reports page for twelve.
const (
	DefaultMonthsBack = 6
	ReportMonthsBack  = 12
	MaxMonthsBack     = 24
)

// ReportService derives report figures for a user. It fetches the full
// ledger snapshot and hands it to the pure readers in the report
// package; nothing is cached between calls.
type ReportService struct {
	entryRepo domain.EntryRepository
	now       func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(entryRepo domain.EntryRepository) *ReportService {
	return &ReportService{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

// GetCategoryTotals returns per-category expense totals for the user.
func (s *ReportService) GetCategoryTotals(userID uuid.UUID) ([]report.CategoryTotal, error) {
	entries, err := s.entryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return report.CategoryTotals(entries), nil
}

// GetMonthlyTotals returns zero-filled monthly expense totals for the
// trailing monthsBack months. Out-of-range windows fall back to the
// default.
func (s *ReportService) GetMonthlyTotals(userID uuid.UUID, monthsBack int) ([]report.MonthlyTotal, error) {
	if monthsBack < 1 || monthsBack > MaxMonthsBack {
		monthsBack = DefaultMonthsBack
	}
	entries, err := s.entryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return report.MonthlyTotals(entries, monthsBack, s.now().UTC()), nil
}

// GetIncomeVsExpense returns the user's income total, expense total and
// net.
func (s *ReportService) GetIncomeVsExpense(userID uuid.UUID) (report.IncomeVsExpense, error) {
	entries, err := s.entryRepo.ListByUser(userID)
	if err != nil {
		return report.IncomeVsExpense{}, err
	}
	return report.Summarize(entries), nil
}
