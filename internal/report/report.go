// Package report derives dashboard and report figures from a full
// ledger snapshot. Every reader is a pure function over the entries it
// is given: no caching, no mutation, safe to call concurrently.
// Recomputing from scratch is deliberate; per-user ledgers stay in the
// thousands of entries.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfolio/pocketfolio-backend/internal/domain"
	"github.com/pocketfolio/pocketfolio-backend/internal/util"
)

// CategoryTotal is the total expense amount recorded against one
// category, joined with the category's display attributes.
type CategoryTotal struct {
	CategoryID int32           `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Amount     decimal.Decimal `json:"amount"`
}

// MonthlyTotal is the expense total for one calendar month.
type MonthlyTotal struct {
	Month  string          `json:"month"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeVsExpense sums the two sides of the ledger.
type IncomeVsExpense struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CategoryTotals sums expense entries by category. Income entries are
// ignored, and only categories with a positive total are returned, in
// category order.
func CategoryTotals(entries []*domain.Entry) []CategoryTotal {
	byCategory := make(map[int32]decimal.Decimal)
	for _, e := range entries {
		if e.IsIncome {
			continue
		}
		byCategory[e.CategoryID] = byCategory[e.CategoryID].Add(e.Amount)
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, c := range domain.Categories {
		amount, ok := byCategory[c.ID]
		if !ok || !amount.IsPositive() {
			continue
		}
		totals = append(totals, CategoryTotal{
			CategoryID: c.ID,
			Name:       c.Name,
			Color:      c.Color,
			Amount:     amount,
		})
	}
	return totals
}

// MonthlyTotals buckets expense entries by calendar month for the
// trailing monthsBack months ending at now's month. Months with no
// entries appear with a zero amount; the result is ordered oldest to
// newest.
func MonthlyTotals(entries []*domain.Entry, monthsBack int, now time.Time) []MonthlyTotal {
	if monthsBack < 1 {
		monthsBack = 1
	}

	index := make(map[string]int, monthsBack)
	totals := make([]MonthlyTotal, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		m := util.MonthsBack(now, i)
		index[util.MonthKey(m)] = len(totals)
		totals = append(totals, MonthlyTotal{
			Month:  util.MonthKey(m),
			Label:  util.MonthLabel(m),
			Amount: decimal.Zero,
		})
	}

	for _, e := range entries {
		if e.IsIncome {
			continue
		}
		i, ok := index[util.MonthKey(e.Date)]
		if !ok {
			continue
		}
		totals[i].Amount = totals[i].Amount.Add(e.Amount)
	}
	return totals
}

// Summarize returns the income total, expense total and their
// difference for the snapshot.
func Summarize(entries []*domain.Entry) IncomeVsExpense {
	var s IncomeVsExpense
	s.Income = decimal.Zero
	s.Expense = decimal.Zero
	for _, e := range entries {
		if e.IsIncome {
			s.Income = s.Income.Add(e.Amount)
		} else {
			s.Expense = s.Expense.Add(e.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}
