// Package report computes month-bounded income/expense totals and
// per-category expense breakdowns from the transaction set.
package report

import (
	"sort"
	"time"

	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/service"
)

// MonthRange returns the closed interval covering one calendar month as
// epoch milliseconds: the first instant of the month through 23:59:59.999
// of its last day. Month is zero-based.
func MonthRange(month, year int, loc *time.Location) (start, end int64) {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)
	return first.UnixMilli(), last.UnixMilli()
}

// Summarize aggregates transactions falling in the closed interval
// [start, end] (epoch milliseconds). Sums are kept at full precision;
// rounding to two decimals happens only at render time.
//
// The breakdown contains one row per category with a nonzero expense total,
// sorted descending by amount. Transactions whose category name matches no
// known category still count toward TotalExpenses but appear in no row;
// categories with no matching expenses are excluded.
func Summarize(transactions []model.Transaction, categories []model.Category, start, end int64) service.MonthlySummary {
	var summary service.MonthlySummary

	byCategory := make(map[string]float64)
	for _, txn := range transactions {
		if txn.Date < start || txn.Date > end {
			continue
		}
		if txn.IsExpense {
			summary.TotalExpenses += txn.Amount
			byCategory[txn.Category] += txn.Amount
		} else {
			summary.TotalIncome += txn.Amount
		}
	}

	for _, cat := range categories {
		amount := byCategory[cat.Name]
		if amount == 0 {
			continue
		}
		percentage := 0.0
		if summary.TotalExpenses > 0 {
			percentage = amount / summary.TotalExpenses * 100
		}
		summary.Breakdown = append(summary.Breakdown, service.CategorySummary{
			Category:   cat,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	sort.Slice(summary.Breakdown, func(i, j int) bool {
		return summary.Breakdown[i].Amount > summary.Breakdown[j].Amount
	})

	return summary
}
