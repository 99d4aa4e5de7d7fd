package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/fintrack/internal/budget"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/service"
)

// FormatAmount renders a monetary amount with the currency symbol, rounded
// to two decimals. Internal sums keep full precision; this is the only
// rounding point.
func FormatAmount(currency string, amount float64) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}

// FormatDate renders an epoch-millisecond date as YYYY-MM-DD.
func FormatDate(millis int64) string {
	return time.UnixMilli(millis).Format("2006-01-02")
}

// MonthLabel renders a zero-based month and year, e.g. "June 2024".
func MonthLabel(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month+1), year)
}

// RenderSummary renders a monthly summary with its category breakdown.
func RenderSummary(summary service.MonthlySummary, currency string, month, year int) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Summary for "+MonthLabel(month, year)) + "\n")
	sb.WriteString(fmt.Sprintf("  Income:   %s\n", SuccessStyle.Render(FormatAmount(currency, summary.TotalIncome))))
	sb.WriteString(fmt.Sprintf("  Expenses: %s\n", ErrorStyle.Render(FormatAmount(currency, summary.TotalExpenses))))

	if len(summary.Breakdown) == 0 {
		sb.WriteString(SubtleStyle.Render("  No expenses recorded.") + "\n")
		return sb.String()
	}

	sb.WriteString("\n" + BoldStyle.Render("By category:") + "\n")
	for _, row := range summary.Breakdown {
		sb.WriteString(fmt.Sprintf("  %-15s %12s  %5.1f%%\n",
			row.Category.Name, FormatAmount(currency, row.Amount), row.Percentage))
	}
	return sb.String()
}

// RenderBudgetStatus renders a budget evaluation as a progress line plus an
// alert when a threshold was crossed.
func RenderBudgetStatus(result budget.Result, currency string, month, year int) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Budget for "+MonthLabel(month, year)) + "\n")

	if result.Status == budget.StatusNoBudget {
		sb.WriteString(SubtleStyle.Render("  No budget set") + "\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("  Budget: %s  Spent: %s  (%d%%)\n",
		FormatAmount(currency, result.Budget.Amount),
		FormatAmount(currency, result.Expenses),
		result.Progress))
	sb.WriteString("  " + renderProgressBar(result.Progress, result.Status) + "\n")

	if result.Alert != "" {
		sb.WriteString("  " + FormatWarning(result.Alert) + "\n")
	}
	return sb.String()
}

const progressBarWidth = 30

func renderProgressBar(progress int, status budget.Status) string {
	filled := progress * progressBarWidth / 100
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)

	switch status {
	case budget.StatusExceeded:
		return ErrorStyle.Render(bar)
	case budget.StatusApproaching:
		return WarningStyle.Render(bar)
	default:
		return SuccessStyle.Render(bar)
	}
}

// RenderTransactions renders a transaction listing, newest first.
func RenderTransactions(transactions []model.Transaction, currency string) string {
	if len(transactions) == 0 {
		return SubtleStyle.Render("No transactions found.") + "\n"
	}

	var sb strings.Builder
	for _, txn := range transactions {
		sign := "-"
		if !txn.IsExpense {
			sign = "+"
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s%s  %-15s %s\n",
			SubtleStyle.Render(txn.ID[:8]),
			FormatDate(txn.Date),
			sign,
			FormatAmount(currency, txn.Amount),
			txn.Category,
			txn.Title))
	}
	return sb.String()
}
