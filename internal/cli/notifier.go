package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/Veraticus/fintrack/internal/model"
)

// Notifier implements service.Notifier by printing styled alert lines. It
// stands in for the mobile app's notification channel: two alert kinds,
// budget-exceeded and budget-approaching.
type Notifier struct {
	out io.Writer
}

// NewNotifier creates a notifier writing to out.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// BudgetExceeded announces that the monthly budget has been exceeded.
func (n *Notifier) BudgetExceeded(_ context.Context, budget model.Budget, expenses float64) error {
	msg := fmt.Sprintf("Budget Alert: you have exceeded your %s budget (%.2f of %.2f)",
		MonthLabel(budget.Month, budget.Year), expenses, budget.Amount)
	_, err := fmt.Fprintln(n.out, ErrorStyle.Render(msg))
	return err
}

// BudgetApproaching announces that spending is nearing the monthly budget.
func (n *Notifier) BudgetApproaching(_ context.Context, budget model.Budget, expenses float64) error {
	msg := fmt.Sprintf("Budget Alert: you are approaching your %s budget (%.2f of %.2f)",
		MonthLabel(budget.Month, budget.Year), expenses, budget.Amount)
	_, err := fmt.Fprintln(n.out, WarningStyle.Render(msg))
	return err
}
