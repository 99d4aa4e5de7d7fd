// Package budget classifies current-month spending against the active
// budget and dispatches alerts through a notifier.
package budget

import (
	"math"

	"github.com/Veraticus/fintrack/internal/model"
)

// Status classifies spending relative to the monthly budget.
type Status string

// Budget states, ordered: NoBudget aside, increasing expenses only ever move
// the state forward through UnderBudget, Approaching, Exceeded.
const (
	StatusNoBudget    Status = "none"
	StatusUnderBudget Status = "under"
	StatusApproaching Status = "approaching"
	StatusExceeded    Status = "exceeded"
)

// Alert messages shown when a threshold is crossed.
const (
	AlertExceeded    = "Budget exceeded!"
	AlertApproaching = "Approaching budget limit!"
)

// approachingFraction is the fraction of the budget at which the
// approaching warning begins.
const approachingFraction = 0.8

// Evaluation is the result of classifying expenses against a budget.
// Progress is the percentage of budget consumed, rounded, capped at 100.
type Evaluation struct {
	Status   Status
	Alert    string
	Progress int
}

// Evaluate classifies expenses against the budget for a month. A nil budget
// yields StatusNoBudget. Both thresholds are inclusive: expenses equal to
// the budget amount are Exceeded, and expenses equal to 80% of it are
// Approaching. Pure; all side effects live in Checker.
func Evaluate(expenses float64, b *model.Budget) Evaluation {
	if b == nil {
		return Evaluation{Status: StatusNoBudget}
	}

	progress := int(math.Round(expenses / b.Amount * 100))
	if progress > 100 {
		progress = 100
	}

	switch {
	case expenses >= b.Amount:
		return Evaluation{Status: StatusExceeded, Alert: AlertExceeded, Progress: 100}
	case expenses >= b.Amount*approachingFraction:
		return Evaluation{Status: StatusApproaching, Alert: AlertApproaching, Progress: progress}
	default:
		return Evaluation{Status: StatusUnderBudget, Progress: progress}
	}
}
