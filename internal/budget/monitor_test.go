package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/fintrack/internal/model"
)

func TestEvaluate_NoBudget(t *testing.T) {
	eval := Evaluate(500, nil)

	assert.Equal(t, StatusNoBudget, eval.Status)
	assert.Zero(t, eval.Progress)
	assert.Empty(t, eval.Alert)
}

func TestEvaluate_Thresholds(t *testing.T) {
	b := &model.Budget{ID: 1, Amount: 1000, Month: 5, Year: 2024}

	tests := []struct {
		name         string
		wantStatus   Status
		wantAlert    string
		expenses     float64
		wantProgress int
	}{
		{
			name:         "well under budget",
			expenses:     100,
			wantStatus:   StatusUnderBudget,
			wantProgress: 10,
		},
		{
			name:         "just below approaching threshold",
			expenses:     799,
			wantStatus:   StatusUnderBudget,
			wantProgress: 80, // progress rounds up; status does not
		},
		{
			name:         "exactly at approaching threshold",
			expenses:     800,
			wantStatus:   StatusApproaching,
			wantAlert:    AlertApproaching,
			wantProgress: 80,
		},
		{
			name:         "between thresholds",
			expenses:     950,
			wantStatus:   StatusApproaching,
			wantAlert:    AlertApproaching,
			wantProgress: 95,
		},
		{
			name:         "exactly at budget",
			expenses:     1000,
			wantStatus:   StatusExceeded,
			wantAlert:    AlertExceeded,
			wantProgress: 100,
		},
		{
			name:         "over budget caps progress",
			expenses:     2500,
			wantStatus:   StatusExceeded,
			wantAlert:    AlertExceeded,
			wantProgress: 100,
		},
		{
			name:         "zero expenses",
			expenses:     0,
			wantStatus:   StatusUnderBudget,
			wantProgress: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := Evaluate(tt.expenses, b)

			assert.Equal(t, tt.wantStatus, eval.Status)
			assert.Equal(t, tt.wantAlert, eval.Alert)
			assert.Equal(t, tt.wantProgress, eval.Progress)
		})
	}
}

// Classification never moves backward as expenses grow.
func TestEvaluate_Monotonic(t *testing.T) {
	b := &model.Budget{ID: 1, Amount: 1000, Month: 5, Year: 2024}

	rank := map[Status]int{
		StatusUnderBudget: 0,
		StatusApproaching: 1,
		StatusExceeded:    2,
	}

	prev := -1
	prevProgress := -1
	for expenses := 0.0; expenses <= 1500; expenses += 0.5 {
		eval := Evaluate(expenses, b)
		r, ok := rank[eval.Status]
		assert.True(t, ok, "unexpected status %q", eval.Status)
		assert.GreaterOrEqual(t, r, prev, "status regressed at expenses=%v", expenses)
		assert.GreaterOrEqual(t, eval.Progress, prevProgress, "progress regressed at expenses=%v", expenses)
		prev = r
		prevProgress = eval.Progress
	}
}
