package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/fintrack/internal/budget"
	"github.com/Veraticus/fintrack/internal/model"
	"github.com/Veraticus/fintrack/internal/service"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "Rs. 50.00", FormatAmount("Rs.", 50))
	assert.Equal(t, "$ 1234.57", FormatAmount("$", 1234.567))
	assert.Equal(t, "$ 0.00", FormatAmount("$", 0))
}

func TestFormatDate(t *testing.T) {
	millis := time.Date(2024, time.June, 5, 23, 30, 0, 0, time.Local).UnixMilli()
	assert.Equal(t, "2024-06-05", FormatDate(millis))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "January 2024", MonthLabel(0, 2024))
	assert.Equal(t, "June 2024", MonthLabel(5, 2024))
	assert.Equal(t, "December 2024", MonthLabel(11, 2024))
}

func TestRenderSummary(t *testing.T) {
	summary := service.MonthlySummary{
		TotalIncome:   1000,
		TotalExpenses: 80,
		Breakdown: []service.CategorySummary{
			{Category: model.Category{Name: "Food"}, Amount: 50, Percentage: 62.5},
			{Category: model.Category{Name: "Transport"}, Amount: 30, Percentage: 37.5},
		},
	}

	out := RenderSummary(summary, "Rs.", 5, 2024)

	assert.Contains(t, out, "June 2024")
	assert.Contains(t, out, "Rs. 1000.00")
	assert.Contains(t, out, "Rs. 80.00")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "62.5%")
}

func TestRenderSummary_Empty(t *testing.T) {
	out := RenderSummary(service.MonthlySummary{}, "Rs.", 0, 2024)
	assert.Contains(t, out, "No expenses recorded")
}

func TestRenderBudgetStatus(t *testing.T) {
	result := budget.Result{
		Budget:   &model.Budget{Amount: 1000, Month: 5, Year: 2024},
		Expenses: 1100,
		Evaluation: budget.Evaluation{
			Status:   budget.StatusExceeded,
			Alert:    budget.AlertExceeded,
			Progress: 100,
		},
	}

	out := RenderBudgetStatus(result, "Rs.", 5, 2024)

	assert.Contains(t, out, "Rs. 1000.00")
	assert.Contains(t, out, "Rs. 1100.00")
	assert.Contains(t, out, "(100%)")
	assert.Contains(t, out, budget.AlertExceeded)
}

func TestRenderBudgetStatus_NoBudget(t *testing.T) {
	result := budget.Result{Evaluation: budget.Evaluation{Status: budget.StatusNoBudget}}

	out := RenderBudgetStatus(result, "Rs.", 5, 2024)
	assert.Contains(t, out, "No budget set")
}

func TestRenderTransactions(t *testing.T) {
	transactions := []model.Transaction{
		{ID: "aaaaaaaa-1111-2222-3333-444444444444", Title: "Groceries", Amount: 50,
			Category: "Food", Date: time.Now().UnixMilli(), IsExpense: true},
		{ID: "bbbbbbbb-1111-2222-3333-444444444444", Title: "Salary", Amount: 1000,
			Category: "Salary", Date: time.Now().UnixMilli(), IsExpense: false},
	}

	out := RenderTransactions(transactions, "Rs.")

	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "-Rs. 50.00")
	assert.Contains(t, out, "+Rs. 1000.00")
	assert.Contains(t, out, "aaaaaaaa")
}

func TestRenderTransactions_Empty(t *testing.T) {
	out := RenderTransactions(nil, "Rs.")
	assert.Contains(t, out, "No transactions found")
}
