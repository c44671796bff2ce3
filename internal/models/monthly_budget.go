package models

import (
	"sort"

	"github.com/budgetbook/backend/internal/types"
	"github.com/shopspring/decimal"
)

// MonthlyBudget is the derived per-month view of the planned expenses.
// It is never persisted: it is recomputed from the flat expense list on
// every read, so there is no aggregate state that can go stale.
type MonthlyBudget struct {
	Month        types.Month      `json:"month" example:"2024-03-01T00:00:00Z"`
	TotalPlanned decimal.Decimal  `json:"totalPlanned" example:"15000"`
	TotalActual  decimal.Decimal  `json:"totalActual" example:"5000"`
	Expenses     []MonthlyExpense `json:"expenses"`
}

// AggregateBudgets buckets expenses into monthly budgets by the month of
// their due date.
//
// Every expense lands in exactly one bucket. A bucket for the current
// month is always present, even when it has no expenses. The result is
// sorted ascending by month; callers that want the newest month first
// reverse it.
func AggregateBudgets(expenses []MonthlyExpense, current types.Month) []MonthlyBudget {
	buckets := make(map[types.Month]*MonthlyBudget)

	budgetFor := func(month types.Month) *MonthlyBudget {
		b, ok := buckets[month]
		if !ok {
			b = &MonthlyBudget{
				Month:        month,
				TotalPlanned: decimal.Zero,
				TotalActual:  decimal.Zero,
				Expenses:     []MonthlyExpense{},
			}
			buckets[month] = b
		}

		return b
	}

	// The current month always gets a bucket so that the UI has
	// something to render right after signup
	_ = budgetFor(current)

	for _, expense := range expenses {
		b := budgetFor(types.MonthOf(expense.DueDate))
		b.TotalPlanned = b.TotalPlanned.Add(expense.PlannedAmount)
		b.TotalActual = b.TotalActual.Add(expense.ActualAmount)
		b.Expenses = append(b.Expenses, expense)
	}

	budgets := make([]MonthlyBudget, 0, len(buckets))
	for _, b := range buckets {
		budgets = append(budgets, *b)
	}

	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Month.Before(budgets[j].Month)
	})

	return budgets
}
