package models

import (
	"strings"

	"github.com/budgetbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringTemplate describes a periodic income. The template itself
// never appears in income totals; realized income is always represented
// by Income rows, auto-created from the template by reconciliation.
type RecurringTemplate struct {
	DefaultModel
	UserID       uuid.UUID       `json:"userId" gorm:"index"`
	Source       string          `json:"source" example:"Salary"`
	Category     string          `json:"category" example:"employment"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"500000"`
	RecurringDay int             `json:"recurringDay" example:"5"` // Day of the month the income is expected
	Active       bool            `json:"active"`
	AutoCreate   bool            `json:"autoCreate"` // Reconciliation only considers templates with AutoCreate set
	StartMonth   types.Month     `json:"startMonth"` // No incomes are created for months before this one
}

func (t *RecurringTemplate) BeforeSave(_ *gorm.DB) error {
	t.Source = strings.TrimSpace(t.Source)
	t.Category = strings.TrimSpace(t.Category)

	if t.RecurringDay < 1 || t.RecurringDay > 31 {
		return ErrRecurringDayInvalid
	}

	return nil
}

func (t *RecurringTemplate) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// TriggerDay returns the day of the given month this template triggers on.
// Days past the end of a short month clamp to its last day, so a day-31
// template still triggers in February.
func (t RecurringTemplate) TriggerDay(month types.Month) int {
	if last := month.LastDay(); t.RecurringDay > last {
		return last
	}

	return t.RecurringDay
}
