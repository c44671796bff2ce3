package models

import (
	"strings"
	"time"

	"github.com/budgetbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is one realized income event in the ledger.
//
// Auto-created incomes reference the template they were created from.
// The unique index on (template_id, month) is the idempotency key for
// reconciliation: a template can produce at most one income per month,
// no matter how often reconciliation runs. Manual incomes have a NULL
// template ID and never collide with it.
type Income struct {
	DefaultModel
	UserID      uuid.UUID         `json:"userId" gorm:"index"`
	Source      string            `json:"source" example:"Salary"`
	Category    string            `json:"category" example:"employment"`
	Amount      decimal.Decimal   `json:"amount" gorm:"type:DECIMAL(20,8)" example:"500000"`
	Date        time.Time         `json:"date"`
	Month       types.Month       `json:"month" gorm:"uniqueIndex:income_template_month,priority:2"`
	UsedAmount  decimal.Decimal   `json:"usedAmount" gorm:"type:DECIMAL(20,8)"` // Amount already consumed as a payment source
	AutoCreated bool              `json:"autoCreated"`
	TemplateID  *uuid.UUID        `json:"templateId" gorm:"uniqueIndex:income_template_month,priority:1"`
	Template    RecurringTemplate `json:"-"`
}

// AvailableAmount is the part of the income not yet consumed as a
// payment source. It is derived, never stored.
func (i Income) AvailableAmount() decimal.Decimal {
	return i.Amount.Sub(i.UsedAmount)
}

// AfterFind normalizes dates to UTC.
func (i *Income) AfterFind(tx *gorm.DB) error {
	err := i.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	i.Date = i.Date.In(time.UTC)
	return nil
}

// BeforeSave defaults the date to now and keeps the month bucket in
// sync with the date.
func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Source = strings.TrimSpace(i.Source)
	i.Category = strings.TrimSpace(i.Category)

	if i.Date.IsZero() {
		i.Date = time.Now().In(time.UTC)
	} else {
		i.Date = i.Date.In(time.UTC)
	}

	i.Month = types.MonthOf(i.Date)

	return nil
}

func (i *Income) AfterSave(_ *gorm.DB) error {
	if !i.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if i.UsedAmount.IsNegative() || i.UsedAmount.GreaterThan(i.Amount) {
		return ErrIncomeOverdrawn
	}

	return nil
}
