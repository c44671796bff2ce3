package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseStatus is the payment state of a monthly expense.
type ExpenseStatus string

const (
	ExpensePlanned ExpenseStatus = "planned"
	ExpensePaid    ExpenseStatus = "paid"
)

// MonthlyExpense is one planned expense in a month's budget. The
// monthly budgets themselves are derived at read time, see
// AggregateBudgets.
type MonthlyExpense struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"index"`
	Category       string          `json:"category" example:"utilities"`
	Name           string          `json:"name" example:"Electricity"`
	PlannedAmount  decimal.Decimal `json:"plannedAmount" gorm:"type:DECIMAL(20,8)" example:"10000"`
	ActualAmount   decimal.Decimal `json:"actualAmount" gorm:"type:DECIMAL(20,8)" example:"0"`
	DueDate        time.Time       `json:"dueDate"`
	Status         ExpenseStatus   `json:"status" example:"planned"`
	SourceIncomeID *uuid.UUID      `json:"sourceIncomeId"` // Income that funded the payment, if any
	DepositID      *uuid.UUID      `json:"depositId"`      // Deposit that funded the payment, if any
}

func (e *MonthlyExpense) AfterFind(tx *gorm.DB) error {
	err := e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	e.DueDate = e.DueDate.In(time.UTC)
	return nil
}

func (e *MonthlyExpense) BeforeSave(_ *gorm.DB) error {
	e.Category = strings.TrimSpace(e.Category)
	e.Name = strings.TrimSpace(e.Name)

	if e.DueDate.IsZero() {
		e.DueDate = time.Now().In(time.UTC)
	} else {
		e.DueDate = e.DueDate.In(time.UTC)
	}

	if e.Status == "" {
		e.Status = ExpensePlanned
	}

	return nil
}

func (e *MonthlyExpense) AfterSave(_ *gorm.DB) error {
	if !e.PlannedAmount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// Remaining returns the unpaid part of the planned amount.
func (e MonthlyExpense) Remaining() decimal.Decimal {
	return e.PlannedAmount.Sub(e.ActualAmount)
}

// RecordPayment adds a payment to the expense. Partial payments leave
// the status at "planned"; once the actual amount reaches the planned
// amount, the status flips to "paid". There is no refund path.
func (e *MonthlyExpense) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}

	e.ActualAmount = e.ActualAmount.Add(amount)
	if e.ActualAmount.GreaterThanOrEqual(e.PlannedAmount) {
		e.Status = ExpensePaid
	}

	return nil
}
