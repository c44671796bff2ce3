package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtDirection says whether the money is owed to the user or by them.
//
// swagger:enum DebtDirection
type DebtDirection string

const (
	DebtOwedToMe DebtDirection = "owed_to_me"
	DebtIOwe     DebtDirection = "i_owe"
)

// Debt is an informal loan to or from another person.
type Debt struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"index"`
	Person         string          `json:"person" example:"Uncle Bob"`
	Direction      DebtDirection   `json:"direction" example:"i_owe"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	CurrentBalance decimal.Decimal `json:"currentBalance" gorm:"type:DECIMAL(20,8)"`
	DueDate        *time.Time      `json:"dueDate"`
	Note           string          `json:"note"`
}

// Settled reports whether the debt has been fully repaid.
func (d Debt) Settled() bool {
	return d.CurrentBalance.IsZero()
}

func (d *Debt) BeforeSave(_ *gorm.DB) error {
	d.Person = strings.TrimSpace(d.Person)
	d.Note = strings.TrimSpace(d.Note)

	if d.Direction == "" {
		d.Direction = DebtIOwe
	}

	return nil
}

func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	err := d.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if d.CurrentBalance.IsZero() {
		d.CurrentBalance = d.Amount
	}

	return nil
}

func (d *Debt) AfterSave(_ *gorm.DB) error {
	if !d.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if d.CurrentBalance.IsNegative() {
		return ErrPaymentExceedsBalance
	}

	switch d.Direction {
	case DebtOwedToMe, DebtIOwe:
	default:
		return ErrGeneral
	}

	return nil
}

// DebtPayment is one repayment on a debt, in either direction.
type DebtPayment struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"index"`
	DebtID         uuid.UUID       `json:"debtId" gorm:"index"`
	Debt           Debt            `json:"-"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	SourceIncomeID *uuid.UUID      `json:"sourceIncomeId"`
	DepositID      *uuid.UUID      `json:"depositId"`
}

func (p *DebtPayment) BeforeSave(_ *gorm.DB) error {
	if p.Date.IsZero() {
		p.Date = time.Now().In(time.UTC)
	} else {
		p.Date = p.Date.In(time.UTC)
	}

	return nil
}

func (p *DebtPayment) AfterSave(_ *gorm.DB) error {
	if !p.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// PayDebt books a repayment on a debt. A repayment can never exceed the
// remaining balance. When the user is the one paying, the funding
// source is debited in the same transaction; repayments the user
// receives are pure bookkeeping.
func PayDebt(db *gorm.DB, debt *Debt, payment DebtPayment, source PaymentSource) (DebtPayment, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if payment.Amount.GreaterThan(debt.CurrentBalance) {
			return ErrPaymentExceedsBalance
		}

		if debt.Direction == DebtIOwe {
			incomeID, depositID, err := applyPaymentSource(tx, debt.UserID, source, payment.Amount, fmt.Sprintf("debt repayment: %s", debt.Person))
			if err != nil {
				return err
			}

			payment.SourceIncomeID = incomeID
			payment.DepositID = depositID
		}

		payment.UserID = debt.UserID
		payment.DebtID = debt.ID
		err := tx.Create(&payment).Error
		if err != nil {
			return err
		}

		debt.CurrentBalance = debt.CurrentBalance.Sub(payment.Amount)
		return tx.Model(debt).Select("CurrentBalance").Updates(debt).Error
	})

	return payment, err
}
