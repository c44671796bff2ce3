package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepositTransactionType is the direction of a deposit transaction.
//
// swagger:enum DepositTransactionType
type DepositTransactionType string

const (
	TransactionDeposit    DepositTransactionType = "deposit"
	TransactionWithdrawal DepositTransactionType = "withdrawal"
)

// Deposit is a savings account that payments can be funded from.
type Deposit struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"index"`
	Name           string          `json:"name" example:"Rainy day fund"`
	Bank           string          `json:"bank" example:"Sparkasse"`
	CurrentBalance decimal.Decimal `json:"currentBalance" gorm:"type:DECIMAL(20,8)"`
	InterestRate   decimal.Decimal `json:"interestRate" gorm:"type:DECIMAL(20,8)"` // Percent per year, informational only
	Closed         bool            `json:"closed"`
}

func (d *Deposit) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Bank = strings.TrimSpace(d.Bank)
	return nil
}

func (d *Deposit) AfterSave(_ *gorm.DB) error {
	if d.CurrentBalance.IsNegative() {
		return ErrDepositOverdrawn
	}

	return nil
}

// DepositTransaction is one balance movement on a deposit.
type DepositTransaction struct {
	DefaultModel
	UserID         uuid.UUID              `json:"userId" gorm:"index"`
	DepositID      uuid.UUID              `json:"depositId" gorm:"index"`
	Deposit        Deposit                `json:"-"`
	Type           DepositTransactionType `json:"type" example:"withdrawal"`
	Amount         decimal.Decimal        `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Date           time.Time              `json:"date"`
	Note           string                 `json:"note"`
	SourceIncomeID *uuid.UUID             `json:"sourceIncomeId"` // Income that funded a deposit transaction, if any
}

func (t *DepositTransaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

func (t *DepositTransaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// withdraw books a withdrawal transaction and reduces the balance.
// Must run inside a transaction together with whatever the money is
// used for.
func withdraw(tx *gorm.DB, deposit *Deposit, amount decimal.Decimal, note string) (DepositTransaction, error) {
	if deposit.Closed {
		return DepositTransaction{}, ErrDepositClosed
	}

	if deposit.CurrentBalance.LessThan(amount) {
		return DepositTransaction{}, ErrDepositOverdrawn
	}

	transaction := DepositTransaction{
		UserID:    deposit.UserID,
		DepositID: deposit.ID,
		Type:      TransactionWithdrawal,
		Amount:    amount,
		Note:      note,
	}
	err := tx.Create(&transaction).Error
	if err != nil {
		return DepositTransaction{}, err
	}

	deposit.CurrentBalance = deposit.CurrentBalance.Sub(amount)
	return transaction, tx.Model(deposit).Select("CurrentBalance").Updates(deposit).Error
}

// DepositFunds books a deposit transaction, optionally funded from an
// income (which debits the income's available amount). Debit and
// balance update commit atomically.
func DepositFunds(db *gorm.DB, deposit *Deposit, amount decimal.Decimal, source PaymentSource, note string) (DepositTransaction, error) {
	var transaction DepositTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		if deposit.Closed {
			return ErrDepositClosed
		}

		incomeID, _, err := applyPaymentSource(tx, deposit.UserID, source, amount, note)
		if err != nil {
			return err
		}

		transaction = DepositTransaction{
			UserID:         deposit.UserID,
			DepositID:      deposit.ID,
			Type:           TransactionDeposit,
			Amount:         amount,
			Note:           note,
			SourceIncomeID: incomeID,
		}
		err = tx.Create(&transaction).Error
		if err != nil {
			return err
		}

		deposit.CurrentBalance = deposit.CurrentBalance.Add(amount)
		return tx.Model(deposit).Select("CurrentBalance").Updates(deposit).Error
	})

	return transaction, err
}

// WithdrawFunds books a plain withdrawal on the deposit.
func WithdrawFunds(db *gorm.DB, deposit *Deposit, amount decimal.Decimal, note string) (DepositTransaction, error) {
	var transaction DepositTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		transaction, err = withdraw(tx, deposit, amount, note)
		return err
	})

	return transaction, err
}

// CloseDeposit withdraws the remaining balance and marks the deposit as
// closed. A closed deposit can no longer fund payments.
func CloseDeposit(db *gorm.DB, deposit *Deposit) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if deposit.Closed {
			return ErrDepositClosed
		}

		if deposit.CurrentBalance.IsPositive() {
			_, err := withdraw(tx, deposit, deposit.CurrentBalance, "deposit closed")
			if err != nil {
				return err
			}
		}

		deposit.Closed = true
		return tx.Model(deposit).Select("Closed").Updates(deposit).Error
	})
}
