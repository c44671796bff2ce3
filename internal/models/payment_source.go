package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentSourceType selects where the money for a payment comes from.
//
// swagger:enum PaymentSourceType
type PaymentSourceType string

const (
	SourceCash    PaymentSourceType = "CASH"    // No bookkeeping
	SourceIncome  PaymentSourceType = "INCOME"  // Debits the income's used amount
	SourceDeposit PaymentSourceType = "DEPOSIT" // Creates a withdrawal on the deposit
)

// PaymentSource is the funding source for a payment. An empty source is
// treated as cash.
type PaymentSource struct {
	Type PaymentSourceType `json:"type" example:"INCOME"`
	ID   uuid.UUID         `json:"id" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`
}

// applyPaymentSource debits the funding source for a payment of the
// given amount. It must be called inside the same transaction that
// creates the payment, so that the debit and the payment commit or roll
// back together. Overdrawing a source aborts the transaction, there is
// never a debit without its payment or vice versa.
//
// The returned IDs identify the debited income or deposit so that the
// payment can reference its source.
func applyPaymentSource(tx *gorm.DB, userID uuid.UUID, source PaymentSource, amount decimal.Decimal, note string) (incomeID, depositID *uuid.UUID, err error) {
	switch source.Type {
	case "", SourceCash:
		return nil, nil, nil

	case SourceIncome:
		if source.ID == uuid.Nil {
			return nil, nil, ErrPaymentSourceIDMissing
		}

		var income Income
		err := tx.First(&income, "id = ? AND user_id = ?", source.ID, userID).Error
		if err != nil {
			return nil, nil, err
		}

		if income.AvailableAmount().LessThan(amount) {
			return nil, nil, ErrIncomeOverdrawn
		}

		income.UsedAmount = income.UsedAmount.Add(amount)
		err = tx.Model(&income).Select("UsedAmount").Updates(&income).Error
		if err != nil {
			return nil, nil, err
		}

		return &income.ID, nil, nil

	case SourceDeposit:
		if source.ID == uuid.Nil {
			return nil, nil, ErrPaymentSourceIDMissing
		}

		var deposit Deposit
		err := tx.First(&deposit, "id = ? AND user_id = ?", source.ID, userID).Error
		if err != nil {
			return nil, nil, err
		}

		_, err = withdraw(tx, &deposit, amount, note)
		if err != nil {
			return nil, nil, err
		}

		return nil, &deposit.ID, nil
	}

	return nil, nil, ErrPaymentSourceTypeInvalid
}
