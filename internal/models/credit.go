package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Credit is a loan. Payments reduce the current balance by their
// principal part; the invariant currentBalance = amount − Σ(principal)
// is maintained by booking payments through PayCredit only.
type Credit struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"index"`
	Name           string          `json:"name" example:"Car loan"`
	Bank           string          `json:"bank"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	CurrentBalance decimal.Decimal `json:"currentBalance" gorm:"type:DECIMAL(20,8)"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment" gorm:"type:DECIMAL(20,8)"`
	InterestRate   decimal.Decimal `json:"interestRate" gorm:"type:DECIMAL(20,8)"` // Percent per year
}

func (c *Credit) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Bank = strings.TrimSpace(c.Bank)

	return nil
}

func (c *Credit) BeforeCreate(tx *gorm.DB) error {
	err := c.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	// A new credit starts with its full amount outstanding
	if c.CurrentBalance.IsZero() {
		c.CurrentBalance = c.Amount
	}

	return nil
}

func (c *Credit) AfterSave(_ *gorm.DB) error {
	if !c.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if c.CurrentBalance.IsNegative() {
		return ErrPaymentExceedsBalance
	}

	return nil
}

// CreditPayment is one installment on a credit.
type CreditPayment struct {
	DefaultModel
	UserID         uuid.UUID       `json:"userId" gorm:"index"`
	CreditID       uuid.UUID       `json:"creditId" gorm:"index"`
	Credit         Credit          `json:"-"`
	Date           time.Time       `json:"date"`
	Principal      decimal.Decimal `json:"principal" gorm:"type:DECIMAL(20,8)"`
	Interest       decimal.Decimal `json:"interest" gorm:"type:DECIMAL(20,8)"`
	SourceIncomeID *uuid.UUID      `json:"sourceIncomeId"`
	DepositID      *uuid.UUID      `json:"depositId"`
}

// Total is the full amount of the installment.
func (p CreditPayment) Total() decimal.Decimal {
	return p.Principal.Add(p.Interest)
}

func (p *CreditPayment) BeforeSave(_ *gorm.DB) error {
	if p.Date.IsZero() {
		p.Date = time.Now().In(time.UTC)
	} else {
		p.Date = p.Date.In(time.UTC)
	}

	return nil
}

func (p *CreditPayment) AfterSave(_ *gorm.DB) error {
	if !p.Principal.IsPositive() {
		return ErrAmountNotPositive
	}

	if p.Interest.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}

// PayCredit books one installment: the funding source is debited, the
// payment is created and the credit balance is reduced by the
// principal, all in one transaction.
func PayCredit(db *gorm.DB, credit *Credit, payment CreditPayment, source PaymentSource) (CreditPayment, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if payment.Principal.GreaterThan(credit.CurrentBalance) {
			return ErrPaymentExceedsBalance
		}

		incomeID, depositID, err := applyPaymentSource(tx, credit.UserID, source, payment.Total(), fmt.Sprintf("credit payment: %s", credit.Name))
		if err != nil {
			return err
		}

		payment.UserID = credit.UserID
		payment.CreditID = credit.ID
		payment.SourceIncomeID = incomeID
		payment.DepositID = depositID
		err = tx.Create(&payment).Error
		if err != nil {
			return err
		}

		credit.CurrentBalance = credit.CurrentBalance.Sub(payment.Principal)
		return tx.Model(credit).Select("CurrentBalance").Updates(credit).Error
	})

	return payment, err
}

// PayAllCredits books this month's installment for every credit that
// still has an outstanding balance, funded from a single source. For a
// deposit source, one aggregate withdrawal is created and every payment
// references it; the whole bulk action is one transaction, so either
// all installments are booked or none.
func PayAllCredits(db *gorm.DB, userID uuid.UUID, source PaymentSource, date time.Time) ([]CreditPayment, error) {
	var payments []CreditPayment

	err := db.Transaction(func(tx *gorm.DB) error {
		var credits []Credit
		err := tx.Where("user_id = ? AND current_balance > 0", userID).Order("name ASC").Find(&credits).Error
		if err != nil {
			return err
		}

		// Installments clamp to the remaining balance so that the last
		// payment of a credit never overpays
		total := decimal.Zero
		installments := make([]decimal.Decimal, len(credits))
		for i, credit := range credits {
			installment := credit.MonthlyPayment
			if installment.GreaterThan(credit.CurrentBalance) {
				installment = credit.CurrentBalance
			}
			installments[i] = installment
			total = total.Add(installment)
		}

		if total.IsZero() {
			return nil
		}

		incomeID, depositID, err := applyPaymentSource(tx, userID, source, total, "monthly credit installments")
		if err != nil {
			return err
		}

		for i := range credits {
			// A credit without a configured monthly payment has no
			// installment to book
			if installments[i].IsZero() {
				continue
			}

			payment := CreditPayment{
				UserID:         userID,
				CreditID:       credits[i].ID,
				Date:           date,
				Principal:      installments[i],
				SourceIncomeID: incomeID,
				DepositID:      depositID,
			}
			err = tx.Create(&payment).Error
			if err != nil {
				return err
			}

			credits[i].CurrentBalance = credits[i].CurrentBalance.Sub(installments[i])
			err = tx.Model(&credits[i]).Select("CurrentBalance").Updates(&credits[i]).Error
			if err != nil {
				return err
			}

			payments = append(payments, payment)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payments, nil
}
