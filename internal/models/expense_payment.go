package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayExpense records a payment on a monthly expense and debits the
// funding source in the same transaction. The expense keeps a reference
// to the income or deposit that funded it.
func PayExpense(db *gorm.DB, expense *MonthlyExpense, amount decimal.Decimal, source PaymentSource) error {
	return db.Transaction(func(tx *gorm.DB) error {
		incomeID, depositID, err := applyPaymentSource(tx, expense.UserID, source, amount, fmt.Sprintf("expense payment: %s", expense.Name))
		if err != nil {
			return err
		}

		err = expense.RecordPayment(amount)
		if err != nil {
			return err
		}

		if incomeID != nil {
			expense.SourceIncomeID = incomeID
		}
		if depositID != nil {
			expense.DepositID = depositID
		}

		return tx.Model(expense).Select("ActualAmount", "Status", "SourceIncomeID", "DepositID").Updates(expense).Error
	})
}
