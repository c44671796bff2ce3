package models_test

import (
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestIncome(userID uuid.UUID, amount int64) models.Income {
	income := models.Income{
		UserID: userID,
		Source: "Salary",
		Amount: decimal.NewFromInt(amount),
		Date:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	suite.Require().Nil(models.DB.Create(&income).Error)

	return income
}

func (suite *TestSuiteStandard) createTestExpense(userID uuid.UUID, planned int64) models.MonthlyExpense {
	expense := models.MonthlyExpense{
		UserID:        userID,
		Category:      "utilities",
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(planned),
		DueDate:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	suite.Require().Nil(models.DB.Create(&expense).Error)

	return expense
}

func (suite *TestSuiteStandard) TestPayExpenseFromIncome() {
	user := suite.createTestUser()
	income := suite.createTestIncome(user.ID, 500000)
	expense := suite.createTestExpense(user.ID, 10000)

	err := models.PayExpense(models.DB, &expense, decimal.NewFromInt(10000), models.PaymentSource{
		Type: models.SourceIncome,
		ID:   income.ID,
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(models.ExpensePaid, expense.Status)
	suite.Require().NotNil(expense.SourceIncomeID)
	suite.Assert().Equal(income.ID, *expense.SourceIncomeID)

	// The income's available amount is reduced by the payment
	suite.Require().Nil(models.DB.First(&income, "id = ?", income.ID).Error)
	suite.Assert().True(income.AvailableAmount().Equal(decimal.NewFromInt(490000)))
}

func (suite *TestSuiteStandard) TestPayExpensePartial() {
	user := suite.createTestUser()
	expense := suite.createTestExpense(user.ID, 10000)

	err := models.PayExpense(models.DB, &expense, decimal.NewFromInt(4000), models.PaymentSource{})
	suite.Require().Nil(err)

	suite.Assert().Equal(models.ExpensePlanned, expense.Status)
	suite.Assert().True(expense.Remaining().Equal(decimal.NewFromInt(6000)))

	err = models.PayExpense(models.DB, &expense, decimal.NewFromInt(6000), models.PaymentSource{})
	suite.Require().Nil(err)
	suite.Assert().Equal(models.ExpensePaid, expense.Status)
}

func (suite *TestSuiteStandard) TestPayExpenseIncomeOverdrawRollsBack() {
	user := suite.createTestUser()
	income := suite.createTestIncome(user.ID, 5000)
	expense := suite.createTestExpense(user.ID, 10000)

	err := models.PayExpense(models.DB, &expense, decimal.NewFromInt(10000), models.PaymentSource{
		Type: models.SourceIncome,
		ID:   income.ID,
	})
	suite.Assert().ErrorIs(err, models.ErrIncomeOverdrawn)

	// Neither the income nor the expense changed
	suite.Require().Nil(models.DB.First(&income, "id = ?", income.ID).Error)
	suite.Assert().True(income.UsedAmount.IsZero())

	var reloaded models.MonthlyExpense
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", expense.ID).Error)
	suite.Assert().True(reloaded.ActualAmount.IsZero())
	suite.Assert().Equal(models.ExpensePlanned, reloaded.Status)
}

func (suite *TestSuiteStandard) TestPayExpenseFromDeposit() {
	user := suite.createTestUser()
	expense := suite.createTestExpense(user.ID, 10000)

	deposit := models.Deposit{
		UserID:         user.ID,
		Name:           "Rainy day fund",
		CurrentBalance: decimal.NewFromInt(50000),
	}
	suite.Require().Nil(models.DB.Create(&deposit).Error)

	err := models.PayExpense(models.DB, &expense, decimal.NewFromInt(10000), models.PaymentSource{
		Type: models.SourceDeposit,
		ID:   deposit.ID,
	})
	suite.Require().Nil(err)

	suite.Require().Nil(models.DB.First(&deposit, "id = ?", deposit.ID).Error)
	suite.Assert().True(deposit.CurrentBalance.Equal(decimal.NewFromInt(40000)))

	// The debit shows up as a withdrawal on the deposit
	var transactions []models.DepositTransaction
	suite.Require().Nil(models.DB.Where("deposit_id = ?", deposit.ID).Find(&transactions).Error)
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal(models.TransactionWithdrawal, transactions[0].Type)
}

func (suite *TestSuiteStandard) TestPayExpenseSourceMissingID() {
	user := suite.createTestUser()
	expense := suite.createTestExpense(user.ID, 10000)

	err := models.PayExpense(models.DB, &expense, decimal.NewFromInt(10000), models.PaymentSource{
		Type: models.SourceIncome,
	})
	suite.Assert().ErrorIs(err, models.ErrPaymentSourceIDMissing)
}
