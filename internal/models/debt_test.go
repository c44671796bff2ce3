package models_test

import (
	"github.com/budgetbook/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestDebt(userID uuid.UUID, direction models.DebtDirection, amount int64) models.Debt {
	debt := models.Debt{
		UserID:    userID,
		Person:    "Uncle Bob",
		Direction: direction,
		Amount:    decimal.NewFromInt(amount),
	}
	suite.Require().Nil(models.DB.Create(&debt).Error)

	return debt
}

func (suite *TestSuiteStandard) TestDebtDefaultsToIOwe() {
	user := suite.createTestUser()

	debt := models.Debt{
		UserID: user.ID,
		Person: "Uncle Bob",
		Amount: decimal.NewFromInt(10000),
	}
	suite.Require().Nil(models.DB.Create(&debt).Error)

	suite.Assert().Equal(models.DebtIOwe, debt.Direction)
	suite.Assert().True(debt.CurrentBalance.Equal(decimal.NewFromInt(10000)))
}

func (suite *TestSuiteStandard) TestPayDebtIOweDebitsSource() {
	user := suite.createTestUser()
	income := suite.createTestIncome(user.ID, 500000)
	debt := suite.createTestDebt(user.ID, models.DebtIOwe, 10000)

	payment, err := models.PayDebt(models.DB, &debt, models.DebtPayment{
		Amount: decimal.NewFromInt(10000),
	}, models.PaymentSource{Type: models.SourceIncome, ID: income.ID})
	suite.Require().Nil(err)

	suite.Assert().True(debt.Settled())
	suite.Require().NotNil(payment.SourceIncomeID)

	suite.Require().Nil(models.DB.First(&income, "id = ?", income.ID).Error)
	suite.Assert().True(income.UsedAmount.Equal(decimal.NewFromInt(10000)))
}

func (suite *TestSuiteStandard) TestPayDebtOwedToMeSkipsSource() {
	user := suite.createTestUser()
	income := suite.createTestIncome(user.ID, 500000)
	debt := suite.createTestDebt(user.ID, models.DebtOwedToMe, 10000)

	// A repayment the user receives never debits their funds, even if a
	// source is passed by mistake
	payment, err := models.PayDebt(models.DB, &debt, models.DebtPayment{
		Amount: decimal.NewFromInt(4000),
	}, models.PaymentSource{Type: models.SourceIncome, ID: income.ID})
	suite.Require().Nil(err)

	suite.Assert().Nil(payment.SourceIncomeID)
	suite.Assert().True(debt.CurrentBalance.Equal(decimal.NewFromInt(6000)))

	suite.Require().Nil(models.DB.First(&income, "id = ?", income.ID).Error)
	suite.Assert().True(income.UsedAmount.IsZero())
}

func (suite *TestSuiteStandard) TestPayDebtExceedsBalance() {
	user := suite.createTestUser()
	debt := suite.createTestDebt(user.ID, models.DebtIOwe, 10000)

	_, err := models.PayDebt(models.DB, &debt, models.DebtPayment{
		Amount: decimal.NewFromInt(20000),
	}, models.PaymentSource{})
	suite.Assert().ErrorIs(err, models.ErrPaymentExceedsBalance)
}
