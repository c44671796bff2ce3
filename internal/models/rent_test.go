package models_test

import (
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestReceiveRentBooksIncome() {
	user := suite.createTestUser()

	property := models.RentProperty{
		UserID:      user.ID,
		Name:        "Lenina 42 apartment",
		MonthlyRate: decimal.NewFromInt(30000),
		Active:      true,
	}
	suite.Require().Nil(models.DB.Create(&property).Error)

	payment, err := models.ReceiveRent(models.DB, &property, models.RentPayment{
		Amount: decimal.NewFromInt(30000),
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(property.ID, payment.PropertyID)

	// The rent shows up as spendable income in the same month
	var income models.Income
	suite.Require().Nil(models.DB.First(&income, "user_id = ? AND category = ?", user.ID, "rent").Error)
	suite.Assert().Equal("Rent: Lenina 42 apartment", income.Source)
	suite.Assert().True(income.Amount.Equal(decimal.NewFromInt(30000)))
	suite.Assert().True(income.Month.Equal(types.NewMonth(2024, time.March)))
}

func (suite *TestSuiteStandard) TestRentPaymentAmountMustBePositive() {
	user := suite.createTestUser()

	property := models.RentProperty{
		UserID:      user.ID,
		Name:        "Lenina 42 apartment",
		MonthlyRate: decimal.NewFromInt(30000),
		Active:      true,
	}
	suite.Require().Nil(models.DB.Create(&property).Error)

	_, err := models.ReceiveRent(models.DB, &property, models.RentPayment{
		Amount: decimal.NewFromInt(-5),
	})
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
}
