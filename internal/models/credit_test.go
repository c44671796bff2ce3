package models_test

import (
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestCredit(userID uuid.UUID, name string, amount, monthly int64) models.Credit {
	credit := models.Credit{
		UserID:         userID,
		Name:           name,
		Bank:           "Sparkasse",
		Amount:         decimal.NewFromInt(amount),
		MonthlyPayment: decimal.NewFromInt(monthly),
	}
	suite.Require().Nil(models.DB.Create(&credit).Error)

	return credit
}

func (suite *TestSuiteStandard) TestCreditStartsWithFullBalance() {
	user := suite.createTestUser()
	credit := suite.createTestCredit(user.ID, "Car loan", 1000000, 25000)

	suite.Assert().True(credit.CurrentBalance.Equal(decimal.NewFromInt(1000000)))
}

func (suite *TestSuiteStandard) TestPayCreditReducesBalance() {
	user := suite.createTestUser()
	credit := suite.createTestCredit(user.ID, "Car loan", 1000000, 25000)

	payment, err := models.PayCredit(models.DB, &credit, models.CreditPayment{
		Principal: decimal.NewFromInt(20000),
		Interest:  decimal.NewFromInt(5000),
	}, models.PaymentSource{})
	suite.Require().Nil(err)

	// Only the principal reduces the balance, interest does not
	suite.Assert().True(credit.CurrentBalance.Equal(decimal.NewFromInt(980000)))
	suite.Assert().True(payment.Total().Equal(decimal.NewFromInt(25000)))
}

func (suite *TestSuiteStandard) TestPayCreditExceedsBalance() {
	user := suite.createTestUser()
	credit := suite.createTestCredit(user.ID, "Car loan", 10000, 25000)

	_, err := models.PayCredit(models.DB, &credit, models.CreditPayment{
		Principal: decimal.NewFromInt(20000),
	}, models.PaymentSource{})
	suite.Assert().ErrorIs(err, models.ErrPaymentExceedsBalance)
}

func (suite *TestSuiteStandard) TestPayCreditFromIncomeDebitsTotal() {
	user := suite.createTestUser()
	income := suite.createTestIncome(user.ID, 500000)
	credit := suite.createTestCredit(user.ID, "Car loan", 1000000, 25000)

	payment, err := models.PayCredit(models.DB, &credit, models.CreditPayment{
		Principal: decimal.NewFromInt(20000),
		Interest:  decimal.NewFromInt(5000),
	}, models.PaymentSource{Type: models.SourceIncome, ID: income.ID})
	suite.Require().Nil(err)

	suite.Require().NotNil(payment.SourceIncomeID)
	suite.Assert().Equal(income.ID, *payment.SourceIncomeID)

	// The income is debited with principal plus interest
	suite.Require().Nil(models.DB.First(&income, "id = ?", income.ID).Error)
	suite.Assert().True(income.UsedAmount.Equal(decimal.NewFromInt(25000)))
}

func (suite *TestSuiteStandard) TestPayAllCredits() {
	user := suite.createTestUser()
	suite.createTestCredit(user.ID, "Car loan", 1000000, 25000)
	suite.createTestCredit(user.ID, "Kitchen", 30000, 10000)

	// A nearly paid off credit only gets its remaining balance
	small := suite.createTestCredit(user.ID, "Phone", 50000, 10000)
	small.CurrentBalance = decimal.NewFromInt(4000)
	suite.Require().Nil(models.DB.Model(&small).Select("CurrentBalance").Updates(&small).Error)

	deposit := suite.createTestDeposit(user.ID, 100000)

	payments, err := models.PayAllCredits(models.DB, user.ID, models.PaymentSource{
		Type: models.SourceDeposit,
		ID:   deposit.ID,
	}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)
	suite.Require().Len(payments, 3)

	// 25000 + 10000 + 4000 clamped = 39000 in one aggregate withdrawal
	suite.Require().Nil(models.DB.First(&deposit, "id = ?", deposit.ID).Error)
	suite.Assert().True(deposit.CurrentBalance.Equal(decimal.NewFromInt(61000)))

	var transactions []models.DepositTransaction
	suite.Require().Nil(models.DB.Where("deposit_id = ?", deposit.ID).Find(&transactions).Error)
	suite.Require().Len(transactions, 1)
	suite.Assert().True(transactions[0].Amount.Equal(decimal.NewFromInt(39000)))

	for _, payment := range payments {
		suite.Require().NotNil(payment.DepositID)
		suite.Assert().Equal(deposit.ID, *payment.DepositID)
	}

	var phone models.Credit
	suite.Require().Nil(models.DB.First(&phone, "id = ?", small.ID).Error)
	suite.Assert().True(phone.CurrentBalance.IsZero())
}

func (suite *TestSuiteStandard) TestPayAllCreditsSkipsZeroInstallments() {
	user := suite.createTestUser()
	suite.createTestCredit(user.ID, "Car loan", 1000000, 25000)

	// An open credit without a configured monthly payment must not
	// block the bulk run
	noInstallment := suite.createTestCredit(user.ID, "Interest-free family loan", 50000, 0)

	payments, err := models.PayAllCredits(models.DB, user.ID, models.PaymentSource{}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().Nil(err)
	suite.Require().Len(payments, 1)
	suite.Assert().True(payments[0].Principal.Equal(decimal.NewFromInt(25000)))

	suite.Require().Nil(models.DB.First(&noInstallment, "id = ?", noInstallment.ID).Error)
	suite.Assert().True(noInstallment.CurrentBalance.Equal(decimal.NewFromInt(50000)))
}

func (suite *TestSuiteStandard) TestPayAllCreditsNothingOutstanding() {
	user := suite.createTestUser()

	payments, err := models.PayAllCredits(models.DB, user.ID, models.PaymentSource{}, time.Now())
	suite.Require().Nil(err)
	suite.Assert().Len(payments, 0)
}

func (suite *TestSuiteStandard) TestPayAllCreditsRollsBackOnOverdraw() {
	user := suite.createTestUser()
	credit := suite.createTestCredit(user.ID, "Car loan", 1000000, 25000)
	deposit := suite.createTestDeposit(user.ID, 1000)

	_, err := models.PayAllCredits(models.DB, user.ID, models.PaymentSource{
		Type: models.SourceDeposit,
		ID:   deposit.ID,
	}, time.Now())
	suite.Assert().ErrorIs(err, models.ErrDepositOverdrawn)

	suite.Require().Nil(models.DB.First(&credit, "id = ?", credit.ID).Error)
	suite.Assert().True(credit.CurrentBalance.Equal(decimal.NewFromInt(1000000)))
}
