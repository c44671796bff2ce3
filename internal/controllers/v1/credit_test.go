package v1_test

import (
	"net/http"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestCredit(pair v1.TokenPair, editable v1.CreditEditable) v1.Credit {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/credits", editable, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CreditResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestCreditCreate() {
	pair := suite.signUp()

	credit := suite.createTestCredit(pair, v1.CreditEditable{
		Name:           "Car loan",
		Amount:         decimal.NewFromInt(1000000),
		MonthlyPayment: decimal.NewFromInt(25000),
	})

	suite.Assert().True(credit.CurrentBalance.Equal(decimal.NewFromInt(1000000)))
}

func (suite *TestSuiteStandard) TestCreditPay() {
	pair := suite.signUp()
	income := suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})
	credit := suite.createTestCredit(pair, v1.CreditEditable{
		Name:           "Car loan",
		Amount:         decimal.NewFromInt(1000000),
		MonthlyPayment: decimal.NewFromInt(25000),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, credit.Links.Payments, v1.CreditPaymentEditable{
		Principal: decimal.NewFromInt(20000),
		Interest:  decimal.NewFromInt(5000),
		Source:    v1.PaymentSource{Type: models.SourceIncome, ID: income.ID},
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CreditPaymentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Total.Equal(decimal.NewFromInt(25000)))

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, credit.Links.Self, nil, authHeader(pair))
	var creditResponse v1.CreditResponse
	test.DecodeResponse(suite.T(), &recorder, &creditResponse)
	suite.Require().NotNil(creditResponse.Data)
	suite.Assert().True(creditResponse.Data.CurrentBalance.Equal(decimal.NewFromInt(980000)))
}

func (suite *TestSuiteStandard) TestCreditPayExceedsBalance() {
	pair := suite.signUp()
	credit := suite.createTestCredit(pair, v1.CreditEditable{
		Name:           "Car loan",
		Amount:         decimal.NewFromInt(10000),
		MonthlyPayment: decimal.NewFromInt(25000),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, credit.Links.Payments, v1.CreditPaymentEditable{
		Principal: decimal.NewFromInt(20000),
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreditPayAll() {
	pair := suite.signUp()
	suite.createTestCredit(pair, v1.CreditEditable{
		Name:           "Car loan",
		Amount:         decimal.NewFromInt(1000000),
		MonthlyPayment: decimal.NewFromInt(25000),
	})
	suite.createTestCredit(pair, v1.CreditEditable{
		Name:           "Kitchen",
		Amount:         decimal.NewFromInt(30000),
		MonthlyPayment: decimal.NewFromInt(10000),
	})
	deposit := suite.createTestDeposit(pair, v1.DepositEditable{
		Name:           "Rainy day fund",
		CurrentBalance: decimal.NewFromInt(100000),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/credits/pay-all", v1.PayAllEditable{
		Source: v1.PaymentSource{Type: models.SourceDeposit, ID: deposit.ID},
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CreditPaymentListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)

	// Both installments were funded by one aggregate withdrawal
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, deposit.Links.Transactions, nil, authHeader(pair))
	var transactions v1.DepositTransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &transactions)
	suite.Require().Len(transactions.Data, 1)
	suite.Assert().True(transactions.Data[0].Amount.Equal(decimal.NewFromInt(35000)))
}

func (suite *TestSuiteStandard) TestCreditsOpenFilter() {
	pair := suite.signUp()
	paidOff := suite.createTestCredit(pair, v1.CreditEditable{
		Name:           "Kitchen",
		Amount:         decimal.NewFromInt(10000),
		MonthlyPayment: decimal.NewFromInt(10000),
	})
	suite.createTestCredit(pair, v1.CreditEditable{
		Name:           "Car loan",
		Amount:         decimal.NewFromInt(1000000),
		MonthlyPayment: decimal.NewFromInt(25000),
	})

	// Settle the small credit completely
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, paidOff.Links.Payments, v1.CreditPaymentEditable{
		Principal: decimal.NewFromInt(10000),
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/credits?open=true", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CreditListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Car loan", response.Data[0].Name)
}
