package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestRentProperty(pair v1.TokenPair, editable v1.RentPropertyEditable) v1.RentProperty {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/rents", editable, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.RentPropertyResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestRentPropertyCreate() {
	pair := suite.signUp()

	property := suite.createTestRentProperty(pair, v1.RentPropertyEditable{
		Name:        "Lenina 42 apartment",
		MonthlyRate: decimal.NewFromInt(30000),
		Active:      true,
	})

	suite.Assert().Equal("Lenina 42 apartment", property.Name)
	suite.Assert().True(property.Active)
}

func (suite *TestSuiteStandard) TestReceiveRentBooksIncome() {
	pair := suite.signUp()
	property := suite.createTestRentProperty(pair, v1.RentPropertyEditable{
		Name:        "Lenina 42 apartment",
		MonthlyRate: decimal.NewFromInt(30000),
		Active:      true,
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, property.Links.Payments, v1.RentPaymentEditable{
		Amount: decimal.NewFromInt(30000),
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, property.Links.Payments, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var payments v1.RentPaymentListResponse
	test.DecodeResponse(suite.T(), &recorder, &payments)
	suite.Assert().Len(payments.Data, 1)

	// The rent appears as income
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes?category=rent", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var incomes v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &incomes)
	suite.Require().Len(incomes.Data, 1)
	suite.Assert().Equal("Rent: Lenina 42 apartment", incomes.Data[0].Source)
	suite.Assert().True(incomes.Data[0].Amount.Equal(decimal.NewFromInt(30000)))
}

func (suite *TestSuiteStandard) TestRentPropertyDeleteKeepsIncomes() {
	pair := suite.signUp()
	property := suite.createTestRentProperty(pair, v1.RentPropertyEditable{
		Name:        "Lenina 42 apartment",
		MonthlyRate: decimal.NewFromInt(30000),
		Active:      true,
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, property.Links.Payments, v1.RentPaymentEditable{
		Amount: decimal.NewFromInt(30000),
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, property.Links.Self, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Received rent stays booked after the property is gone
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes?category=rent", nil, authHeader(pair))
	var incomes v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &incomes)
	suite.Assert().Len(incomes.Data, 1)
}
