package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestMonthsAggregation() {
	pair := suite.signUp()

	suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(10000),
		DueDate:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Water",
		PlannedAmount: decimal.NewFromInt(5000),
		DueDate:       time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Insurance",
		PlannedAmount: decimal.NewFromInt(7000),
		DueDate:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months?from=2024-03&until=2024-04", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)

	march := response.Data[0]
	suite.Assert().Equal("2024-03", march.Month.String())
	suite.Assert().True(march.TotalPlanned.Equal(decimal.NewFromInt(15000)))
	suite.Assert().Len(march.Expenses, 2)

	april := response.Data[1]
	suite.Assert().Equal("2024-04", april.Month.String())
	suite.Assert().True(april.TotalPlanned.Equal(decimal.NewFromInt(7000)))
}

func (suite *TestSuiteStandard) TestMonthsDescendingOrder() {
	pair := suite.signUp()

	suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(10000),
		DueDate:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Insurance",
		PlannedAmount: decimal.NewFromInt(7000),
		DueDate:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months?from=2024-03&until=2024-04&order=desc", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("2024-04", response.Data[0].Month.String())
}

func (suite *TestSuiteStandard) TestMonthsCurrentMonthAlwaysPresent() {
	pair := suite.signUp()

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().True(response.Data[0].TotalPlanned.IsZero())
}

func (suite *TestSuiteStandard) TestMonthsInvalidRange() {
	pair := suite.signUp()

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months?from=2024-05&until=2024-03", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
