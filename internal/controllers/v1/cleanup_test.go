package v1_test

import (
	"net/http"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCleanup() {
	pair := suite.signUp()
	suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Everything is gone
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 0)

	// Refresh tokens were wiped too, the session cannot be extended
	recorder = test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/auth/refresh", v1.RefreshEditable{RefreshToken: pair.RefreshToken})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestCleanupWithoutConfirmation() {
	pair := suite.signUp()
	income := suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})

	for _, query := range []string{"", "?confirm=wrong"} {
		recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/v1"+query, nil)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, income.Links.Self, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}
