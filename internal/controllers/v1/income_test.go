package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestIncome(pair v1.TokenPair, editable v1.IncomeEditable) v1.Income {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/incomes", editable, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestIncomeCreate() {
	pair := suite.signUp()

	income := suite.createTestIncome(pair, v1.IncomeEditable{
		Source: "Salary",
		Amount: decimal.NewFromInt(500000),
		Date:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	suite.Assert().Equal("Salary", income.Source)
	suite.Assert().Equal("2024-03", income.Month.String())
	suite.Assert().True(income.AvailableAmount.Equal(decimal.NewFromInt(500000)))
	suite.Assert().False(income.AutoCreated)
	suite.Assert().NotEmpty(income.Links.Self)
}

func (suite *TestSuiteStandard) TestIncomeCreateNegativeAmount() {
	pair := suite.signUp()

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/incomes", v1.IncomeEditable{
		Source: "Salary",
		Amount: decimal.NewFromInt(-1),
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomeGet() {
	pair := suite.signUp()
	income := suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, income.Links.Self, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(income.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestIncomeGetInvalidUUID() {
	pair := suite.signUp()

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes/not-a-uuid", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestIncomeIsolatedPerUser() {
	pair := suite.signUp()
	income := suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})

	// Another user cannot see the income
	other := suite.signUp()
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, income.Links.Self, nil, authHeader(other))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes", nil, authHeader(other))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 0)
}

func (suite *TestSuiteStandard) TestIncomesSourceGlobFilter() {
	pair := suite.signUp()
	suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})
	suite.createTestIncome(pair, v1.IncomeEditable{Source: "Sale of old laptop", Amount: decimal.NewFromInt(20000)})
	suite.createTestIncome(pair, v1.IncomeEditable{Source: "Dividends", Amount: decimal.NewFromInt(3000)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes?source=Sal*", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 2)
	suite.Require().NotNil(response.Pagination)
	suite.Assert().Equal(int64(2), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestIncomesMonthFilter() {
	pair := suite.signUp()
	suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000), Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)})
	suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000), Date: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes?month=2024-03", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("2024-03", response.Data[0].Month.String())
}

func (suite *TestSuiteStandard) TestIncomesPagination() {
	pair := suite.signUp()
	for i := 0; i < 5; i++ {
		suite.createTestIncome(pair, v1.IncomeEditable{
			Source: fmt.Sprintf("Income %d", i),
			Amount: decimal.NewFromInt(1000),
		})
	}

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/incomes?offset=2&limit=2", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 2)
	suite.Require().NotNil(response.Pagination)
	suite.Assert().Equal(int64(5), response.Pagination.Total)
	suite.Assert().Equal(uint(2), response.Pagination.Offset)
}

func (suite *TestSuiteStandard) TestIncomeUpdate() {
	pair := suite.signUp()
	income := suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPatch, income.Links.Self, map[string]string{
		"source": "Main job",
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, income.Links.Self, nil, authHeader(pair))
	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Main job", response.Data.Source)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(500000)))
}

func (suite *TestSuiteStandard) TestIncomeDelete() {
	pair := suite.signUp()
	income := suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, income.Links.Self, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, income.Links.Self, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
