package v1_test

import (
	"net/http"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestRecurringIncome(pair v1.TokenPair, editable v1.RecurringIncomeEditable) v1.RecurringIncome {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/recurring-incomes", editable, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.RecurringIncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestRecurringIncomeCreate() {
	pair := suite.signUp()

	template := suite.createTestRecurringIncome(pair, v1.RecurringIncomeEditable{
		Source:       "Salary",
		Category:     "employment",
		Amount:       decimal.NewFromInt(500000),
		RecurringDay: 5,
		Active:       true,
		AutoCreate:   true,
	})

	suite.Assert().Equal("Salary", template.Source)
	suite.Assert().Equal(5, template.RecurringDay)
	suite.Assert().Contains(template.Links.Incomes, "template=")
}

func (suite *TestSuiteStandard) TestRecurringIncomeInvalidDay() {
	pair := suite.signUp()

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/recurring-incomes", v1.RecurringIncomeEditable{
		Source:       "Salary",
		Amount:       decimal.NewFromInt(500000),
		RecurringDay: 32,
		Active:       true,
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestReconcileEndpoint() {
	pair := suite.signUp()

	template := suite.createTestRecurringIncome(pair, v1.RecurringIncomeEditable{
		Source:       "Salary",
		Amount:       decimal.NewFromInt(500000),
		RecurringDay: 1,
		Active:       true,
		AutoCreate:   true,
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/recurring-incomes/reconcile", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ReconcileResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(1, response.Data.Created)

	// Reconciling again in the same month is a no-op
	recorder = test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/recurring-incomes/reconcile", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(0, response.Data.Created)
	suite.Assert().Equal(1, response.Data.Skipped)

	// The created income references its template
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, template.Links.Incomes, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var incomes v1.IncomeListResponse
	test.DecodeResponse(suite.T(), &recorder, &incomes)
	suite.Require().Len(incomes.Data, 1)
	suite.Assert().True(incomes.Data[0].AutoCreated)
	suite.Require().NotNil(incomes.Data[0].TemplateID)
	suite.Assert().Equal(template.ID, *incomes.Data[0].TemplateID)
}

func (suite *TestSuiteStandard) TestRecurringIncomeUpdateAndDelete() {
	pair := suite.signUp()
	template := suite.createTestRecurringIncome(pair, v1.RecurringIncomeEditable{
		Source:       "Salary",
		Amount:       decimal.NewFromInt(500000),
		RecurringDay: 5,
		Active:       true,
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPatch, template.Links.Self, map[string]bool{
		"active": false,
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, template.Links.Self, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, template.Links.Self, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
