package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestExpense(pair v1.TokenPair, editable v1.ExpenseEditable) v1.Expense {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/expenses", editable, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestExpenseCreate() {
	pair := suite.signUp()

	expense := suite.createTestExpense(pair, v1.ExpenseEditable{
		Category:      "utilities",
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(10000),
		DueDate:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})

	suite.Assert().Equal(models.ExpensePlanned, expense.Status)
	suite.Assert().True(expense.RemainingAmount.Equal(decimal.NewFromInt(10000)))
}

func (suite *TestSuiteStandard) TestExpensePayCash() {
	pair := suite.signUp()
	expense := suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(10000),
		DueDate:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, expense.Links.Payments, v1.ExpensePaymentEditable{
		Amount: decimal.NewFromInt(10000),
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(models.ExpensePaid, response.Data.Status)
	suite.Assert().True(response.Data.RemainingAmount.IsZero())
}

func (suite *TestSuiteStandard) TestExpensePayFromIncome() {
	pair := suite.signUp()
	income := suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(500000)})
	expense := suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(10000),
		DueDate:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, expense.Links.Payments, v1.ExpensePaymentEditable{
		Amount: decimal.NewFromInt(10000),
		Source: v1.PaymentSource{Type: models.SourceIncome, ID: income.ID},
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Require().NotNil(response.Data.SourceIncomeID)
	suite.Assert().Equal(income.ID, *response.Data.SourceIncomeID)

	// The income's available amount dropped
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, income.Links.Self, nil, authHeader(pair))
	var incomeResponse v1.IncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &incomeResponse)
	suite.Require().NotNil(incomeResponse.Data)
	suite.Assert().True(incomeResponse.Data.AvailableAmount.Equal(decimal.NewFromInt(490000)))
}

func (suite *TestSuiteStandard) TestExpensePayOverdrawnIncome() {
	pair := suite.signUp()
	income := suite.createTestIncome(pair, v1.IncomeEditable{Source: "Salary", Amount: decimal.NewFromInt(5000)})
	expense := suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(10000),
		DueDate:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, expense.Links.Payments, v1.ExpensePaymentEditable{
		Amount: decimal.NewFromInt(10000),
		Source: v1.PaymentSource{Type: models.SourceIncome, ID: income.ID},
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExpensesMonthFilter() {
	pair := suite.signUp()
	suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(10000),
		DueDate:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestExpense(pair, v1.ExpenseEditable{
		Name:          "Water",
		PlannedAmount: decimal.NewFromInt(3000),
		DueDate:       time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses?month=2024-03", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Electricity", response.Data[0].Name)
}
