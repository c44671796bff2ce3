package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/budgetbook/backend/internal/controllers/v1"
	"github.com/budgetbook/backend/test"
)

func (suite *TestSuiteStandard) createTestReminder(pair v1.TokenPair, editable v1.ReminderEditable) v1.Reminder {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/reminders", editable, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ReminderResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestReminderCRUD() {
	pair := suite.signUp()

	reminder := suite.createTestReminder(pair, v1.ReminderEditable{
		Title: "Renew car insurance",
		DueAt: time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC),
	})
	suite.Assert().False(reminder.Done)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPatch, reminder.Links.Self, map[string]bool{
		"done": true,
	}, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, reminder.Links.Self, nil, authHeader(pair))
	var response v1.ReminderResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Done)

	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, reminder.Links.Self, nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestRemindersOrderedByDueDate() {
	pair := suite.signUp()

	suite.createTestReminder(pair, v1.ReminderEditable{
		Title: "Later",
		DueAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestReminder(pair, v1.ReminderEditable{
		Title: "Sooner",
		DueAt: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/reminders", nil, authHeader(pair))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ReminderListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Sooner", response.Data[0].Title)
}
