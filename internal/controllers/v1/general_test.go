package v1_test

import (
	"net/http"

	"github.com/budgetbook/backend/internal/router"
	"github.com/budgetbook/backend/test"
)

func (suite *TestSuiteStandard) TestGetRoot() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response router.RootResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("http://example.com/v1", response.Links.V1)
	suite.Assert().Equal("http://example.com/docs/index.html", response.Links.Docs)
}

func (suite *TestSuiteStandard) TestGetV1Links() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response router.V1Response
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("http://example.com/v1/incomes", response.Links.Incomes)
	suite.Assert().Equal("http://example.com/v1/months", response.Links.Months)
	suite.Assert().Equal("http://example.com/v1/auth", response.Links.Auth)
}

func (suite *TestSuiteStandard) TestGetVersion() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/version", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response router.VersionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("0.0.0", response.Data.Version)
}

func (suite *TestSuiteStandard) TestGetHealth() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/healthz", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestMethodNotAllowed() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/healthz", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestOptionsHeaders() {
	tests := []struct {
		path  string
		allow string
	}{
		{"http://example.com/", "OPTIONS, GET"},
		{"http://example.com/version", "OPTIONS, GET"},
		{"http://example.com/v1", "OPTIONS, GET, DELETE"},
	}

	for _, tt := range tests {
		recorder := test.Request(suite.controller, suite.T(), http.MethodOptions, tt.path, nil)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
		suite.Assert().Equal(tt.allow, recorder.Header().Get("allow"), tt.path)
	}
}
