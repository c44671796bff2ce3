package v1

import (
	"errors"
	"net/http"

	"github.com/budgetbook/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errCredentialsInvalid  = errors.New("the email address or password is incorrect")
	errRefreshTokenInvalid = errors.New("the refresh token is invalid or has expired")
)

// Month errors
var (
	errMonthRangeInvalid = errors.New("the from month must not be after the until month")
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)
