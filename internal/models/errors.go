package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors
var (
	ErrAmountNotPositive   = errors.New("the amount must be positive")
	ErrRecurringDayInvalid = errors.New("the recurring day must be between 1 and 31")
	ErrEmailNotUnique      = errors.New("a user with this email address already exists")
)

// Bookkeeping errors. These abort the transaction they occur in.
var (
	ErrIncomeOverdrawn          = errors.New("the income does not have enough available amount left")
	ErrDepositOverdrawn         = errors.New("the withdrawal would reduce the deposit balance below zero")
	ErrDepositClosed            = errors.New("the deposit is closed")
	ErrPaymentExceedsBalance    = errors.New("the principal of the payment exceeds the current balance")
	ErrPaymentSourceTypeInvalid = errors.New("the payment source type must be one of CASH, INCOME, DEPOSIT")
	ErrPaymentSourceIDMissing   = errors.New("the payment source ID must be set for INCOME and DEPOSIT sources")
)

// ErrTemplateAlreadyReconciled signals that the template already has an
// auto-created income for the month. It maps the unique index on
// (template_id, month), which makes reconciliation idempotent.
var ErrTemplateAlreadyReconciled = errors.New("an income for this template and month already exists")
