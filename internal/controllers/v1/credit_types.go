package v1

import (
	"fmt"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditEditable represents all user configurable parameters
type CreditEditable struct {
	Name           string          `json:"name" example:"Car loan" default:""` // Name of the credit
	Bank           string          `json:"bank" default:""`                    // Issuing bank
	Amount         decimal.Decimal `json:"amount" example:"1000000"`           // The full loan amount
	MonthlyPayment decimal.Decimal `json:"monthlyPayment" example:"25000"`     // The regular monthly installment
	InterestRate   decimal.Decimal `json:"interestRate" example:"11.9"`        // Interest rate in percent per year
}

func (editable CreditEditable) model(userID uuid.UUID) models.Credit {
	return models.Credit{
		UserID:         userID,
		Name:           editable.Name,
		Bank:           editable.Bank,
		Amount:         editable.Amount,
		MonthlyPayment: editable.MonthlyPayment,
		InterestRate:   editable.InterestRate,
	}
}

// CreditPaymentEditable is the body for booking an installment.
type CreditPaymentEditable struct {
	Principal decimal.Decimal `json:"principal" example:"20000"` // Part of the installment that reduces the balance
	Interest  decimal.Decimal `json:"interest" example:"5000"`   // Part of the installment that is interest
	Date      time.Time       `json:"date"`                      // When the installment was paid. Defaults to the current time
	Source    PaymentSource   `json:"source"`                    // Where the money comes from. Defaults to cash
}

// PayAllEditable is the body for paying all open installments at once.
type PayAllEditable struct {
	Date   time.Time     `json:"date"`   // When the installments were paid. Defaults to the current time
	Source PaymentSource `json:"source"` // Where the money comes from. Defaults to cash
}

type CreditLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/credits/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The credit itself
	Payments string `json:"payments" example:"https://example.com/api/v1/credits/3b1ea324-d438-4419-882a-2fc91d71772f/payments"` // Payment endpoint for this credit
}

type Credit struct {
	models.DefaultModel
	CreditEditable
	Links CreditLinks `json:"links"`

	// These fields are computed
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Outstanding balance
}

func newCredit(c *gin.Context, model models.Credit) Credit {
	url := c.GetString(string(models.DBContextURL))

	return Credit{
		DefaultModel: model.DefaultModel,
		CreditEditable: CreditEditable{
			Name:           model.Name,
			Bank:           model.Bank,
			Amount:         model.Amount,
			MonthlyPayment: model.MonthlyPayment,
			InterestRate:   model.InterestRate,
		},
		Links: CreditLinks{
			Self:     fmt.Sprintf("%s/v1/credits/%s", url, model.ID),
			Payments: fmt.Sprintf("%s/v1/credits/%s/payments", url, model.ID),
		},
		CurrentBalance: model.CurrentBalance,
	}
}

type CreditListResponse struct {
	Data       []Credit    `json:"data"`                                                          // List of credits
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CreditResponse struct {
	Data  *Credit `json:"data"`                                                          // Data for the credit
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CreditPayment struct {
	models.DefaultModel
	CreditID       uuid.UUID       `json:"creditId"`
	Date           time.Time       `json:"date"`
	Principal      decimal.Decimal `json:"principal"`
	Interest       decimal.Decimal `json:"interest"`
	Total          decimal.Decimal `json:"total"`
	SourceIncomeID *uuid.UUID      `json:"sourceIncomeId"`
	DepositID      *uuid.UUID      `json:"depositId"`
}

func newCreditPayment(model models.CreditPayment) CreditPayment {
	return CreditPayment{
		DefaultModel:   model.DefaultModel,
		CreditID:       model.CreditID,
		Date:           model.Date,
		Principal:      model.Principal,
		Interest:       model.Interest,
		Total:          model.Total(),
		SourceIncomeID: model.SourceIncomeID,
		DepositID:      model.DepositID,
	}
}

type CreditPaymentResponse struct {
	Data  *CreditPayment `json:"data"`  // The booked installment
	Error *string        `json:"error"` // The error, if any occurred
}

type CreditPaymentListResponse struct {
	Data  []CreditPayment `json:"data"`  // The booked installments
	Error *string         `json:"error"` // The error, if any occurred
}

type CreditQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By glob pattern in the name
	Bank   string `form:"bank"`                       // By bank
	Open   bool   `form:"open" filterField:"false"`   // Only credits with an outstanding balance
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first credit returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of credits to return. Defaults to 50.
}

func (f CreditQueryFilter) model() (models.Credit, error) {
	return models.Credit{
		Bank: f.Bank,
	}, nil
}
