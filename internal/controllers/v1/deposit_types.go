package v1

import (
	"fmt"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositEditable represents all user configurable parameters
type DepositEditable struct {
	Name           string          `json:"name" example:"Rainy day fund" default:""` // Name of the deposit
	Bank           string          `json:"bank" example:"Sparkasse" default:""`      // Bank holding the deposit
	CurrentBalance decimal.Decimal `json:"currentBalance" example:"100000"`          // Opening balance on create
	InterestRate   decimal.Decimal `json:"interestRate" example:"3.5"`               // Interest rate in percent per year, informational only
}

func (editable DepositEditable) model(userID uuid.UUID) models.Deposit {
	return models.Deposit{
		UserID:         userID,
		Name:           editable.Name,
		Bank:           editable.Bank,
		CurrentBalance: editable.CurrentBalance,
		InterestRate:   editable.InterestRate,
	}
}

// DepositTransactionEditable is the body for moving money in or out of
// a deposit.
type DepositTransactionEditable struct {
	Type   models.DepositTransactionType `json:"type" example:"deposit"` // deposit or withdrawal
	Amount decimal.Decimal               `json:"amount" example:"10000"` // The amount to move
	Note   string                        `json:"note" default:""`        // Free-form note
	Source PaymentSource                 `json:"source"`                 // For deposits: where the money comes from. Defaults to cash
}

type DepositLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/deposits/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The deposit itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/deposits/3b1ea324-d438-4419-882a-2fc91d71772f/transactions"` // Transactions of this deposit
}

type Deposit struct {
	models.DefaultModel
	DepositEditable
	Links DepositLinks `json:"links"`

	// These fields are computed
	Closed bool `json:"closed"` // A closed deposit can no longer fund payments
}

func newDeposit(c *gin.Context, model models.Deposit) Deposit {
	url := c.GetString(string(models.DBContextURL))

	return Deposit{
		DefaultModel: model.DefaultModel,
		DepositEditable: DepositEditable{
			Name:           model.Name,
			Bank:           model.Bank,
			CurrentBalance: model.CurrentBalance,
			InterestRate:   model.InterestRate,
		},
		Links: DepositLinks{
			Self:         fmt.Sprintf("%s/v1/deposits/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/deposits/%s/transactions", url, model.ID),
		},
		Closed: model.Closed,
	}
}

type DepositListResponse struct {
	Data       []Deposit   `json:"data"`                                                          // List of deposits
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DepositResponse struct {
	Data  *Deposit `json:"data"`                                                          // Data for the deposit
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DepositTransaction struct {
	models.DefaultModel
	DepositID      uuid.UUID                     `json:"depositId"`
	Type           models.DepositTransactionType `json:"type"`
	Amount         decimal.Decimal               `json:"amount"`
	Date           time.Time                     `json:"date"`
	Note           string                        `json:"note"`
	SourceIncomeID *uuid.UUID                    `json:"sourceIncomeId"`
}

func newDepositTransaction(model models.DepositTransaction) DepositTransaction {
	return DepositTransaction{
		DefaultModel:   model.DefaultModel,
		DepositID:      model.DepositID,
		Type:           model.Type,
		Amount:         model.Amount,
		Date:           model.Date,
		Note:           model.Note,
		SourceIncomeID: model.SourceIncomeID,
	}
}

type DepositTransactionResponse struct {
	Data  *DepositTransaction `json:"data"`  // The booked transaction
	Error *string             `json:"error"` // The error, if any occurred
}

type DepositTransactionListResponse struct {
	Data  []DepositTransaction `json:"data"`  // Transactions of the deposit
	Error *string              `json:"error"` // The error, if any occurred
}

type DepositQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By glob pattern in the name
	Bank   string `form:"bank"`                       // By bank
	Closed bool   `form:"closed"`                     // Include only closed or only open deposits
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first deposit returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of deposits to return. Defaults to 50.
}

func (f DepositQueryFilter) model() (models.Deposit, error) {
	return models.Deposit{
		Bank:   f.Bank,
		Closed: f.Closed,
	}, nil
}
