package v1

import (
	"fmt"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtEditable represents all user configurable parameters
type DebtEditable struct {
	Person    string               `json:"person" example:"Uncle Bob" default:""` // The other party of the debt
	Direction models.DebtDirection `json:"direction" example:"i_owe"`             // owed_to_me or i_owe
	Amount    decimal.Decimal      `json:"amount" example:"50000"`                // The full amount of the debt
	DueDate   *time.Time           `json:"dueDate"`                               // When the debt is due, if agreed
	Note      string               `json:"note" default:""`                       // Free-form note
}

func (editable DebtEditable) model(userID uuid.UUID) models.Debt {
	return models.Debt{
		UserID:    userID,
		Person:    editable.Person,
		Direction: editable.Direction,
		Amount:    editable.Amount,
		DueDate:   editable.DueDate,
		Note:      editable.Note,
	}
}

// DebtPaymentEditable is the body for booking a repayment.
type DebtPaymentEditable struct {
	Amount decimal.Decimal `json:"amount" example:"10000"` // The amount repaid
	Date   time.Time       `json:"date"`                   // When the repayment happened. Defaults to the current time
	Source PaymentSource   `json:"source"`                 // For debts the user pays: where the money comes from. Defaults to cash
}

type DebtLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/debts/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The debt itself
	Payments string `json:"payments" example:"https://example.com/api/v1/debts/3b1ea324-d438-4419-882a-2fc91d71772f/payments"` // Payment endpoint for this debt
}

type Debt struct {
	models.DefaultModel
	DebtEditable
	Links DebtLinks `json:"links"`

	// These fields are computed
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Unpaid remainder of the debt
	Settled        bool            `json:"settled"`        // Has the debt been fully repaid?
}

func newDebt(c *gin.Context, model models.Debt) Debt {
	url := c.GetString(string(models.DBContextURL))

	return Debt{
		DefaultModel: model.DefaultModel,
		DebtEditable: DebtEditable{
			Person:    model.Person,
			Direction: model.Direction,
			Amount:    model.Amount,
			DueDate:   model.DueDate,
			Note:      model.Note,
		},
		Links: DebtLinks{
			Self:     fmt.Sprintf("%s/v1/debts/%s", url, model.ID),
			Payments: fmt.Sprintf("%s/v1/debts/%s/payments", url, model.ID),
		},
		CurrentBalance: model.CurrentBalance,
		Settled:        model.Settled(),
	}
}

type DebtListResponse struct {
	Data       []Debt      `json:"data"`                                                          // List of debts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DebtResponse struct {
	Data  *Debt   `json:"data"`                                                          // Data for the debt
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DebtPayment struct {
	models.DefaultModel
	DebtID         uuid.UUID       `json:"debtId"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	SourceIncomeID *uuid.UUID      `json:"sourceIncomeId"`
	DepositID      *uuid.UUID      `json:"depositId"`
}

func newDebtPayment(model models.DebtPayment) DebtPayment {
	return DebtPayment{
		DefaultModel:   model.DefaultModel,
		DebtID:         model.DebtID,
		Date:           model.Date,
		Amount:         model.Amount,
		SourceIncomeID: model.SourceIncomeID,
		DepositID:      model.DepositID,
	}
}

type DebtPaymentResponse struct {
	Data  *DebtPayment `json:"data"`  // The booked repayment
	Error *string      `json:"error"` // The error, if any occurred
}

type DebtQueryFilter struct {
	Person    string               `form:"person" filterField:"false"`  // By glob pattern in the person
	Direction models.DebtDirection `form:"direction"`                   // By direction
	Settled   bool                 `form:"settled" filterField:"false"` // Only settled or only open debts
	Offset    uint                 `form:"offset" filterField:"false"`  // The offset of the first debt returned. Defaults to 0.
	Limit     int                  `form:"limit" filterField:"false"`   // Maximum number of debts to return. Defaults to 50.
}

func (f DebtQueryFilter) model() (models.Debt, error) {
	return models.Debt{
		Direction: f.Direction,
	}, nil
}
