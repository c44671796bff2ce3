package v1

import (
	"fmt"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	Category      string          `json:"category" example:"utilities" default:""` // Free-form category
	Name          string          `json:"name" example:"Electricity" default:""`   // Name of the expense
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"10000"`           // The amount planned for this expense
	DueDate       time.Time       `json:"dueDate"`                                 // When the expense is due. Determines the month bucket
}

func (editable ExpenseEditable) model(userID uuid.UUID) models.MonthlyExpense {
	return models.MonthlyExpense{
		UserID:        userID,
		Category:      editable.Category,
		Name:          editable.Name,
		PlannedAmount: editable.PlannedAmount,
		DueDate:       editable.DueDate,
	}
}

// ExpensePaymentEditable is the body for recording a payment on an
// expense.
type ExpensePaymentEditable struct {
	Amount decimal.Decimal `json:"amount" example:"10000"` // The amount paid
	Source PaymentSource   `json:"source"`                 // Where the money comes from. Defaults to cash
}

type ExpenseLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/expenses/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The expense itself
	Payments string `json:"payments" example:"https://example.com/api/v1/expenses/3b1ea324-d438-4419-882a-2fc91d71772f/payments"` // Payment endpoint for this expense
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`

	// These fields are computed
	ActualAmount    decimal.Decimal      `json:"actualAmount"`    // Sum of the payments recorded so far
	RemainingAmount decimal.Decimal      `json:"remainingAmount"` // Unpaid part of the planned amount
	Status          models.ExpenseStatus `json:"status"`          // planned or paid
	SourceIncomeID  *uuid.UUID           `json:"sourceIncomeId"`  // Income that funded the payment, if any
	DepositID       *uuid.UUID           `json:"depositId"`       // Deposit that funded the payment, if any
}

func newExpense(c *gin.Context, model models.MonthlyExpense) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			Category:      model.Category,
			Name:          model.Name,
			PlannedAmount: model.PlannedAmount,
			DueDate:       model.DueDate,
		},
		Links: ExpenseLinks{
			Self:     fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Payments: fmt.Sprintf("%s/v1/expenses/%s/payments", url, model.ID),
		},
		ActualAmount:    model.ActualAmount,
		RemainingAmount: model.Remaining(),
		Status:          model.Status,
		SourceIncomeID:  model.SourceIncomeID,
		DepositID:       model.DepositID,
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	Category string               `form:"category"`                                                     // By category
	Name     string               `form:"name" filterField:"false"`                                     // By glob pattern in the name
	Month    time.Time            `form:"month" filterField:"false" time_format:"2006-01" time_utc:"1"` // By month of the due date
	Status   models.ExpenseStatus `form:"status"`                                                       // By payment status
	Offset   uint                 `form:"offset" filterField:"false"`                                   // The offset of the first expense returned. Defaults to 0.
	Limit    int                  `form:"limit" filterField:"false"`                                    // Maximum number of expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() (models.MonthlyExpense, error) {
	return models.MonthlyExpense{
		Category: f.Category,
		Status:   f.Status,
	}, nil
}
