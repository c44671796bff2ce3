package v1

import (
	"fmt"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/internal/types"
	bb_uuid "github.com/budgetbook/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeEditable represents all user configurable parameters
type IncomeEditable struct {
	Source   string          `json:"source" example:"Salary" default:""`       // Where the money came from
	Category string          `json:"category" example:"employment" default:""` // Free-form category
	Amount   decimal.Decimal `json:"amount" example:"500000"`                  // The amount received
	Date     time.Time       `json:"date"`                                     // When the money was received. Defaults to the current time
}

func (editable IncomeEditable) model(userID uuid.UUID) models.Income {
	return models.Income{
		UserID:   userID,
		Source:   editable.Source,
		Category: editable.Category,
		Amount:   editable.Amount,
		Date:     editable.Date,
	}
}

type IncomeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/incomes/3b1ea324-d438-4419-882a-2fc91d71772f"` // The income itself
}

type Income struct {
	models.DefaultModel
	IncomeEditable
	Links IncomeLinks `json:"links"`

	// These fields are computed
	Month           types.Month     `json:"month"`           // The month bucket the income belongs to
	UsedAmount      decimal.Decimal `json:"usedAmount"`      // Amount already consumed as a payment source
	AvailableAmount decimal.Decimal `json:"availableAmount"` // Amount still available for payments
	AutoCreated     bool            `json:"autoCreated"`     // Was this income created by reconciliation?
	TemplateID      *uuid.UUID      `json:"templateId"`      // The recurring template this income was created from, if any
}

func newIncome(c *gin.Context, model models.Income) Income {
	url := c.GetString(string(models.DBContextURL))

	return Income{
		DefaultModel: model.DefaultModel,
		IncomeEditable: IncomeEditable{
			Source:   model.Source,
			Category: model.Category,
			Amount:   model.Amount,
			Date:     model.Date,
		},
		Links: IncomeLinks{
			Self: fmt.Sprintf("%s/v1/incomes/%s", url, model.ID),
		},
		Month:           model.Month,
		UsedAmount:      model.UsedAmount,
		AvailableAmount: model.AvailableAmount(),
		AutoCreated:     model.AutoCreated,
		TemplateID:      model.TemplateID,
	}
}

type IncomeListResponse struct {
	Data       []Income    `json:"data"`                                                          // List of incomes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type IncomeResponse struct {
	Data  *Income `json:"data"`                                                          // Data for the income
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type IncomeQueryFilter struct {
	Source      string       `form:"source" filterField:"false"`                                   // By glob pattern in the source, e.g. "Sal*"
	Category    string       `form:"category"`                                                     // By category
	Month       time.Time    `form:"month" filterField:"false" time_format:"2006-01" time_utc:"1"` // By month bucket
	AutoCreated bool         `form:"autoCreated"`                                                  // Only incomes created by reconciliation
	TemplateID  bb_uuid.UUID `form:"template"`                                                     // By ID of the recurring template
	Offset      uint         `form:"offset" filterField:"false"`                                   // The offset of the first income returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`                                    // Maximum number of incomes to return. Defaults to 50.
}

func (f IncomeQueryFilter) model() (models.Income, error) {
	var templateID *uuid.UUID
	if f.TemplateID.UUID != uuid.Nil {
		templateID = &f.TemplateID.UUID
	}

	return models.Income{
		Category:    f.Category,
		AutoCreated: f.AutoCreated,
		TemplateID:  templateID,
	}, nil
}
