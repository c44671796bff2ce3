package v1

import (
	"fmt"

	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/internal/reconcile"
	"github.com/budgetbook/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringIncomeEditable represents all user configurable parameters
type RecurringIncomeEditable struct {
	Source       string          `json:"source" example:"Salary" default:""`        // Where the money comes from
	Category     string          `json:"category" example:"employment" default:""`  // Free-form category
	Amount       decimal.Decimal `json:"amount" example:"500000"`                   // The amount expected every month
	RecurringDay int             `json:"recurringDay" example:"5"`                  // Day of the month the income is expected
	Active       bool            `json:"active" example:"true" default:"false"`     // Inactive templates are never reconciled
	AutoCreate   bool            `json:"autoCreate" example:"true" default:"false"` // Should reconciliation create incomes from this template?
	StartMonth   types.Month     `json:"startMonth"`                                // No incomes are created for months before this one
}

func (editable RecurringIncomeEditable) model(userID uuid.UUID) models.RecurringTemplate {
	return models.RecurringTemplate{
		UserID:       userID,
		Source:       editable.Source,
		Category:     editable.Category,
		Amount:       editable.Amount,
		RecurringDay: editable.RecurringDay,
		Active:       editable.Active,
		AutoCreate:   editable.AutoCreate,
		StartMonth:   editable.StartMonth,
	}
}

type RecurringIncomeLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/recurring-incomes/3b1ea324-d438-4419-882a-2fc91d71772f"`   // The template itself
	Incomes string `json:"incomes" example:"https://example.com/api/v1/incomes?template=3b1ea324-d438-4419-882a-2fc91d71772f"` // Incomes created from this template
}

type RecurringIncome struct {
	models.DefaultModel
	RecurringIncomeEditable
	Links RecurringIncomeLinks `json:"links"`
}

func newRecurringIncome(c *gin.Context, model models.RecurringTemplate) RecurringIncome {
	url := c.GetString(string(models.DBContextURL))

	return RecurringIncome{
		DefaultModel: model.DefaultModel,
		RecurringIncomeEditable: RecurringIncomeEditable{
			Source:       model.Source,
			Category:     model.Category,
			Amount:       model.Amount,
			RecurringDay: model.RecurringDay,
			Active:       model.Active,
			AutoCreate:   model.AutoCreate,
			StartMonth:   model.StartMonth,
		},
		Links: RecurringIncomeLinks{
			Self:    fmt.Sprintf("%s/v1/recurring-incomes/%s", url, model.ID),
			Incomes: fmt.Sprintf("%s/v1/incomes?template=%s", url, model.ID),
		},
	}
}

type RecurringIncomeListResponse struct {
	Data       []RecurringIncome `json:"data"`                                                          // List of recurring incomes
	Error      *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination       `json:"pagination"`                                                    // Pagination information
}

type RecurringIncomeResponse struct {
	Data  *RecurringIncome `json:"data"`                                                          // Data for the recurring income
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringIncomeQueryFilter struct {
	Source     string `form:"source" filterField:"false"` // By glob pattern in the source
	Category   string `form:"category"`                   // By category
	Active     bool   `form:"active"`                     // Only active templates
	AutoCreate bool   `form:"autoCreate"`                 // Only templates reconciliation considers
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first template returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of templates to return. Defaults to 50.
}

func (f RecurringIncomeQueryFilter) model() (models.RecurringTemplate, error) {
	return models.RecurringTemplate{
		Category:   f.Category,
		Active:     f.Active,
		AutoCreate: f.AutoCreate,
	}, nil
}

type ReconcileResponse struct {
	Data  *reconcile.Summary `json:"data"`  // What the reconciliation run did
	Error *string            `json:"error"` // The error, if any occurred
}
