package v1

import (
	"fmt"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentPropertyEditable represents all user configurable parameters
type RentPropertyEditable struct {
	Name        string          `json:"name" example:"Lenina 42 apartment" default:""` // Name of the property
	Address     string          `json:"address" default:""`                            // Address of the property
	MonthlyRate decimal.Decimal `json:"monthlyRate" example:"30000"`                   // The monthly rent
	Active      bool            `json:"active" example:"true" default:"true"`          // Is the property currently rented out?
}

func (editable RentPropertyEditable) model(userID uuid.UUID) models.RentProperty {
	return models.RentProperty{
		UserID:      userID,
		Name:        editable.Name,
		Address:     editable.Address,
		MonthlyRate: editable.MonthlyRate,
		Active:      editable.Active,
	}
}

// RentPaymentEditable is the body for recording a received rent
// payment.
type RentPaymentEditable struct {
	Amount decimal.Decimal `json:"amount" example:"30000"` // The amount received
	Date   time.Time       `json:"date"`                   // When the rent was received. Defaults to the current time
	Note   string          `json:"note" default:""`        // Free-form note
}

type RentPropertyLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/rents/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The property itself
	Payments string `json:"payments" example:"https://example.com/api/v1/rents/3b1ea324-d438-4419-882a-2fc91d71772f/payments"` // Payment endpoint for this property
}

type RentProperty struct {
	models.DefaultModel
	RentPropertyEditable
	Links RentPropertyLinks `json:"links"`
}

func newRentProperty(c *gin.Context, model models.RentProperty) RentProperty {
	url := c.GetString(string(models.DBContextURL))

	return RentProperty{
		DefaultModel: model.DefaultModel,
		RentPropertyEditable: RentPropertyEditable{
			Name:        model.Name,
			Address:     model.Address,
			MonthlyRate: model.MonthlyRate,
			Active:      model.Active,
		},
		Links: RentPropertyLinks{
			Self:     fmt.Sprintf("%s/v1/rents/%s", url, model.ID),
			Payments: fmt.Sprintf("%s/v1/rents/%s/payments", url, model.ID),
		},
	}
}

type RentPropertyListResponse struct {
	Data       []RentProperty `json:"data"`                                                          // List of rent properties
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type RentPropertyResponse struct {
	Data  *RentProperty `json:"data"`                                                          // Data for the rent property
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RentPayment struct {
	models.DefaultModel
	PropertyID uuid.UUID       `json:"propertyId"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

func newRentPayment(model models.RentPayment) RentPayment {
	return RentPayment{
		DefaultModel: model.DefaultModel,
		PropertyID:   model.PropertyID,
		Date:         model.Date,
		Amount:       model.Amount,
		Note:         model.Note,
	}
}

type RentPaymentResponse struct {
	Data  *RentPayment `json:"data"`  // The recorded rent payment
	Error *string      `json:"error"` // The error, if any occurred
}

type RentPaymentListResponse struct {
	Data  []RentPayment `json:"data"`  // Rent payments for the property
	Error *string       `json:"error"` // The error, if any occurred
}

type RentPropertyQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By glob pattern in the name
	Active bool   `form:"active"`                     // Only active properties
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first property returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of properties to return. Defaults to 50.
}

func (f RentPropertyQueryFilter) model() (models.RentProperty, error) {
	return models.RentProperty{
		Active: f.Active,
	}, nil
}
