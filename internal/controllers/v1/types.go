package v1

import (
	"github.com/budgetbook/backend/internal/models"
	bb_uuid "github.com/budgetbook/backend/internal/uuid"
)

// PaymentSource is the funding source in payment request bodies.
type PaymentSource = models.PaymentSource

type URIID struct {
	ID bb_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}
