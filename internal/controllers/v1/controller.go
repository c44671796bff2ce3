// Package v1 implements the handlers for the v1 API.
package v1

import (
	"github.com/budgetbook/backend/internal/auth"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Controller carries the configuration the handlers need. All route
// registration goes through it so that the auth middleware always gets
// the same token settings as the login handlers.
type Controller struct {
	Auth auth.Config
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS
// request for a specific resource owned by the authenticated user.
func resourceOptionsDetail[R models.Income | models.RecurringTemplate | models.MonthlyExpense | models.Credit | models.Deposit | models.RentProperty | models.Debt | models.Reminder](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
