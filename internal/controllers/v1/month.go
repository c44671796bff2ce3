package v1

import (
	"net/http"
	"time"

	"github.com/budgetbook/backend/internal/auth"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterMonthRoutes registers the routes for the monthly budget view
// with the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	r.Use(auth.Middleware(co.Auth))

	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetMonths)
}

type MonthQueryFilter struct {
	From  time.Time `form:"from" time_format:"2006-01" time_utc:"1"`  // Earliest month to return
	Until time.Time `form:"until" time_format:"2006-01" time_utc:"1"` // Latest month to return
	Order string    `form:"order" example:"desc"`                     // Sort order by month, asc (default) or desc
}

type MonthListResponse struct {
	Data  []models.MonthlyBudget `json:"data"`  // The monthly budgets
	Error *string                `json:"error"` // The error, if any occurred
}

// @Summary		Get monthly budgets
// @Description	Returns the expenses bucketed into monthly budgets with planned and actual totals. The current month is always included, even when it has no expenses.
// @Tags			Months
// @Produce		json
// @Success		200	{object}	MonthListResponse
// @Failure		400	{object}	MonthListResponse
// @Router			/v1/months [get]
// @Param			from	query	string	false	"Earliest month to return in YYYY-MM format"
// @Param			until	query	string	false	"Latest month to return in YYYY-MM format"
// @Param			order	query	string	false	"Sort order by month, asc (default) or desc"
func (co Controller) GetMonths(c *gin.Context) {
	var filter MonthQueryFilter
	err := c.Bind(&filter)
	if err != nil {
		s := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, MonthListResponse{Error: &s})
		return
	}

	if !filter.From.IsZero() && !filter.Until.IsZero() && filter.From.After(filter.Until) {
		s := errMonthRangeInvalid.Error()
		c.JSON(http.StatusBadRequest, MonthListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("due_date ASC").
		Where("user_id = ?", auth.UserID(c))

	if !filter.From.IsZero() {
		q = q.Where("due_date >= ?", types.MonthOf(filter.From).Day(1))
	}
	if !filter.Until.IsZero() {
		q = q.Where("due_date < ?", types.MonthOf(filter.Until).AddDate(0, 1).Day(1))
	}

	var expenses []models.MonthlyExpense
	err = q.Find(&expenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthListResponse{Error: &s})
		return
	}

	budgets := models.AggregateBudgets(expenses, types.MonthOf(time.Now().In(time.UTC)))

	// The current month bucket might fall outside an explicit range
	if !filter.From.IsZero() || !filter.Until.IsZero() {
		from := types.MonthOf(filter.From)
		until := types.MonthOf(filter.Until)

		kept := budgets[:0]
		for _, budget := range budgets {
			if !filter.From.IsZero() && budget.Month.Before(from) {
				continue
			}
			if !filter.Until.IsZero() && budget.Month.After(until) {
				continue
			}
			kept = append(kept, budget)
		}
		budgets = kept
	}

	if filter.Order == "desc" {
		slices.Reverse(budgets)
	}

	c.JSON(http.StatusOK, MonthListResponse{Data: budgets})
}
