package v1

import (
	"net/http"

	"github.com/budgetbook/backend/internal/auth"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterDebtRoutes registers the routes for debts with
// the RouterGroup that is passed.
func (co Controller) RegisterDebtRoutes(r *gin.RouterGroup) {
	r.Use(auth.Middleware(co.Auth))

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetDebts)
		r.POST("", co.CreateDebt)
	}

	// Debt with ID
	{
		r.OPTIONS("/:id", co.OptionsDebtDetail)
		r.GET("/:id", co.GetDebt)
		r.PATCH("/:id", co.UpdateDebt)
		r.DELETE("/:id", co.DeleteDebt)
	}

	// Repayments on a debt
	{
		r.OPTIONS("/:id/payments", httputil.OptionsPost)
		r.POST("/:id/payments", co.PayDebt)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [options]
func (co Controller) OptionsDebtDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Debt{})
}

// @Summary		Create debt
// @Description	Creates a new debt. The unpaid balance starts at the full amount.
// @Tags			Debts
// @Produce		json
// @Success		201		{object}	DebtResponse
// @Failure		400		{object}	DebtResponse
// @Failure		500		{object}	DebtResponse
// @Param			debt	body		DebtEditable	true	"Debt"
// @Router			/v1/debts [post]
func (co Controller) CreateDebt(c *gin.Context) {
	var editable DebtEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	debt := editable.model(auth.UserID(c))
	err = models.DB.Create(&debt).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	data := newDebt(c, debt)
	c.JSON(http.StatusCreated, DebtResponse{Data: &data})
}

// @Summary		Book repayment
// @Description	Books a repayment on the debt. A repayment can never exceed the unpaid balance. For debts the user pays, the funding source is debited in the same transaction.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		201		{object}	DebtPaymentResponse
// @Failure		400		{object}	DebtPaymentResponse
// @Failure		404		{object}	DebtPaymentResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		DebtPaymentEditable	true	"Repayment"
// @Router			/v1/debts/{id}/payments [post]
func (co Controller) PayDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentResponse{Error: &s})
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentResponse{Error: &s})
		return
	}

	var editable DebtPaymentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentResponse{Error: &s})
		return
	}

	payment, err := models.PayDebt(models.DB, &debt, models.DebtPayment{
		Date:   editable.Date,
		Amount: editable.Amount,
	}, editable.Source)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtPaymentResponse{Error: &s})
		return
	}

	data := newDebtPayment(payment)
	c.JSON(http.StatusCreated, DebtPaymentResponse{Data: &data})
}

// @Summary		Get debts
// @Description	Returns a list of debts
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtListResponse
// @Failure		400	{object}	DebtListResponse
// @Router			/v1/debts [get]
// @Param			person		query	string	false	"Filter by glob pattern in the person"
// @Param			direction	query	string	false	"Filter by direction, owed_to_me or i_owe"
// @Param			settled		query	bool	false	"Filter by settled state"
// @Param			offset		query	uint	false	"The offset of the first debt returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of debts to return. Defaults to 50."
func (co Controller) GetDebts(c *gin.Context) {
	var filter DebtQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("created_at DESC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	if slices.Contains(setFields, "Settled") {
		if filter.Settled {
			q = q.Where("current_balance = 0")
		} else {
			q = q.Where("current_balance > 0")
		}
	}

	var debts []models.Debt
	err = q.Find(&debts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtListResponse{Error: &s})
		return
	}

	if slices.Contains(setFields, "Person") {
		matched := make([]models.Debt, 0, len(debts))
		for _, debt := range debts {
			if glob.Glob(filter.Person, debt.Person) {
				matched = append(matched, debt)
			}
		}
		debts = matched
	}

	total := int64(len(debts))

	if filter.Offset > uint(len(debts)) {
		debts = []models.Debt{}
	} else {
		debts = debts[filter.Offset:]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(debts) {
		debts = debts[:limit]
	}

	data := make([]Debt, 0, len(debts))
	for _, debt := range debts {
		data = append(data, newDebt(c, debt))
	}

	c.JSON(http.StatusOK, DebtListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get debt
// @Description	Returns a specific debt
// @Tags			Debts
// @Produce		json
// @Success		200	{object}	DebtResponse
// @Failure		400	{object}	DebtResponse
// @Failure		404	{object}	DebtResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [get]
func (co Controller) GetDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	data := newDebt(c, debt)
	c.JSON(http.StatusOK, DebtResponse{Data: &data})
}

// @Summary		Update debt
// @Description	Update an existing debt. Only values to be updated need to be specified. The balance can not be edited directly, book repayments instead.
// @Tags			Debts
// @Accept			json
// @Produce		json
// @Success		200		{object}	DebtResponse
// @Failure		400		{object}	DebtResponse
// @Failure		404		{object}	DebtResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			debt	body		DebtEditable	true	"Debt"
// @Router			/v1/debts/{id} [patch]
func (co Controller) UpdateDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DebtEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	var data DebtEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	err = models.DB.Model(&debt).Select("", updateFields...).Updates(data.model(debt.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DebtResponse{Error: &s})
		return
	}

	r := newDebt(c, debt)
	c.JSON(http.StatusOK, DebtResponse{Data: &r})
}

// @Summary		Delete debt
// @Description	Deletes a debt and its repayment history
// @Tags			Debts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/debts/{id} [delete]
func (co Controller) DeleteDebt(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var debt models.Debt
	err = models.DB.First(&debt, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Where("debt_id = ?", debt.ID).Delete(&models.DebtPayment{}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&debt).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
