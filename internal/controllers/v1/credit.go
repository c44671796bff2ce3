package v1

import (
	"net/http"
	"time"

	"github.com/budgetbook/backend/internal/auth"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterCreditRoutes registers the routes for credits with
// the RouterGroup that is passed.
func (co Controller) RegisterCreditRoutes(r *gin.RouterGroup) {
	r.Use(auth.Middleware(co.Auth))

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetCredits)
		r.POST("", co.CreateCredit)
	}

	// Bulk payment of all open installments
	{
		r.OPTIONS("/pay-all", httputil.OptionsPost)
		r.POST("/pay-all", co.PayAllCredits)
	}

	// Credit with ID
	{
		r.OPTIONS("/:id", co.OptionsCreditDetail)
		r.GET("/:id", co.GetCredit)
		r.PATCH("/:id", co.UpdateCredit)
		r.DELETE("/:id", co.DeleteCredit)
	}

	// Payments on a credit
	{
		r.OPTIONS("/:id/payments", httputil.OptionsPost)
		r.POST("/:id/payments", co.PayCredit)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Credits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credits/{id} [options]
func (co Controller) OptionsCreditDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Credit{})
}

// @Summary		Create credit
// @Description	Creates a new credit. The outstanding balance starts at the full amount.
// @Tags			Credits
// @Produce		json
// @Success		201		{object}	CreditResponse
// @Failure		400		{object}	CreditResponse
// @Failure		500		{object}	CreditResponse
// @Param			credit	body		CreditEditable	true	"Credit"
// @Router			/v1/credits [post]
func (co Controller) CreateCredit(c *gin.Context) {
	var editable CreditEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	credit := editable.model(auth.UserID(c))
	err = models.DB.Create(&credit).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	data := newCredit(c, credit)
	c.JSON(http.StatusCreated, CreditResponse{Data: &data})
}

// @Summary		Pay installment
// @Description	Books one installment on the credit. The funding source is debited and the balance reduced by the principal in the same transaction.
// @Tags			Credits
// @Accept			json
// @Produce		json
// @Success		201		{object}	CreditPaymentResponse
// @Failure		400		{object}	CreditPaymentResponse
// @Failure		404		{object}	CreditPaymentResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		CreditPaymentEditable	true	"Installment"
// @Router			/v1/credits/{id}/payments [post]
func (co Controller) PayCredit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditPaymentResponse{Error: &s})
		return
	}

	var credit models.Credit
	err = models.DB.First(&credit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditPaymentResponse{Error: &s})
		return
	}

	var editable CreditPaymentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditPaymentResponse{Error: &s})
		return
	}

	payment, err := models.PayCredit(models.DB, &credit, models.CreditPayment{
		Date:      editable.Date,
		Principal: editable.Principal,
		Interest:  editable.Interest,
	}, editable.Source)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditPaymentResponse{Error: &s})
		return
	}

	data := newCreditPayment(payment)
	c.JSON(http.StatusCreated, CreditPaymentResponse{Data: &data})
}

// @Summary		Pay all installments
// @Description	Books this month's installment for every credit with an outstanding balance, funded from a single source. Either all installments are booked or none.
// @Tags			Credits
// @Accept			json
// @Produce		json
// @Success		201		{object}	CreditPaymentListResponse
// @Failure		400		{object}	CreditPaymentListResponse
// @Param			payment	body		PayAllEditable	true	"Funding"
// @Router			/v1/credits/pay-all [post]
func (co Controller) PayAllCredits(c *gin.Context) {
	var editable PayAllEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditPaymentListResponse{Error: &s})
		return
	}

	date := editable.Date
	if date.IsZero() {
		date = time.Now().In(time.UTC)
	}

	payments, err := models.PayAllCredits(models.DB, auth.UserID(c), editable.Source, date)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditPaymentListResponse{Error: &s})
		return
	}

	data := make([]CreditPayment, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newCreditPayment(payment))
	}

	c.JSON(http.StatusCreated, CreditPaymentListResponse{Data: data})
}

// @Summary		Get credits
// @Description	Returns a list of credits
// @Tags			Credits
// @Produce		json
// @Success		200	{object}	CreditListResponse
// @Failure		400	{object}	CreditListResponse
// @Router			/v1/credits [get]
// @Param			name	query	string	false	"Filter by glob pattern in the name"
// @Param			bank	query	string	false	"Filter by bank"
// @Param			open	query	bool	false	"Only credits with an outstanding balance"
// @Param			offset	query	uint	false	"The offset of the first credit returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of credits to return. Defaults to 50."
func (co Controller) GetCredits(c *gin.Context) {
	var filter CreditQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	if slices.Contains(setFields, "Open") && filter.Open {
		q = q.Where("current_balance > 0")
	}

	var credits []models.Credit
	err = q.Find(&credits).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditListResponse{Error: &s})
		return
	}

	if slices.Contains(setFields, "Name") {
		matched := make([]models.Credit, 0, len(credits))
		for _, credit := range credits {
			if glob.Glob(filter.Name, credit.Name) {
				matched = append(matched, credit)
			}
		}
		credits = matched
	}

	total := int64(len(credits))

	if filter.Offset > uint(len(credits)) {
		credits = []models.Credit{}
	} else {
		credits = credits[filter.Offset:]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(credits) {
		credits = credits[:limit]
	}

	data := make([]Credit, 0, len(credits))
	for _, credit := range credits {
		data = append(data, newCredit(c, credit))
	}

	c.JSON(http.StatusOK, CreditListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get credit
// @Description	Returns a specific credit
// @Tags			Credits
// @Produce		json
// @Success		200	{object}	CreditResponse
// @Failure		400	{object}	CreditResponse
// @Failure		404	{object}	CreditResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credits/{id} [get]
func (co Controller) GetCredit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	var credit models.Credit
	err = models.DB.First(&credit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	data := newCredit(c, credit)
	c.JSON(http.StatusOK, CreditResponse{Data: &data})
}

// @Summary		Update credit
// @Description	Update an existing credit. Only values to be updated need to be specified. The balance can not be edited directly, book payments instead.
// @Tags			Credits
// @Accept			json
// @Produce		json
// @Success		200		{object}	CreditResponse
// @Failure		400		{object}	CreditResponse
// @Failure		404		{object}	CreditResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			credit	body		CreditEditable	true	"Credit"
// @Router			/v1/credits/{id} [patch]
func (co Controller) UpdateCredit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	var credit models.Credit
	err = models.DB.First(&credit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CreditEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	var data CreditEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	err = models.DB.Model(&credit).Select("", updateFields...).Updates(data.model(credit.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditResponse{Error: &s})
		return
	}

	r := newCredit(c, credit)
	c.JSON(http.StatusOK, CreditResponse{Data: &r})
}

// @Summary		Delete credit
// @Description	Deletes a credit and its payment history
// @Tags			Credits
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credits/{id} [delete]
func (co Controller) DeleteCredit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var credit models.Credit
	err = models.DB.First(&credit, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Where("credit_id = ?", credit.ID).Delete(&models.CreditPayment{}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&credit).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
