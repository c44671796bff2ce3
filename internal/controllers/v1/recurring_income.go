package v1

import (
	"net/http"
	"time"

	"github.com/budgetbook/backend/internal/auth"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/internal/reconcile"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterRecurringIncomeRoutes registers the routes for recurring
// incomes with the RouterGroup that is passed.
func (co Controller) RegisterRecurringIncomeRoutes(r *gin.RouterGroup) {
	r.Use(auth.Middleware(co.Auth))

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetRecurringIncomes)
		r.POST("", co.CreateRecurringIncome)
	}

	// Manual reconciliation
	{
		r.OPTIONS("/reconcile", httputil.OptionsPost)
		r.POST("/reconcile", co.Reconcile)
	}

	// Recurring income with ID
	{
		r.OPTIONS("/:id", co.OptionsRecurringIncomeDetail)
		r.GET("/:id", co.GetRecurringIncome)
		r.PATCH("/:id", co.UpdateRecurringIncome)
		r.DELETE("/:id", co.DeleteRecurringIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringIncomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-incomes/{id} [options]
func (co Controller) OptionsRecurringIncomeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecurringTemplate{})
}

// @Summary		Reconcile recurring incomes
// @Description	Creates the missing incomes for the current month from the user's active templates. Safe to call any number of times.
// @Tags			RecurringIncomes
// @Produce		json
// @Success		200	{object}	ReconcileResponse
// @Router			/v1/recurring-incomes/reconcile [post]
func (co Controller) Reconcile(c *gin.Context) {
	summary := reconcile.RunForUser(models.DB, auth.UserID(c), time.Now().In(time.UTC))
	c.JSON(http.StatusOK, ReconcileResponse{Data: &summary})
}

// @Summary		Create recurring income
// @Description	Creates a new recurring income template
// @Tags			RecurringIncomes
// @Produce		json
// @Success		201			{object}	RecurringIncomeResponse
// @Failure		400			{object}	RecurringIncomeResponse
// @Failure		500			{object}	RecurringIncomeResponse
// @Param			template	body		RecurringIncomeEditable	true	"Recurring income"
// @Router			/v1/recurring-incomes [post]
func (co Controller) CreateRecurringIncome(c *gin.Context) {
	var editable RecurringIncomeEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	template := editable.model(auth.UserID(c))
	err = models.DB.Create(&template).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	data := newRecurringIncome(c, template)
	c.JSON(http.StatusCreated, RecurringIncomeResponse{Data: &data})
}

// @Summary		Get recurring incomes
// @Description	Returns a list of recurring income templates
// @Tags			RecurringIncomes
// @Produce		json
// @Success		200	{object}	RecurringIncomeListResponse
// @Failure		400	{object}	RecurringIncomeListResponse
// @Router			/v1/recurring-incomes [get]
// @Param			source		query	string	false	"Filter by glob pattern in the source"
// @Param			category	query	string	false	"Filter by category"
// @Param			active		query	bool	false	"Only active templates"
// @Param			autoCreate	query	bool	false	"Only templates reconciliation considers"
// @Param			offset		query	uint	false	"The offset of the first template returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of templates to return. Defaults to 50."
func (co Controller) GetRecurringIncomes(c *gin.Context) {
	var filter RecurringIncomeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("source ASC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	var templates []models.RecurringTemplate
	err = q.Find(&templates).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeListResponse{Error: &s})
		return
	}

	if slices.Contains(setFields, "Source") {
		matched := make([]models.RecurringTemplate, 0, len(templates))
		for _, template := range templates {
			if glob.Glob(filter.Source, template.Source) {
				matched = append(matched, template)
			}
		}
		templates = matched
	}

	total := int64(len(templates))

	if filter.Offset > uint(len(templates)) {
		templates = []models.RecurringTemplate{}
	} else {
		templates = templates[filter.Offset:]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(templates) {
		templates = templates[:limit]
	}

	data := make([]RecurringIncome, 0, len(templates))
	for _, template := range templates {
		data = append(data, newRecurringIncome(c, template))
	}

	c.JSON(http.StatusOK, RecurringIncomeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get recurring income
// @Description	Returns a specific recurring income template
// @Tags			RecurringIncomes
// @Produce		json
// @Success		200	{object}	RecurringIncomeResponse
// @Failure		400	{object}	RecurringIncomeResponse
// @Failure		404	{object}	RecurringIncomeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-incomes/{id} [get]
func (co Controller) GetRecurringIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	data := newRecurringIncome(c, template)
	c.JSON(http.StatusOK, RecurringIncomeResponse{Data: &data})
}

// @Summary		Update recurring income
// @Description	Update an existing recurring income template. Only values to be updated need to be specified.
// @Tags			RecurringIncomes
// @Accept			json
// @Produce		json
// @Success		200			{object}	RecurringIncomeResponse
// @Failure		400			{object}	RecurringIncomeResponse
// @Failure		404			{object}	RecurringIncomeResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			template	body		RecurringIncomeEditable	true	"Recurring income"
// @Router			/v1/recurring-incomes/{id} [patch]
func (co Controller) UpdateRecurringIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringIncomeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	var data RecurringIncomeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	err = models.DB.Model(&template).Select("", updateFields...).Updates(data.model(template.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringIncomeResponse{Error: &s})
		return
	}

	r := newRecurringIncome(c, template)
	c.JSON(http.StatusOK, RecurringIncomeResponse{Data: &r})
}

// @Summary		Delete recurring income
// @Description	Deletes a recurring income template. Incomes already created from it are kept.
// @Tags			RecurringIncomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-incomes/{id} [delete]
func (co Controller) DeleteRecurringIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var template models.RecurringTemplate
	err = models.DB.First(&template, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&template).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
