package v1

import (
	"net/http"

	"github.com/budgetbook/backend/internal/auth"
	"github.com/budgetbook/backend/internal/httputil"
	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	r.Use(auth.Middleware(co.Auth))

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetIncomes)
		r.POST("", co.CreateIncome)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", co.OptionsIncomeDetail)
		r.GET("/:id", co.GetIncome)
		r.PATCH("/:id", co.UpdateIncome)
		r.DELETE("/:id", co.DeleteIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [options]
func (co Controller) OptionsIncomeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Income{})
}

// @Summary		Create income
// @Description	Creates a new income
// @Tags			Incomes
// @Produce		json
// @Success		201		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		500		{object}	IncomeResponse
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes [post]
func (co Controller) CreateIncome(c *gin.Context) {
	var editable IncomeEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	income := editable.model(auth.UserID(c))
	err = models.DB.Create(&income).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusCreated, IncomeResponse{Data: &data})
}

// @Summary		Get incomes
// @Description	Returns a list of incomes
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeListResponse
// @Failure		400	{object}	IncomeListResponse
// @Failure		500	{object}	IncomeListResponse
// @Router			/v1/incomes [get]
// @Param			source		query	string	false	"Filter by glob pattern in the source"
// @Param			category	query	string	false	"Filter by category"
// @Param			month		query	string	false	"Filter by month in YYYY-MM format"
// @Param			autoCreated	query	bool	false	"Only incomes created by reconciliation"
// @Param			template	query	string	false	"Filter by recurring template ID"
// @Param			offset		query	uint	false	"The offset of the first income returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of incomes to return. Defaults to 50."
func (co Controller) GetIncomes(c *gin.Context) {
	var filter IncomeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("date DESC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	if slices.Contains(setFields, "Month") {
		q = q.Where("month = ?", types.MonthOf(filter.Month))
	}

	var incomes []models.Income
	err = q.Find(&incomes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &s})
		return
	}

	// The source glob cannot be expressed in SQL, filter in memory
	if slices.Contains(setFields, "Source") {
		matched := make([]models.Income, 0, len(incomes))
		for _, income := range incomes {
			if glob.Glob(filter.Source, income.Source) {
				matched = append(matched, income)
			}
		}
		incomes = matched
	}

	total := int64(len(incomes))

	// Pagination happens after the glob filter so that the counts stay
	// consistent with the filtered list
	if filter.Offset > uint(len(incomes)) {
		incomes = []models.Income{}
	} else {
		incomes = incomes[filter.Offset:]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(incomes) {
		incomes = incomes[:limit]
	}

	data := make([]Income, 0, len(incomes))
	for _, income := range incomes {
		data = append(data, newIncome(c, income))
	}

	c.JSON(http.StatusOK, IncomeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get income
// @Description	Returns a specific income
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeResponse
// @Failure		400	{object}	IncomeResponse
// @Failure		404	{object}	IncomeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [get]
func (co Controller) GetIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	var income models.Income
	err = models.DB.First(&income, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	data := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

// @Summary		Update income
// @Description	Update an existing income. Only values to be updated need to be specified.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		404		{object}	IncomeResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes/{id} [patch]
func (co Controller) UpdateIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	var income models.Income
	err = models.DB.First(&income, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomeEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	var data IncomeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	err = models.DB.Model(&income).Select("", updateFields...).Updates(data.model(income.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &s})
		return
	}

	r := newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &r})
}

// @Summary		Delete income
// @Description	Deletes an income
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.Income
	err = models.DB.First(&income, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
