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

// RegisterRentRoutes registers the routes for rent properties with
// the RouterGroup that is passed.
func (co Controller) RegisterRentRoutes(r *gin.RouterGroup) {
	r.Use(auth.Middleware(co.Auth))

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetRentProperties)
		r.POST("", co.CreateRentProperty)
	}

	// Rent property with ID
	{
		r.OPTIONS("/:id", co.OptionsRentPropertyDetail)
		r.GET("/:id", co.GetRentProperty)
		r.PATCH("/:id", co.UpdateRentProperty)
		r.DELETE("/:id", co.DeleteRentProperty)
	}

	// Received rent payments
	{
		r.OPTIONS("/:id/payments", httputil.OptionsGetPost)
		r.GET("/:id/payments", co.GetRentPayments)
		r.POST("/:id/payments", co.ReceiveRent)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rents
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rents/{id} [options]
func (co Controller) OptionsRentPropertyDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RentProperty{})
}

// @Summary		Create rent property
// @Description	Creates a new rent property
// @Tags			Rents
// @Produce		json
// @Success		201			{object}	RentPropertyResponse
// @Failure		400			{object}	RentPropertyResponse
// @Failure		500			{object}	RentPropertyResponse
// @Param			property	body		RentPropertyEditable	true	"Rent property"
// @Router			/v1/rents [post]
func (co Controller) CreateRentProperty(c *gin.Context) {
	var editable RentPropertyEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	property := editable.model(auth.UserID(c))
	err = models.DB.Create(&property).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	data := newRentProperty(c, property)
	c.JSON(http.StatusCreated, RentPropertyResponse{Data: &data})
}

// @Summary		Get rent payments
// @Description	Returns the received rent payments for a property, newest first
// @Tags			Rents
// @Produce		json
// @Success		200	{object}	RentPaymentListResponse
// @Failure		400	{object}	RentPaymentListResponse
// @Failure		404	{object}	RentPaymentListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rents/{id}/payments [get]
func (co Controller) GetRentPayments(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPaymentListResponse{Error: &s})
		return
	}

	var property models.RentProperty
	err = models.DB.First(&property, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPaymentListResponse{Error: &s})
		return
	}

	var payments []models.RentPayment
	err = models.DB.
		Order("date DESC").
		Where("property_id = ?", property.ID).
		Find(&payments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPaymentListResponse{Error: &s})
		return
	}

	data := make([]RentPayment, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newRentPayment(payment))
	}

	c.JSON(http.StatusOK, RentPaymentListResponse{Data: data})
}

// @Summary		Receive rent
// @Description	Records a received rent payment. The payment is also booked as an income for the month it was received.
// @Tags			Rents
// @Accept			json
// @Produce		json
// @Success		201		{object}	RentPaymentResponse
// @Failure		400		{object}	RentPaymentResponse
// @Failure		404		{object}	RentPaymentResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		RentPaymentEditable	true	"Rent payment"
// @Router			/v1/rents/{id}/payments [post]
func (co Controller) ReceiveRent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPaymentResponse{Error: &s})
		return
	}

	var property models.RentProperty
	err = models.DB.First(&property, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPaymentResponse{Error: &s})
		return
	}

	var editable RentPaymentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPaymentResponse{Error: &s})
		return
	}

	payment, err := models.ReceiveRent(models.DB, &property, models.RentPayment{
		Date:   editable.Date,
		Amount: editable.Amount,
		Note:   editable.Note,
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPaymentResponse{Error: &s})
		return
	}

	data := newRentPayment(payment)
	c.JSON(http.StatusCreated, RentPaymentResponse{Data: &data})
}

// @Summary		Get rent properties
// @Description	Returns a list of rent properties
// @Tags			Rents
// @Produce		json
// @Success		200	{object}	RentPropertyListResponse
// @Failure		400	{object}	RentPropertyListResponse
// @Router			/v1/rents [get]
// @Param			name	query	string	false	"Filter by glob pattern in the name"
// @Param			active	query	bool	false	"Only active properties"
// @Param			offset	query	uint	false	"The offset of the first property returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of properties to return. Defaults to 50."
func (co Controller) GetRentProperties(c *gin.Context) {
	var filter RentPropertyQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	var properties []models.RentProperty
	err = q.Find(&properties).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyListResponse{Error: &s})
		return
	}

	if slices.Contains(setFields, "Name") {
		matched := make([]models.RentProperty, 0, len(properties))
		for _, property := range properties {
			if glob.Glob(filter.Name, property.Name) {
				matched = append(matched, property)
			}
		}
		properties = matched
	}

	total := int64(len(properties))

	if filter.Offset > uint(len(properties)) {
		properties = []models.RentProperty{}
	} else {
		properties = properties[filter.Offset:]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(properties) {
		properties = properties[:limit]
	}

	data := make([]RentProperty, 0, len(properties))
	for _, property := range properties {
		data = append(data, newRentProperty(c, property))
	}

	c.JSON(http.StatusOK, RentPropertyListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get rent property
// @Description	Returns a specific rent property
// @Tags			Rents
// @Produce		json
// @Success		200	{object}	RentPropertyResponse
// @Failure		400	{object}	RentPropertyResponse
// @Failure		404	{object}	RentPropertyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rents/{id} [get]
func (co Controller) GetRentProperty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	var property models.RentProperty
	err = models.DB.First(&property, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	data := newRentProperty(c, property)
	c.JSON(http.StatusOK, RentPropertyResponse{Data: &data})
}

// @Summary		Update rent property
// @Description	Update an existing rent property. Only values to be updated need to be specified.
// @Tags			Rents
// @Accept			json
// @Produce		json
// @Success		200			{object}	RentPropertyResponse
// @Failure		400			{object}	RentPropertyResponse
// @Failure		404			{object}	RentPropertyResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			property	body		RentPropertyEditable	true	"Rent property"
// @Router			/v1/rents/{id} [patch]
func (co Controller) UpdateRentProperty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	var property models.RentProperty
	err = models.DB.First(&property, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RentPropertyEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	var data RentPropertyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	err = models.DB.Model(&property).Select("", updateFields...).Updates(data.model(property.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RentPropertyResponse{Error: &s})
		return
	}

	r := newRentProperty(c, property)
	c.JSON(http.StatusOK, RentPropertyResponse{Data: &r})
}

// @Summary		Delete rent property
// @Description	Deletes a rent property and its payment history. Incomes booked from received rent are kept.
// @Tags			Rents
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rents/{id} [delete]
func (co Controller) DeleteRentProperty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var property models.RentProperty
	err = models.DB.First(&property, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Where("property_id = ?", property.ID).Delete(&models.RentPayment{}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&property).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
