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

// RegisterReminderRoutes registers the routes for reminders with
// the RouterGroup that is passed.
func (co Controller) RegisterReminderRoutes(r *gin.RouterGroup) {
	r.Use(auth.Middleware(co.Auth))

	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetReminders)
		r.POST("", co.CreateReminder)
	}

	// Reminder with ID
	{
		r.OPTIONS("/:id", co.OptionsReminderDetail)
		r.GET("/:id", co.GetReminder)
		r.PATCH("/:id", co.UpdateReminder)
		r.DELETE("/:id", co.DeleteReminder)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reminders
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reminders/{id} [options]
func (co Controller) OptionsReminderDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Reminder{})
}

// @Summary		Create reminder
// @Description	Creates a new reminder
// @Tags			Reminders
// @Produce		json
// @Success		201			{object}	ReminderResponse
// @Failure		400			{object}	ReminderResponse
// @Failure		500			{object}	ReminderResponse
// @Param			reminder	body		ReminderEditable	true	"Reminder"
// @Router			/v1/reminders [post]
func (co Controller) CreateReminder(c *gin.Context) {
	var editable ReminderEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	reminder := editable.model(auth.UserID(c))
	err = models.DB.Create(&reminder).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	data := newReminder(c, reminder)
	c.JSON(http.StatusCreated, ReminderResponse{Data: &data})
}

// @Summary		Get reminders
// @Description	Returns a list of reminders, ordered by due date
// @Tags			Reminders
// @Produce		json
// @Success		200	{object}	ReminderListResponse
// @Failure		400	{object}	ReminderListResponse
// @Router			/v1/reminders [get]
// @Param			title	query	string	false	"Filter by glob pattern in the title"
// @Param			done	query	bool	false	"Filter by handled state"
// @Param			offset	query	uint	false	"The offset of the first reminder returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of reminders to return. Defaults to 50."
func (co Controller) GetReminders(c *gin.Context) {
	var filter ReminderQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderListResponse{Error: &s})
		return
	}

	q := models.DB.
		Order("due_at ASC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	var reminders []models.Reminder
	err = q.Find(&reminders).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderListResponse{Error: &s})
		return
	}

	if slices.Contains(setFields, "Title") {
		matched := make([]models.Reminder, 0, len(reminders))
		for _, reminder := range reminders {
			if glob.Glob(filter.Title, reminder.Title) {
				matched = append(matched, reminder)
			}
		}
		reminders = matched
	}

	total := int64(len(reminders))

	if filter.Offset > uint(len(reminders)) {
		reminders = []models.Reminder{}
	} else {
		reminders = reminders[filter.Offset:]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(reminders) {
		reminders = reminders[:limit]
	}

	data := make([]Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		data = append(data, newReminder(c, reminder))
	}

	c.JSON(http.StatusOK, ReminderListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get reminder
// @Description	Returns a specific reminder
// @Tags			Reminders
// @Produce		json
// @Success		200	{object}	ReminderResponse
// @Failure		400	{object}	ReminderResponse
// @Failure		404	{object}	ReminderResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reminders/{id} [get]
func (co Controller) GetReminder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	var reminder models.Reminder
	err = models.DB.First(&reminder, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	data := newReminder(c, reminder)
	c.JSON(http.StatusOK, ReminderResponse{Data: &data})
}

// @Summary		Update reminder
// @Description	Update an existing reminder. Only values to be updated need to be specified.
// @Tags			Reminders
// @Accept			json
// @Produce		json
// @Success		200			{object}	ReminderResponse
// @Failure		400			{object}	ReminderResponse
// @Failure		404			{object}	ReminderResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			reminder	body		ReminderEditable	true	"Reminder"
// @Router			/v1/reminders/{id} [patch]
func (co Controller) UpdateReminder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	var reminder models.Reminder
	err = models.DB.First(&reminder, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ReminderEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	var data ReminderEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	err = models.DB.Model(&reminder).Select("", updateFields...).Updates(data.model(reminder.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReminderResponse{Error: &s})
		return
	}

	r := newReminder(c, reminder)
	c.JSON(http.StatusOK, ReminderResponse{Data: &r})
}

// @Summary		Delete reminder
// @Description	Deletes a reminder
// @Tags			Reminders
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reminders/{id} [delete]
func (co Controller) DeleteReminder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var reminder models.Reminder
	err = models.DB.First(&reminder, "id = ? AND user_id = ?", uri.ID, auth.UserID(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&reminder).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
