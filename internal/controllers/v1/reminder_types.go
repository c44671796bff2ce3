package v1

import (
	"fmt"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReminderEditable represents all user configurable parameters
type ReminderEditable struct {
	Title string    `json:"title" example:"Renew car insurance" default:""` // Title of the reminder
	Note  string    `json:"note" default:""`                                // Free-form note
	DueAt time.Time `json:"dueAt"`                                          // When the reminder is due
	Done  bool      `json:"done" example:"false" default:"false"`           // Has the reminder been handled?
}

func (editable ReminderEditable) model(userID uuid.UUID) models.Reminder {
	return models.Reminder{
		UserID: userID,
		Title:  editable.Title,
		Note:   editable.Note,
		DueAt:  editable.DueAt,
		Done:   editable.Done,
	}
}

type ReminderLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/reminders/3b1ea324-d438-4419-882a-2fc91d71772f"` // The reminder itself
}

type Reminder struct {
	models.DefaultModel
	ReminderEditable
	Links ReminderLinks `json:"links"`
}

func newReminder(c *gin.Context, model models.Reminder) Reminder {
	url := c.GetString(string(models.DBContextURL))

	return Reminder{
		DefaultModel: model.DefaultModel,
		ReminderEditable: ReminderEditable{
			Title: model.Title,
			Note:  model.Note,
			DueAt: model.DueAt,
			Done:  model.Done,
		},
		Links: ReminderLinks{
			Self: fmt.Sprintf("%s/v1/reminders/%s", url, model.ID),
		},
	}
}

type ReminderListResponse struct {
	Data       []Reminder  `json:"data"`                                                          // List of reminders
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ReminderResponse struct {
	Data  *Reminder `json:"data"`                                                          // Data for the reminder
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ReminderQueryFilter struct {
	Title  string `form:"title" filterField:"false"`  // By glob pattern in the title
	Done   bool   `form:"done"`                       // Only handled or only open reminders
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first reminder returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of reminders to return. Defaults to 50.
}

func (f ReminderQueryFilter) model() (models.Reminder, error) {
	return models.Reminder{
		Done: f.Done,
	}, nil
}
