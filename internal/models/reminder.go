package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder is a dated note, e.g. "insurance renewal on the 15th".
type Reminder struct {
	DefaultModel
	UserID uuid.UUID `json:"userId" gorm:"index"`
	Title  string    `json:"title" example:"Renew car insurance"`
	Note   string    `json:"note"`
	DueAt  time.Time `json:"dueAt"`
	Done   bool      `json:"done"`
}

func (r *Reminder) AfterFind(tx *gorm.DB) error {
	err := r.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	r.DueAt = r.DueAt.In(time.UTC)
	return nil
}

func (r *Reminder) BeforeSave(_ *gorm.DB) error {
	r.Title = strings.TrimSpace(r.Title)
	r.Note = strings.TrimSpace(r.Note)

	if r.DueAt.IsZero() {
		r.DueAt = time.Now().In(time.UTC)
	} else {
		r.DueAt = r.DueAt.In(time.UTC)
	}

	return nil
}
