// Package models contains the database models and the business rules
// that are enforced on them.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all resources in Budgetbook.
type DefaultModel struct {
	ID uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID of the resource
	Timestamps
}

// Timestamps holds the timestamps that gorm maintains automatically.
type Timestamps struct {
	CreatedAt time.Time      `json:"createdAt" example:"2024-04-02T19:28:44.491514Z"`                      // Time the resource was created
	UpdatedAt time.Time      `json:"updatedAt" example:"2024-04-17T20:14:01.048145Z"`                      // Last time the resource was updated
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index" swaggertype:"primitive,string" example:"null"` // Time the resource was marked as deleted
}

// AfterFind normalizes the timestamps to UTC.
//
// They are stored in UTC, but are read back from sqlite
// with a +0000 timezone instead.
func (m *DefaultModel) AfterFind(_ *gorm.DB) error {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	if m.DeletedAt.Valid {
		m.DeletedAt.Time = m.DeletedAt.Time.In(time.UTC)
	}

	return nil
}

// BeforeCreate generates the UUID for the resource.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
