// Package reconcile creates the incomes that recurring templates
// promise. It is safe to run at any frequency since the unique index on
// (template_id, month) makes income creation idempotent.
package reconcile

import (
	"errors"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Summary reports what one reconciliation run did.
type Summary struct {
	Created int `json:"created"` // Incomes created in this run
	Skipped int `json:"skipped"` // Templates that already had their income or are not due yet
	Failed  int `json:"failed"`  // Templates whose income could not be created
}

// Run reconciles the recurring templates of all users for the month of
// now. Errors on a single template are logged and counted, they never
// abort the run.
func Run(db *gorm.DB, now time.Time) Summary {
	return run(db, db.Where("active = ? AND auto_create = ?", true, true), now)
}

// RunForUser reconciles only the given user's templates, e.g. for the
// manual reconcile endpoint.
func RunForUser(db *gorm.DB, userID uuid.UUID, now time.Time) Summary {
	return run(db, db.Where("user_id = ? AND active = ? AND auto_create = ?", userID, true, true), now)
}

func run(db *gorm.DB, query *gorm.DB, now time.Time) Summary {
	var summary Summary

	month := types.MonthOf(now)

	var templates []models.RecurringTemplate
	err := query.Find(&templates).Error
	if err != nil {
		log.Error().Err(err).Msg("reconcile: loading templates failed")
		return summary
	}

	for _, template := range templates {
		if !template.StartMonth.IsZero() && month.Before(template.StartMonth) {
			summary.Skipped++
			continue
		}

		// The income is due on the template's trigger day, clamped to
		// short months. Before that day, nothing to do yet.
		triggerDate := month.Day(template.TriggerDay(month))
		if now.Before(triggerDate) {
			summary.Skipped++
			continue
		}

		err := createIncome(db, template, triggerDate)
		if errors.Is(err, models.ErrTemplateAlreadyReconciled) {
			summary.Skipped++
			continue
		}
		if err != nil {
			log.Error().Err(err).
				Str("template", template.ID.String()).
				Str("month", month.String()).
				Msg("reconcile: creating income failed")
			summary.Failed++
			continue
		}

		log.Info().
			Str("template", template.ID.String()).
			Str("source", template.Source).
			Str("month", month.String()).
			Msg("reconcile: income created")
		summary.Created++
	}

	return summary
}

func createIncome(db *gorm.DB, template models.RecurringTemplate, date time.Time) error {
	income := models.Income{
		UserID:      template.UserID,
		Source:      template.Source,
		Category:    template.Category,
		Amount:      template.Amount,
		Date:        date,
		AutoCreated: true,
		TemplateID:  &template.ID,
	}

	return db.Create(&income).Error
}
