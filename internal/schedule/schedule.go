// Package schedule runs reconciliation in the background.
package schedule

import (
	"os"
	"time"

	"github.com/budgetbook/backend/internal/reconcile"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Start schedules periodic reconciliation and returns the running cron
// instance so that callers can stop it on shutdown. The schedule is
// taken from RECONCILE_SCHEDULE and defaults to daily.
func Start(db *gorm.DB) (*cron.Cron, error) {
	schedule := os.Getenv("RECONCILE_SCHEDULE")
	if schedule == "" {
		schedule = "@daily"
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		summary := reconcile.Run(db, time.Now().In(time.UTC))
		log.Info().
			Int("created", summary.Created).
			Int("skipped", summary.Skipped).
			Int("failed", summary.Failed).
			Msg("scheduled reconciliation finished")
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Info().Str("schedule", schedule).Msg("reconciliation scheduled")

	return c, nil
}
