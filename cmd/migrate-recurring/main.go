// Command migrate-recurring converts the legacy per-income recurring
// flag into recurring templates.
//
// Older databases marked repeating incomes with an is_recurring column
// instead of referencing a template. This command creates one template
// per distinct (user, source, amount) of the flagged incomes, links the
// incomes to it and drops the legacy column. Running it on an already
// migrated database is a no-op.
package main

import (
	"io"
	"os"
	"time"

	"github.com/budgetbook/backend/internal/models"
	"github.com/budgetbook/backend/internal/types"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type legacyIncome struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Source string

	Category string
	Amount   decimal.Decimal
	Date     time.Time
}

func main() {
	_ = godotenv.Load()

	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if !ok || logFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		dsn = "data/gorm.db"
	}

	err := models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	migrated, err := run(models.DB)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	log.Info().Int("incomes", migrated).Msg("migration finished")
}

func run(db *gorm.DB) (int, error) {
	if !db.Migrator().HasColumn(&models.Income{}, "is_recurring") {
		log.Info().Msg("no legacy is_recurring column, nothing to migrate")
		return 0, nil
	}

	var incomes []legacyIncome
	err := db.
		Table("incomes").
		Where("is_recurring = ?", true).
		Order("date ASC").
		Find(&incomes).Error
	if err != nil {
		return 0, err
	}

	migrated := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		// One template per distinct (user, source, amount). The oldest
		// income determines the recurring day and the start month.
		type key struct {
			userID uuid.UUID
			source string
			amount string
		}
		templates := make(map[key]uuid.UUID)

		// A template can reference at most one income per month, extra
		// flagged incomes in the same month stay manual
		type monthKey struct {
			templateID uuid.UUID
			month      string
		}
		linked := make(map[monthKey]bool)

		for _, income := range incomes {
			k := key{income.UserID, income.Source, income.Amount.String()}

			templateID, ok := templates[k]
			if !ok {
				template := models.RecurringTemplate{
					UserID:       income.UserID,
					Source:       income.Source,
					Category:     income.Category,
					Amount:       income.Amount,
					RecurringDay: income.Date.Day(),
					Active:       true,
					AutoCreate:   true,
				}
				err := tx.Create(&template).Error
				if err != nil {
					return err
				}

				templateID = template.ID
				templates[k] = templateID

				log.Info().
					Str("user", income.UserID.String()).
					Str("source", income.Source).
					Msg("template created")
			}

			mk := monthKey{templateID, income.Date.Format("2006-01")}
			if linked[mk] {
				continue
			}
			linked[mk] = true

			// The raw update bypasses the model hooks, so the month
			// column is set here. Without it the (template_id, month)
			// key would not cover the migrated rows and the next
			// reconciliation would duplicate them.
			err := tx.Table("incomes").
				Where("id = ?", income.ID).
				Updates(map[string]any{
					"template_id":  templateID,
					"auto_created": true,
					"month":        types.MonthOf(income.Date),
				}).Error
			if err != nil {
				return err
			}
			migrated++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	err = db.Migrator().DropColumn(&models.Income{}, "is_recurring")
	if err != nil {
		return 0, err
	}

	return migrated, nil
}
