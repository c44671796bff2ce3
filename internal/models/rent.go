package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RentProperty is a rented-out property with a fixed monthly rate.
type RentProperty struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"index"`
	Name        string          `json:"name" example:"Lenina 42 apartment"`
	Address     string          `json:"address"`
	MonthlyRate decimal.Decimal `json:"monthlyRate" gorm:"type:DECIMAL(20,8)"`
	Active      bool            `json:"active" gorm:"default:true"`
}

func (r *RentProperty) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)

	return nil
}

func (r *RentProperty) AfterSave(_ *gorm.DB) error {
	if !r.MonthlyRate.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// RentPayment is one received rent payment for a property.
type RentPayment struct {
	DefaultModel
	UserID     uuid.UUID       `json:"userId" gorm:"index"`
	PropertyID uuid.UUID       `json:"propertyId" gorm:"index"`
	Property   RentProperty    `json:"-"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Note       string          `json:"note"`
}

func (p *RentPayment) BeforeSave(_ *gorm.DB) error {
	p.Note = strings.TrimSpace(p.Note)

	if p.Date.IsZero() {
		p.Date = time.Now().In(time.UTC)
	} else {
		p.Date = p.Date.In(time.UTC)
	}

	return nil
}

func (p *RentPayment) AfterSave(_ *gorm.DB) error {
	if !p.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// ReceiveRent records a rent payment for a property. Rent is money
// coming in, so it is booked as an income for the month it was
// received, keeping it visible in the available-funds overview.
func ReceiveRent(db *gorm.DB, property *RentProperty, payment RentPayment) (RentPayment, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		payment.UserID = property.UserID
		payment.PropertyID = property.ID
		err := tx.Create(&payment).Error
		if err != nil {
			return err
		}

		income := Income{
			UserID:   property.UserID,
			Source:   fmt.Sprintf("Rent: %s", property.Name),
			Category: "rent",
			Amount:   payment.Amount,
			Date:     payment.Date,
		}
		return tx.Create(&income).Error
	})

	return payment, err
}
