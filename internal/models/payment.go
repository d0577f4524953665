package models

import (
	"time"

	"gorm.io/gorm"
)

const PaymentStatusSucceeded = "succeeded"

// Payment is an append-only record of a completed charge.
type Payment struct {
	ID            string    `gorm:"column:id;type:uuid;primaryKey" json:"_id"`
	ParcelID      string    `gorm:"column:parcel_id;type:uuid;index;not null" json:"parcelId"`
	ParcelTitle   string    `gorm:"column:parcel_title" json:"parcelTitle"`
	Amount        float64   `gorm:"column:amount;not null" json:"amount"`
	Currency      string    `gorm:"column:currency;not null" json:"currency"`
	TransactionID string    `gorm:"column:transaction_id;uniqueIndex;not null" json:"transactionId"`
	CustomerName  string    `gorm:"column:customer_name" json:"customerName"`
	CustomerEmail string    `gorm:"column:customer_email;index;not null" json:"customerEmail"`
	Status        string    `gorm:"column:status;not null" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"createdAt"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
