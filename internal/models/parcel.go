package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// MaxParcelCost is the largest cost a parcel may carry. Card charges are capped
// at eight digits of minor units.
const MaxParcelCost = 999999.99

// Parcel is a shipment created by a sender. Only the payment completion step
// mutates it after creation.
type Parcel struct {
	ID            string            `gorm:"column:id;type:uuid;primaryKey" json:"_id"`
	Title         string            `gorm:"column:title;not null" json:"title"`
	ParcelType    string            `gorm:"column:parcel_type;not null" json:"parcelType"`
	SenderEmail   string            `gorm:"column:sender_email;index;not null" json:"senderEmail"`
	Cost          float64           `gorm:"column:cost;not null;default:0" json:"cost"`
	PaymentStatus PaymentStatus     `gorm:"column:payment_status;not null;default:unpaid" json:"paymentStatus"`
	TransactionID *string           `gorm:"column:transaction_id" json:"transactionId"`
	PaidAt        *time.Time        `gorm:"column:paid_at" json:"paidAt"`
	CreatedAt     time.Time         `gorm:"column:created_at;index" json:"createdAt"`
	Details       datatypes.JSONMap `gorm:"column:details" json:"-"`
}

func (Parcel) TableName() string {
	return "parcels"
}

func (p *Parcel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentStatusUnpaid
	}
	return nil
}

func (p *Parcel) IsPaid() bool {
	return p.PaymentStatus == PaymentStatusPaid
}

// MarshalJSON flattens the free-form details next to the typed fields so clients
// get back exactly what they submitted.
func (p Parcel) MarshalJSON() ([]byte, error) {
	type plain Parcel
	return mergeDetails(plain(p), p.Details)
}
