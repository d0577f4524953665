package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/profast/parcel-api/internal/models"
)

type paymentRepository struct {
	db    *gorm.DB
	retry *Retrier
}

func NewPaymentRepository(db *gorm.DB, retry *Retrier) PaymentRepository {
	return &paymentRepository{db: db, retry: retry}
}

func (r *paymentRepository) Record(ctx context.Context, payment *models.Payment) (*models.Parcel, error) {
	var parcel models.Parcel
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			parcel = models.Parcel{}
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&parcel, "id = ?", payment.ParcelID).Error
			if err != nil {
				return notFound(err)
			}
			if parcel.IsPaid() {
				return models.ErrAlreadyPaid
			}

			now := time.Now().UTC()
			payment.ParcelTitle = parcel.Title
			payment.CreatedAt = now
			if err := tx.Create(payment).Error; err != nil {
				if isUniqueViolation(err) {
					return models.ErrAlreadyPaid
				}
				return err
			}

			transactionID := payment.TransactionID
			if err := tx.Model(&parcel).Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"transaction_id": transactionID,
				"paid_at":        now,
			}).Error; err != nil {
				return err
			}
			parcel.PaymentStatus = models.PaymentStatusPaid
			parcel.TransactionID = &transactionID
			parcel.PaidAt = &now
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &parcel, nil
}

func (r *paymentRepository) List(ctx context.Context, customerEmail string) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		query := r.db.WithContext(ctx).Order("created_at DESC")
		if customerEmail != "" {
			query = query.Where("customer_email = ?", customerEmail)
		}
		return query.Find(&payments).Error
	})
	return payments, err
}
