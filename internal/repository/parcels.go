package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/profast/parcel-api/internal/models"
)

type parcelRepository struct {
	db    *gorm.DB
	retry *Retrier
}

func NewParcelRepository(db *gorm.DB, retry *Retrier) ParcelRepository {
	return &parcelRepository{db: db, retry: retry}
}

func (r *parcelRepository) Create(ctx context.Context, parcel *models.Parcel) error {
	return r.retry.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(parcel).Error
	})
}

func (r *parcelRepository) FindByID(ctx context.Context, id string) (*models.Parcel, error) {
	var parcel models.Parcel
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return notFound(r.db.WithContext(ctx).First(&parcel, "id = ?", id).Error)
	})
	if err != nil {
		return nil, err
	}
	return &parcel, nil
}

func (r *parcelRepository) ListBySender(ctx context.Context, email string) ([]models.Parcel, error) {
	parcels := []models.Parcel{}
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("sender_email = ?", email).
			Order("created_at DESC").
			Find(&parcels).Error
	})
	return parcels, err
}

func (r *parcelRepository) Delete(ctx context.Context, id string) error {
	return r.retry.Do(ctx, func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Delete(&models.Parcel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
