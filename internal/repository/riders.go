package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/profast/parcel-api/internal/models"
)

type riderRepository struct {
	db    *gorm.DB
	retry *Retrier
}

func NewRiderRepository(db *gorm.DB, retry *Retrier) RiderRepository {
	return &riderRepository{db: db, retry: retry}
}

func (r *riderRepository) Apply(ctx context.Context, application *models.RiderApplication) error {
	return r.retry.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.RiderApplication
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&existing, "email = ?", application.Email).Error

			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				application.Status = models.ApplicationPending
				application.CreatedAt = time.Now().UTC()
				if err := tx.Create(application).Error; err != nil {
					if isUniqueViolation(err) {
						return models.ErrApplicationExists
					}
					return err
				}
				return nil
			case err != nil:
				return err
			case existing.Status != models.ApplicationDenied:
				return models.ErrApplicationExists
			}

			// Resubmission after denial reuses the row.
			application.ID = existing.ID
			application.Status = models.ApplicationPending
			application.CreatedAt = time.Now().UTC()
			application.ReviewedAt = nil
			return tx.Model(&existing).Select("*").Omit("id").Updates(application).Error
		})
	})
}

func (r *riderRepository) List(ctx context.Context, status models.ApplicationStatus) ([]models.RiderApplication, error) {
	applications := []models.RiderApplication{}
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		query := r.db.WithContext(ctx).Order("created_at DESC")
		if status != "" {
			query = query.Where("status = ?", status)
		}
		return query.Find(&applications).Error
	})
	return applications, err
}

func (r *riderRepository) Review(ctx context.Context, id string, status models.ApplicationStatus) (*models.RiderApplication, error) {
	var application models.RiderApplication
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			application = models.RiderApplication{}
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&application, "id = ?", id).Error
			if err != nil {
				return notFound(err)
			}

			now := time.Now().UTC()
			if err := tx.Model(&application).Updates(map[string]interface{}{
				"status":      status,
				"reviewed_at": now,
			}).Error; err != nil {
				return err
			}
			application.Status = status
			application.ReviewedAt = &now

			// Admins keep their role whatever happens to their application.
			result := tx.Model(&models.User{}).
				Where("email = ? AND role <> ?", application.Email, models.RoleAdmin).
				Updates(map[string]interface{}{
					"role":            models.RoleAfterReview(status),
					"role_updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				log.Printf("Rider review %s: no non-admin user for %s, role left unchanged", application.ID, application.Email)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &application, nil
}
