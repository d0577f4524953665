package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/profast/parcel-api/internal/models"
)

type userRepository struct {
	db    *gorm.DB
	retry *Retrier
}

func NewUserRepository(db *gorm.DB, retry *Retrier) UserRepository {
	return &userRepository{db: db, retry: retry}
}

func (r *userRepository) UpsertOnLogin(ctx context.Context, email, name, photoURL string) (*models.User, bool, error) {
	var (
		user    models.User
		created bool
	)

	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := time.Now().UTC()
			user = models.User{
				Email:       email,
				Name:        name,
				PhotoURL:    photoURL,
				Role:        models.RoleUser,
				CreatedAt:   now,
				LastLoginAt: now,
			}

			// A concurrent first login loses the insert and falls through to
			// the login branch.
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 1 {
				created = true
				return nil
			}
			created = false

			updates := map[string]interface{}{"last_login_at": now}
			if name != "" {
				updates["name"] = name
			}
			if photoURL != "" {
				updates["photo_url"] = photoURL
			}
			if err := tx.Model(&models.User{}).Where("email = ?", email).Updates(updates).Error; err != nil {
				return err
			}

			user = models.User{}
			return tx.First(&user, "email = ?", email).Error
		})
	})
	if err != nil {
		return nil, false, err
	}
	return &user, created, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return notFound(r.db.WithContext(ctx).First(&user, "email = ?", email).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	})
	return users, err
}

func (r *userRepository) UpdateRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	var user models.User
	err := r.retry.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&models.User{}).
				Where("email = ?", email).
				Updates(map[string]interface{}{"role": role, "role_updated_at": time.Now().UTC()})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return models.ErrNotFound
			}
			return tx.First(&user, "email = ?", email).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
