package database

import (
	"gorm.io/gorm"

	"github.com/profast/parcel-api/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Parcel{},
		&models.RiderApplication{},
		&models.Payment{},
	)
	if err != nil {
		return err
	}

	constraints := []string{
		`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`,
		`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('user', 'rider', 'admin'))`,
		`ALTER TABLE parcels DROP CONSTRAINT IF EXISTS parcels_payment_status_check`,
		`ALTER TABLE parcels ADD CONSTRAINT parcels_payment_status_check CHECK (payment_status IN ('unpaid', 'paid'))`,
		`ALTER TABLE rider_applications DROP CONSTRAINT IF EXISTS rider_applications_status_check`,
		`ALTER TABLE rider_applications ADD CONSTRAINT rider_applications_status_check CHECK (status IN ('pending', 'approved', 'denied'))`,
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
