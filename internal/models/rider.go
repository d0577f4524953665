package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationDenied   ApplicationStatus = "denied"
)

func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	switch s := ApplicationStatus(raw); s {
	case ApplicationPending, ApplicationApproved, ApplicationDenied:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// RiderApplication is a request to become a delivery rider. One row exists per
// email; a denied application is resubmitted in place.
type RiderApplication struct {
	ID         string            `gorm:"column:id;type:uuid;primaryKey" json:"_id"`
	Email      string            `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Name       string            `gorm:"column:name;not null" json:"name"`
	Phone      string            `gorm:"column:phone" json:"phone"`
	Region     string            `gorm:"column:region" json:"region"`
	District   string            `gorm:"column:district" json:"district"`
	Status     ApplicationStatus `gorm:"column:status;index;not null;default:pending" json:"status"`
	CreatedAt  time.Time         `gorm:"column:created_at;index" json:"createdAt"`
	ReviewedAt *time.Time        `gorm:"column:reviewed_at" json:"reviewedAt,omitempty"`
	Details    datatypes.JSONMap `gorm:"column:details" json:"-"`
}

func (RiderApplication) TableName() string {
	return "rider_applications"
}

func (a *RiderApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.Status == "" {
		a.Status = ApplicationPending
	}
	return nil
}

func (a RiderApplication) MarshalJSON() ([]byte, error) {
	type plain RiderApplication
	return mergeDetails(plain(a), a.Details)
}

// RoleAfterReview is the user role implied by an application status.
func RoleAfterReview(status ApplicationStatus) Role {
	if status == ApplicationApproved {
		return RoleRider
	}
	return RoleUser
}
