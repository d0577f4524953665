package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

// ParseRole accepts only the closed set of roles.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleUser, RoleRider, RoleAdmin:
		return r, nil
	}
	return "", ErrInvalidRole
}

type User struct {
	Email         string     `gorm:"column:email;primaryKey" json:"email"`
	Name          string     `gorm:"column:name" json:"name"`
	PhotoURL      string     `gorm:"column:photo_url" json:"photoURL"`
	Role          Role       `gorm:"column:role;not null;default:user" json:"role"`
	CreatedAt     time.Time  `gorm:"column:created_at;index" json:"createdAt"`
	LastLoginAt   time.Time  `gorm:"column:last_login_at" json:"lastLoginAt"`
	RoleUpdatedAt *time.Time `gorm:"column:role_updated_at" json:"roleUpdatedAt,omitempty"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
