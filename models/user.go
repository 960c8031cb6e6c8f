package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Role      Role      `gorm:"type:VARCHAR(10);default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ParseRole accepts only the two roles the admin console can assign.
func ParseRole(role string) (Role, bool) {
	switch Role(role) {
	case RoleUser, RoleAdmin:
		return Role(role), true
	default:
		return "", false
	}
}
