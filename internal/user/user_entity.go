package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID *uuid.UUID `gorm:"column:employee_id;type:uuid;uniqueIndex"`
	Name       string     `gorm:"column:name;type:varchar(255);not null"`
	Email      string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password   string     `gorm:"column:password;type:text;not null"`
	Role       string     `gorm:"column:role;type:varchar(50);not null"`

	// Reset token state. Both set or both NULL.
	ResetHash      *string    `gorm:"column:reset_hash;type:varchar(64);index"`
	ResetExpiresAt *time.Time `gorm:"column:reset_expires_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
