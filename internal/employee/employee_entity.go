package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_employees_user_id"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;index"`
	DepartmentID uuid.UUID `gorm:"column:department_id;type:uuid;not null;index"`
	DOB          time.Time `gorm:"column:dob;type:date;not null"`
	Position     string    `gorm:"column:position;type:varchar(255);not null"`
	// Image is the public path of the uploaded photo, empty when none.
	Image     string    `gorm:"column:image;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
