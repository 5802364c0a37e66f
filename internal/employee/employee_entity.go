package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TeamID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	FirstName    string     `gorm:"size:50;not null"`
	LastName     string     `gorm:"size:50;not null"`
	Email        string     `gorm:"size:100;uniqueIndex:uq_employee_email"`
	Position     string     `gorm:"size:50"`
	SupervisorID *uuid.UUID `gorm:"type:uuid;index"`
	// SubordinatesCount is a cached derived value: the number of rows
	// whose supervisor_id equals this row's id.
	SubordinatesCount int `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Employee) TableName() string { return "employees" }
