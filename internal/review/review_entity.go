package review

import (
	"time"

	"github.com/google/uuid"
)

type PerformanceReview struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID          uuid.UUID `gorm:"type:uuid;not null;index"`
	TeamID              uuid.UUID `gorm:"type:uuid;not null"`
	ReviewDate          time.Time `gorm:"type:date;not null"`
	Performance         int       `gorm:"not null"`
	SoftSkills          int       `gorm:"not null"`
	Independence        int       `gorm:"not null"`
	AspirationForGrowth int       `gorm:"not null"`
}

func (PerformanceReview) TableName() string { return "performance_reviews" }
