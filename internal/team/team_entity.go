package team

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;uniqueIndex:uq_team_name"`
	CreatedAt time.Time
}

func (Team) TableName() string { return "teams" }
