package models

import (
	"time"
)

// SeverityLevel classifies how intense a sneeze was.
type SeverityLevel string

const (
	SeverityLight     SeverityLevel = "light"
	SeverityModerate  SeverityLevel = "moderate"
	SeverityHeavy     SeverityLevel = "heavy"
	SeverityExplosive SeverityLevel = "explosive"
)

// SeverityLevels returns every valid severity, in ascending intensity order.
func SeverityLevels() []SeverityLevel {
	return []SeverityLevel{SeverityLight, SeverityModerate, SeverityHeavy, SeverityExplosive}
}

func (s SeverityLevel) IsValid() bool {
	switch s {
	case SeverityLight, SeverityModerate, SeverityHeavy, SeverityExplosive:
		return true
	}
	return false
}

type Sneeze struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	UserID    uint          `gorm:"index;not null" json:"user_id"`
	Timestamp time.Time     `gorm:"index;not null" json:"timestamp"` // mutable, backfilled entries keep their own time
	Severity  SeverityLevel `gorm:"size:16;index;not null" json:"severity"`
	Notes     string        `gorm:"size:1000;not null;default:''" json:"notes"`
	CreatedAt time.Time     `json:"created_at"`

	// Relationship to user
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Sneeze) TableName() string {
	return "sneezes"
}
