package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string
	// HealthProfile holds the user's self-reported health data (allergies,
	// conditions, dietary preferences) as a JSON document. It is sent to the
	// AI adapter alongside product data for personalized analysis.
	HealthProfile string `gorm:"type:jsonb;default:'{}'"`
	Disabled      bool
}
