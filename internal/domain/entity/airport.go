package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents reference airport identity and timezone information
type Airport struct {
	ID        uint
	IATACode  string
	Name      string
	CityName  string
	TzName    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
