package repository

import (
	"context"
	"time"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	db *gorm.DB
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{
		db: db,
	}
}

// Airlines GORM model for database mapping
type Airlines struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;unique"`
	Name      string         `gorm:"column:name;unique"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airlines) TableName() string {
	return "m_airlines"
}

// List returns all airlines ordered by name so canonicalization scans are
// deterministic across runs.
func (r *GormAirlineRepository) List(ctx context.Context) ([]*entity.Airline, error) {
	var airlines []Airlines
	result := r.db.WithContext(ctx).Unscoped().Order("name").Find(&airlines)

	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.Airline, 0, len(airlines))
	for _, a := range airlines {
		entities = append(entities, &entity.Airline{
			ID:        a.ID,
			Code:      a.Code,
			Name:      a.Name,
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
			DeletedAt: a.DeletedAt,
		})
	}
	return entities, nil
}
