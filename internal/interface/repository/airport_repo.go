package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	IATACode  string         `gorm:"column:iatacode;unique"`
	Name      string         `gorm:"column:name"`
	CityName  string         `gorm:"column:cityname"`
	TzName    string         `gorm:"column:tzname"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByIATACode finds a reference airport by IATA code. Unknown codes return
// (nil, nil); the record builder falls back to API-supplied fields.
func (r *GormAirportRepository) GetByIATACode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Unscoped().Where("iatacode = ?", strings.ToUpper(code)).First(&airport)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toAirportEntity(&airport), nil
}

// SearchByPrefix lists reference airports whose IATA code starts with prefix
func (r *GormAirportRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*entity.Airport, error) {
	var airports []Airports
	result := r.db.WithContext(ctx).Unscoped().
		Where("iatacode LIKE ?", strings.ToUpper(prefix)+"%").
		Order("iatacode").
		Limit(limit).
		Find(&airports)

	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.Airport, 0, len(airports))
	for i := range airports {
		entities = append(entities, toAirportEntity(&airports[i]))
	}
	return entities, nil
}

// Convert GORM model to domain entity
func toAirportEntity(a *Airports) *entity.Airport {
	return &entity.Airport{
		ID:        a.ID,
		IATACode:  a.IATACode,
		Name:      a.Name,
		CityName:  a.CityName,
		TzName:    a.TzName,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		DeletedAt: a.DeletedAt,
	}
}
