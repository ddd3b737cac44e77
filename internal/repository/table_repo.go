package repository

import (
	"context"

	"github.com/waitron/waitron/internal/models"
	"gorm.io/gorm"
)

type TableRepository interface {
	FindByLocation(ctx context.Context, tx *gorm.DB, locationID uint) ([]models.Table, error)
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

// FindByLocation returns the full table inventory for a location. Pass nil tx
// to read outside a transaction.
func (r *tableRepository) FindByLocation(ctx context.Context, tx *gorm.DB, locationID uint) ([]models.Table, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var tables []models.Table
	err := db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("id ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}
