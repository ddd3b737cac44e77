package repository

import (
	"context"

	"github.com/waitron/waitron/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	FindByIDAndTenant(ctx context.Context, tenantID string, id uint) (*models.Location, error)
	FindByIDAndTenantForUpdate(ctx context.Context, tx *gorm.DB, tenantID string, id uint) (*models.Location, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) FindByIDAndTenant(ctx context.Context, tenantID string, id uint) (*models.Location, error) {
	var loc models.Location
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// FindByIDAndTenantForUpdate acquires a row-level lock on the location within
// the given transaction. Every booking creation for a location passes through
// this lock, which serializes the conflict-check-then-commit sequence.
func (r *locationRepository) FindByIDAndTenantForUpdate(ctx context.Context, tx *gorm.DB, tenantID string, id uint) (*models.Location, error) {
	var loc models.Location
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
