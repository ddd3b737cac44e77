package repository

import (
	"context"

	"github.com/waitron/waitron/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuRepository is the local face of the menu catalog collaborator: price
// lookups for order snapshotting and item→station assignments for routing.
type MenuRepository interface {
	FindItemsByIDs(ctx context.Context, locationID uint, ids []uint) ([]models.MenuItem, error)
	FindModifiersByIDs(ctx context.Context, ids []uint) ([]models.MenuModifier, error)
	FindItemStations(ctx context.Context, tx *gorm.DB, itemIDs []uint) ([]models.MenuItemStation, error)
	AssignItemToStation(ctx context.Context, menuItemID, stationID uint) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) FindItemsByIDs(ctx context.Context, locationID uint, ids []uint) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND id IN ?", locationID, ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) FindModifiersByIDs(ctx context.Context, ids []uint) ([]models.MenuModifier, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var modifiers []models.MenuModifier
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&modifiers).Error; err != nil {
		return nil, err
	}
	return modifiers, nil
}

func (r *menuRepository) FindItemStations(ctx context.Context, tx *gorm.DB, itemIDs []uint) ([]models.MenuItemStation, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	db := tx
	if db == nil {
		db = r.db
	}
	var assignments []models.MenuItemStation
	err := db.WithContext(ctx).
		Where("menu_item_id IN ?", itemIDs).
		Order("station_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *menuRepository) AssignItemToStation(ctx context.Context, menuItemID, stationID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.MenuItemStation{MenuItemID: menuItemID, StationID: stationID}).Error
}
