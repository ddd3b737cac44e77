package repository

import (
	"context"

	"github.com/waitron/waitron/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindByID(ctx context.Context, locationID, id uint) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	FindByLocation(ctx context.Context, locationID uint, status *models.OrderStatus) ([]models.Order, error)
	FindItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.OrderItem, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
	GetDB() *gorm.DB
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetDB() *gorm.DB {
	return r.db
}

// Create inserts the order and its line items in one go; gorm writes the
// association rows inside the surrounding transaction.
func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, locationID, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND location_id = ?", id, locationID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row for the duration of tx, serializing
// concurrent confirmations of the same order.
func (r *orderRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByLocation(ctx context.Context, locationID uint, status *models.OrderStatus) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Where("location_id = ?", locationID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var orders []models.Order
	if err := q.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.OrderItem, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var items []models.OrderItem
	err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
