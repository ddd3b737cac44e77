package repository

import (
	"context"

	"github.com/waitron/waitron/internal/models"
	"gorm.io/gorm"
)

type KitchenRepository interface {
	CreateStation(ctx context.Context, station *models.KitchenStation) error
	FindStations(ctx context.Context, locationID uint) ([]models.KitchenStation, error)
	FindStationByID(ctx context.Context, locationID, id uint) (*models.KitchenStation, error)
	DeleteStation(ctx context.Context, id uint) error
	CreateTickets(ctx context.Context, tx *gorm.DB, tickets []models.KitchenTicket) error
	CountTicketsByOrder(ctx context.Context, tx *gorm.DB, orderID uint) (int64, error)
	FindTicketsByOrder(ctx context.Context, orderID uint) ([]models.KitchenTicket, error)
	FindTicketByID(ctx context.Context, id uint) (*models.KitchenTicket, error)
	FindTicketsByStations(ctx context.Context, stationIDs []uint, status *models.TicketStatus) ([]models.KitchenTicket, error)
	SaveTicket(ctx context.Context, ticket *models.KitchenTicket) error
	GetDB() *gorm.DB
}

type kitchenRepository struct {
	db *gorm.DB
}

func NewKitchenRepository(db *gorm.DB) KitchenRepository {
	return &kitchenRepository{db: db}
}

func (r *kitchenRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *kitchenRepository) CreateStation(ctx context.Context, station *models.KitchenStation) error {
	return r.db.WithContext(ctx).Create(station).Error
}

func (r *kitchenRepository) FindStations(ctx context.Context, locationID uint) ([]models.KitchenStation, error) {
	var stations []models.KitchenStation
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("sort_order ASC, id ASC").
		Find(&stations).Error
	if err != nil {
		return nil, err
	}
	return stations, nil
}

func (r *kitchenRepository) FindStationByID(ctx context.Context, locationID, id uint) (*models.KitchenStation, error) {
	var station models.KitchenStation
	err := r.db.WithContext(ctx).
		Where("id = ? AND location_id = ?", id, locationID).
		First(&station).Error
	if err != nil {
		return nil, err
	}
	return &station, nil
}

func (r *kitchenRepository) DeleteStation(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.KitchenStation{}, id).Error
}

func (r *kitchenRepository) CreateTickets(ctx context.Context, tx *gorm.DB, tickets []models.KitchenTicket) error {
	return tx.WithContext(ctx).Create(&tickets).Error
}

func (r *kitchenRepository) CountTicketsByOrder(ctx context.Context, tx *gorm.DB, orderID uint) (int64, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.WithContext(ctx).
		Model(&models.KitchenTicket{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

func (r *kitchenRepository) FindTicketsByOrder(ctx context.Context, orderID uint) ([]models.KitchenTicket, error) {
	var tickets []models.KitchenTicket
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *kitchenRepository) FindTicketByID(ctx context.Context, id uint) (*models.KitchenTicket, error) {
	var ticket models.KitchenTicket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *kitchenRepository) FindTicketsByStations(ctx context.Context, stationIDs []uint, status *models.TicketStatus) ([]models.KitchenTicket, error) {
	if len(stationIDs) == 0 {
		return nil, nil
	}
	q := r.db.WithContext(ctx).Where("station_id IN ?", stationIDs)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var tickets []models.KitchenTicket
	if err := q.Order("priority ASC, created_at ASC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *kitchenRepository) SaveTicket(ctx context.Context, ticket *models.KitchenTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}
