package database

import (
	"log"

	"github.com/waitron/waitron/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Location{},
		&models.Table{},
		&models.Booking{},
		&models.MenuItem{},
		&models.MenuModifier{},
		&models.Order{},
		&models.OrderItem{},
		&models.KitchenStation{},
		&models.MenuItemStation{},
		&models.KitchenTicket{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Conflict-index queries scan active bookings of one location by time.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_active_window
		ON bookings (location_id, datetime)
		WHERE status NOT IN ('cancelled', 'no_show')
	`)

	return db
}
