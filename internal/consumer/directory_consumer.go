package consumer

import (
	"encoding/json"
	"log"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/waitron/waitron/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DirectoryConsumer keeps the local read models in sync with the services
// that own them: the tenant/location directory (locations, tables) and the
// menu catalog (items, modifiers, station assignments). This service never
// mutates those records itself.
type DirectoryConsumer struct {
	db *gorm.DB
}

func NewDirectoryConsumer(db *gorm.DB) *DirectoryConsumer {
	return &DirectoryConsumer{db: db}
}

func (dc *DirectoryConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			dc.handleMessage(msg)
		}
		log.Println("[DirectoryConsumer] channel closed, stopping consumer")
	}()
}

func (dc *DirectoryConsumer) handleMessage(msg amqp.Delivery) {
	var err error
	switch {
	case strings.HasPrefix(msg.RoutingKey, "location."):
		err = sync[models.Location](dc.db, msg,
			[]string{"tenant_id", "name", "timezone", "updated_at"})
	case strings.HasPrefix(msg.RoutingKey, "table."):
		err = sync[models.Table](dc.db, msg,
			[]string{"location_id", "name", "capacity", "status", "updated_at"})
	case strings.HasPrefix(msg.RoutingKey, "menu.item."):
		err = sync[models.MenuItem](dc.db, msg,
			[]string{"location_id", "name", "price_cents", "available", "updated_at"})
	case strings.HasPrefix(msg.RoutingKey, "menu.modifier."):
		err = sync[models.MenuModifier](dc.db, msg,
			[]string{"location_id", "name", "price_cents", "updated_at"})
	case strings.HasPrefix(msg.RoutingKey, "menu.assignment."):
		err = dc.syncAssignment(msg)
	default:
		log.Printf("[DirectoryConsumer] unknown routing key %q, dropping", msg.RoutingKey)
		msg.Nack(false, false)
		return
	}

	if err != nil {
		log.Printf("[DirectoryConsumer] failed to apply %s: %v", msg.RoutingKey, err)
		msg.Nack(false, true) // requeue
		return
	}
	msg.Ack(false)
}

// sync upserts one record by id, or deletes it when the key ends in .deleted.
func sync[T any](db *gorm.DB, msg amqp.Delivery, updateColumns []string) error {
	var record T
	if err := json.Unmarshal(msg.Body, &record); err != nil {
		return err
	}

	if strings.HasSuffix(msg.RoutingKey, ".deleted") {
		return db.Delete(&record).Error
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(&record).Error
}

func (dc *DirectoryConsumer) syncAssignment(msg amqp.Delivery) error {
	var assignment models.MenuItemStation
	if err := json.Unmarshal(msg.Body, &assignment); err != nil {
		return err
	}

	if strings.HasSuffix(msg.RoutingKey, ".deleted") {
		return dc.db.Delete(&assignment).Error
	}
	return dc.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error
}
