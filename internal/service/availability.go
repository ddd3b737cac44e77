package service

import (
	"time"

	"github.com/waitron/waitron/internal/models"
)

// The availability grid: 26 half-hour slots, 09:00 through 21:30 inclusive.
// Slot times are UTC regardless of the location's stored timezone; that
// matches the behaviour operators see today and changing it is a product
// decision, not a refactor.
const (
	slotCount           = 26
	slotOpeningHour     = 9
	slotIntervalMinutes = 30
)

// Slot is one point of the availability grid. The grid is a stale-tolerated
// projection: a slot marked available can still lose the race against another
// booking, which create() resolves at commit time.
type Slot struct {
	Time      time.Time `json:"time"`
	Available bool      `json:"available"`
}

// projectAvailability replays the day's active bookings across the slot grid.
// A slot is available when the capacity of tables not committed during its
// 90-minute window covers the party. Open-interval overlap: a booking ending
// exactly at slot start does not block the slot.
func projectAvailability(tables []models.Table, bookings []models.Booking, day time.Time, partySize int) []Slot {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	slots := make([]Slot, 0, slotCount)
	for i := 0; i < slotCount; i++ {
		slotStart := dayStart.Add(time.Duration(slotOpeningHour)*time.Hour +
			time.Duration(i*slotIntervalMinutes)*time.Minute)
		slotEnd := slotStart.Add(models.DefaultBookingDurationMinutes * time.Minute)

		busy := make(map[uint]struct{})
		for _, b := range bookings {
			if b.Datetime.Before(slotEnd) && b.End().After(slotStart) {
				for _, t := range b.Tables {
					busy[t.ID] = struct{}{}
				}
			}
		}

		freeCapacity := 0
		for _, t := range tables {
			if _, ok := busy[t.ID]; !ok {
				freeCapacity += t.Capacity
			}
		}

		slots = append(slots, Slot{Time: slotStart, Available: freeCapacity >= partySize})
	}
	return slots
}
