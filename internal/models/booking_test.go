package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTerminal(t *testing.T) {
	assert.True(t, BookingCancelled.Terminal())
	assert.True(t, BookingNoShow.Terminal())
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingConfirmed.Terminal())
	assert.False(t, BookingSeated.Terminal())
}

func TestBookingEnd(t *testing.T) {
	b := &Booking{
		Datetime:        time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	}
	assert.Equal(t, time.Date(2026, 3, 14, 20, 30, 0, 0, time.UTC), b.End())
}
