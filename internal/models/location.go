package models

import "time"

// Location is the tenant-scoping unit. Rows are owned by the external
// tenant/location directory and synced in via the directory consumer.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  string    `gorm:"not null;index" json:"tenant_id"`
	Name      string    `gorm:"not null" json:"name"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
