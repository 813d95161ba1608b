package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table.
// idx_addresses_default keeps at most one default per (user, type).
type AddressModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;index:idx_addresses_default,unique,where:is_default = true"`
	Street      string    `gorm:"type:varchar(100);not null"`
	Apartment   string    `gorm:"type:varchar(100)"`
	Country     string    `gorm:"type:varchar(2);not null"`
	Zip         string    `gorm:"type:varchar(100);not null"`
	AddressType string    `gorm:"type:varchar(1);not null;index:idx_addresses_default,unique,where:is_default = true"`
	IsDefault   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
