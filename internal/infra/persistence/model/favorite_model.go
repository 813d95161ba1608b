package model

import "github.com/google/uuid"

// FavoriteModel mirrors the 'favorites' table; products live in the 'favorite_products' join table.
type FavoriteModel struct {
	ID     int64     `gorm:"primaryKey;autoIncrement"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Products []*ProductModel `gorm:"many2many:favorite_products;joinForeignKey:FavoriteID;joinReferences:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (FavoriteModel) TableName() string {
	return "favorites"
}

// FavoriteProductModel is the 'favorite_products' join row.
type FavoriteProductModel struct {
	FavoriteID int64 `gorm:"primaryKey"`
	ProductID  int64 `gorm:"primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (FavoriteProductModel) TableName() string {
	return "favorite_products"
}
