package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCategoryModel mirrors the 'product_categories' table.
type ProductCategoryModel struct {
	ID            int64              `gorm:"primaryKey;autoIncrement"`
	Name          string             `gorm:"type:varchar(255);not null"`
	Slug          string             `gorm:"type:varchar(255);not null;index"`
	SubCategories []SubCategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProductCategoryModel) TableName() string {
	return "product_categories"
}

// SubCategoryModel mirrors the 'sub_categories' table.
type SubCategoryModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	CategoryID int64  `gorm:"not null;index"`
	Name       string `gorm:"type:varchar(255);not null"`
	Slug       string `gorm:"type:varchar(255);not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (SubCategoryModel) TableName() string {
	return "sub_categories"
}

// ImageContentModel mirrors the 'image_contents' table.
type ImageContentModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Path      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ImageContentModel) TableName() string {
	return "image_contents"
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	Title          string          `gorm:"type:varchar(150);not null"`
	Poster         string          `gorm:"type:varchar(255)"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	QuantityOnHand int             `gorm:"not null;default:1"`
	Label          string          `gorm:"type:varchar(1);not null"`
	Slug           string          `gorm:"type:varchar(150);not null;index"`
	Description    string          `gorm:"type:text"`
	SubCategoryID  int64           `gorm:"not null;index"`
	CreatedAt      time.Time

	SubCategory *SubCategoryModel    `gorm:"foreignKey:SubCategoryID"`
	Images      []*ImageContentModel `gorm:"many2many:product_images;joinForeignKey:ProductID;joinReferences:ImageContentID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
