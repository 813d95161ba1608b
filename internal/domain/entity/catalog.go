package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Label is the rarity badge shown next to a product.
type Label string

const (
	LabelPrimary   Label = "P"
	LabelSecondary Label = "S"
	LabelDanger    Label = "D"
)

// IsValid reports whether l is one of the known labels.
func (l Label) IsValid() bool {
	switch l {
	case LabelPrimary, LabelSecondary, LabelDanger:
		return true
	default:
		return false
	}
}

// CSSClass maps the label to its badge style.
func (l Label) CSSClass() string {
	switch l {
	case LabelPrimary:
		return "primary"
	case LabelSecondary:
		return "secondary"
	case LabelDanger:
		return "danger"
	default:
		return ""
	}
}

// ProductCategory is the top level of the catalog taxonomy.
type ProductCategory struct {
	ID            int64
	Name          string
	Slug          string
	SubCategories []*SubCategory
}

// SubCategory belongs to exactly one ProductCategory.
type SubCategory struct {
	ID         int64
	CategoryID int64
	Name       string
	Slug       string
}

// ImageContent is an uploaded product photo.
type ImageContent struct {
	ID        int64
	OwnerID   uuid.UUID
	Path      string
	CreatedAt time.Time
}

// Product is a sellable catalog item.
type Product struct {
	ID             int64
	Title          string
	Poster         string // Optional poster image path.
	Price          decimal.Decimal
	DiscountPrice  decimal.Decimal // Zero means no discount.
	QuantityOnHand int
	Label          Label
	Slug           string
	Description    string
	SubCategoryID  int64
	SubCategory    *SubCategory
	Images         []*ImageContent
	CreatedAt      time.Time
}

// HasDiscount reports whether a discount price is set.
func (p *Product) HasDiscount() bool {
	return !p.DiscountPrice.IsZero()
}

// UnitPrice is the price a buyer pays for one unit.
func (p *Product) UnitPrice() decimal.Decimal {
	if p.HasDiscount() {
		return p.DiscountPrice
	}

	return p.Price
}
