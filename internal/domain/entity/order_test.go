package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func product(id int64, price, discount string) *Product {
	return &Product{
		ID:            id,
		Price:         decimal.RequireFromString(price),
		DiscountPrice: decimal.RequireFromString(discount),
	}
}

func TestOrder_Total(t *testing.T) {
	tests := []struct {
		name   string
		order  *Order
		expect int64
	}{
		{
			name: "sums lines and subtracts coupon",
			order: &Order{
				Lines: []*OrderLine{
					{ProductID: 1, Product: product(1, "10", "0"), Quantity: 2},
					{ProductID: 2, Product: product(2, "5", "0"), Quantity: 3},
				},
				Coupon: &Coupon{Code: "SAVE7", Amount: decimal.NewFromInt(7)},
			},
			expect: 28,
		},
		{
			name: "discount price wins when set",
			order: &Order{
				Lines: []*OrderLine{
					{ProductID: 1, Product: product(1, "10", "8"), Quantity: 2},
				},
			},
			expect: 16,
		},
		{
			name: "line totals and coupon are truncated",
			order: &Order{
				Lines: []*OrderLine{
					{ProductID: 1, Product: product(1, "3.75", "0"), Quantity: 3}, // 11.25 -> 11
					{ProductID: 2, Product: product(2, "0.99", "0"), Quantity: 1}, // 0.99 -> 0
				},
				Coupon: &Coupon{Amount: decimal.RequireFromString("2.9")}, // 2
			},
			expect: 9,
		},
		{
			name: "coupon larger than subtotal goes negative",
			order: &Order{
				Lines: []*OrderLine{
					{ProductID: 1, Product: product(1, "4", "0"), Quantity: 1},
				},
				Coupon: &Coupon{Amount: decimal.NewFromInt(10)},
			},
			expect: -6,
		},
		{
			name:   "empty order",
			order:  &Order{},
			expect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.order.Total())
		})
	}
}

func TestOrder_LineFor(t *testing.T) {
	line := &OrderLine{ProductID: 42, Quantity: 1}
	order := &Order{Lines: []*OrderLine{{ProductID: 7}, line}}

	assert.Same(t, line, order.LineFor(42))
	assert.Nil(t, order.LineFor(99))
	assert.False(t, order.IsEmpty())
	assert.True(t, (&Order{}).IsEmpty())
}

func TestOrderLine_SavedAmount(t *testing.T) {
	line := &OrderLine{Product: product(1, "10", "7.5"), Quantity: 2}
	assert.True(t, decimal.NewFromInt(5).Equal(line.SavedAmount()))

	line = &OrderLine{Product: product(1, "10", "0"), Quantity: 2}
	assert.True(t, line.SavedAmount().IsZero())
}

func TestAddress_CloneAs(t *testing.T) {
	src := &Address{ID: 3, Street: "Main 1", Apartment: "4", Country: "DE", Zip: "10115", Type: AddressTypeShipping, Default: true}

	clone := src.CloneAs(AddressTypeBilling)

	assert.Zero(t, clone.ID)
	assert.Equal(t, AddressTypeBilling, clone.Type)
	assert.False(t, clone.Default)
	assert.Equal(t, src.Street, clone.Street)
	assert.Equal(t, src.Country, clone.Country)
}

func TestLabel(t *testing.T) {
	assert.True(t, LabelDanger.IsValid())
	assert.False(t, Label("X").IsValid())
	assert.Equal(t, "secondary", LabelSecondary.CSSClass())
}
