// Package model holds the GORM persistence structs.
package model

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&UserProfileModel{},
		&ProductCategoryModel{},
		&SubCategoryModel{},
		&ImageContentModel{},
		&ProductModel{},
		&AddressModel{},
		&CouponModel{},
		&PaymentModel{},
		&OrderModel{},
		&OrderLineModel{},
		&RefundModel{},
		&FavoriteModel{},
		&FavoriteProductModel{},
	}
}
