// Package sqlitetest opens migrated in-memory SQLite databases for tests.
package sqlitetest

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a fresh, migrated database that lives as long as the test.
// The pool is pinned to one connection so every query sees the same in-memory schema.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(sqlite.Open(":memory:"), slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))

	return db
}

// SeedUser inserts a user with profile and returns its id.
func SeedUser(t testing.TB, db *gorm.DB, username string) uuid.UUID {
	t.Helper()

	user := &model.UserModel{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&model.UserProfileModel{UserID: user.ID}).Error)

	return user.ID
}

// SeedCategory inserts a category with one sub-category and returns the sub-category id.
func SeedCategory(t testing.TB, db *gorm.DB, name string) int64 {
	t.Helper()

	category := &model.ProductCategoryModel{Name: name, Slug: name}
	require.NoError(t, db.Create(category).Error)

	sub := &model.SubCategoryModel{CategoryID: category.ID, Name: name + " sub", Slug: name + "-sub"}
	require.NoError(t, db.Create(sub).Error)

	return sub.ID
}

// SeedProduct inserts a product priced in whole or fractional units and returns its id.
// Pass "0" as discount for a product without a discount price.
func SeedProduct(t testing.TB, db *gorm.DB, subCategoryID int64, title, price, discount string) int64 {
	t.Helper()

	product := &model.ProductModel{
		Title:          title,
		Price:          decimal.RequireFromString(price),
		DiscountPrice:  decimal.RequireFromString(discount),
		QuantityOnHand: 10,
		Label:          "P",
		Slug:           title,
		Description:    title + " description",
		SubCategoryID:  subCategoryID,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, db.Create(product).Error)

	return product.ID
}

// SeedCoupon inserts a coupon and returns its id.
func SeedCoupon(t testing.TB, db *gorm.DB, code, amount string) int64 {
	t.Helper()

	coupon := &model.CouponModel{Code: code, Amount: decimal.RequireFromString(amount)}
	require.NoError(t, db.Create(coupon).Error)

	return coupon.ID
}
