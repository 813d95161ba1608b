package repository

import "context"

// TransactionManager runs multi-step cart and checkout mutations atomically.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise.
	// Only repositories obtained from txRepoFactory take part in the transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewProductRepository() ProductRepository
	NewOrderRepository() OrderRepository
	NewAddressRepository() AddressRepository
	NewCouponRepository() CouponRepository
	NewPaymentRepository() PaymentRepository
	NewRefundRepository() RefundRepository
	NewFavoriteRepository() FavoriteRepository
}
