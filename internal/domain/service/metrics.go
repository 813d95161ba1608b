package service

// StorefrontMetrics records business outcomes. Outcome values follow the
// result statuses shown to users: success, info, warning, error.
type StorefrontMetrics interface {
	CartMutation(op, outcome string)
	Checkout(outcome string)
	OrderFinalized()
	CacheLookup(hit bool)
}
