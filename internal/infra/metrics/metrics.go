// Package metrics exposes Prometheus counters for cart and checkout outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeInfo    = "info"
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)

// Recorder counts storefront operations. It owns its registry so tests and
// multiple fx apps never collide on the global one.
type Recorder struct {
	registry       *prometheus.Registry
	cartMutations  *prometheus.CounterVec
	checkouts      *prometheus.CounterVec
	ordersFinished prometheus.Counter
	cacheLookups   *prometheus.CounterVec
}

// New builds a Recorder with Go runtime and process collectors registered.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation and outcome.",
		}, []string{"op", "outcome"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "checkout_submissions_total",
			Help:      "Checkout form submissions by outcome.",
		}, []string{"outcome"}),
		ordersFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "orders_finalized_total",
			Help:      "Orders settled after payment capture.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "catalog_cache_lookups_total",
			Help:      "Catalog cache lookups by result.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.cartMutations,
		r.checkouts,
		r.ordersFinished,
		r.cacheLookups,
	)

	return r
}

// Registry is what the /metrics handler gathers from.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// CartMutation counts one cart operation (add, remove, decrement, coupon).
func (r *Recorder) CartMutation(op, outcome string) {
	r.cartMutations.WithLabelValues(op, outcome).Inc()
}

// Checkout counts one checkout submission.
func (r *Recorder) Checkout(outcome string) {
	r.checkouts.WithLabelValues(outcome).Inc()
}

// OrderFinalized counts one settled order.
func (r *Recorder) OrderFinalized() {
	r.ordersFinished.Inc()
}

// CacheLookup counts a catalog cache hit or miss.
func (r *Recorder) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}
