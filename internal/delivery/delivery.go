// Package delivery defines how the application is exposed to the outside world.
package delivery

import "context"

// Delivery is a long-running front end started by the fx application.
type Delivery interface {
	Serve(ctx context.Context) error
}
