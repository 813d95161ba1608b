// Package lifecycle holds process-wide timing constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and pools.
const DefaultTimeout = 10 * time.Second
