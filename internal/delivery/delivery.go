// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a long-running transport (e.g. the HTTP server) managed by the
// fx lifecycle.
type Delivery interface {
	// Serve blocks, accepting and dispatching requests until shutdown.
	Serve(ctx context.Context) error
}
