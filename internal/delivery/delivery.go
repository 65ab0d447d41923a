// Package delivery defines the contract every transport (HTTP, worker, ...)
// fulfills so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport serving requests until ctx ends or
// the fx lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
