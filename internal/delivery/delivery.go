// Package delivery defines the contract every transport entry point
// implements, so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport surface such as an HTTP server.
type Delivery interface {
	Serve(ctx context.Context) error
}
