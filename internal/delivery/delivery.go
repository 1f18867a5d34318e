// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running entrypoint, such as an HTTP server, started by
// main and stopped through its lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
