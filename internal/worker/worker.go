// Package worker runs background consumers next to, not inside, the API.
package worker

import "context"

// Worker is a long running consumer managed by Manager.
type Worker interface {
	// Start blocks until Stop is called or ctx is done.
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
