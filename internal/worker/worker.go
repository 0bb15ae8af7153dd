package worker

import (
	"context"
)

// Worker is the contract every background worker satisfies.
type Worker interface {
	// Start runs the worker loop until stopped or the context ends
	Start(ctx context.Context) error

	// Stop signals the worker to finish its current message and exit
	Stop() error

	// Name returns the worker name for logs and registration
	Name() string
}
