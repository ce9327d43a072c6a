// Package secret resolves named secrets from external key/value backends.
// Nothing is stored here: providers are thin call contracts over the
// process environment or a parameter vault.
package secret

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound reports a key the backend holds no value for. Callers branch
// on it with errors.Is.
var ErrNotFound = errors.New("secret not found")

// Provider is the read contract shared by every backend.
type Provider interface {
	Get(ctx context.Context, key string) (string, error)
}
