// Package authctx provides type-safe context propagation for the verified
// identity established by the authentication middleware.
//
// The middleware is the only writer; handlers read with Get or MustGet. The
// value lives only for the duration of the request.
package authctx

import (
	"context"
	"errors"
)

// Identity is the per-request verified identity attached after successful
// token validation.
type Identity struct {
	Email string
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

// identityKey is the single key used to store the identity in context.
var identityKey = contextKey{}

// Set stores the verified identity in the context.
func Set(ctx context.Context, identity any) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Get retrieves the typed identity from the context.
// Returns the identity and true if found and of the correct type,
// or zero value and false otherwise.
func Get[T any](ctx context.Context) (T, bool) {
	val := ctx.Value(identityKey)
	if val == nil {
		var zero T
		return zero, false
	}
	identity, ok := val.(T)
	return identity, ok
}

// MustGet retrieves the typed identity from the context.
// Panics if the identity is missing or of the wrong type.
// Use only behind middleware that guarantees the identity exists.
func MustGet[T any](ctx context.Context) T {
	identity, ok := Get[T](ctx)
	if !ok {
		panic("authctx: identity not found in context or wrong type")
	}
	return identity
}

// ErrNoIdentity is returned when no identity is found in the context.
var ErrNoIdentity = errors.New("authctx: no identity in context")

// GetOrError retrieves the typed identity from the context.
// Returns ErrNoIdentity if it is missing or of the wrong type.
func GetOrError[T any](ctx context.Context) (T, error) {
	identity, ok := Get[T](ctx)
	if !ok {
		var zero T
		return zero, ErrNoIdentity
	}
	return identity, nil
}
