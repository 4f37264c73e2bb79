// Package service holds the scheduling core: user directory, admin slot
// mutations, the calendar projector and the booking engine. Services are
// stateless computations over the store; the store is the only shared
// mutable resource.
package service

import "context"

// EventPublisher pushes domain events out after a mutation commits.
// Publishing is best-effort; correctness never depends on it.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// CacheInvalidator drops cached calendar pages for a user after any of
// their slots change.
type CacheInvalidator interface {
	InvalidateUser(userID string)
}

type noopEvents struct{}

func (noopEvents) Publish(context.Context, string, any) error { return nil }

type noopCache struct{}

func (noopCache) InvalidateUser(string) {}
