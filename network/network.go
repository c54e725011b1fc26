// Package network maps platform kinds to profile services. The registry is
// a pure lookup table: dispatch resolves the handler for a kind and calls
// it, with no business logic of its own.
package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/veldt/tap"
	"github.com/veldt/tap/profile"
)

// Kind discriminates which platform a locator belongs to. It is used only
// as a registry lookup key, never for control flow.
type Kind string

// Service loads an aggregated profile for a platform-specific locator.
type Service interface {
	LoadProfile(ctx context.Context, locator string) (*profile.Profile, error)
}

// ServiceFunc is an adapter to use a plain function as a Service.
type ServiceFunc func(ctx context.Context, locator string) (*profile.Profile, error)

// LoadProfile implements Service.
func (f ServiceFunc) LoadProfile(ctx context.Context, locator string) (*profile.Profile, error) {
	return f(ctx, locator)
}

// Registry maps network kinds to profile services.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	services map[Kind]Service
}

// NewRegistry creates an empty network registry.
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[Kind]Service),
	}
}

// Register maps a kind to a service. Registering an already-present kind
// replaces the prior service, last write wins; callers swap a service at
// runtime without a separate update path.
func (r *Registry) Register(kind Kind, svc Service) error {
	if svc == nil {
		return fmt.Errorf("network: register %q: %w", kind, tap.ErrNilService)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[kind] = svc
	return nil
}

// Resolve returns the service registered for the given kind.
// An unregistered kind is an error, never an empty result.
func (r *Registry) Resolve(kind Kind) (Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[kind]
	if !ok {
		return nil, fmt.Errorf("network: resolve %q: %w", kind, tap.ErrUnknownNetwork)
	}
	return svc, nil
}

// Dispatch resolves the service for kind and loads the profile at locator.
func (r *Registry) Dispatch(ctx context.Context, kind Kind, locator string) (*profile.Profile, error) {
	svc, err := r.Resolve(kind)
	if err != nil {
		return nil, err
	}
	return svc.LoadProfile(ctx, locator)
}

// Kinds returns all registered network kinds.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.services))
	for k := range r.services {
		kinds = append(kinds, k)
	}
	return kinds
}
