package ecommerce

import (
	"fmt"

	"github.com/backo/backend/internal/domain/storefront"
)

// Registry holds the configured platform adapters and implements the
// storefront.Registry port
type Registry struct {
	platforms map[storefront.PlatformCode]storefront.Platform
	order     []storefront.PlatformCode
}

var _ storefront.Registry = (*Registry)(nil)

// NewRegistry creates a registry over the given adapters; registration
// order is preserved for All()
func NewRegistry(platforms ...storefront.Platform) *Registry {
	r := &Registry{
		platforms: make(map[storefront.PlatformCode]storefront.Platform, len(platforms)),
	}
	for _, p := range platforms {
		if _, exists := r.platforms[p.Code()]; exists {
			continue
		}
		r.platforms[p.Code()] = p
		r.order = append(r.order, p.Code())
	}
	return r
}

// Get resolves an adapter by platform code
func (r *Registry) Get(code storefront.PlatformCode) (storefront.Platform, error) {
	p, ok := r.platforms[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storefront.ErrPlatformNotRegistered, code)
	}
	return p, nil
}

// All lists the registered adapters in registration order
func (r *Registry) All() []storefront.Platform {
	out := make([]storefront.Platform, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.platforms[code])
	}
	return out
}
