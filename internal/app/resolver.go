package app

import (
	"context"
	"strings"

	"pousada_manicaca/internal/domain"
)

// bundledAssets maps the legacy bare image names compiled into the site to
// their served paths. References not listed here and not stored in the
// bucket fall back to the placeholder.
var bundledAssets = map[string]string{
	"hero-beach.jpg":    "/assets/hero-beach.jpg",
	"logo-manicaca.png": "/assets/logo-manicaca.png",
	"pousada-front.jpg": "/assets/pousada-front.jpg",
	"room-standard.jpg": "/assets/room-standard.jpg",
	"room-master.jpg":   "/assets/room-master.jpg",
	"room-family.jpg":   "/assets/room-family.jpg",
	"beach-sunset.jpg":  "/assets/beach-sunset.jpg",
}

// Resolver maps stored image references to displayable URLs. It never
// errors: anything unresolvable degrades to the placeholder.
type Resolver struct {
	store       domain.ObjectStore
	cache       domain.Cache // optional override source
	placeholder string
}

func NewResolver(store domain.ObjectStore, cache domain.Cache, placeholder string) *Resolver {
	if placeholder == "" {
		placeholder = "/placeholder.svg"
	}
	return &Resolver{store: store, cache: cache, placeholder: placeholder}
}

// Resolve picks, in order: the placeholder for empty references, a cached
// override payload, the bucket public URL for storage paths, and the
// bundled asset table for bare legacy names.
func (r *Resolver) Resolve(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.placeholder
	}
	if r.cache != nil {
		var payload string
		if ok, _ := r.cache.Get(ctx, overrideKey(ref), &payload); ok && payload != "" {
			return payload
		}
	}
	if strings.Contains(ref, "/") {
		return r.store.PublicURL(ref)
	}
	if url, ok := bundledAssets[ref]; ok {
		return url
	}
	return r.placeholder
}

// ResolvePtr is Resolve for optional references.
func (r *Resolver) ResolvePtr(ctx context.Context, ref *string) string {
	if ref == nil {
		return r.placeholder
	}
	return r.Resolve(ctx, *ref)
}
