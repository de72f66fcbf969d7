package app_test

import (
	"context"
	"testing"
	"time"

	"pousada_manicaca/internal/app"
)

func TestResolver_EmptyAndUnknownFallToPlaceholder(t *testing.T) {
	r := app.NewResolver(newFakeStore(), nil, "/placeholder.svg")
	ctx := context.Background()

	for _, ref := range []string{"", "   ", "no-such-asset.jpg"} {
		if got := r.Resolve(ctx, ref); got != "/placeholder.svg" {
			t.Fatalf("Resolve(%q) = %q, want placeholder", ref, got)
		}
	}
	if got := r.ResolvePtr(ctx, nil); got != "/placeholder.svg" {
		t.Fatalf("ResolvePtr(nil) = %q", got)
	}
}

func TestResolver_BundledAssetAndStoragePath(t *testing.T) {
	store := newFakeStore()
	r := app.NewResolver(store, nil, "")
	ctx := context.Background()

	if got := r.Resolve(ctx, "hero-beach.jpg"); got != "/assets/hero-beach.jpg" {
		t.Fatalf("bundled asset: %q", got)
	}
	if got := r.Resolve(ctx, "rooms/abc123.webp"); got != store.PublicURL("rooms/abc123.webp") {
		t.Fatalf("storage path: %q", got)
	}
}

func TestResolver_OverrideBypassesURLConstruction(t *testing.T) {
	store := newFakeStore()
	cache := &fakeCache{}
	svc := app.NewContentService(newFakeRepo(), store, cache, time.Minute)
	r := app.NewResolver(store, cache, "")
	ctx := context.Background()

	const payload = "data:image/jpeg;base64,AAAA"
	if err := svc.CacheImageOverride(ctx, "rooms/abc.jpg", payload); err != nil {
		t.Fatalf("cache override: %v", err)
	}
	if got := r.Resolve(ctx, "rooms/abc.jpg"); got != payload {
		t.Fatalf("override ignored: %q", got)
	}
}
