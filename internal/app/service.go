package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"pousada_manicaca/internal/domain"
)

// ContentService owns the in-memory content model: the ordered rooms,
// amenities and gallery lists the presentation layer renders. All mutation
// entry points write through the repository first and only then touch the
// model (await-then-patch), so a failed write never leaves phantom state.
type ContentService struct {
	repo     domain.ContentRepository
	store    domain.ObjectStore
	cache    domain.Cache // optional
	cacheTTL time.Duration

	mu        sync.RWMutex
	state     domain.LoadState
	rooms     []domain.Room
	amenities []domain.Amenity
	gallery   []domain.GalleryImage
}

func NewContentService(r domain.ContentRepository, store domain.ObjectStore, c domain.Cache, ttl time.Duration) *ContentService {
	return &ContentService{repo: r, store: store, cache: c, cacheTTL: ttl}
}

// Cache keys for the list read path. Confirmed writes re-set or drop them.
const (
	roomsCacheKey     = "content:rooms"
	amenitiesCacheKey = "content:amenities"
	galleryCacheKey   = "content:gallery"
)

// Load populates the model. Each list is read cache-aside: a cached list is
// served as-is, a miss falls through to the repository and repopulates the
// cache. The three reads run concurrently and independently; a failed read
// is logged and leaves that list empty rather than blocking the others.
// The service ends up Ready when at least one read succeeded, Error only
// when all three failed. Load may be called again from the Error state.
func (s *ContentService) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = domain.StateLoading
	s.mu.Unlock()

	var (
		rooms     []domain.Room
		amenities []domain.Amenity
		gallery   []domain.GalleryImage

		roomsErr, amenErr, galErr error
	)

	// Each goroutine records its own error; the group itself never fails,
	// so one broken read cannot cancel the others.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if s.cachedList(gctx, roomsCacheKey, &rooms) {
			return nil
		}
		rooms, roomsErr = s.repo.ListRooms(gctx)
		if roomsErr == nil {
			s.storeList(gctx, roomsCacheKey, rooms)
		}
		return nil
	})
	g.Go(func() error {
		if s.cachedList(gctx, amenitiesCacheKey, &amenities) {
			return nil
		}
		amenities, amenErr = s.repo.ListAmenities(gctx)
		if amenErr == nil {
			s.storeList(gctx, amenitiesCacheKey, amenities)
		}
		return nil
	})
	g.Go(func() error {
		if s.cachedList(gctx, galleryCacheKey, &gallery) {
			return nil
		}
		gallery, galErr = s.repo.ListGalleryImages(gctx)
		if galErr == nil {
			s.storeList(gctx, galleryCacheKey, gallery)
		}
		return nil
	})
	_ = g.Wait()

	for entity, err := range map[string]error{"rooms": roomsErr, "amenities": amenErr, "gallery": galErr} {
		if err != nil {
			log.Warn().Str("entity", entity).Err(err).Msg("content list failed")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if roomsErr != nil && amenErr != nil && galErr != nil {
		s.state = domain.StateError
		return errors.Join(roomsErr, amenErr, galErr)
	}
	if roomsErr == nil {
		s.rooms = rooms
	}
	if amenErr == nil {
		s.amenities = amenities
	}
	if galErr == nil {
		s.gallery = gallery
	}
	s.state = domain.StateReady
	return nil
}

// Refresh drops the cached lists and reloads, so an operator-triggered
// refresh always reflects the database even inside the cache TTL.
func (s *ContentService) Refresh(ctx context.Context) error {
	s.dropList(ctx, roomsCacheKey)
	s.dropList(ctx, amenitiesCacheKey)
	s.dropList(ctx, galleryCacheKey)
	return s.Load(ctx)
}

func (s *ContentService) State() domain.LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a deep copy; callers never alias the service's slices.
func (s *ContentService) Snapshot() domain.ContentSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ContentSnapshot{
		Rooms:         copyRooms(s.rooms),
		Amenities:     append([]domain.Amenity(nil), s.amenities...),
		GalleryImages: append([]domain.GalleryImage(nil), s.gallery...),
		State:         s.state,
	}
}

func copyRooms(in []domain.Room) []domain.Room {
	if in == nil {
		return nil
	}
	out := make([]domain.Room, len(in))
	copy(out, in)
	for i := range out {
		out[i].Amenities = append([]string(nil), out[i].Amenities...)
		out[i].SuiteAmenities = append([]string(nil), out[i].SuiteAmenities...)
		out[i].Images = append([]domain.RoomImage(nil), out[i].Images...)
	}
	return out
}

// ---- cache-aside plumbing ----

func (s *ContentService) cachedList(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache read failed")
		return false
	}
	return ok
}

func (s *ContentService) storeList(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache write failed")
	}
}

func (s *ContentService) dropList(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache invalidation failed")
	}
}

// ---- per-entity refresh (server-confirmed state replaces memory) ----

func (s *ContentService) refreshRooms(ctx context.Context) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		// The write already succeeded; memory stays stale until the next refresh.
		log.Warn().Err(err).Msg("room refresh after write failed")
		return
	}
	s.storeList(ctx, roomsCacheKey, rooms)
	s.mu.Lock()
	s.rooms = rooms
	s.mu.Unlock()
}

func (s *ContentService) refreshAmenities(ctx context.Context) {
	amenities, err := s.repo.ListAmenities(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("amenity refresh after write failed")
		return
	}
	s.storeList(ctx, amenitiesCacheKey, amenities)
	s.mu.Lock()
	s.amenities = amenities
	s.mu.Unlock()
}

func (s *ContentService) refreshGallery(ctx context.Context) {
	gallery, err := s.repo.ListGalleryImages(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("gallery refresh after write failed")
		return
	}
	s.storeList(ctx, galleryCacheKey, gallery)
	s.mu.Lock()
	s.gallery = gallery
	s.mu.Unlock()
}
