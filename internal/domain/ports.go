package domain

import (
	"context"
	"io"
)

type ContentRepository interface {
	// Rooms
	ListRooms(ctx context.Context) ([]Room, error)
	CreateRoom(ctx context.Context, r Room) (int64, error)
	UpdateRoom(ctx context.Context, id int64, p RoomPatch) error
	DeleteRoom(ctx context.Context, id int64) error

	// Secondary room images
	AddRoomImage(ctx context.Context, img RoomImage) (int64, error)
	RemoveRoomImage(ctx context.Context, roomID, imageID int64) error

	// Amenities
	ListAmenities(ctx context.Context) ([]Amenity, error)
	CreateAmenity(ctx context.Context, a Amenity) (int64, error)
	UpdateAmenity(ctx context.Context, id int64, p AmenityPatch) error
	DeleteAmenity(ctx context.Context, id int64) error

	// Gallery
	ListGalleryImages(ctx context.Context) ([]GalleryImage, error)
	CreateGalleryImage(ctx context.Context, g GalleryImage) (int64, error)
	UpdateGalleryImage(ctx context.Context, id int64, p GalleryImagePatch) error
	DeleteGalleryImage(ctx context.Context, id int64) error
}

// ObjectStore is the public-bucket boundary for photo files.
// PublicURL is pure string construction; no round-trip is needed to compute it.
type ObjectStore interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) error
	Remove(ctx context.Context, paths []string) error
	List(ctx context.Context, prefix string) ([]string, error)
	PublicURL(path string) string
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
