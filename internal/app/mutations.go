package app

import (
	"context"
	"strings"

	"pousada_manicaca/internal/domain"
)

// Mutation entry points mirror the repository one-to-one. Rooms and
// amenities re-fetch their list after a confirmed write; gallery and room
// images patch the model in place where a re-fetch would be wasteful and
// drop the cached list instead.
// On failure the model is left untouched and the error surfaces verbatim;
// the caller retries explicitly.

// ---------------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------------

func (s *ContentService) CreateRoom(ctx context.Context, r domain.Room) (int64, error) {
	if strings.TrimSpace(r.Name) == "" {
		return 0, domain.Invalid("name", "must not be empty")
	}
	if strings.TrimSpace(r.Capacity) == "" {
		return 0, domain.Invalid("capacity", "must not be empty")
	}
	id, err := s.repo.CreateRoom(ctx, r)
	if err != nil {
		return 0, domain.Transport("create room", err)
	}
	s.refreshRooms(ctx)
	return id, nil
}

func (s *ContentService) UpdateRoom(ctx context.Context, id int64, p domain.RoomPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return domain.Invalid("name", "must not be empty")
	}
	if p.Capacity != nil && strings.TrimSpace(*p.Capacity) == "" {
		return domain.Invalid("capacity", "must not be empty")
	}
	if err := s.repo.UpdateRoom(ctx, id, p); err != nil {
		return domain.Transport("update room", err)
	}
	s.refreshRooms(ctx)
	return nil
}

// DeleteRoom is unconditional; dependent room_images go with the row via
// the schema's cascade, not this layer.
func (s *ContentService) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		return domain.Transport("delete room", err)
	}
	s.refreshRooms(ctx)
	return nil
}

func (s *ContentService) AddRoomImage(ctx context.Context, img domain.RoomImage) (int64, error) {
	if strings.TrimSpace(img.ImagePath) == "" {
		return 0, domain.Invalid("image_path", "must not be empty")
	}
	id, err := s.repo.AddRoomImage(ctx, img)
	if err != nil {
		return 0, domain.Transport("add room image", err)
	}
	img.ID = id
	s.mu.Lock()
	for i := range s.rooms {
		if s.rooms[i].ID == img.RoomID {
			s.rooms[i].Images = append(s.rooms[i].Images, img)
			break
		}
	}
	s.mu.Unlock()
	// the cached room list no longer matches the patched model
	s.dropList(ctx, roomsCacheKey)
	return id, nil
}

func (s *ContentService) RemoveRoomImage(ctx context.Context, roomID, imageID int64) error {
	if err := s.repo.RemoveRoomImage(ctx, roomID, imageID); err != nil {
		return domain.Transport("remove room image", err)
	}
	s.mu.Lock()
	for i := range s.rooms {
		if s.rooms[i].ID != roomID {
			continue
		}
		imgs := s.rooms[i].Images[:0]
		for _, im := range s.rooms[i].Images {
			if im.ID != imageID {
				imgs = append(imgs, im)
			}
		}
		s.rooms[i].Images = imgs
		break
	}
	s.mu.Unlock()
	s.dropList(ctx, roomsCacheKey)
	return nil
}

// ---------------------------------------------------------------------------
// Amenities
// ---------------------------------------------------------------------------

func (s *ContentService) CreateAmenity(ctx context.Context, a domain.Amenity) (int64, error) {
	if strings.TrimSpace(a.Name) == "" {
		return 0, domain.Invalid("name", "must not be empty")
	}
	if strings.TrimSpace(a.Icon) == "" {
		return 0, domain.Invalid("icon", "must not be empty")
	}
	id, err := s.repo.CreateAmenity(ctx, a)
	if err != nil {
		return 0, domain.Transport("create amenity", err)
	}
	s.refreshAmenities(ctx)
	return id, nil
}

// UpdateAmenity renames by label only; rooms holding the old label keep it.
func (s *ContentService) UpdateAmenity(ctx context.Context, id int64, p domain.AmenityPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return domain.Invalid("name", "must not be empty")
	}
	if p.Icon != nil && strings.TrimSpace(*p.Icon) == "" {
		return domain.Invalid("icon", "must not be empty")
	}
	if err := s.repo.UpdateAmenity(ctx, id, p); err != nil {
		return domain.Transport("update amenity", err)
	}
	s.refreshAmenities(ctx)
	return nil
}

func (s *ContentService) DeleteAmenity(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAmenity(ctx, id); err != nil {
		return domain.Transport("delete amenity", err)
	}
	s.refreshAmenities(ctx)
	return nil
}

// ---------------------------------------------------------------------------
// Gallery
// ---------------------------------------------------------------------------

func (s *ContentService) AddGalleryImage(ctx context.Context, g domain.GalleryImage) (int64, error) {
	if strings.TrimSpace(g.ImagePath) == "" {
		return 0, domain.Invalid("image_path", "must not be empty")
	}
	if strings.TrimSpace(g.Category) == "" {
		return 0, domain.Invalid("category", "must not be empty")
	}
	id, err := s.repo.CreateGalleryImage(ctx, g)
	if err != nil {
		return 0, domain.Transport("add gallery image", err)
	}
	g.ID = id
	s.mu.Lock()
	s.gallery = append(s.gallery, g)
	s.mu.Unlock()
	s.dropList(ctx, galleryCacheKey)
	return id, nil
}

// UpdateGalleryImage re-fetches: a display_order change reorders the list.
func (s *ContentService) UpdateGalleryImage(ctx context.Context, id int64, p domain.GalleryImagePatch) error {
	if err := s.repo.UpdateGalleryImage(ctx, id, p); err != nil {
		return domain.Transport("update gallery image", err)
	}
	s.refreshGallery(ctx)
	return nil
}

func (s *ContentService) RemoveGalleryImage(ctx context.Context, id int64) error {
	if err := s.repo.DeleteGalleryImage(ctx, id); err != nil {
		return domain.Transport("remove gallery image", err)
	}
	s.mu.Lock()
	out := s.gallery[:0]
	for _, g := range s.gallery {
		if g.ID != id {
			out = append(out, g)
		}
	}
	s.gallery = out
	s.mu.Unlock()
	s.dropList(ctx, galleryCacheKey)
	return nil
}
