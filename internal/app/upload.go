package app

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"io"
	"path"
	"strings"

	"pousada_manicaca/internal/domain"
)

var allowedImageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
}

// UploadImage validates the file before any network call, stores it under a
// randomized collision-resistant name, and returns the stored path
// (<folder>/<name>.<ext>). Removal of a replaced image is a separate
// fallible step for the caller; there is no rollback between the two.
func (s *ContentService) UploadImage(ctx context.Context, filename, contentType, folder string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.Invalid("content_type", "must be an image")
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if !allowedImageExts[ext] {
		return "", domain.Invalid("filename", "extension must be one of jpg, jpeg, png, webp")
	}
	folder = strings.Trim(folder, "/")
	if folder == "" || strings.Contains(folder, "..") {
		return "", domain.Invalid("folder", "must be a non-empty path without '..'")
	}

	dest := folder + "/" + randomName() + "." + ext
	if err := s.store.Upload(ctx, dest, contentType, r); err != nil {
		return "", domain.Transport("upload image", err)
	}
	return dest, nil
}

// CacheImageOverride stores an inline payload (e.g. a data: URL) the
// resolver serves ahead of the bucket. Entries expire with the cache TTL,
// bounding what the legacy version let grow without limit.
func (s *ContentService) CacheImageOverride(ctx context.Context, name, payload string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, overrideKey(name), payload, int(s.cacheTTL.Seconds()))
}

func overrideKey(name string) string { return "img:" + name }

func randomName() string {
	var b [12]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; degrade to a
		// fixed name rather than panic in a content tool.
		return "upload"
	}
	return hex.EncodeToString(b[:])
}
