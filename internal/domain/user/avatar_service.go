package user

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinAvatarSize = 100             // bytes
	MaxAvatarSize = 5 * 1024 * 1024 // 5 MB
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AvatarService owns the storage-key and URL conventions for profile
// photos.
type AvatarService struct {
	baseURL string
}

func NewAvatarService(baseURL string) *AvatarService {
	return &AvatarService{baseURL: baseURL}
}

func (s *AvatarService) ValidateAvatarFile(contentType string, size int64) error {
	if !allowedImageTypes[contentType] {
		return ErrInvalidFileType.WithArgs(map[string]any{"List": "image/jpeg, image/png, image/gif, image/webp"})
	}
	if size > MaxAvatarSize {
		return ErrPhotoTooLarge.WithArgs(map[string]any{"Threshold": MaxAvatarSize / (1024 * 1024), "Unit": "MB"})
	}
	if size < MinAvatarSize {
		return ErrPhotoTooSmall.WithArgs(map[string]any{"Threshold": MinAvatarSize, "Unit": "bytes"})
	}

	return nil
}

// GenerateKey builds a unique storage key from the user id and the
// current timestamp, so a re-upload never reuses a cached URL.
func (s *AvatarService) GenerateKey(userID ID) string {
	return fmt.Sprintf("avatars/%s/%d", userID.String(), time.Now().UnixMilli())
}

func (s *AvatarService) BuildAvatarURL(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}

// KeyFromURL recovers the storage key from a URL this service built.
// Returns "" for empty URLs or URLs outside the configured base.
func (s *AvatarService) KeyFromURL(url string) string {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}
