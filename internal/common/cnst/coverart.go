package cnst

import "time"

const (
	// MaxCoverArtSizeBytes is the upload ceiling for cover art files (5 MiB, inclusive)
	MaxCoverArtSizeBytes = 5 * 1024 * 1024

	// CoverArtRetention is the grace period between a cover art becoming
	// orphaned and it becoming eligible for physical deletion
	CoverArtRetention = 30 * 24 * time.Hour
)

// AllowedImageTypes is the exhaustive MIME allow-list for cover art uploads.
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
}

// IsAllowedImageType reports whether mimeType is in the allow-list.
func IsAllowedImageType(mimeType string) bool {
	for _, t := range AllowedImageTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}
