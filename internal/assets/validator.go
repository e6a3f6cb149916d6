package assets

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two categories of uploadable help-center assets.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

const bytesInMegabyte = 1024 * 1024

// sizeLimits holds the maximum accepted file size per kind.
var sizeLimits = map[Kind]int64{
	KindVideo: 100 * bytesInMegabyte,
	KindImage: 5 * bytesInMegabyte,
}

// allowedTypes holds the accepted MIME types per kind.
var allowedTypes = map[Kind][]string{
	KindVideo: {"video/mp4", "video/webm"},
	KindImage: {"image/jpeg", "image/png", "image/webp"},
}

// Validate checks a candidate file's size and declared content type against
// the limits for the given kind. It returns a human-readable message for the
// first failing check, or an empty string when the file is acceptable.
// Validate has no side effects and always returns the same result for the
// same input.
func Validate(size int64, contentType string, kind Kind) string {
	limit, ok := sizeLimits[kind]
	if !ok {
		return fmt.Sprintf("Unknown file kind %q", kind)
	}

	if size > limit {
		return fmt.Sprintf("File size must be less than %dMB", limit/bytesInMegabyte)
	}

	accepted := allowedTypes[kind]
	for _, t := range accepted {
		if contentType == t {
			return ""
		}
	}

	return fmt.Sprintf("File type must be %s", strings.Join(accepted, " or "))
}

// SizeLimit returns the maximum accepted size in bytes for the given kind.
func SizeLimit(kind Kind) int64 {
	return sizeLimits[kind]
}
