package helpvideos

import (
	"time"
)

// HowTo is a published help-center video record. The actual media lives in the
// asset store; the record references it by asset ID.
type HowTo struct {
	ID               int64
	Title            string
	Description      string
	Status           bool // publish flag
	Duration         string // playback duration formatted MM:SS
	MainAssetID      string
	ThumbnailAssetID string
	CreatedAt        time.Time
}

// HowToQuery represents query parameters for listing help videos
type HowToQuery struct {
	Limit  *int // maximum number of records to return (nil means no limit)
	Offset *int // number of records to skip (nil means no offset)
}
