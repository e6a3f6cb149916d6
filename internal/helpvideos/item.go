package helpvideos

// Field names used as error map keys on an upload item.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldMainVideo   = "mainVideo"
	FieldThumbnail   = "thumbnail"
	FieldDuration    = "duration"
)

// LocalFile references a file that the admin selected but that has not been
// pushed to the remote asset store yet.
type LocalFile struct {
	Name        string // original file name
	Path        string // current on-disk location
	Size        int64
	ContentType string
}

// UploadItem is one help video being prepared for upload. Items are owned by
// an UploadWorkflow, addressed by their stable ID, and mutated only through
// the workflow's operations.
type UploadItem struct {
	ID           string
	Title        string
	Description  string
	Status       bool   // publish flag, defaults to true
	Duration     string // MM:SS, derived from the attached video
	MainVideo    *LocalFile
	Thumbnail    *LocalFile
	VideoURL     string // preview URL, set iff MainVideo is set and valid
	ThumbnailURL string // preview URL, set iff Thumbnail is set and valid
	Errors       map[string]string
}

func newUploadItem(id string) *UploadItem {
	return &UploadItem{
		ID:     id,
		Status: true,
		Errors: make(map[string]string),
	}
}

// clone returns a deep copy so callers can read item state without holding
// the workflow lock.
func (it *UploadItem) clone() *UploadItem {
	out := *it

	out.Errors = make(map[string]string, len(it.Errors))
	for field, msg := range it.Errors {
		out.Errors[field] = msg
	}

	if it.MainVideo != nil {
		video := *it.MainVideo
		out.MainVideo = &video
	}
	if it.Thumbnail != nil {
		thumb := *it.Thumbnail
		out.Thumbnail = &thumb
	}

	return &out
}
