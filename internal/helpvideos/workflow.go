package helpvideos

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/myairobotics/myaisells-admin/internal/assets"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
)

const assetTag = "help-center"

// UploadWorkflow owns the ordered list of help videos being prepared. All
// mutations go through id-addressed operations so that asynchronous results
// (duration probes) land on the right item even after the list was reordered
// or shrunk in the meantime.
//
// A single in-flight flag gates every mutating operation while a submission
// is running.
type UploadWorkflow struct {
	logger   logging.Logger
	store    assets.Store
	repo     HowToRepository
	prober   DurationProber
	previews *assets.PreviewStore

	mu       sync.Mutex
	items    []*UploadItem
	inFlight bool
}

// NewUploadWorkflow creates a workflow over the given collaborators.
func NewUploadWorkflow(logger logging.Logger, store assets.Store, repo HowToRepository, prober DurationProber, previews *assets.PreviewStore) *UploadWorkflow {
	if logger == nil {
		logger = logging.NopLogger
	}

	return &UploadWorkflow{
		logger:   logger,
		store:    store,
		repo:     repo,
		prober:   prober,
		previews: previews,
	}
}

// AddItem appends a new, empty upload item and returns a copy of it.
func (w *UploadWorkflow) AddItem() (*UploadItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		return nil, NewSubmissionInProgressError()
	}

	item := newUploadItem(uuid.New().String())
	w.items = append(w.items, item)

	return item.clone(), nil
}

// RemoveItem deletes the item with the given id, releasing both of its
// preview URLs first.
func (w *UploadWorkflow) RemoveItem(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		return NewSubmissionInProgressError()
	}

	for i, item := range w.items {
		if item.ID != id {
			continue
		}

		w.previews.Release(item.VideoURL)
		w.previews.Release(item.ThumbnailURL)
		w.items = append(w.items[:i], w.items[i+1:]...)
		return nil
	}

	return NewItemNotFoundError(id)
}

// Items returns copies of all items in insertion order.
func (w *UploadWorkflow) Items() []*UploadItem {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]*UploadItem, len(w.items))
	for i, item := range w.items {
		out[i] = item.clone()
	}
	return out
}

// Item returns a copy of the item with the given id.
func (w *UploadWorkflow) Item(id string) (*UploadItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	item, ok := w.findLocked(id)
	if !ok {
		return nil, NewItemNotFoundError(id)
	}
	return item.clone(), nil
}

// InFlight reports whether a submission is currently running.
func (w *UploadWorkflow) InFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.inFlight
}

// SetField updates a text field on the item and clears any existing error for
// that field.
func (w *UploadWorkflow) SetField(id, name, value string) (*UploadItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		return nil, NewSubmissionInProgressError()
	}

	item, ok := w.findLocked(id)
	if !ok {
		return nil, NewItemNotFoundError(id)
	}

	switch name {
	case FieldTitle:
		item.Title = value
	case FieldDescription:
		item.Description = value
	default:
		return nil, fmt.Errorf("unknown field: %s", name)
	}

	delete(item.Errors, name)
	return item.clone(), nil
}

// SetStatus updates the publish flag on the item.
func (w *UploadWorkflow) SetStatus(id string, status bool) (*UploadItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		return nil, NewSubmissionInProgressError()
	}

	item, ok := w.findLocked(id)
	if !ok {
		return nil, NewItemNotFoundError(id)
	}

	item.Status = status
	return item.clone(), nil
}

// SetMainVideo attaches (or clears, when file is nil) the item's video file.
// The workflow takes ownership of the file at file.Path: on acceptance it is
// moved into the preview store, on rejection it is deleted. Accepting a video
// kicks off an asynchronous duration probe that updates the item by id once
// metadata is available.
func (w *UploadWorkflow) SetMainVideo(id string, file *LocalFile) (*UploadItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		if file != nil {
			os.Remove(file.Path)
		}
		return nil, NewSubmissionInProgressError()
	}

	item, ok := w.findLocked(id)
	if !ok {
		if file != nil {
			os.Remove(file.Path)
		}
		return nil, NewItemNotFoundError(id)
	}

	// The slot never holds more than one live preview URL.
	w.previews.Release(item.VideoURL)
	item.VideoURL = ""

	if file == nil {
		item.MainVideo = nil
		return item.clone(), nil
	}

	if msg := assets.Validate(file.Size, file.ContentType, assets.KindVideo); msg != "" {
		os.Remove(file.Path)
		item.MainVideo = nil
		item.Errors[FieldMainVideo] = msg
		return item.clone(), nil
	}

	url, err := w.previews.Adopt(file.Path, file.Name)
	if err != nil {
		item.MainVideo = nil
		return nil, fmt.Errorf("failed to store video preview: %w", err)
	}

	path, _ := w.previews.PathFor(url)
	file.Path = path
	item.MainVideo = file
	item.VideoURL = url
	delete(item.Errors, FieldMainVideo)

	go w.probeDuration(id, url, path)

	return item.clone(), nil
}

// SetThumbnail attaches (or clears, when file is nil) the item's thumbnail.
// Ownership semantics match SetMainVideo; there is no duration side effect.
func (w *UploadWorkflow) SetThumbnail(id string, file *LocalFile) (*UploadItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		if file != nil {
			os.Remove(file.Path)
		}
		return nil, NewSubmissionInProgressError()
	}

	item, ok := w.findLocked(id)
	if !ok {
		if file != nil {
			os.Remove(file.Path)
		}
		return nil, NewItemNotFoundError(id)
	}

	w.previews.Release(item.ThumbnailURL)
	item.ThumbnailURL = ""

	if file == nil {
		item.Thumbnail = nil
		delete(item.Errors, FieldThumbnail)
		return item.clone(), nil
	}

	if msg := assets.Validate(file.Size, file.ContentType, assets.KindImage); msg != "" {
		os.Remove(file.Path)
		item.Thumbnail = nil
		item.Errors[FieldThumbnail] = msg
		return item.clone(), nil
	}

	url, err := w.previews.Adopt(file.Path, file.Name)
	if err != nil {
		item.Thumbnail = nil
		return nil, fmt.Errorf("failed to store thumbnail preview: %w", err)
	}

	path, _ := w.previews.PathFor(url)
	file.Path = path
	item.Thumbnail = file
	item.ThumbnailURL = url
	delete(item.Errors, FieldThumbnail)

	return item.clone(), nil
}

// probeDuration runs outside the lock and delivers its result by id. A probe
// whose item or video has since been replaced or removed is a no-op.
func (w *UploadWorkflow) probeDuration(id, url, path string) {
	duration, err := w.prober.ProbeDuration(path)
	if err != nil {
		// An unreadable video simply leaves the duration empty; the
		// required-field validation reports it on the next submit.
		w.logger.Debug("duration probe failed", "item", id, "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	item, ok := w.findLocked(id)
	if !ok || item.VideoURL != url {
		return
	}

	item.Duration = FormatDuration(duration)
	delete(item.Errors, FieldDuration)
}

// Submit validates every item, uploads each item's assets and persists the
// whole batch. On any failure the item list is left untouched so the admin
// can retry.
func (w *UploadWorkflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return NewSubmissionInProgressError()
	}

	// All-or-nothing gate: no network activity unless every item is valid.
	failed := false
	for _, item := range w.items {
		itemErrors := requiredFieldErrors(item)
		item.Errors = itemErrors
		if len(itemErrors) > 0 {
			failed = true
		}
	}
	if failed {
		w.mu.Unlock()
		return NewValidationError("please fix the errors in the forms before uploading")
	}

	w.inFlight = true
	snapshot := make([]*UploadItem, len(w.items))
	copy(snapshot, w.items)
	w.mu.Unlock()

	err := w.uploadAndPersist(ctx, snapshot)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false

	if err != nil {
		w.logger.Error("help video submission failed", "items", len(snapshot), "error", err)
		return err
	}

	for _, item := range w.items {
		w.previews.Release(item.VideoURL)
		w.previews.Release(item.ThumbnailURL)
	}
	w.items = nil

	w.logger.Info("help video batch submitted", "count", len(snapshot))
	return nil
}

type uploadedAssets struct {
	main      *assets.FileAsset
	thumbnail *assets.FileAsset
}

// uploadAndPersist runs the upload phase (items concurrently, video before
// thumbnail within one item) and then submits the batch in list order.
func (w *UploadWorkflow) uploadAndPersist(ctx context.Context, items []*UploadItem) error {
	results := make([]uploadedAssets, len(items))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			main, err := w.uploadFile(groupCtx, item.MainVideo)
			if err != nil {
				return fmt.Errorf("main video of %q: %w", item.Title, err)
			}

			thumbnail, err := w.uploadFile(groupCtx, item.Thumbnail)
			if err != nil {
				return fmt.Errorf("thumbnail of %q: %w", item.Title, err)
			}

			results[i] = uploadedAssets{main: main, thumbnail: thumbnail}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to upload assets: %w", err)
	}

	now := time.Now().UTC()
	records := make([]*HowTo, len(items))
	for i, item := range items {
		records[i] = &HowTo{
			Title:            item.Title,
			Description:      item.Description,
			Status:           item.Status,
			Duration:         item.Duration,
			MainAssetID:      results[i].main.ID,
			ThumbnailAssetID: results[i].thumbnail.ID,
			CreatedAt:        now,
		}
	}

	if err := w.repo.CreateBatch(ctx, records); err != nil {
		return fmt.Errorf("failed to create help videos: %w", err)
	}

	return nil
}

func (w *UploadWorkflow) uploadFile(ctx context.Context, file *LocalFile) (*assets.FileAsset, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer f.Close()

	asset, err := w.store.Upload(ctx, assets.AssetUpload{
		Name:        file.Name,
		ContentType: file.ContentType,
		Size:        file.Size,
		Tag:         assetTag,
		Body:        f,
	})
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("asset store returned no asset for %s", file.Name)
	}

	return asset, nil
}

// Close tears down the workflow, releasing every outstanding preview URL.
func (w *UploadWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, item := range w.items {
		w.previews.Release(item.VideoURL)
		w.previews.Release(item.ThumbnailURL)
	}
	w.items = nil
}

func (w *UploadWorkflow) findLocked(id string) (*UploadItem, bool) {
	for _, item := range w.items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// requiredFieldErrors computes the full required-field error set for an item.
func requiredFieldErrors(item *UploadItem) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(item.Title) == "" {
		errors[FieldTitle] = "Title is required"
	}
	if strings.TrimSpace(item.Description) == "" {
		errors[FieldDescription] = "Description is required"
	}
	if item.MainVideo == nil {
		errors[FieldMainVideo] = "Video file is required"
	}
	if item.Thumbnail == nil {
		errors[FieldThumbnail] = "Thumbnail is required"
	}
	if item.Duration == "" {
		errors[FieldDuration] = "Duration is required"
	}

	return errors
}
