package helpvideos

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myairobotics/myaisells-admin/internal/assets"
)

type fakeAssetStore struct {
	mu      sync.Mutex
	uploads []string // names in upload order
	failOn  string   // upload of a file with this name fails
	nilFor  string   // upload of a file with this name returns no asset
	nextID  int
}

func (s *fakeAssetStore) Upload(_ context.Context, upload assets.AssetUpload) (*assets.FileAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if upload.Name == s.failOn {
		return nil, fmt.Errorf("storage rejected %s", upload.Name)
	}
	if upload.Name == s.nilFor {
		return nil, nil
	}

	s.uploads = append(s.uploads, upload.Name)
	s.nextID++
	return &assets.FileAsset{
		ID:          fmt.Sprintf("asset-%d", s.nextID),
		Name:        upload.Name,
		Path:        "help-center/assets/" + upload.Name,
		ContentType: upload.ContentType,
		Size:        upload.Size,
	}, nil
}

func (s *fakeAssetStore) uploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uploads)
}

type fakeHowToRepo struct {
	mu      sync.Mutex
	batches [][]*HowTo
	failErr error
}

func (r *fakeHowToRepo) GetByID(context.Context, int64) (*HowTo, error) { return nil, nil }

func (r *fakeHowToRepo) Query(context.Context, HowToQuery) ([]*HowTo, int, error) {
	return nil, 0, nil
}

func (r *fakeHowToRepo) CreateBatch(_ context.Context, howtos []*HowTo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failErr != nil {
		return r.failErr
	}
	r.batches = append(r.batches, howtos)
	return nil
}

func (r *fakeHowToRepo) batchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

type fakeProber struct {
	duration time.Duration
	err      error
	gate     chan struct{} // when set, ProbeDuration blocks until closed
}

func (p *fakeProber) ProbeDuration(string) (time.Duration, error) {
	if p.gate != nil {
		<-p.gate
	}
	return p.duration, p.err
}

type workflowFixture struct {
	workflow *UploadWorkflow
	store    *fakeAssetStore
	repo     *fakeHowToRepo
	previews *assets.PreviewStore
	scratch  string
}

func newWorkflowFixture(t *testing.T, prober DurationProber) *workflowFixture {
	t.Helper()

	previews, err := assets.NewPreviewStore(filepath.Join(t.TempDir(), "previews"), nil)
	require.NoError(t, err)

	store := &fakeAssetStore{}
	repo := &fakeHowToRepo{}

	return &workflowFixture{
		workflow: NewUploadWorkflow(nil, store, repo, prober, previews),
		store:    store,
		repo:     repo,
		previews: previews,
		scratch:  t.TempDir(),
	}
}

func (f *workflowFixture) scratchFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(f.scratch, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// attachVideo attaches a valid mp4 and waits for the duration probe to land.
func (f *workflowFixture) attachVideo(t *testing.T, id, name string) {
	t.Helper()

	item, err := f.workflow.SetMainVideo(id, &LocalFile{
		Name:        name,
		Path:        f.scratchFile(t, name, "video-"+name),
		Size:        1024,
		ContentType: "video/mp4",
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.VideoURL)

	require.Eventually(t, func() bool {
		current, err := f.workflow.Item(id)
		return err == nil && current.Duration != ""
	}, time.Second, 5*time.Millisecond, "duration probe never delivered")
}

func (f *workflowFixture) attachThumbnail(t *testing.T, id, name string) {
	t.Helper()

	item, err := f.workflow.SetThumbnail(id, &LocalFile{
		Name:        name,
		Path:        f.scratchFile(t, name, "image-"+name),
		Size:        512,
		ContentType: "image/png",
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ThumbnailURL)
}

// addValidItem creates a fully valid item and returns its id.
func (f *workflowFixture) addValidItem(t *testing.T, title string) string {
	t.Helper()

	item, err := f.workflow.AddItem()
	require.NoError(t, err)

	_, err = f.workflow.SetField(item.ID, FieldTitle, title)
	require.NoError(t, err)
	_, err = f.workflow.SetField(item.ID, FieldDescription, "How to "+title)
	require.NoError(t, err)

	f.attachVideo(t, item.ID, title+".mp4")
	f.attachThumbnail(t, item.ID, title+".png")

	return item.ID
}

func TestUploadWorkflow_AddAndRemove(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	first, err := f.workflow.AddItem()
	require.NoError(t, err)
	second, err := f.workflow.AddItem()
	require.NoError(t, err)
	third, err := f.workflow.AddItem()
	require.NoError(t, err)

	assert.True(t, first.Status, "publish flag should default to true")
	assert.Empty(t, first.Errors)

	require.NoError(t, f.workflow.RemoveItem(second.ID))

	items := f.workflow.Items()
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, third.ID, items[1].ID)

	err = f.workflow.RemoveItem(second.ID)
	assert.True(t, IsItemNotFoundError(err))
}

func TestUploadWorkflow_RejectsInvalidVideo(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	item, err := f.workflow.AddItem()
	require.NoError(t, err)

	oversized := &LocalFile{
		Name:        "huge.mp4",
		Path:        f.scratchFile(t, "huge.mp4", "x"),
		Size:        101 * 1024 * 1024,
		ContentType: "video/mp4",
	}

	updated, err := f.workflow.SetMainVideo(item.ID, oversized)
	require.NoError(t, err)

	assert.Nil(t, updated.MainVideo)
	assert.Empty(t, updated.VideoURL)
	assert.Contains(t, updated.Errors[FieldMainVideo], "100MB")
	assert.Equal(t, 0, f.previews.Outstanding())
	assert.NoFileExists(t, oversized.Path, "rejected file should be cleaned up")
}

func TestUploadWorkflow_ClearVideoIsNoopWhenEmpty(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	item, err := f.workflow.AddItem()
	require.NoError(t, err)

	updated, err := f.workflow.SetMainVideo(item.ID, nil)
	require.NoError(t, err)

	assert.Nil(t, updated.MainVideo)
	assert.Empty(t, updated.VideoURL)
	assert.NotContains(t, updated.Errors, FieldMainVideo)
}

func TestUploadWorkflow_ReplacingVideoLeavesOnePreview(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	item, err := f.workflow.AddItem()
	require.NoError(t, err)

	f.attachVideo(t, item.ID, "first.mp4")
	firstItem, err := f.workflow.Item(item.ID)
	require.NoError(t, err)

	f.attachVideo(t, item.ID, "second.mp4")
	secondItem, err := f.workflow.Item(item.ID)
	require.NoError(t, err)

	assert.NotEqual(t, firstItem.VideoURL, secondItem.VideoURL)
	assert.Equal(t, 1, f.previews.Outstanding(), "exactly one preview may be live per slot")

	_, stillLive := f.previews.PathFor(firstItem.VideoURL)
	assert.False(t, stillLive, "replaced preview must be released")
}

func TestUploadWorkflow_RemoveReleasesBothPreviews(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	item, err := f.workflow.AddItem()
	require.NoError(t, err)

	f.attachVideo(t, item.ID, "clip.mp4")
	f.attachThumbnail(t, item.ID, "thumb.png")
	require.Equal(t, 2, f.previews.Outstanding())

	require.NoError(t, f.workflow.RemoveItem(item.ID))

	assert.Equal(t, 0, f.previews.Outstanding())
	assert.Empty(t, f.workflow.Items())
}

func TestUploadWorkflow_StaleProbeIsNoop(t *testing.T) {
	prober := &fakeProber{duration: 30 * time.Second, gate: make(chan struct{})}
	f := newWorkflowFixture(t, prober)

	item, err := f.workflow.AddItem()
	require.NoError(t, err)

	_, err = f.workflow.SetMainVideo(item.ID, &LocalFile{
		Name:        "clip.mp4",
		Path:        f.scratchFile(t, "clip.mp4", "video"),
		Size:        1024,
		ContentType: "video/mp4",
	})
	require.NoError(t, err)

	// The item disappears while the probe is still pending.
	require.NoError(t, f.workflow.RemoveItem(item.ID))
	close(prober.gate)

	assert.Never(t, func() bool {
		return len(f.workflow.Items()) != 0
	}, 50*time.Millisecond, 10*time.Millisecond)
}

func TestUploadWorkflow_SubmitPersistsBatchInOrder(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 125 * time.Second})

	f.addValidItem(t, "alpha")
	f.addValidItem(t, "beta")
	f.addValidItem(t, "gamma")

	require.NoError(t, f.workflow.Submit(context.Background()))

	require.Equal(t, 1, f.repo.batchCount(), "expected exactly one batch call")
	batch := f.repo.batches[0]
	require.Len(t, batch, 3)
	assert.Equal(t, "alpha", batch[0].Title)
	assert.Equal(t, "beta", batch[1].Title)
	assert.Equal(t, "gamma", batch[2].Title)
	assert.Equal(t, "02:05", batch[0].Duration)
	assert.NotEmpty(t, batch[0].MainAssetID)
	assert.NotEmpty(t, batch[0].ThumbnailAssetID)
	assert.NotEqual(t, batch[0].MainAssetID, batch[0].ThumbnailAssetID)

	assert.Equal(t, 6, f.store.uploadCount(), "two uploads per item")
	assert.Empty(t, f.workflow.Items(), "successful submit clears the list")
	assert.Equal(t, 0, f.previews.Outstanding(), "teardown releases all previews")
	assert.False(t, f.workflow.InFlight())
}

func TestUploadWorkflow_SubmitRejectsInvalidItems(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	f.addValidItem(t, "alpha")

	// Item #2 of 3 is missing its thumbnail.
	incomplete, err := f.workflow.AddItem()
	require.NoError(t, err)
	_, err = f.workflow.SetField(incomplete.ID, FieldTitle, "beta")
	require.NoError(t, err)
	_, err = f.workflow.SetField(incomplete.ID, FieldDescription, "How to beta")
	require.NoError(t, err)
	f.attachVideo(t, incomplete.ID, "beta.mp4")

	f.addValidItem(t, "gamma")

	err = f.workflow.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	assert.Equal(t, 0, f.store.uploadCount(), "validation failure must not reach the network")
	assert.Equal(t, 0, f.repo.batchCount())

	items := f.workflow.Items()
	require.Len(t, items, 3)
	assert.Empty(t, items[0].Errors)
	assert.Equal(t, map[string]string{FieldThumbnail: "Thumbnail is required"}, items[1].Errors)
	assert.Empty(t, items[2].Errors)
	assert.False(t, f.workflow.InFlight())
}

func TestUploadWorkflow_SubmitValidationClearsOnEdit(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	item, err := f.workflow.AddItem()
	require.NoError(t, err)

	err = f.workflow.Submit(context.Background())
	require.True(t, IsValidationError(err))

	current, err := f.workflow.Item(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Title is required", current.Errors[FieldTitle])

	updated, err := f.workflow.SetField(item.ID, FieldTitle, "alpha")
	require.NoError(t, err)
	assert.NotContains(t, updated.Errors, FieldTitle, "editing a field clears its error")
	assert.Contains(t, updated.Errors, FieldDescription, "other errors stay")
}

func TestUploadWorkflow_UploadFailureLeavesListUnchanged(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	f.addValidItem(t, "alpha")
	f.addValidItem(t, "beta")

	// Item #1's thumbnail upload is rejected by the store.
	f.store.failOn = "alpha.png"

	err := f.workflow.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, IsValidationError(err))

	assert.Equal(t, 0, f.repo.batchCount(), "no batch submit after an upload failure")

	items := f.workflow.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "alpha", items[0].Title)
	assert.Equal(t, "beta", items[1].Title)
	assert.NotNil(t, items[0].MainVideo)
	assert.NotNil(t, items[1].Thumbnail)
	assert.False(t, f.workflow.InFlight(), "a failed submission must reset the in-flight flag")

	// The batch can be retried once the store recovers.
	f.store.failOn = ""
	require.NoError(t, f.workflow.Submit(context.Background()))
	assert.Equal(t, 1, f.repo.batchCount())
}

func TestUploadWorkflow_MissingReturnedAssetIsFatal(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})

	f.addValidItem(t, "alpha")
	f.store.nilFor = "alpha.mp4"

	err := f.workflow.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no asset")
	assert.Equal(t, 0, f.repo.batchCount())
	require.Len(t, f.workflow.Items(), 1)
}

func TestUploadWorkflow_GatesWhileInFlight(t *testing.T) {
	f := newWorkflowFixture(t, &fakeProber{duration: 30 * time.Second})
	f.addValidItem(t, "alpha")

	// Force the in-flight flag the way Submit does, then check the gate.
	f.workflow.mu.Lock()
	f.workflow.inFlight = true
	f.workflow.mu.Unlock()

	_, err := f.workflow.AddItem()
	assert.True(t, IsSubmissionInProgressError(err))

	err = f.workflow.Submit(context.Background())
	assert.True(t, IsSubmissionInProgressError(err))

	items := f.workflow.Items()
	err = f.workflow.RemoveItem(items[0].ID)
	assert.True(t, IsSubmissionInProgressError(err))
}
