package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScratchFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scratch file: %v", err)
	}
	return path
}

func TestPreviewStore_AdoptAndRelease(t *testing.T) {
	store, err := NewPreviewStore(filepath.Join(t.TempDir(), "previews"), nil)
	if err != nil {
		t.Fatalf("failed to create preview store: %v", err)
	}

	scratch := writeScratchFile(t, t.TempDir(), "clip.mp4", "video-bytes")

	url, err := store.Adopt(scratch, "clip.mp4")
	if err != nil {
		t.Fatalf("failed to adopt file: %v", err)
	}

	if !strings.HasPrefix(url, URLPrefix+"/") {
		t.Errorf("expected URL with prefix %q, got %q", URLPrefix, url)
	}
	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Error("expected scratch file to be moved away")
	}

	path, ok := store.PathFor(url)
	if !ok {
		t.Fatal("expected live preview URL to resolve to a path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read preview file: %v", err)
	}
	if string(data) != "video-bytes" {
		t.Errorf("expected preview content to match original, got %q", string(data))
	}

	store.Release(url)

	if _, ok := store.PathFor(url); ok {
		t.Error("expected released URL to no longer resolve")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected backing file to be deleted on release")
	}
	if store.Outstanding() != 0 {
		t.Errorf("expected no outstanding previews, got %d", store.Outstanding())
	}
}

func TestPreviewStore_ReleaseIsExactlyOnce(t *testing.T) {
	store, err := NewPreviewStore(filepath.Join(t.TempDir(), "previews"), nil)
	if err != nil {
		t.Fatalf("failed to create preview store: %v", err)
	}

	scratch := writeScratchFile(t, t.TempDir(), "thumb.png", "image-bytes")
	url, err := store.Adopt(scratch, "thumb.png")
	if err != nil {
		t.Fatalf("failed to adopt file: %v", err)
	}

	store.Release(url)
	// A second release of the same URL must not panic or delete anything else.
	store.Release(url)
	// Releasing a URL that was never issued must be harmless too.
	store.Release(URLPrefix + "/never-issued.png")
	store.Release("")
}

func TestPreviewStore_CloseReleasesEverything(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "previews")
	store, err := NewPreviewStore(dir, nil)
	if err != nil {
		t.Fatalf("failed to create preview store: %v", err)
	}

	scratchDir := t.TempDir()
	urls := make([]string, 0, 3)
	for _, name := range []string{"a.mp4", "b.mp4", "c.png"} {
		scratch := writeScratchFile(t, scratchDir, name, "data-"+name)
		url, err := store.Adopt(scratch, name)
		if err != nil {
			t.Fatalf("failed to adopt %s: %v", name, err)
		}
		urls = append(urls, url)
	}

	store.Close()

	if store.Outstanding() != 0 {
		t.Errorf("expected no outstanding previews after close, got %d", store.Outstanding())
	}
	for _, url := range urls {
		if _, ok := store.PathFor(url); ok {
			t.Errorf("expected %q to be released on close", url)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read preview dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty preview dir after close, found %d entries", len(entries))
	}
}
