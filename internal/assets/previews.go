package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
)

// URLPrefix is the route prefix under which preview files are served.
const URLPrefix = "/previews"

// PreviewStore pairs locally accepted files with a revocable preview URL.
// Each adopted file lives in the store's directory until its URL is released;
// release happens exactly once per URL, either explicitly or on Close.
type PreviewStore struct {
	logger logging.Logger
	dir    string

	mu    sync.Mutex
	files map[string]string // preview URL -> absolute file path
}

// NewPreviewStore creates a preview store rooted at dir. The directory is
// created if it does not exist.
func NewPreviewStore(dir string, logger logging.Logger) (*PreviewStore, error) {
	if logger == nil {
		logger = logging.NopLogger
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}

	return &PreviewStore{
		logger: logger,
		dir:    dir,
		files:  make(map[string]string),
	}, nil
}

// Dir returns the directory backing this store.
func (s *PreviewStore) Dir() string {
	return s.dir
}

// Adopt takes ownership of the file at srcPath, moves it into the store and
// returns the preview URL for it. The original file no longer exists at
// srcPath afterwards.
func (s *PreviewStore) Adopt(srcPath string, originalName string) (string, error) {
	name := uuid.New().String() + filepath.Ext(originalName)
	dst := filepath.Join(s.dir, name)

	if err := moveFile(srcPath, dst); err != nil {
		return "", fmt.Errorf("failed to adopt preview file: %w", err)
	}

	url := URLPrefix + "/" + name

	s.mu.Lock()
	s.files[url] = dst
	s.mu.Unlock()

	return url, nil
}

// PathFor returns the backing file path for a live preview URL.
func (s *PreviewStore) PathFor(url string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.files[url]
	return path, ok
}

// Release revokes a preview URL and deletes its backing file. A URL is
// released at most once; releasing an unknown or already-released URL is
// logged and otherwise ignored.
func (s *PreviewStore) Release(url string) {
	if url == "" {
		return
	}

	s.mu.Lock()
	path, ok := s.files[url]
	if ok {
		delete(s.files, url)
	}
	s.mu.Unlock()

	if !ok {
		s.logger.Warn("release of unknown preview URL", "url", url)
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove preview file", "path", path, "error", err)
	}
}

// Outstanding returns the number of live preview URLs.
func (s *PreviewStore) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.files)
}

// Close releases all outstanding preview URLs.
func (s *PreviewStore) Close() {
	s.mu.Lock()
	files := s.files
	s.files = make(map[string]string)
	s.mu.Unlock()

	for url, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove preview file", "url", url, "error", err)
		}
	}
}

// moveFile renames src to dst, falling back to copy-and-delete when the two
// paths are on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
