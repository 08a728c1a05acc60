package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardforge/internal/util"
)

// ErrNotFound is returned when an asset file does not exist.
var ErrNotFound = errors.New("asset not found")

// Store loads sprite assets relative to a root directory and caches the
// decoded images. Cached images are shared and must not be modified.
type Store struct {
	root string

	mu    sync.Mutex
	cache map[string]image.Image
}

func NewStore(root string) *Store {
	return &Store{root: root, cache: map[string]image.Image{}}
}

// Root returns the asset root directory.
func (s *Store) Root() string { return s.root }

// Path resolves ref against the root. URLs and absolute paths are returned as-is.
func (s *Store) Path(ref string) string {
	if isURL(ref) || filepath.IsAbs(ref) || s.root == "" {
		return ref
	}
	return filepath.Join(s.root, filepath.FromSlash(ref))
}

// Exists reports whether ref names a local file. URLs are assumed to exist.
func (s *Store) Exists(ref string) bool {
	if isURL(ref) {
		return true
	}
	return util.Exists(s.Path(ref))
}

// Load returns the decoded image for ref, from cache when possible.
func (s *Store) Load(ref string) (image.Image, error) {
	path := s.Path(ref)

	s.mu.Lock()
	img, ok := s.cache[path]
	s.mu.Unlock()
	if ok {
		return img, nil
	}

	var err error
	if isURL(path) {
		img, err = DownloadImage(path)
	} else {
		if !util.Exists(path) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		img, err = imaging.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	s.mu.Lock()
	s.cache[path] = img
	s.mu.Unlock()
	return img, nil
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
