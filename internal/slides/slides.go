// Package slides loads slide images from a directory.
package slides

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

var (
	// ErrNoSlides is returned when a directory holds no slide images.
	ErrNoSlides = errors.New("no slide images found")
	// ErrOutOfRange is returned for an index outside [0, Len()).
	ErrOutOfRange = errors.New("slide index out of range")
)

// Extensions lists the file types recognized as slides.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// Store is an ordered, read-only list of slides.
type Store interface {
	Len() int
	Name(i int) string
	// Load returns slide i resized to the frame size. The caller owns the Mat.
	Load(i int) (gocv.Mat, error)
}

// DirStore serves the images of one directory in lexicographic order. The
// most recently loaded slide is cached since the loop asks for the same
// slide every frame.
type DirStore struct {
	dir    string
	files  []string
	width  int
	height int

	mu        sync.Mutex
	cacheIdx  int
	cachedMat gocv.Mat
}

// Open lists the slides in dir. Every slide is resized to width x height
// when loaded.
func Open(dir string, width, height int) (*DirStore, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoSlides)
	}

	return &DirStore{
		dir:       dir,
		files:     files,
		width:     width,
		height:    height,
		cacheIdx:  -1,
		cachedMat: gocv.NewMat(),
	}, nil
}

// List returns the slide file names in dir, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read slides dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isSlide(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	return files, nil
}

func isSlide(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Len returns the number of slides.
func (s *DirStore) Len() int {
	return len(s.files)
}

// Name returns the file name of slide i, or "" when out of range.
func (s *DirStore) Name(i int) string {
	if i < 0 || i >= len(s.files) {
		return ""
	}
	return s.files[i]
}

// Load reads slide i and resizes it to the frame size.
func (s *DirStore) Load(i int) (gocv.Mat, error) {
	if i < 0 || i >= len(s.files) {
		return gocv.NewMat(), fmt.Errorf("slide %d: %w", i, ErrOutOfRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cacheIdx == i && !s.cachedMat.Empty() {
		return s.cachedMat.Clone(), nil
	}

	path := filepath.Join(s.dir, s.files[i])
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("decode slide %q", path)
	}

	if s.width > 0 && s.height > 0 && (mat.Cols() != s.width || mat.Rows() != s.height) {
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(s.width, s.height), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	s.cachedMat.Close()
	s.cachedMat = mat
	s.cacheIdx = i

	return mat.Clone(), nil
}

// Close releases the cached slide.
func (s *DirStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cachedMat.Close()
	s.cacheIdx = -1
	return nil
}
