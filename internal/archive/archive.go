// Package archive writes screenshots to disk and records them in the
// capture history.
package archive

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

// DefaultDir is the directory screenshots are written to, relative to the
// working directory.
const DefaultDir = "captures"

// Archive saves screenshots as PNG files.
type Archive struct {
	dir   string
	store *store.Store
}

// New creates an Archive writing into dir. The store is optional; when nil
// the history is not recorded.
func New(dir string, s *store.Store) (*Archive, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create capture directory: %w", err)
	}
	return &Archive{dir: dir, store: s}, nil
}

// Dir returns the directory screenshots are written to.
func (a *Archive) Dir() string {
	return a.dir
}

// FileName returns the file name used for a screenshot taken at t.
func FileName(t time.Time) string {
	return "capture_" + t.Format("20060102_150405") + ".png"
}

// Save writes img as a PNG named after at and returns its path. Two saves
// within the same second overwrite each other.
func (a *Archive) Save(img image.Image, at time.Time) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("create capture directory: %w", err)
	}

	path := filepath.Join(a.dir, FileName(at))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	if a.store != nil {
		b := img.Bounds()
		rec := &store.Capture{
			ID:      uuid.NewString(),
			Path:    path,
			Width:   b.Dx(),
			Height:  b.Dy(),
			TakenAt: at,
		}
		if err := a.store.Captures().Create(rec); err != nil {
			log.Printf("record capture %s: %v", path, err)
		}
	}

	return path, nil
}
