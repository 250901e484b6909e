package archive

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})
	return img
}

func TestFileName(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), "capture_20260102_030405.png"},
		{time.Date(2025, 12, 31, 23, 59, 59, 999, time.UTC), "capture_20251231_235959.png"},
	}

	for _, tt := range tests {
		if got := FileName(tt.at); got != tt.want {
			t.Errorf("FileName(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestArchive_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	a, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path, err := a.Save(testImage(8, 6), at)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if want := filepath.Join(dir, "capture_20260102_030405.png"); path != want {
		t.Errorf("Save() path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved file: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("saved file is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("saved size = %v, want 8x6", img.Bounds())
	}
	r, _, _, _ := img.At(1, 1).RGBA()
	if r>>8 != 200 {
		t.Errorf("pixel red = %d, want 200", r>>8)
	}
}

func TestArchive_SaveRecreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	a, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}

	if _, err := a.Save(testImage(2, 2), time.Now()); err != nil {
		t.Errorf("Save() should recreate the directory: %v", err)
	}
}

func TestArchive_RecordsHistory(t *testing.T) {
	tmp := t.TempDir()
	s, err := store.New(filepath.Join(tmp, "mudra.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	a, err := New(filepath.Join(tmp, "captures"), s)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path, err := a.Save(testImage(16, 9), at)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	captures, err := s.Captures().List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(captures) != 1 {
		t.Fatalf("history has %d captures, want 1", len(captures))
	}

	c := captures[0]
	if c.Path != path || c.Width != 16 || c.Height != 9 {
		t.Errorf("recorded %+v, want path %q size 16x9", c, path)
	}
	if c.ID == "" {
		t.Error("recorded capture should have an ID")
	}
	if !c.TakenAt.Equal(at) {
		t.Errorf("TakenAt = %v, want %v", c.TakenAt, at)
	}
}

func TestArchive_SameSecondKeepsOneRecord(t *testing.T) {
	tmp := t.TempDir()
	s, err := store.New(filepath.Join(tmp, "mudra.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	dir := filepath.Join(tmp, "captures")
	a, err := New(dir, s)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	first, err := a.Save(testImage(4, 4), at)
	if err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	second, err := a.Save(testImage(10, 5), at.Add(400*time.Millisecond))
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if first != second {
		t.Fatalf("saves in the same second should share a path: %q, %q", first, second)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	captures, err := s.Captures().List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(captures) != len(entries) {
		t.Fatalf("history has %d records for %d files", len(captures), len(entries))
	}
	if c := captures[0]; c.Width != 10 || c.Height != 5 {
		t.Errorf("record should describe the latest file, got %dx%d", c.Width, c.Height)
	}
}
