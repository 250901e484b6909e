package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// newTestStore creates a new Store in a temporary directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestCaptureRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Captures()

	takenAt := time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)
	c := &Capture{
		ID:      "capture-1",
		Path:    "captures/capture_20260501_123000.png",
		Width:   1920,
		Height:  1080,
		TakenAt: takenAt,
	}

	if err := repo.Create(c); err != nil {
		t.Fatalf("failed to create capture: %v", err)
	}

	got, err := repo.GetByID("capture-1")
	if err != nil {
		t.Fatalf("failed to get capture: %v", err)
	}

	if got.Path != c.Path {
		t.Errorf("Path = %q, want %q", got.Path, c.Path)
	}
	if got.Width != 1920 || got.Height != 1080 {
		t.Errorf("size = %dx%d, want 1920x1080", got.Width, got.Height)
	}
	if !got.TakenAt.Equal(takenAt) {
		t.Errorf("TakenAt = %v, want %v", got.TakenAt, takenAt)
	}
}

func TestCaptureRepository_CreateSetsTakenAt(t *testing.T) {
	s := newTestStore(t)

	c := &Capture{ID: "capture-1", Path: "a.png", Width: 1, Height: 1}
	if err := s.Captures().Create(c); err != nil {
		t.Fatalf("failed to create capture: %v", err)
	}
	if c.TakenAt.IsZero() {
		t.Error("TakenAt should be set after create")
	}
}

func TestCaptureRepository_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	repo := s.Captures()

	if err := repo.Create(&Capture{ID: "dup", Path: "a.png", Width: 1, Height: 1}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.Create(&Capture{ID: "dup", Path: "b.png", Width: 1, Height: 1}); err == nil {
		t.Error("expected error for duplicate ID")
	}
}

func TestCaptureRepository_CreateSamePathReplaces(t *testing.T) {
	s := newTestStore(t)
	repo := s.Captures()

	first := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if err := repo.Create(&Capture{ID: "old", Path: "capture_20260314_092653.png", Width: 800, Height: 600, TakenAt: first}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	second := first.Add(400 * time.Millisecond)
	if err := repo.Create(&Capture{ID: "new", Path: "capture_20260314_092653.png", Width: 1920, Height: 1080, TakenAt: second}); err != nil {
		t.Fatalf("second create: %v", err)
	}

	n, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("Count() = %d, want 1", n)
	}

	if _, err := repo.GetByID("old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old record should be gone, got %v", err)
	}
	got, err := repo.GetByID("new")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Width != 1920 || !got.TakenAt.Equal(second) {
		t.Errorf("record not replaced: %+v", got)
	}
}

func TestCaptureRepository_GetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Captures().GetByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCaptureRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Captures()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		c := &Capture{
			ID:      id,
			Path:    id + ".png",
			Width:   100,
			Height:  100,
			TakenAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(c); err != nil {
			t.Fatalf("failed to create %s: %v", id, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"third", "second", "first"}},
		{"limited", 2, []string{"third", "second"}},
		{"limit above count", 10, []string{"third", "second", "first"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captures, err := repo.List(tt.limit)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(captures) != len(tt.want) {
				t.Fatalf("List() returned %d captures, want %d", len(captures), len(tt.want))
			}
			for i, id := range tt.want {
				if captures[i].ID != id {
					t.Errorf("captures[%d].ID = %q, want %q", i, captures[i].ID, id)
				}
			}
		})
	}

	n, err := repo.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}

func TestCaptureRepository_ListEmpty(t *testing.T) {
	s := newTestStore(t)

	captures, err := s.Captures().List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(captures) != 0 {
		t.Errorf("expected no captures, got %d", len(captures))
	}
}

func TestCaptureRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Captures()

	if err := repo.Create(&Capture{ID: "gone", Path: "gone.png", Width: 1, Height: 1}); err != nil {
		t.Fatalf("failed to create capture: %v", err)
	}

	if err := repo.Delete("gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}
