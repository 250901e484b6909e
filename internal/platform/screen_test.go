package platform

import (
	"image"
	"testing"
)

func TestScreen_Capture(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping screen capture test in short mode")
	}

	s, err := NewScreen()
	if err != nil {
		t.Skipf("no screen available: %v", err)
	}

	full, err := s.CaptureScreen()
	if err != nil {
		t.Fatalf("CaptureScreen() error = %v", err)
	}
	if full.Bounds().Dx() != s.Bounds().Dx() || full.Bounds().Dy() != s.Bounds().Dy() {
		t.Errorf("full capture %v does not match screen %v", full.Bounds(), s.Bounds())
	}

	// A region hanging off the right edge is clipped.
	b := s.Bounds()
	r := image.Rect(b.Max.X-50, b.Min.Y, b.Max.X+50, b.Min.Y+100)
	img, err := s.CaptureRect(r)
	if err != nil {
		t.Fatalf("CaptureRect() error = %v", err)
	}
	if img.Bounds().Dx() != 50 {
		t.Errorf("clipped width = %d, want 50", img.Bounds().Dx())
	}

	if _, err := s.CaptureRect(image.Rect(b.Max.X+10, 0, b.Max.X+20, 10)); err == nil {
		t.Error("expected error for a region outside the screen")
	}
}
