package platform

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Screen grabs desktop pixels with the screenshot package.
type Screen struct {
	bounds image.Rectangle
}

// NewScreen reads the primary screen bounds.
func NewScreen() (*Screen, error) {
	bounds, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("query screen bounds: %w", err)
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("query screen bounds: %w", ErrUnsupported)
	}
	return &Screen{bounds: bounds}, nil
}

// Bounds returns the screen rectangle found at construction.
func (s *Screen) Bounds() image.Rectangle {
	return s.bounds
}

// CaptureScreen grabs the whole primary screen.
func (s *Screen) CaptureScreen() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// CaptureRect grabs r, clipped to the screen.
func (s *Screen) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	clipped := r.Intersect(s.bounds)
	if clipped.Empty() {
		return nil, fmt.Errorf("capture %v: region outside screen %v", r, s.bounds)
	}
	img, err := screenshot.CaptureRect(clipped)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", clipped, err)
	}
	return img, nil
}
