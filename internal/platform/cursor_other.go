//go:build !windows

package platform

import (
	"image"

	"github.com/go-vgo/robotgo"
)

// Cursor moves the mouse pointer through robotgo.
type Cursor struct{}

// NewCursor returns a Cursor for the main display.
func NewCursor() (*Cursor, error) {
	if w, h := robotgo.GetScreenSize(); w <= 0 || h <= 0 {
		return nil, ErrUnsupported
	}
	return &Cursor{}, nil
}

// CursorPos returns the pointer position in screen pixels.
func (c *Cursor) CursorPos() (image.Point, error) {
	x, y := robotgo.Location()
	return image.Pt(x, y), nil
}

// SetCursorPos moves the pointer.
func (c *Cursor) SetCursorPos(p image.Point) error {
	robotgo.Move(p.X, p.Y)
	return nil
}

// ScreenSize returns the main display size.
func (c *Cursor) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}
