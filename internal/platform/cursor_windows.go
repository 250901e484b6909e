//go:build windows

package platform

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

// Cursor moves the mouse pointer through user32.
type Cursor struct {
	getCursorPos     *windows.LazyProc
	setCursorPos     *windows.LazyProc
	getSystemMetrics *windows.LazyProc
}

// NewCursor loads the user32 procedures the cursor needs.
func NewCursor() (*Cursor, error) {
	user32 := windows.NewLazySystemDLL("user32.dll")
	c := &Cursor{
		getCursorPos:     user32.NewProc("GetCursorPos"),
		setCursorPos:     user32.NewProc("SetCursorPos"),
		getSystemMetrics: user32.NewProc("GetSystemMetrics"),
	}
	for _, p := range []*windows.LazyProc{c.getCursorPos, c.setCursorPos, c.getSystemMetrics} {
		if err := p.Find(); err != nil {
			return nil, fmt.Errorf("load %s: %w", p.Name, err)
		}
	}
	return c, nil
}

// CursorPos returns the pointer position in screen pixels.
func (c *Cursor) CursorPos() (image.Point, error) {
	var pt struct{ X, Y int32 }
	if r, _, err := c.getCursorPos.Call(uintptr(unsafe.Pointer(&pt))); r == 0 {
		return image.Point{}, fmt.Errorf("GetCursorPos: %w", err)
	}
	return image.Pt(int(pt.X), int(pt.Y)), nil
}

// SetCursorPos moves the pointer.
func (c *Cursor) SetCursorPos(p image.Point) error {
	if r, _, err := c.setCursorPos.Call(uintptr(p.X), uintptr(p.Y)); r == 0 {
		return fmt.Errorf("SetCursorPos: %w", err)
	}
	return nil
}

// ScreenSize returns the primary screen size.
func (c *Cursor) ScreenSize() (int, int) {
	cx, _, _ := c.getSystemMetrics.Call(uintptr(smCXScreen))
	cy, _, _ := c.getSystemMetrics.Call(uintptr(smCYScreen))
	return int(cx), int(cy)
}
