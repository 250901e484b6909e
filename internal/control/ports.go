package control

import (
	"image"
	"time"

	"gocv.io/x/gocv"
)

// Audio sets the system output level and mute state.
type Audio interface {
	// SetMasterVolumeScalar sets the output level in [0,1].
	SetMasterVolumeScalar(level float64) error
	SetMute(muted bool) error
}

// Display reads and moves the OS cursor.
type Display interface {
	CursorPos() (image.Point, error)
	SetCursorPos(p image.Point) error
	// ScreenSize returns the primary screen size in pixels.
	ScreenSize() (width, height int)
}

// Screen grabs pixels from the desktop. Rectangles passed to CaptureRect are
// already clamped to the screen.
type Screen interface {
	CaptureRect(r image.Rectangle) (*image.RGBA, error)
	CaptureScreen() (*image.RGBA, error)
}

// Saver persists a screenshot taken at the given time and returns its path.
type Saver interface {
	Save(img image.Image, at time.Time) (string, error)
}

// Overlay is the magnifier window.
type Overlay interface {
	Show(img gocv.Mat)
	Blank()
}
