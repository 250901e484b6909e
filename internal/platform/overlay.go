package platform

import (
	"gocv.io/x/gocv"
)

// MagnifierWindow is the window title of the zoom overlay.
const MagnifierWindow = "Magnifier"

// WindowOverlay shows the magnified region in its own OpenCV window.
type WindowOverlay struct {
	window *gocv.Window
	blank  gocv.Mat
}

// NewWindowOverlay opens the magnifier window.
func NewWindowOverlay() *WindowOverlay {
	return &WindowOverlay{
		window: gocv.NewWindow(MagnifierWindow),
		blank:  gocv.NewMatWithSize(1, 1, gocv.MatTypeCV8U),
	}
}

// Show displays img.
func (o *WindowOverlay) Show(img gocv.Mat) {
	if img.Empty() {
		o.Blank()
		return
	}
	o.window.IMShow(img)
}

// Blank replaces the window content with a single black pixel.
func (o *WindowOverlay) Blank() {
	o.window.IMShow(o.blank)
}

// Close destroys the window.
func (o *WindowOverlay) Close() error {
	o.blank.Close()
	return o.window.Close()
}
