package control

import (
	"fmt"
	"image"
	"log"
	"math"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// ZoomConfig holds tuning for the magnifier.
type ZoomConfig struct {
	// BaseSize is the on-screen size in pixels of the magnified region.
	BaseSize    int
	InitialZoom float64
	Step        float64
	MinZoom     float64
	MaxZoom     float64
}

// DefaultZoomConfig returns the stock magnifier tuning.
func DefaultZoomConfig() ZoomConfig {
	return ZoomConfig{
		BaseSize:    300,
		InitialZoom: 2.0,
		Step:        0.5,
		MinZoom:     1.0,
		MaxZoom:     5.0,
	}
}

// Zoom steers the cursor with the index fingertip. Locking grabs the screen
// region around the cursor once; while locked only the displayed scale of
// that frozen region changes.
type Zoom struct {
	State

	display Display
	screen  Screen
	overlay Overlay
	config  ZoomConfig

	factor     float64
	captured   *image.RGBA
	lastCursor image.Point
	haveCursor bool
}

// NewZoom creates the magnifier control.
func NewZoom(display Display, screen Screen, overlay Overlay, config ZoomConfig) *Zoom {
	def := DefaultZoomConfig()
	if config.BaseSize <= 0 {
		config.BaseSize = def.BaseSize
	}
	if config.MinZoom <= 0 || config.MaxZoom < config.MinZoom {
		config.MinZoom, config.MaxZoom = def.MinZoom, def.MaxZoom
	}
	if config.Step <= 0 {
		config.Step = def.Step
	}

	return &Zoom{
		display: display,
		screen:  screen,
		overlay: overlay,
		config:  config,
		factor:  min(max(config.InitialZoom, config.MinZoom), config.MaxZoom),
	}
}

// Name implements Controller.
func (z *Zoom) Name() string {
	return "Zoom"
}

// Factor returns the current magnification.
func (z *Zoom) Factor() float64 {
	return z.factor
}

// Captured returns the frozen screen region, or nil when not locked.
func (z *Zoom) Captured() *image.RGBA {
	return z.captured
}

// IncreaseZoom raises the magnification by one step.
func (z *Zoom) IncreaseZoom() {
	z.factor = min(z.factor+z.config.Step, z.config.MaxZoom)
}

// DecreaseZoom lowers the magnification by one step.
func (z *Zoom) DecreaseZoom() {
	z.factor = max(z.factor-z.config.Step, z.config.MinZoom)
}

// ToggleMode implements Controller. Switching off drops any frozen region.
func (z *Zoom) ToggleMode() {
	z.State.ToggleMode()
	if !z.modeOn {
		z.release()
	}
}

// ToggleLock implements Controller. Engaging the lock captures the region
// around the last cursor position; releasing it discards the capture.
func (z *Zoom) ToggleLock() {
	if !z.modeOn {
		return
	}
	z.State.ToggleLock()
	if z.locked {
		z.captureRegion()
	} else {
		z.release()
	}
}

// Process implements Controller.
func (z *Zoom) Process(sig detector.Signal, frame *gocv.Mat) bool {
	if !z.modeOn {
		z.release()
		return false
	}
	if z.locked {
		return z.showCaptured()
	}

	tip, ok := sig.IndexTip()
	if !ok {
		z.overlay.Blank()
		return false
	}

	sw, sh := z.display.ScreenSize()
	pos := image.Pt(
		int(float64(tip.X)/float64(sig.FrameWidth)*float64(sw)),
		int(float64(tip.Y)/float64(sig.FrameHeight)*float64(sh)),
	)
	if err := z.display.SetCursorPos(pos); err != nil {
		log.Printf("move cursor: %v", err)
		return false
	}
	z.lastCursor = pos
	z.haveCursor = true

	return true
}

// DisplayInfo implements Controller.
func (z *Zoom) DisplayInfo(frame *gocv.Mat) {
	drawStatus(frame, z.statusText(z.Name()))
	if z.modeOn {
		drawFooter(frame, fmt.Sprintf("Zoom: %.1fx", z.factor), 0.7)
	}
}

func (z *Zoom) captureRegion() {
	center := z.lastCursor
	if !z.haveCursor {
		pos, err := z.display.CursorPos()
		if err != nil {
			log.Printf("read cursor: %v", err)
			return
		}
		center = pos
	}

	sw, sh := z.display.ScreenSize()
	half := int(float64(z.config.BaseSize) / (2 * z.factor))
	region := regionAround(center, half, sw, sh)
	if region.Empty() {
		return
	}

	img, err := z.screen.CaptureRect(region)
	if err != nil {
		log.Printf("capture zoom region: %v", err)
		return
	}
	z.captured = img
}

func (z *Zoom) release() {
	z.captured = nil
	z.overlay.Blank()
}

func (z *Zoom) showCaptured() bool {
	if z.captured == nil {
		z.overlay.Blank()
		return false
	}

	src, err := gocv.ImageToMatRGB(z.captured)
	if err != nil {
		log.Printf("convert zoom region: %v", err)
		return false
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Resize(src, &dst, magnifiedSize(z.captured.Bounds(), z.factor), 0, 0, gocv.InterpolationLinear)
	z.overlay.Show(dst)
	return true
}

// regionAround returns the square of half-extent half centred on c. A square
// crossing the left or top edge slides inside the screen; one crossing the
// right or bottom edge is cut short.
func regionAround(c image.Point, half, screenW, screenH int) image.Rectangle {
	left := max(c.X-half, 0)
	top := max(c.Y-half, 0)
	right := min(left+2*half, screenW)
	bottom := min(top+2*half, screenH)
	if right <= left || bottom <= top {
		return image.Rectangle{}
	}
	return image.Rectangle{Min: image.Pt(left, top), Max: image.Pt(right, bottom)}
}

// magnifiedSize is the display size of a region of bounds b at factor.
func magnifiedSize(b image.Rectangle, factor float64) image.Point {
	return image.Pt(
		max(1, int(math.Round(float64(b.Dx())*factor))),
		max(1, int(math.Round(float64(b.Dy())*factor))),
	)
}
