package control

import (
	"image"
	"image/color"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"
)

// MockAudio records audio calls. Set Err to make every call fail.
type MockAudio struct {
	Levels []float64
	Mutes  []bool
	Err    error
}

// SetMasterVolumeScalar implements Audio.
func (m *MockAudio) SetMasterVolumeScalar(level float64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Levels = append(m.Levels, level)
	return nil
}

// SetMute implements Audio.
func (m *MockAudio) SetMute(muted bool) error {
	if m.Err != nil {
		return m.Err
	}
	m.Mutes = append(m.Mutes, muted)
	return nil
}

// MockDisplay is a fixed-size screen with a movable cursor.
type MockDisplay struct {
	Width, Height int
	Cursor        image.Point
	Moves         []image.Point
	Err           error
}

// NewMockDisplay returns a display of the given size with the cursor centred.
func NewMockDisplay(width, height int) *MockDisplay {
	return &MockDisplay{
		Width:  width,
		Height: height,
		Cursor: image.Pt(width/2, height/2),
	}
}

// CursorPos implements Display.
func (m *MockDisplay) CursorPos() (image.Point, error) {
	if m.Err != nil {
		return image.Point{}, m.Err
	}
	return m.Cursor, nil
}

// SetCursorPos implements Display.
func (m *MockDisplay) SetCursorPos(p image.Point) error {
	if m.Err != nil {
		return m.Err
	}
	m.Cursor = p
	m.Moves = append(m.Moves, p)
	return nil
}

// ScreenSize implements Display.
func (m *MockDisplay) ScreenSize() (int, int) {
	return m.Width, m.Height
}

// MockScreen returns synthetic screenshots and records requested regions.
type MockScreen struct {
	Width, Height int
	Rects         []image.Rectangle
	FullShots     int
	Err           error
}

// NewMockScreen returns a screen of the given size.
func NewMockScreen(width, height int) *MockScreen {
	return &MockScreen{Width: width, Height: height}
}

// CaptureRect implements Screen. Pixels encode their screen coordinates.
func (m *MockScreen) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Rects = append(m.Rects, r)
	return gradient(r), nil
}

// CaptureScreen implements Screen.
func (m *MockScreen) CaptureScreen() (*image.RGBA, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.FullShots++
	return gradient(image.Rect(0, 0, m.Width, m.Height)), nil
}

func gradient(r image.Rectangle) *image.RGBA {
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

// MockSaver records saved screenshots without touching the filesystem.
type MockSaver struct {
	Dir   string
	Saved []time.Time
	Err   error
}

// Save implements Saver.
func (m *MockSaver) Save(img image.Image, at time.Time) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Saved = append(m.Saved, at)
	return filepath.Join(m.Dir, "capture_"+at.Format("20060102_150405")+".png"), nil
}

// MockOverlay records the size of every shown image.
type MockOverlay struct {
	Shown  []image.Point
	Blanks int
}

// Show implements Overlay.
func (m *MockOverlay) Show(img gocv.Mat) {
	m.Shown = append(m.Shown, image.Pt(img.Cols(), img.Rows()))
}

// Blank implements Overlay.
func (m *MockOverlay) Blank() {
	m.Blanks++
}
