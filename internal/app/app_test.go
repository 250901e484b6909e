package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"gocv.io/x/gocv"
)

type testPorts struct {
	audio   *control.MockAudio
	display *control.MockDisplay
	screen  *control.MockScreen
	saver   *control.MockSaver
	overlay *control.MockOverlay
}

func newTestApp(t *testing.T) (*App, *detector.MockDetector, testPorts) {
	t.Helper()

	p := testPorts{
		audio:   &control.MockAudio{},
		display: control.NewMockDisplay(1920, 1080),
		screen:  control.NewMockScreen(1920, 1080),
		saver:   &control.MockSaver{Dir: t.TempDir()},
		overlay: &control.MockOverlay{},
	}

	a, err := New(DefaultConfig(), Ports{
		Audio:   p.audio,
		Display: p.display,
		Screen:  p.screen,
		Saver:   p.saver,
		Overlay: p.overlay,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	det := detector.NewMockDetector()
	a.SetDetector(det)
	return a, det, p
}

func newFrame(t *testing.T) *gocv.Mat {
	t.Helper()
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })
	return &frame
}

func TestNew(t *testing.T) {
	a, _, p := newTestApp(t)

	if got := len(a.Controllers()); got != 3 {
		t.Fatalf("expected 3 controls, got %d", got)
	}
	names := []string{"Volume", "Zoom", "Capture"}
	for i, c := range a.Controllers() {
		if c.Name() != names[i] {
			t.Errorf("control %d = %q, want %q", i, c.Name(), names[i])
		}
		if c.ModeOn() || c.Locked() {
			t.Errorf("%s should start off and unlocked", c.Name())
		}
	}
	if len(p.audio.Levels) != 1 {
		t.Errorf("expected the initial level to be pushed once, got %v", p.audio.Levels)
	}
}

func TestNew_AudioFailure(t *testing.T) {
	_, err := New(DefaultConfig(), Ports{
		Audio:   &control.MockAudio{Err: errors.New("no endpoint")},
		Display: control.NewMockDisplay(800, 600),
		Screen:  control.NewMockScreen(800, 600),
		Saver:   &control.MockSaver{},
		Overlay: &control.MockOverlay{},
	})
	if err == nil {
		t.Fatal("expected error when the audio endpoint is unavailable")
	}
}

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		key  int
		want Command
	}{
		{'v', CmdToggleVolume},
		{'z', CmdToggleZoom},
		{'s', CmdToggleCapture},
		{32, CmdToggleLock},
		{13, CmdToggleLock},
		{'+', CmdZoomIn},
		{'=', CmdZoomIn},
		{'-', CmdZoomOut},
		{27, CmdQuit},
		{0x100 | 'v', CmdToggleVolume},
		{'q', CmdNone},
		{-1, CmdNone},
	}

	for _, tt := range tests {
		if got := CommandForKey(tt.key); got != tt.want {
			t.Errorf("CommandForKey(%d) = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestCommand_String(t *testing.T) {
	if CmdToggleLock.String() != "toggle-lock" {
		t.Errorf("String() = %q", CmdToggleLock.String())
	}
	if Command(99).String() != "unknown" {
		t.Errorf("String() = %q", Command(99).String())
	}
}

func TestApp_Dispatch_ModeToggle(t *testing.T) {
	a, _, _ := newTestApp(t)

	type change struct {
		name           string
		modeOn, locked bool
	}
	var changes []change
	a.OnStateChange(func(name string, modeOn, locked bool) {
		changes = append(changes, change{name, modeOn, locked})
	})

	a.Dispatch(CmdToggleVolume)
	a.Dispatch(CmdToggleCapture)
	a.Dispatch(CmdToggleVolume)

	want := []change{
		{"Volume", true, false},
		{"Capture", true, false},
		{"Volume", false, false},
	}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}
	if a.Volume().ModeOn() || !a.Capture().ModeOn() {
		t.Error("unexpected mode state after toggles")
	}
}

func TestApp_Dispatch_LockAppliesToActiveControls(t *testing.T) {
	a, _, p := newTestApp(t)

	a.Dispatch(CmdToggleZoom)
	a.Dispatch(CmdToggleCapture)
	a.Dispatch(CmdToggleLock)

	if !a.Zoom().Locked() || !a.Capture().Locked() {
		t.Error("active controls should be locked")
	}
	if a.Volume().Locked() {
		t.Error("inactive control must not lock")
	}
	if len(p.screen.Rects) != 1 {
		t.Errorf("zoom lock should capture once, got %d captures", len(p.screen.Rects))
	}

	a.Dispatch(CmdToggleLock)
	if a.Zoom().Locked() || a.Capture().Locked() {
		t.Error("second lock command should unlock")
	}
	if a.Zoom().Captured() != nil {
		t.Error("unlocking zoom should drop the capture")
	}
}

func TestApp_Dispatch_ZoomStepsNeedZoomMode(t *testing.T) {
	a, _, _ := newTestApp(t)

	a.Dispatch(CmdZoomIn)
	if a.Zoom().Factor() != 2.0 {
		t.Errorf("zoom in with mode off changed factor to %v", a.Zoom().Factor())
	}

	a.Dispatch(CmdToggleZoom)
	a.Dispatch(CmdZoomIn)
	a.Dispatch(CmdZoomIn)
	a.Dispatch(CmdZoomOut)
	if a.Zoom().Factor() != 2.5 {
		t.Errorf("Factor() = %v, want 2.5", a.Zoom().Factor())
	}
}

func TestApp_Dispatch_Quit(t *testing.T) {
	a, _, _ := newTestApp(t)

	if a.Dispatch(CmdNone) {
		t.Error("CmdNone should not quit")
	}
	if !a.Dispatch(CmdQuit) {
		t.Error("CmdQuit should quit")
	}
}

func TestApp_Enqueue(t *testing.T) {
	a, _, _ := newTestApp(t)

	a.Enqueue(CmdToggleVolume)
	a.Enqueue(CmdToggleZoom)
	if a.Volume().ModeOn() {
		t.Fatal("queued commands must not apply before the loop drains them")
	}

	if a.drainCommands() {
		t.Fatal("drain should not quit")
	}
	if !a.Volume().ModeOn() || !a.Zoom().ModeOn() {
		t.Error("queued commands should be applied on drain")
	}

	// A full queue drops instead of blocking.
	for i := 0; i < commandBuffer+5; i++ {
		a.Enqueue(CmdNone)
	}
	a.drainCommands()
}

func TestApp_Tick(t *testing.T) {
	a, det, p := newTestApp(t)
	a.Dispatch(CmdToggleVolume)

	det.SetHands([]detector.HandLandmarks{detector.PointingLandmarks(0.5, 0.25)})
	frame := newFrame(t)
	a.Tick(frame)

	if got := a.Volume().Level(); math.Abs(got-55) > 1e-9 {
		t.Errorf("Level() = %v, want 55", got)
	}
	if n := len(p.audio.Levels); n != 2 {
		t.Errorf("expected 2 level pushes, got %d", n)
	}

	if !hasInk(frame, 300, 40) {
		t.Error("expected status text in the top-left corner")
	}
}

func TestApp_Tick_PalmCapture(t *testing.T) {
	a, det, p := newTestApp(t)
	a.Dispatch(CmdToggleCapture)

	det.SetScript(
		[]detector.HandLandmarks{detector.OpenPalmLandmarks()},
		[]detector.HandLandmarks{detector.OpenPalmLandmarks()},
		nil,
		[]detector.HandLandmarks{detector.OpenPalmLandmarks()},
	)
	for i := 0; i < 4; i++ {
		a.Tick(newFrame(t))
	}

	if len(p.saver.Saved) != 2 {
		t.Errorf("expected 2 screenshots, got %d", len(p.saver.Saved))
	}
}

func TestApp_Tick_DetectorError(t *testing.T) {
	a, det, p := newTestApp(t)
	a.Dispatch(CmdToggleVolume)
	det.SetError(errors.New("service crashed"))

	a.Tick(newFrame(t))

	if a.Volume().Level() != 50 || len(p.audio.Levels) != 1 {
		t.Error("a failed detection should not move the volume")
	}
}

func TestApp_RunWith(t *testing.T) {
	t.Run("stops at end of frames", func(t *testing.T) {
		a, det, _ := newTestApp(t)
		frames := capture.NewBlankFrames(3, 640, 480)
		defer closeAll(frames)
		cam := capture.NewMockCamera(frames, false)
		a.SetCamera(cam)

		view := &MockView{}
		if err := a.RunWith(context.Background(), view); err != nil {
			t.Fatalf("RunWith() error = %v", err)
		}
		if view.Shown != 3 || det.Calls() != 3 {
			t.Errorf("shown %d frames with %d detections, want 3", view.Shown, det.Calls())
		}
		if cam.IsOpen() {
			t.Error("camera should be closed after the loop")
		}
	})

	t.Run("keys drive the controls", func(t *testing.T) {
		a, _, _ := newTestApp(t)
		frames := capture.NewBlankFrames(1, 640, 480)
		defer closeAll(frames)
		cam := capture.NewMockCamera(frames, true)
		a.SetCamera(cam)

		view := &MockView{Keys: []int{'v', -1, 'z', ' ', 27}}
		if err := a.RunWith(context.Background(), view); err != nil {
			t.Fatalf("RunWith() error = %v", err)
		}
		if cam.Reads() != 5 {
			t.Errorf("Reads() = %d, want 5", cam.Reads())
		}
		if !a.Volume().ModeOn() || !a.Volume().Locked() || !a.Zoom().Locked() {
			t.Error("expected volume and zoom on and locked")
		}
	})

	t.Run("queued quit", func(t *testing.T) {
		a, _, _ := newTestApp(t)
		cam := capture.NewMockCamera(capture.NewBlankFrames(0, 640, 480), true)
		a.SetCamera(cam)

		a.Enqueue(CmdQuit)
		if err := a.RunWith(context.Background(), &MockView{}); err != nil {
			t.Fatalf("RunWith() error = %v", err)
		}
		if cam.Reads() != 0 {
			t.Errorf("Reads() = %d, want 0", cam.Reads())
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		a, _, _ := newTestApp(t)
		cam := capture.NewMockCamera(capture.NewBlankFrames(0, 640, 480), true)
		a.SetCamera(cam)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := a.RunWith(ctx, &MockView{}); err != nil {
			t.Fatalf("RunWith() error = %v", err)
		}
		if cam.Reads() != 0 {
			t.Errorf("Reads() = %d, want 0", cam.Reads())
		}
	})

	t.Run("camera not open", func(t *testing.T) {
		a, _, _ := newTestApp(t)
		a.SetCamera(&closedCamera{MockCamera: capture.NewMockCamera(nil, false)})

		err := a.RunWith(context.Background(), &MockView{})
		if !errors.Is(err, capture.ErrCameraNotOpen) {
			t.Errorf("RunWith() error = %v, want ErrCameraNotOpen", err)
		}
	})
}

// closedCamera opens successfully but never delivers a frame.
type closedCamera struct {
	*capture.MockCamera
}

func (c *closedCamera) ReadFrame() (*gocv.Mat, error) {
	return nil, capture.ErrCameraNotOpen
}

func closeAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

// hasInk reports whether any pixel in the top-left w x h corner is non-black.
func hasInk(frame *gocv.Mat, w, h int) bool {
	for row := 0; row < h; row++ {
		for col := 0; col < w*frame.Channels(); col++ {
			if frame.GetUCharAt(row, col) != 0 {
				return true
			}
		}
	}
	return false
}
