package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"gocv.io/x/gocv"
)

// View presents annotated frames and reports key presses.
type View interface {
	// Show displays frame.
	Show(frame *gocv.Mat)

	// PollKey waits briefly for a key and returns its code, or -1.
	PollKey() int

	Close() error
}

// windowView is a View backed by a HighGUI window.
type windowView struct {
	window *gocv.Window
}

// NewWindowView opens a preview window titled name.
func NewWindowView(name string) View {
	return &windowView{window: gocv.NewWindow(name)}
}

func (v *windowView) Show(frame *gocv.Mat) {
	v.window.IMShow(*frame)
}

func (v *windowView) PollKey() int {
	return v.window.WaitKey(1)
}

func (v *windowView) Close() error {
	return v.window.Close()
}

// Tick runs one frame through the detector and every control, then draws
// the status of the controls whose mode is on. A detector error is logged
// and the frame is treated as having no hands.
func (a *App) Tick(frame *gocv.Mat) {
	hands, err := a.Detector().Detect(frame)
	if err != nil {
		log.Printf("Detection error: %v", err)
		hands = nil
	}
	sig := detector.NewSignal(hands, frame.Cols(), frame.Rows())

	for _, c := range a.controllers {
		c.Process(sig, frame)
	}
	for _, c := range a.controllers {
		if c.ModeOn() {
			c.DisplayInfo(frame)
		}
	}
}

// Run opens the camera and the preview window and drives the control loop
// until ctx is cancelled, the quit key is pressed or the camera fails.
func (a *App) Run(ctx context.Context) error {
	view := NewWindowView(MainWindow)
	defer view.Close()
	return a.RunWith(ctx, view)
}

// RunWith drives the control loop against view. Running out of frames ends
// the loop without error.
func (a *App) RunWith(ctx context.Context, view View) error {
	camera := a.Camera()
	if err := camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer camera.Close()

	log.Println("Control loop started")
	defer log.Println("Control loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if a.drainCommands() {
			return nil
		}

		frame, err := camera.ReadFrame()
		if err != nil {
			if errors.Is(err, capture.ErrEndOfFrames) {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}

		a.Tick(frame)
		view.Show(frame)
		frame.Close()

		if a.Dispatch(CommandForKey(view.PollKey())) {
			return nil
		}
	}
}
