// Package control implements the hand-driven controls: volume, zoom and
// screen capture. Every control shares the same mode/lock lifecycle and is
// driven one camera frame at a time.
package control

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// Controller is a single hand-driven control.
type Controller interface {
	// Name is the label shown in the status line ("Volume", "Zoom", "Capture").
	Name() string

	ModeOn() bool
	Locked() bool

	// ToggleMode switches the control on or off. Switching off also unlocks.
	ToggleMode()

	// ToggleLock freezes or releases the control. It is a no-op while the
	// mode is off.
	ToggleLock()

	// Process consumes one frame's hand signal. It reports whether the
	// control acted on the frame.
	Process(sig detector.Signal, frame *gocv.Mat) bool

	// DisplayInfo draws the control's status onto frame.
	DisplayInfo(frame *gocv.Mat)
}

// State is the mode/lock lifecycle embedded by every control.
// Locked implies ModeOn.
type State struct {
	modeOn bool
	locked bool
}

// ModeOn reports whether the control is switched on.
func (s *State) ModeOn() bool {
	return s.modeOn
}

// Locked reports whether the control is frozen.
func (s *State) Locked() bool {
	return s.locked
}

// ToggleMode flips the mode. Turning the mode off forces the lock off.
func (s *State) ToggleMode() {
	s.modeOn = !s.modeOn
	if !s.modeOn {
		s.locked = false
	}
}

// ToggleLock flips the lock when the mode is on.
func (s *State) ToggleLock() {
	if !s.modeOn {
		return
	}
	s.locked = !s.locked
}

// active reports whether live gestures should drive the control.
func (s *State) active() bool {
	return s.modeOn && !s.locked
}

func (s *State) statusText(name string) string {
	if !s.modeOn {
		return "Mode: [None]"
	}
	lock := "Unlocked"
	if s.locked {
		lock = "Locked"
	}
	return fmt.Sprintf("Mode: [%s] / %s", name, lock)
}
