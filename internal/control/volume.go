package control

import (
	"fmt"
	"log"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// VolumeConfig holds tuning for the volume control.
type VolumeConfig struct {
	// Smoothing is the exponential smoothing factor in (0,1].
	Smoothing float64

	// InitialLevel is pushed to the OS when the control is created.
	InitialLevel float64
}

// DefaultVolumeConfig returns the stock volume tuning.
func DefaultVolumeConfig() VolumeConfig {
	return VolumeConfig{
		Smoothing:    0.2,
		InitialLevel: 50,
	}
}

// Volume maps the index fingertip height to the system volume. Showing two
// hands toggles mute.
type Volume struct {
	State

	audio  Audio
	config VolumeConfig

	level        float64
	muted        bool
	preMuteLevel float64
	prevTwoHands bool
}

// NewVolume creates the volume control and pushes the initial level.
// A failure to reach the audio endpoint is returned as an error.
func NewVolume(audio Audio, config VolumeConfig) (*Volume, error) {
	if config.Smoothing <= 0 || config.Smoothing > 1 {
		config.Smoothing = DefaultVolumeConfig().Smoothing
	}
	config.InitialLevel = clampLevel(config.InitialLevel)

	v := &Volume{
		audio:  audio,
		config: config,
	}
	if err := v.audio.SetMasterVolumeScalar(config.InitialLevel / 100); err != nil {
		return nil, fmt.Errorf("set initial volume: %w", err)
	}
	v.level = config.InitialLevel
	v.preMuteLevel = config.InitialLevel

	return v, nil
}

// Name implements Controller.
func (v *Volume) Name() string {
	return "Volume"
}

// Level returns the last level pushed to the OS, in percent.
func (v *Volume) Level() float64 {
	return v.level
}

// Muted reports whether the output is muted.
func (v *Volume) Muted() bool {
	return v.muted
}

// PreMuteLevel returns the level captured when mute was engaged.
func (v *Volume) PreMuteLevel() float64 {
	return v.preMuteLevel
}

// ToggleMute mutes or unmutes the output while the mode is on. Unmuting
// restores the level held before muting. It reports whether the mute state
// changed.
func (v *Volume) ToggleMute() bool {
	if !v.modeOn {
		return false
	}

	if !v.muted {
		if err := v.audio.SetMute(true); err != nil {
			log.Printf("mute: %v", err)
			return false
		}
		v.preMuteLevel = v.level
		v.muted = true
		log.Printf("muted at %.0f%%", v.preMuteLevel)
		return true
	}

	if err := v.audio.SetMute(false); err != nil {
		log.Printf("unmute: %v", err)
		return false
	}
	v.muted = false
	v.setVolume(v.preMuteLevel)
	log.Printf("unmuted, volume %.0f%%", v.level)
	return true
}

// Process implements Controller.
func (v *Volume) Process(sig detector.Signal, frame *gocv.Mat) bool {
	if !v.active() {
		v.prevTwoHands = false
		return false
	}

	twoHands := sig.NumHands() >= 2
	edge := twoHands && !v.prevTwoHands
	v.prevTwoHands = twoHands

	toggled := false
	if edge {
		toggled = v.ToggleMute()
	}
	if v.muted {
		return toggled
	}

	tip, ok := sig.IndexTip()
	if !ok {
		return toggled
	}

	h := float64(sig.FrameHeight)
	target := (h - float64(tip.Y)) / h * 100
	pushed := v.setVolume(smooth(v.level, target, v.config.Smoothing))
	return pushed || toggled
}

// DisplayInfo implements Controller.
func (v *Volume) DisplayInfo(frame *gocv.Mat) {
	status := v.statusText(v.Name())
	if v.modeOn && v.muted {
		status += " MUTED"
	}
	drawStatus(frame, status)

	if v.modeOn && !v.muted {
		drawFooter(frame, fmt.Sprintf("Volume: %d %%", int(v.level)), 1.0)
	}
}

// setVolume clamps level, pushes it and records it on success.
func (v *Volume) setVolume(level float64) bool {
	level = clampLevel(level)
	if err := v.audio.SetMasterVolumeScalar(level / 100); err != nil {
		log.Printf("set volume: %v", err)
		return false
	}
	v.level = level
	return true
}

// smooth moves current toward target by factor alpha.
func smooth(current, target, alpha float64) float64 {
	return current + alpha*(target-current)
}

func clampLevel(level float64) float64 {
	return min(max(level, 0), 100)
}
