// Package detector finds hand landmarks in camera frames.
//
// MediaPipeDetector delegates to an external landmark service,
// mediapipe_service.py, looked up under scripts/ in the working directory,
// its parent, the executable's directory and ~/.mudra. It runs under the
// Python of a venv found in the same places, or python3 from PATH, as
//
//	mediapipe_service.py --max-hands N --min-detection-confidence F --min-tracking-confidence F
//
// For every frame it reads a 4-byte big-endian length and that many JPEG
// bytes from stdin, and writes one JSON line to stdout:
//
//	{"hands":[{"points":[{"x":0.5,"y":0.4,"z":0.0}, ...21 points],"handedness":"Right","score":0.98}]}
//
// Coordinates are normalized to the frame. The service exits when stdin is
// closed.
package detector

import (
	"time"

	"gocv.io/x/gocv"
)

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to report (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// IdleTimeout stops the landmark service after this long without frames.
	IdleTimeout time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.7,
		IdleTimeout:     30 * time.Second,
	}
}
