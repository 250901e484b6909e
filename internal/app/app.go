// Package app wires the camera, hand detector and controls into the
// frame-synchronous control loop.
package app

import (
	"fmt"
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
)

// MainWindow is the title of the camera preview window.
const MainWindow = "Gesture-Based Control"

// commandBuffer bounds how many out-of-band commands may queue between frames.
const commandBuffer = 16

// Config holds configuration options for the application.
type Config struct {
	Camera   capture.Config
	Detector detector.Config
	Volume   control.VolumeConfig
	Zoom     control.ZoomConfig
	Capture  control.CaptureConfig
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Camera:   capture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
		Volume:   control.DefaultVolumeConfig(),
		Zoom:     control.DefaultZoomConfig(),
		Capture:  control.DefaultCaptureConfig(),
	}
}

// Ports are the platform adapters the controls drive.
type Ports struct {
	Audio   control.Audio
	Display control.Display
	Screen  control.Screen
	Saver   control.Saver
	Overlay control.Overlay
}

// StateFunc is notified after a control's mode or lock changes.
type StateFunc func(name string, modeOn, locked bool)

// App owns the controls and routes frames and commands to them.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector

	volume      *control.Volume
	zoom        *control.Zoom
	capture     *control.Capture
	controllers []control.Controller

	commands chan Command
	onChange StateFunc
	mu       sync.RWMutex
}

// New creates the controls on top of ports. Failing to reach the audio
// endpoint is returned as an error.
func New(config Config, ports Ports) (*App, error) {
	volume, err := control.NewVolume(ports.Audio, config.Volume)
	if err != nil {
		return nil, fmt.Errorf("volume control: %w", err)
	}
	zoom := control.NewZoom(ports.Display, ports.Screen, ports.Overlay, config.Zoom)
	shot := control.NewCapture(ports.Screen, ports.Saver, config.Capture)

	a := &App{
		config:      config,
		camera:      capture.NewCamera(config.Camera),
		volume:      volume,
		zoom:        zoom,
		capture:     shot,
		controllers: []control.Controller{volume, zoom, shot},
		commands:    make(chan Command, commandBuffer),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// SetCamera replaces the camera. It must be called before Run.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// OnStateChange registers fn to be told about mode and lock changes.
func (a *App) OnStateChange(fn StateFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onChange = fn
}

// Volume returns the volume control.
func (a *App) Volume() *control.Volume {
	return a.volume
}

// Zoom returns the magnifier control.
func (a *App) Zoom() *control.Zoom {
	return a.zoom
}

// Capture returns the screenshot control.
func (a *App) Capture() *control.Capture {
	return a.capture
}

// Controllers returns the controls in processing order.
func (a *App) Controllers() []control.Controller {
	return a.controllers
}

// Close releases the detector.
func (a *App) Close() error {
	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			return fmt.Errorf("close detector: %w", err)
		}
	}
	return nil
}

func (a *App) notify(c control.Controller) {
	a.mu.RLock()
	fn := a.onChange
	a.mu.RUnlock()

	if fn != nil {
		fn(c.Name(), c.ModeOn(), c.Locked())
	}
}
