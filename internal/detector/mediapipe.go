package detector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// ServiceScript is the landmark service looked up at startup.
const ServiceScript = "mediapipe_service.py"

// ErrServiceNotFound is returned when the landmark service script cannot be located.
var ErrServiceNotFound = errors.New(ServiceScript + " not found")

// MediaPipeDetector implements Detector on top of the landmark service. The
// service process starts on the first frame and is stopped after
// Config.IdleTimeout without frames.
type MediaPipeDetector struct {
	config Config
	script string

	mu   sync.Mutex
	svc  *service
	idle *time.Timer
}

// NewMediaPipeDetector locates the landmark service. It does not start it.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	script := locate(filepath.Join("scripts", ServiceScript))
	if script == "" {
		return nil, ErrServiceNotFound
	}
	if config.MaxHands <= 0 {
		config.MaxHands = DefaultConfig().MaxHands
	}
	return &MediaPipeDetector{config: config, script: script}, nil
}

// Detect returns at most Config.MaxHands hands scored at or above
// Config.MinConfidence. An empty frame yields no hands.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if frame == nil || frame.Empty() {
		return nil, nil
	}

	jpeg, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer jpeg.Close()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.svc == nil {
		svc, err := startService(pythonPath(), d.script, serviceArgs(d.config))
		if err != nil {
			return nil, err
		}
		d.svc = svc
	}

	hands, err := d.svc.roundTrip(jpeg.GetBytes())
	if err != nil {
		// A broken pipe leaves the service unusable; restart on the next frame.
		d.stopLocked()
		return nil, err
	}
	d.armIdle()

	return keepHands(hands, d.config), nil
}

// Close stops the landmark service.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

func (d *MediaPipeDetector) stopLocked() error {
	if d.idle != nil {
		d.idle.Stop()
		d.idle = nil
	}
	if d.svc == nil {
		return nil
	}
	err := d.svc.stop()
	d.svc = nil
	return err
}

func (d *MediaPipeDetector) armIdle() {
	if d.config.IdleTimeout <= 0 {
		return
	}
	if d.idle != nil {
		d.idle.Reset(d.config.IdleTimeout)
		return
	}
	d.idle = time.AfterFunc(d.config.IdleTimeout, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.idle = nil
		if d.svc != nil {
			d.svc.stop()
			d.svc = nil
		}
	})
}

// serviceArgs renders the detector thresholds as service flags.
func serviceArgs(c Config) []string {
	return []string{
		"--max-hands", strconv.Itoa(c.MaxHands),
		"--min-detection-confidence", strconv.FormatFloat(c.MinConfidence, 'f', 2, 64),
		"--min-tracking-confidence", strconv.FormatFloat(c.MinTrackingConf, 'f', 2, 64),
	}
}

// keepHands drops low-scoring hands and caps the count, preserving order.
func keepHands(hands []HandLandmarks, c Config) []HandLandmarks {
	kept := make([]HandLandmarks, 0, len(hands))
	for _, h := range hands {
		if h.Score < c.MinConfidence {
			continue
		}
		kept = append(kept, h)
		if len(kept) == c.MaxHands {
			break
		}
	}
	return kept
}

// pythonPath prefers a venv interpreter next to the service.
func pythonPath() string {
	venv := filepath.Join("venv", "bin", "python")
	if runtime.GOOS == "windows" {
		venv = filepath.Join("venv", "Scripts", "python.exe")
	}
	if p := locate(venv); p != "" {
		return p
	}
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// locate returns the absolute path of rel under the first search root that
// contains it: the working directory, its parent, the executable's
// directory, then ~/.mudra.
func locate(rel string) string {
	roots := []string{".", ".."}
	if exe, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(exe))
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, ".mudra"))
	}

	for _, root := range roots {
		p := filepath.Join(root, rel)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}
