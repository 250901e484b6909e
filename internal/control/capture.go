package control

import (
	"image"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// CaptureConfig holds tuning for the screenshot control.
type CaptureConfig struct {
	// FeedbackFrames is how many frames the shutter mark stays visible.
	FeedbackFrames int
	FeedbackRadius int
	// FeedbackAlpha is the opacity of the shutter mark.
	FeedbackAlpha float64
}

// DefaultCaptureConfig returns the stock screenshot tuning.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		FeedbackFrames: 5,
		FeedbackRadius: 30,
		FeedbackAlpha:  0.4,
	}
}

// Capture takes a full-screen screenshot each time the primary hand opens.
type Capture struct {
	State

	screen Screen
	saver  Saver
	config CaptureConfig
	now    func() time.Time

	prevPalmOpen bool
	feedback     int
	feedbackPos  image.Point
	lastPath     string
}

// NewCapture creates the screenshot control.
func NewCapture(screen Screen, saver Saver, config CaptureConfig) *Capture {
	def := DefaultCaptureConfig()
	if config.FeedbackFrames < 0 {
		config.FeedbackFrames = def.FeedbackFrames
	}
	if config.FeedbackRadius <= 0 {
		config.FeedbackRadius = def.FeedbackRadius
	}
	if config.FeedbackAlpha <= 0 || config.FeedbackAlpha > 1 {
		config.FeedbackAlpha = def.FeedbackAlpha
	}

	return &Capture{
		screen: screen,
		saver:  saver,
		config: config,
		now:    time.Now,
	}
}

// Name implements Controller.
func (c *Capture) Name() string {
	return "Capture"
}

// FeedbackRemaining returns the number of frames the shutter mark is still shown.
func (c *Capture) FeedbackRemaining() int {
	return c.feedback
}

// LastPath returns where the most recent screenshot was written.
func (c *Capture) LastPath() string {
	return c.lastPath
}

// ToggleMode implements Controller. Switching off cancels pending feedback.
func (c *Capture) ToggleMode() {
	c.State.ToggleMode()
	if !c.modeOn {
		c.feedback = 0
		c.prevPalmOpen = false
	}
}

// Process implements Controller.
func (c *Capture) Process(sig detector.Signal, frame *gocv.Mat) bool {
	if !c.modeOn {
		c.prevPalmOpen = false
		return false
	}

	hand, ok := sig.Primary()
	if c.locked || !ok {
		c.prevPalmOpen = false
		c.drawFeedback(frame)
		return false
	}

	open := hand.PalmOpen()
	if open && !c.prevPalmOpen {
		c.prevPalmOpen = true
		return c.shoot(sig)
	}
	if !open {
		c.prevPalmOpen = false
	}

	c.drawFeedback(frame)
	return false
}

// DisplayInfo implements Controller.
func (c *Capture) DisplayInfo(frame *gocv.Mat) {
	drawStatus(frame, c.statusText(c.Name()))
}

func (c *Capture) shoot(sig detector.Signal) bool {
	img, err := c.screen.CaptureScreen()
	if err != nil {
		log.Printf("capture screen: %v", err)
		return false
	}

	path, err := c.saver.Save(img, c.now())
	if err != nil {
		log.Printf("save screenshot: %v", err)
		return false
	}
	c.lastPath = path
	log.Printf("screenshot saved to %s", path)

	c.feedbackPos, _ = sig.Wrist()
	c.feedback = c.config.FeedbackFrames
	return true
}

func (c *Capture) drawFeedback(frame *gocv.Mat) {
	if c.feedback <= 0 {
		return
	}
	darkenCircle(frame, c.feedbackPos, c.config.FeedbackRadius, c.config.FeedbackAlpha)
	c.feedback--
}
