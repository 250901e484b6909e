package detector

import "image"

// Signal is the per-frame snapshot of detected hands handed to every control.
// It is rebuilt for each camera frame and never mutated by its consumers.
type Signal struct {
	Hands       []HandLandmarks
	FrameWidth  int
	FrameHeight int
}

// NewSignal builds a Signal for a frame of the given pixel size.
func NewSignal(hands []HandLandmarks, width, height int) Signal {
	return Signal{
		Hands:       hands,
		FrameWidth:  width,
		FrameHeight: height,
	}
}

// NumHands returns the number of hands detected in the frame.
func (s Signal) NumHands() int {
	return len(s.Hands)
}

// Primary returns the first detected hand.
func (s Signal) Primary() (*HandLandmarks, bool) {
	if len(s.Hands) == 0 {
		return nil, false
	}
	return &s.Hands[0], true
}

// Landmark returns the pixel position of landmark idx on the primary hand.
// Coordinates are truncated toward zero.
func (s Signal) Landmark(idx int) (image.Point, bool) {
	hand, ok := s.Primary()
	if !ok || idx < 0 || idx >= NumLandmarks {
		return image.Point{}, false
	}
	if s.FrameWidth <= 0 || s.FrameHeight <= 0 {
		return image.Point{}, false
	}

	p := hand.Points[idx]
	return image.Pt(int(p.X*float64(s.FrameWidth)), int(p.Y*float64(s.FrameHeight))), true
}

// IndexTip returns the pixel position of the primary hand's index fingertip.
func (s Signal) IndexTip() (image.Point, bool) {
	return s.Landmark(IndexTip)
}

// Wrist returns the pixel position of the primary hand's wrist.
func (s Signal) Wrist() (image.Point, bool) {
	return s.Landmark(Wrist)
}

// Extended returns the per-finger extension flags of the primary hand.
func (s Signal) Extended() [NumFingers]bool {
	hand, _ := s.Primary()
	return hand.Extended()
}
