package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Finger identifies one of the five fingers.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// fingerJoints maps each non-thumb finger to its tip and PIP landmark.
var fingerJoints = [...]struct {
	finger   Finger
	tip, pip int
}{
	{Index, IndexTip, IndexPIP},
	{Middle, MiddleTip, MiddlePIP},
	{Ring, RingTip, RingPIP},
	{Pinky, PinkyTip, PinkyPIP},
}

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
// X and Y are normalized to [0,1] relative to the frame.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Extended reports, per finger, whether the finger is stretched out in a
// mirrored camera frame. A finger counts as extended when its tip sits above
// (smaller y) or level with its PIP joint; the thumb when its tip lies right
// of (or level with) the thumb IP joint.
func (h *HandLandmarks) Extended() [NumFingers]bool {
	var ext [NumFingers]bool
	if h == nil {
		return ext
	}

	for _, j := range fingerJoints {
		ext[j.finger] = h.Points[j.tip].Y <= h.Points[j.pip].Y
	}
	ext[Thumb] = h.Points[ThumbTip].X >= h.Points[ThumbIP].X

	return ext
}

// PalmOpen reports whether all five fingers are extended.
func (h *HandLandmarks) PalmOpen() bool {
	if h == nil {
		return false
	}
	for _, e := range h.Extended() {
		if !e {
			return false
		}
	}
	return true
}
