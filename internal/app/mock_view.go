package app

import "gocv.io/x/gocv"

// MockView records shown frames and replays scripted key presses.
type MockView struct {
	Keys   []int
	Shown  int
	Closed bool
}

// Show implements View.
func (v *MockView) Show(frame *gocv.Mat) {
	v.Shown++
}

// PollKey returns the next scripted key, or -1 once the script is used up.
func (v *MockView) PollKey() int {
	if len(v.Keys) == 0 {
		return -1
	}
	key := v.Keys[0]
	v.Keys = v.Keys[1:]
	return key
}

// Close implements View.
func (v *MockView) Close() error {
	v.Closed = true
	return nil
}
