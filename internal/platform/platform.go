// Package platform adapts the operating system to the control ports: audio
// through the actuator plugin, cursor and screen metrics, screen capture and
// the magnifier window.
package platform

import "errors"

// ErrUnsupported is returned when an adapter has no implementation for the
// running platform.
var ErrUnsupported = errors.New("not supported on this platform")
