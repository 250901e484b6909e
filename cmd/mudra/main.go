// Command mudra controls the desktop with hand gestures seen by the webcam.
package main

import "runtime"

func init() {
	// Camera preview and tray both need the main OS thread on macOS.
	runtime.LockOSThread()
}

func main() {
	Execute()
}
