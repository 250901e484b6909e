//go:build !darwin && !linux && !windows

package main

func setVolume(percent int) error {
	return errUnsupportedOS
}

func setMute(muted bool) error {
	return errUnsupportedOS
}
