package main

import "strconv"

func setVolume(percent int) error {
	return run("osascript", "-e", "set volume output volume "+strconv.Itoa(percent))
}

func setMute(muted bool) error {
	return run("osascript", "-e", "set volume output muted "+strconv.FormatBool(muted))
}
