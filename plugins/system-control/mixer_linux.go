package main

import "strconv"

func setVolume(percent int) error {
	return run("pactl", "set-sink-volume", "@DEFAULT_SINK@", strconv.Itoa(percent)+"%")
}

func setMute(muted bool) error {
	flag := "0"
	if muted {
		flag = "1"
	}
	return run("pactl", "set-sink-mute", "@DEFAULT_SINK@", flag)
}
