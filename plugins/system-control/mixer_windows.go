package main

import (
	"fmt"

	"github.com/itchyny/volume-go"
)

// The default render endpoint is driven through Core Audio.

func setVolume(percent int) error {
	if err := volume.SetVolume(percent); err != nil {
		return fmt.Errorf("set endpoint volume: %w", err)
	}
	return nil
}

func setMute(muted bool) error {
	var err error
	if muted {
		err = volume.Mute()
	} else {
		err = volume.Unmute()
	}
	if err != nil {
		return fmt.Errorf("set endpoint mute: %w", err)
	}
	return nil
}
