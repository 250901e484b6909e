// Package main provides the audio actuator plugin.
// It sets the output volume and mute state via AppleScript on macOS,
// pactl (PulseAudio/PipeWire) on Linux and Core Audio on Windows.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// actionHandler defines a function type for handling specific actions.
type actionHandler func(params json.RawMessage) error

// actionHandlers maps action names to their handler functions.
var actionHandlers = map[string]actionHandler{
	"volume-set": volumeSet,
	"mute-set":   muteSet,
}

var errUnsupportedOS = errors.New("unsupported operating system: " + runtime.GOOS)

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	if err := handler(req.Params); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// volumeParams is the payload of volume-set.
type volumeParams struct {
	Scalar *float64 `json:"scalar"`
}

// muteParams is the payload of mute-set.
type muteParams struct {
	Muted *bool `json:"muted"`
}

// parseVolume validates a volume-set payload and returns the level as a
// whole percentage.
func parseVolume(params json.RawMessage) (int, error) {
	var p volumeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return 0, fmt.Errorf("invalid params: %w", err)
	}
	if p.Scalar == nil {
		return 0, errors.New("missing scalar")
	}
	if *p.Scalar < 0 || *p.Scalar > 1 {
		return 0, fmt.Errorf("scalar %v out of range [0,1]", *p.Scalar)
	}
	return int(math.Round(*p.Scalar * 100)), nil
}

// parseMute validates a mute-set payload.
func parseMute(params json.RawMessage) (bool, error) {
	var p muteParams
	if err := json.Unmarshal(params, &p); err != nil {
		return false, fmt.Errorf("invalid params: %w", err)
	}
	if p.Muted == nil {
		return false, errors.New("missing muted")
	}
	return *p.Muted, nil
}

// volumeSet sets the output volume from a scalar in [0,1].
func volumeSet(params json.RawMessage) error {
	percent, err := parseVolume(params)
	if err != nil {
		return err
	}
	return setVolume(percent)
}

// muteSet mutes or unmutes the output.
func muteSet(params json.RawMessage) error {
	muted, err := parseMute(params)
	if err != nil {
		return err
	}
	return setMute(muted)
}

// run executes a command and returns any error along with its output.
func run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
