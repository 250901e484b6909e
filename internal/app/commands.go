package app

import (
	"log"

	"github.com/ayusman/mudra/internal/control"
)

// Command is a user request to the controls, from the keyboard or the tray.
type Command int

const (
	CmdNone Command = iota
	CmdToggleVolume
	CmdToggleZoom
	CmdToggleCapture
	CmdToggleLock
	CmdZoomIn
	CmdZoomOut
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNone:          "none",
	CmdToggleVolume:  "toggle-volume",
	CmdToggleZoom:    "toggle-zoom",
	CmdToggleCapture: "toggle-capture",
	CmdToggleLock:    "toggle-lock",
	CmdZoomIn:        "zoom-in",
	CmdZoomOut:       "zoom-out",
	CmdQuit:          "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Key codes as returned by the preview window's key poll.
const (
	keyEnter  = 13
	keyEscape = 27
	keySpace  = 32
)

// CommandForKey maps a polled key code to a command. Only the low byte of
// key is significant; -1 (no key) maps to CmdNone.
func CommandForKey(key int) Command {
	if key < 0 {
		return CmdNone
	}
	switch key & 0xFF {
	case 'v':
		return CmdToggleVolume
	case 'z':
		return CmdToggleZoom
	case 's':
		return CmdToggleCapture
	case keySpace, keyEnter:
		return CmdToggleLock
	case '+', '=':
		return CmdZoomIn
	case '-':
		return CmdZoomOut
	case keyEscape:
		return CmdQuit
	}
	return CmdNone
}

// Dispatch applies cmd to the controls and reports whether the loop should
// stop. It must run on the loop goroutine.
func (a *App) Dispatch(cmd Command) (quit bool) {
	switch cmd {
	case CmdToggleVolume:
		a.toggleMode(a.volume)
	case CmdToggleZoom:
		a.toggleMode(a.zoom)
	case CmdToggleCapture:
		a.toggleMode(a.capture)
	case CmdToggleLock:
		for _, c := range a.controllers {
			if !c.ModeOn() {
				continue
			}
			c.ToggleLock()
			log.Printf("%s locked: %v", c.Name(), c.Locked())
			a.notify(c)
		}
	case CmdZoomIn:
		if a.zoom.ModeOn() {
			a.zoom.IncreaseZoom()
		}
	case CmdZoomOut:
		if a.zoom.ModeOn() {
			a.zoom.DecreaseZoom()
		}
	case CmdQuit:
		return true
	}
	return false
}

// Enqueue queues cmd for the loop goroutine. It never blocks; a command
// arriving while the queue is full is dropped.
func (a *App) Enqueue(cmd Command) {
	select {
	case a.commands <- cmd:
	default:
		log.Printf("command queue full, dropping %s", cmd)
	}
}

// drainCommands dispatches every queued command.
func (a *App) drainCommands() (quit bool) {
	for {
		select {
		case cmd := <-a.commands:
			if a.Dispatch(cmd) {
				return true
			}
		default:
			return false
		}
	}
}

func (a *App) toggleMode(c control.Controller) {
	c.ToggleMode()
	log.Printf("%s mode on: %v", c.Name(), c.ModeOn())
	a.notify(c)
}
