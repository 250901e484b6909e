// Package tray provides a system tray menu mirroring the keyboard controls.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Item identifies a tray menu entry.
type Item int

const (
	ItemVolume Item = iota
	ItemZoom
	ItemCapture
	ItemLock
	ItemZoomIn
	ItemZoomOut
	ItemQuit
)

// Control names as reported by the controls; the tray keeps one checkbox
// per name.
const (
	NameVolume  = "Volume"
	NameZoom    = "Zoom"
	NameCapture = "Capture"
)

// menuEntry is the part of a systray menu item the tray updates.
type menuEntry interface {
	SetTitle(title string)
	Check()
	Uncheck()
}

// Tray represents the system tray application.
type Tray struct {
	onSelect func(Item)
	mu       sync.RWMutex

	// Menu items stored for later updates
	modes map[string]menuEntry
	lock  menuEntry
	state map[string]modeState
}

type modeState struct {
	on, locked bool
}

// New creates a new Tray with every control off.
func New() *Tray {
	return &Tray{
		modes: make(map[string]menuEntry),
		state: make(map[string]modeState),
	}
}

// OnSelect sets the callback invoked, on the tray's goroutine, when a menu
// entry is clicked.
func (t *Tray) OnSelect(fn func(Item)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSelect = fn
}

// Start registers the tray without taking over the calling goroutine, so the
// camera loop can keep the main thread. It must be called on that thread: the
// tray's native events are then pumped by the preview window's key poll.
func (t *Tray) Start() {
	systray.Register(t.onReady, t.onExit)
}

// Stop removes the tray icon.
func (t *Tray) Stop() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra hand gesture control")

	volume := systray.AddMenuItemCheckbox(modeTitle(NameVolume, false), "Toggle volume mode", false)
	zoom := systray.AddMenuItemCheckbox(modeTitle(NameZoom, false), "Toggle zoom mode", false)
	capture := systray.AddMenuItemCheckbox(modeTitle(NameCapture, false), "Toggle capture mode", false)
	systray.AddSeparator()

	lock := systray.AddMenuItem("Lock", "Lock or unlock the active modes")
	zoomIn := systray.AddMenuItem("Zoom In", "Increase magnification")
	zoomOut := systray.AddMenuItem("Zoom Out", "Decrease magnification")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	t.attach(map[string]menuEntry{
		NameVolume:  volume,
		NameZoom:    zoom,
		NameCapture: capture,
	}, lock)

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-volume.ClickedCh:
				t.handle(ItemVolume)
			case <-zoom.ClickedCh:
				t.handle(ItemZoom)
			case <-capture.ClickedCh:
				t.handle(ItemCapture)
			case <-lock.ClickedCh:
				t.handle(ItemLock)
			case <-zoomIn.ClickedCh:
				t.handle(ItemZoomIn)
			case <-zoomOut.ClickedCh:
				t.handle(ItemZoomOut)
			case <-menuQuit.ClickedCh:
				t.handle(ItemQuit)
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// handle forwards a click to the registered callback.
func (t *Tray) handle(item Item) {
	t.mu.RLock()
	callback := t.onSelect
	t.mu.RUnlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(item)
	}
}

// attach stores the menu entries and brings them up to date with any state
// recorded before the menu existed.
func (t *Tray) attach(modes map[string]menuEntry, lock menuEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.modes = modes
	t.lock = lock
	for name := range modes {
		t.apply(name)
	}
	t.applyLock()
}

// SetState records the mode and lock state of the named control and updates
// its menu entry. Safe to call before the tray is ready.
func (t *Tray) SetState(name string, modeOn, locked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state[name] = modeState{on: modeOn, locked: locked}
	t.apply(name)
	t.applyLock()
}

func (t *Tray) apply(name string) {
	item, ok := t.modes[name]
	if !ok {
		return
	}
	s := t.state[name]
	item.SetTitle(modeTitle(name, s.locked))
	if s.on {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func (t *Tray) applyLock() {
	if t.lock == nil {
		return
	}
	if t.anyLocked() {
		t.lock.SetTitle("Unlock")
	} else {
		t.lock.SetTitle("Lock")
	}
}

// ModeOn reports the last mode state seen for the named control.
func (t *Tray) ModeOn(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state[name].on
}

// Locked reports the last lock state seen for the named control.
func (t *Tray) Locked(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state[name].locked
}

func (t *Tray) anyLocked() bool {
	for _, s := range t.state {
		if s.locked {
			return true
		}
	}
	return false
}

func modeTitle(name string, locked bool) string {
	if locked {
		return name + " (locked)"
	}
	return name
}
