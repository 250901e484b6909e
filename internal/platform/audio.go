package platform

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/ayusman/mudra/internal/plugin"
)

// Audio plugin contract.
const (
	AudioPlugin     = "system-control"
	ActionVolumeSet = "volume-set"
	ActionMuteSet   = "mute-set"
)

// pluginRunner runs a single plugin request.
type pluginRunner interface {
	Run(ctx context.Context, p *plugin.Plugin, req *plugin.Request) error
}

// PluginAudio drives the system mixer through the system-control plugin.
//
// The first volume push runs synchronously so an unusable plugin surfaces at
// startup. Later pushes are handed to a sender goroutine holding only the
// latest level, so the caller never waits on the plugin process. Consecutive
// pushes that round to the same whole percentage are sent once.
type PluginAudio struct {
	plugin *plugin.Plugin
	runner pluginRunner

	mu          sync.Mutex
	lastPercent int
	sent        bool
	pending     float64
	hasPending  bool
	started     bool
	closed      bool

	inflight  sync.WaitGroup
	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewPluginAudio looks up the audio plugin. A missing plugin or one lacking
// the volume and mute actions is an error.
func NewPluginAudio(mgr *plugin.Manager, runner pluginRunner) (*PluginAudio, error) {
	p, err := mgr.Get(AudioPlugin)
	if err != nil {
		return nil, fmt.Errorf("audio plugin %q: %w", AudioPlugin, err)
	}
	for _, action := range []string{ActionVolumeSet, ActionMuteSet} {
		if !p.Manifest.Supports(action) {
			return nil, fmt.Errorf("audio plugin %q does not support %s", AudioPlugin, action)
		}
	}

	return &PluginAudio{
		plugin: p,
		runner: runner,
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// SetMasterVolumeScalar sets the output level in [0,1]. Only the first call,
// and calls after Close, report plugin failures; later failures are logged
// by the sender and the level is resent on the next push.
func (a *PluginAudio) SetMasterVolumeScalar(level float64) error {
	level = min(max(level, 0), 1)
	percent := int(math.Round(level * 100))

	a.mu.Lock()
	if a.sent && percent == a.lastPercent {
		a.mu.Unlock()
		return nil
	}
	if !a.started || a.closed {
		first := !a.started && !a.closed
		a.mu.Unlock()
		return a.pushNow(level, percent, first)
	}

	if !a.hasPending {
		a.inflight.Add(1)
	}
	a.pending = level
	a.hasPending = true
	a.lastPercent = percent
	a.sent = true
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
	return nil
}

// SetMute mutes or unmutes the output. It runs synchronously.
func (a *PluginAudio) SetMute(muted bool) error {
	if err := a.call(ActionMuteSet, map[string]bool{"muted": muted}); err != nil {
		return err
	}
	// Resend the next level after a mute change.
	a.mu.Lock()
	a.sent = false
	a.mu.Unlock()
	return nil
}

// Close delivers any queued level and stops the sender.
func (a *PluginAudio) Close() error {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		started := a.started
		a.closed = true
		a.mu.Unlock()

		if started {
			a.wait()
			close(a.quit)
			<-a.done
		}
	})
	return nil
}

// pushNow sends level on the caller's goroutine. The first successful push
// starts the sender.
func (a *PluginAudio) pushNow(level float64, percent int, startSender bool) error {
	if err := a.call(ActionVolumeSet, map[string]float64{"scalar": level}); err != nil {
		return err
	}

	a.mu.Lock()
	a.lastPercent = percent
	a.sent = true
	if startSender && !a.closed && !a.started {
		a.started = true
		go a.sender()
	}
	a.mu.Unlock()
	return nil
}

func (a *PluginAudio) sender() {
	defer close(a.done)
	for {
		select {
		case <-a.wake:
			a.flushPending()
		case <-a.quit:
			a.flushPending()
			return
		}
	}
}

func (a *PluginAudio) flushPending() {
	a.mu.Lock()
	level, ok := a.pending, a.hasPending
	a.hasPending = false
	a.mu.Unlock()
	if !ok {
		return
	}
	defer a.inflight.Done()

	if err := a.call(ActionVolumeSet, map[string]float64{"scalar": level}); err != nil {
		log.Printf("audio: volume push failed: %v", err)
		a.mu.Lock()
		a.sent = false
		a.mu.Unlock()
	}
}

// wait blocks until every queued level has been sent.
func (a *PluginAudio) wait() {
	a.inflight.Wait()
}

func (a *PluginAudio) call(action string, params any) error {
	req, err := plugin.NewRequest(action, params)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return a.runner.Run(context.Background(), a.plugin, req)
}
