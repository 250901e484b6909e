package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/archive"
	"github.com/ayusman/mudra/internal/platform"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the camera control loop (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd.Context(), db)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runApp acquires the platform adapters and runs the control loop until the
// quit key, a tray quit or a signal.
func runApp(ctx context.Context, st *store.Store) error {
	dir, err := dataDir()
	if err != nil {
		return err
	}

	plugins := plugin.NewManager(filepath.Join(dir, "plugins"), "plugins")
	if err := plugins.Discover(); err != nil {
		return fmt.Errorf("failed to discover plugins: %w", err)
	}

	audio, err := platform.NewPluginAudio(plugins, plugin.NewExecutor(plugin.DefaultTimeout))
	if err != nil {
		return fmt.Errorf("failed to acquire audio endpoint: %w", err)
	}
	defer audio.Close()
	cursor, err := platform.NewCursor()
	if err != nil {
		return fmt.Errorf("failed to acquire cursor: %w", err)
	}
	screen, err := platform.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to acquire screen: %w", err)
	}
	saver, err := archive.New(archive.DefaultDir, st)
	if err != nil {
		return fmt.Errorf("failed to prepare capture directory: %w", err)
	}

	overlay := platform.NewWindowOverlay()
	defer overlay.Close()

	a, err := app.New(app.DefaultConfig(), app.Ports{
		Audio:   audio,
		Display: cursor,
		Screen:  screen,
		Saver:   saver,
		Overlay: overlay,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	menu := tray.New()
	menu.OnSelect(func(item tray.Item) {
		a.Enqueue(commandForItem(item))
	})
	a.OnStateChange(menu.SetState)
	menu.Start()
	defer menu.Stop()

	log.Printf("Screenshots are saved to %s", saver.Dir())
	log.Println("Keys: v volume, z zoom, s capture, space/enter lock, +/- zoom, esc quit")

	return a.Run(ctx)
}

// commandForItem maps a tray entry to the loop command it stands for.
func commandForItem(item tray.Item) app.Command {
	switch item {
	case tray.ItemVolume:
		return app.CmdToggleVolume
	case tray.ItemZoom:
		return app.CmdToggleZoom
	case tray.ItemCapture:
		return app.CmdToggleCapture
	case tray.ItemLock:
		return app.CmdToggleLock
	case tray.ItemZoomIn:
		return app.CmdZoomIn
	case tray.ItemZoomOut:
		return app.CmdZoomOut
	case tray.ItemQuit:
		return app.CmdQuit
	}
	return app.CmdNone
}
