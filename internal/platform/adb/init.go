package adb

import (
	"log/slog"

	"github.com/wsyqhh/Accessibility-Service/internal/platform"
)

func init() {
	platform.NewProviderFunc = func(opts platform.Options) (*platform.Provider, error) {
		shell := NewShell(opts.ADBPath, opts.Serial)
		return &platform.Provider{
			Shell:         shell,
			Hierarchy:     NewHierarchy(shell, opts.PollInterval, slog.Default()),
			Activator:     NewActivator(shell),
			Screenshotter: NewScreenshotter(shell),
			// Gestures and Global stay nil: gesture injection and global UI
			// actions are in-process accessibility primitives that adb does
			// not expose. Consumers fall back to the shell path only.
		}, nil
	}
}
