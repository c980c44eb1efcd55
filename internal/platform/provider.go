package platform

import (
	"fmt"
	"time"
)

// Provider bundles the device backends. Fields not supported by the active
// backend are nil; consumers treat a nil field as "path unavailable" rather
// than an error.
type Provider struct {
	Shell         Shell
	Gestures      GestureDispatcher
	Global        GlobalActions
	Activator     Activator
	Hierarchy     HierarchySource
	Screenshotter Screenshotter
}

// Options selects and configures the backend.
type Options struct {
	ADBPath      string        // adb binary (default "adb")
	Serial       string        // device serial, "" = the only connected device
	PollInterval time.Duration // hierarchy watch interval (0 = backend default)
}

// ErrUnsupported is returned when no backend registered itself.
var ErrUnsupported = fmt.Errorf("no device backend available (build includes none)")

// NewProviderFunc is set by backend packages via init().
// See internal/platform/adb for the adb registration.
var NewProviderFunc func(Options) (*Provider, error)

// NewProvider returns a Provider for the registered backend.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
