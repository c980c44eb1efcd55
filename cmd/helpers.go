package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/action"
	"github.com/wsyqhh/Accessibility-Service/internal/platform"
)

// newProvider builds the platform provider from the persistent adb flags.
func newProvider(cmd *cobra.Command) (*platform.Provider, error) {
	adbPath, _ := cmd.Flags().GetString("adb-path")
	serial, _ := cmd.Flags().GetString("adb-serial")
	return platform.NewProvider(platform.Options{ADBPath: adbPath, Serial: serial})
}

// newExecutor wires an executor to the provider's backends.
func newExecutor(provider *platform.Provider) *action.Executor {
	return &action.Executor{
		Shell:     provider.Shell,
		Gestures:  provider.Gestures,
		Global:    provider.Global,
		Activator: provider.Activator,
	}
}

// ActionResult is the envelope printed by one-shot action commands.
type ActionResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
}
