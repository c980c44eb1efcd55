package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/output"
	_ "github.com/wsyqhh/Accessibility-Service/internal/platform/adb"
	"github.com/wsyqhh/Accessibility-Service/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "a11y-bridge",
	Short: "Observe and drive a device's UI over its accessibility hierarchy",
	Long: `a11y-bridge exposes a device's on-screen UI hierarchy and accepts
interaction commands (click-by-label, tap, swipe, key events), either as
one-shot CLI commands or through a loopback HTTP API started with 'serve'.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("adb-path", "", "adb binary (default: adb on PATH)")
	rootCmd.PersistentFlags().String("adb-serial", "", "Device serial (default: the only connected device)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		return nil
	}
}
