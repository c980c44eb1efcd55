package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/platform"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the device screen",
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("out", "", "Output file (default: stdout)")
	screenshotCmd.Flags().String("screenshot-format", "png", "Image format: png, jpg")
	screenshotCmd.Flags().Float64("scale", 0, "Scale factor in (0, 1]; 0 = no scaling")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	provider, err := newProvider(cmd)
	if err != nil {
		return err
	}
	if provider.Screenshotter == nil {
		return fmt.Errorf("screenshot not supported by this backend")
	}

	format, _ := cmd.Flags().GetString("screenshot-format")
	scale, _ := cmd.Flags().GetFloat64("scale")
	quality, _ := cmd.Flags().GetInt("quality")

	data, err := provider.Screenshotter.Capture(cmd.Context(), platform.ScreenshotOptions{
		Format:  format,
		Scale:   scale,
		Quality: quality,
	})
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0644)
}
