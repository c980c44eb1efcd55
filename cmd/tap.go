package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/output"
)

var tapCmd = &cobra.Command{
	Use:   "tap",
	Short: "Tap at absolute screen coordinates",
	RunE:  runTap,
}

func init() {
	rootCmd.AddCommand(tapCmd)
	tapCmd.Flags().Int("x", 0, "X coordinate in pixels")
	tapCmd.Flags().Int("y", 0, "Y coordinate in pixels")
	_ = tapCmd.MarkFlagRequired("x")
	_ = tapCmd.MarkFlagRequired("y")
}

func runTap(cmd *cobra.Command, args []string) error {
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	provider, err := newProvider(cmd)
	if err != nil {
		return err
	}
	ok := newExecutor(provider).Tap(cmd.Context(), x, y)
	return output.Print(ActionResult{OK: ok, Action: "tap"})
}
