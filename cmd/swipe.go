package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/output"
)

var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Swipe between two screen points",
	Long: `Drag from (--x1, --y1) to (--x2, --y2) over --dur milliseconds.
Durations outside 50-10000ms are clamped.`,
	RunE: runSwipe,
}

func init() {
	rootCmd.AddCommand(swipeCmd)
	swipeCmd.Flags().Int("x1", 0, "Start X")
	swipeCmd.Flags().Int("y1", 0, "Start Y")
	swipeCmd.Flags().Int("x2", 0, "End X")
	swipeCmd.Flags().Int("y2", 0, "End Y")
	swipeCmd.Flags().Int("dur", 300, "Duration in milliseconds")
	for _, name := range []string{"x1", "y1", "x2", "y2"} {
		_ = swipeCmd.MarkFlagRequired(name)
	}
}

func runSwipe(cmd *cobra.Command, args []string) error {
	x1, _ := cmd.Flags().GetInt("x1")
	y1, _ := cmd.Flags().GetInt("y1")
	x2, _ := cmd.Flags().GetInt("x2")
	y2, _ := cmd.Flags().GetInt("y2")
	durMs, _ := cmd.Flags().GetInt("dur")

	provider, err := newProvider(cmd)
	if err != nil {
		return err
	}
	ok := newExecutor(provider).Swipe(cmd.Context(), x1, y1, x2, y2, time.Duration(durMs)*time.Millisecond)
	return output.Print(ActionResult{OK: ok, Action: "swipe"})
}
