package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/output"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Find an element by label and click it",
	Long: `Search the current hierarchy breadth-first for the first element whose
text or description matches --text exactly (after trimming), walk up to its
clickable ancestor, and activate it.`,
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().String("text", "", "Label to match")
}

func runClick(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	if text == "" {
		return fmt.Errorf("--text is required")
	}
	provider, err := newProvider(cmd)
	if err != nil {
		return err
	}
	root, _, err := provider.Hierarchy.Dump(cmd.Context())
	if err != nil {
		return err
	}
	ok := newExecutor(provider).ClickLabel(cmd.Context(), root, text)
	return output.Print(ActionResult{OK: ok, Action: "click"})
}
