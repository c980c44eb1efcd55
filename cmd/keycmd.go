package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/output"
)

var keyCmd = &cobra.Command{
	Use:   "key <name>",
	Short: "Press a named key: home, back, enter, menu",
	Long: `Press a named key. Without the privileged channel, home and back fall
back to global UI actions, menu approximates via the recents action, and
enter has no fallback (always fails unprivileged). Unrecognized names report
ok: false.`,
	Args: cobra.ExactArgs(1),
	RunE: runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	provider, err := newProvider(cmd)
	if err != nil {
		return err
	}
	ok := newExecutor(provider).Key(cmd.Context(), args[0])
	return output.Print(ActionResult{OK: ok, Action: "key"})
}
