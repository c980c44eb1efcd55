package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/model"
	"github.com/wsyqhh/Accessibility-Service/internal/output"
)

// ScreenResult is the one-shot `screen` output: the current hierarchy as an
// ordered flat node list.
type ScreenResult struct {
	TS    int64            `yaml:"ts"    json:"ts"`
	Pkg   string           `yaml:"pkg"   json:"pkg"`
	Nodes []model.FlatNode `yaml:"nodes" json:"nodes"`
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Dump the current UI hierarchy as a flat node list",
	Long: `Capture the on-screen UI hierarchy once and print it as an ordered flat
list. IDs are assigned in breadth-first order per dump and are not stable
identifiers across dumps.`,
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	provider, err := newProvider(cmd)
	if err != nil {
		return err
	}
	root, pkg, err := provider.Hierarchy.Dump(cmd.Context())
	if err != nil {
		return err
	}
	return output.Print(ScreenResult{
		TS:    time.Now().UnixMilli(),
		Pkg:   pkg,
		Nodes: model.Flatten(root),
	})
}
