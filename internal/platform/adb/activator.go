package adb

import (
	"context"
	"strconv"

	"github.com/wsyqhh/Accessibility-Service/internal/model"
)

// Activator clicks hierarchy nodes by tapping the center of their bounds
// through the shell. adb has no direct node-level activate action, so a
// coordinate tap is the closest equivalent.
type Activator struct {
	shell *Shell
}

// NewActivator returns an Activator backed by shell.
func NewActivator(shell *Shell) *Activator {
	return &Activator{shell: shell}
}

// Activate taps the node's center. Returns false for nodes with empty
// bounds or when the tap command fails.
func (a *Activator) Activate(ctx context.Context, n *model.Node) bool {
	if n == nil {
		return false
	}
	if n.Bounds[2] <= n.Bounds[0] || n.Bounds[3] <= n.Bounds[1] {
		return false
	}
	x, y := n.Center()
	err := a.shell.Run(ctx, "input", "tap", strconv.Itoa(x), strconv.Itoa(y))
	return err == nil
}
