// Package platform declares the device collaborator interfaces: the
// privileged command channel, gesture injection, global UI actions, node
// activation, hierarchy capture, and screenshots. Backends live in
// subpackages and register themselves via init().
package platform

import (
	"context"

	"github.com/wsyqhh/Accessibility-Service/internal/model"
)

// Shell is the privileged command channel. Run returns nil exactly when the
// command reported a zero exit status.
type Shell interface {
	Run(ctx context.Context, args ...string) error
}

// GestureDispatcher injects a synthetic single-stroke gesture without
// privilege. Dispatch returns a channel that delivers exactly one outcome
// when the platform reports completion or cancellation; the channel may
// never fire if the platform drops the callback, so callers must bound
// their wait.
type GestureDispatcher interface {
	Dispatch(stroke Stroke) (<-chan GestureOutcome, error)
}

// GlobalActions invokes the platform's small fixed set of coordinate-free UI
// actions. Perform reports whether the platform accepted the action.
type GlobalActions interface {
	Perform(action GlobalAction) bool
}

// Activator issues the platform "activate" (click) action on a hierarchy
// node and reports whether the platform accepted it.
type Activator interface {
	Activate(ctx context.Context, n *model.Node) bool
}

// HierarchySource supplies UI hierarchy roots. Dump captures the current
// hierarchy once; Watch pushes a publish call for every observed change
// until ctx is cancelled.
type HierarchySource interface {
	Dump(ctx context.Context) (*model.Node, string, error)
	Watch(ctx context.Context, publish func(root *model.Node, pkg string)) error
}

// Screenshotter captures the device screen.
type Screenshotter interface {
	Capture(ctx context.Context, opts ScreenshotOptions) ([]byte, error)
}
