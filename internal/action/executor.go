// Package action executes device actions through two substitutable paths:
// the privileged shell first, then unprivileged gesture/global-action
// fallbacks. Every outcome is a plain boolean; platform faults never escape.
package action

import (
	"context"
	"strconv"
	"time"

	"github.com/wsyqhh/Accessibility-Service/internal/model"
	"github.com/wsyqhh/Accessibility-Service/internal/platform"
)

const (
	// Gesture stroke durations are clamped to what the platform accepts.
	minGestureDuration = 50 * time.Millisecond
	maxGestureDuration = 10 * time.Second

	// defaultExtraWait is added to a stroke's duration when waiting for the
	// asynchronous completion callback, so a dropped callback cannot hang a
	// request forever.
	defaultExtraWait = 1500 * time.Millisecond

	// DefaultSwipeDuration applies when a swipe request carries no duration.
	DefaultSwipeDuration = 300 * time.Millisecond
)

// Executor runs tap/swipe/key/click actions. Path A is the privileged Shell;
// Path B is gesture injection (tap/swipe) or a global action (key). A nil
// field means that path is unavailable and simply fails. Each path is tried
// at most once, with no retries or queuing.
type Executor struct {
	Shell     platform.Shell
	Gestures  platform.GestureDispatcher
	Global    platform.GlobalActions
	Activator platform.Activator

	// ExtraWait overrides the slack added to gesture completion waits.
	// Zero means defaultExtraWait.
	ExtraWait time.Duration
}

// Tap presses at (x, y).
func (e *Executor) Tap(ctx context.Context, x, y int) bool {
	if e.runShell(ctx, "input", "tap", strconv.Itoa(x), strconv.Itoa(y)) {
		return true
	}
	// Zero-length stroke at the tap point.
	return e.dispatchGesture(platform.Stroke{
		X1: x, Y1: y, X2: x, Y2: y,
		Duration: minGestureDuration,
	})
}

// Swipe drags from (x1, y1) to (x2, y2) over dur, clamped to the platform's
// accepted gesture range.
func (e *Executor) Swipe(ctx context.Context, x1, y1, x2, y2 int, dur time.Duration) bool {
	dur = clampDuration(dur)
	if e.runShell(ctx, "input", "swipe",
		strconv.Itoa(x1), strconv.Itoa(y1),
		strconv.Itoa(x2), strconv.Itoa(y2),
		strconv.Itoa(int(dur.Milliseconds()))) {
		return true
	}
	return e.dispatchGesture(platform.Stroke{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		Duration: dur,
	})
}

// keyBinding maps a named key to its shell keycode and unprivileged
// fallback. An empty fallback means the key is unsupported without
// privilege.
type keyBinding struct {
	keycode  string
	fallback platform.GlobalAction // "" = none
}

var keyBindings = map[string]keyBinding{
	"home":  {"KEYCODE_HOME", platform.GlobalHome},
	"back":  {"KEYCODE_BACK", platform.GlobalBack},
	"enter": {"KEYCODE_ENTER", ""},
	// No global menu action exists; recents is the documented approximation.
	"menu": {"KEYCODE_MENU", platform.GlobalRecents},
}

// Key presses a named key. Unrecognized names fail without attempting
// either path. "enter" has no unprivileged fallback and always fails
// without the shell.
func (e *Executor) Key(ctx context.Context, name string) bool {
	binding, ok := keyBindings[name]
	if !ok {
		return false
	}
	if e.runShell(ctx, "input", "keyevent", binding.keycode) {
		return true
	}
	if binding.fallback == "" {
		return false
	}
	return e.performGlobal(binding.fallback)
}

// ClickLabel finds the first node in breadth-first order whose label matches
// text, resolves its clickable ancestor, and activates it. Returns false for
// a nil root, no match, or refused activation; none of these are errors.
func (e *Executor) ClickLabel(ctx context.Context, root *model.Node, text string) bool {
	match := model.FindByLabel(root, text)
	if match == nil || e.Activator == nil {
		return false
	}
	target := model.ResolveClickable(match)
	ok := false
	swallow(func() {
		ok = e.Activator.Activate(ctx, target)
	})
	return ok
}

// runShell is Path A: run the privileged command, success = zero exit.
func (e *Executor) runShell(ctx context.Context, args ...string) bool {
	if e.Shell == nil {
		return false
	}
	ok := false
	swallow(func() {
		ok = e.Shell.Run(ctx, args...) == nil
	})
	return ok
}

// dispatchGesture is Path B for tap/swipe: submit the stroke and block until
// the completion callback, cancellation, or the deadline.
func (e *Executor) dispatchGesture(stroke platform.Stroke) bool {
	if e.Gestures == nil {
		return false
	}
	var (
		outcomes <-chan platform.GestureOutcome
		err      error
	)
	swallow(func() {
		outcomes, err = e.Gestures.Dispatch(stroke)
	})
	if err != nil || outcomes == nil {
		return false
	}

	timer := time.NewTimer(stroke.Duration + e.extraWait())
	defer timer.Stop()
	select {
	case outcome, ok := <-outcomes:
		return ok && outcome == platform.GestureCompleted
	case <-timer.C:
		// No callback arrived in the window; treat as failed, never hang.
		return false
	}
}

func (e *Executor) performGlobal(action platform.GlobalAction) bool {
	if e.Global == nil {
		return false
	}
	ok := false
	swallow(func() {
		ok = e.Global.Perform(action)
	})
	return ok
}

func (e *Executor) extraWait() time.Duration {
	if e.ExtraWait > 0 {
		return e.ExtraWait
	}
	return defaultExtraWait
}

func clampDuration(dur time.Duration) time.Duration {
	if dur < minGestureDuration {
		return minGestureDuration
	}
	if dur > maxGestureDuration {
		return maxGestureDuration
	}
	return dur
}

// swallow runs f and absorbs any panic from a platform backend. The
// executor's contract is ok=true/false, never a fault.
func swallow(f func()) {
	defer func() { _ = recover() }()
	f()
}
