package platform

import "time"

// Stroke is a single-pointer gesture path. A tap is a zero-length stroke
// (both points equal); a swipe spans the two points over Duration.
type Stroke struct {
	X1, Y1   int
	X2, Y2   int
	Duration time.Duration
}

// GestureOutcome is the platform's asynchronous verdict on a dispatched
// stroke.
type GestureOutcome int

const (
	GestureCancelled GestureOutcome = iota
	GestureCompleted
)

// GlobalAction names a coordinate-free platform UI action.
type GlobalAction string

const (
	GlobalHome    GlobalAction = "home"
	GlobalBack    GlobalAction = "back"
	GlobalRecents GlobalAction = "recents"
)

// ScreenshotOptions configures a screen capture.
type ScreenshotOptions struct {
	Format  string  // "png" or "jpg"
	Quality int     // JPEG quality 1-100 (ignored for PNG)
	Scale   float64 // Scale factor (0, 1]; 0 means no scaling
}
