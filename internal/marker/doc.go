// Package marker holds the A-B loop state: two optional time markers on the
// current track, the looping flag, and the loop-back decision made against a
// reported playback position.
//
// Marker order does not matter. Either marker may be set first or later in
// time; loop boundaries are derived with min/max. All positions are seconds.
//
// Markers is not safe for concurrent use. It is owned by the single
// goroutine in internal/loop.
package marker
