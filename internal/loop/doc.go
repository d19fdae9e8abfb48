// Package loop runs the A-B loop controller.
//
// A single goroutine (Controller.Run) owns the marker state and the hotkey
// binding set. Everything that touches them arrives there as a message:
//   - trigger ids fired by the hotkey Source
//   - poll ticks that re-check the playback position against the loop end
//   - calls made through the Controller's public methods
//   - completions of player calls
//
// Player calls never run on the owner goroutine. Each one runs in its own
// goroutine under a timeout and posts its result back, so a slow player
// cannot hold up triggers for other bindings. Results are applied to the
// state as it is when they arrive.
package loop
