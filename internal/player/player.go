// Package player controls the external media player whose playback is looped.
//
// Every call may fail: the player may not be running, may have no current
// track, or may be slow to answer. Callers treat failures as "skip this
// operation" and bound each call with a context deadline.
package player

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable reports that the player could not answer, typically because
// it is not running or has no current track.
var ErrUnavailable = errors.New("player unavailable")

// Player queries and controls playback position.
type Player interface {
	// Position returns the current playback position in seconds.
	Position(ctx context.Context) (float64, error)
	// SetPosition moves playback to seconds.
	SetPosition(ctx context.Context, seconds float64) error
	// Seek moves playback by offset seconds, clamping the target to zero.
	Seek(ctx context.Context, offset float64) error
	// IsPlaying reports whether the player is currently playing.
	IsPlaying(ctx context.Context) (bool, error)
	// Duration returns the length of the current track in seconds.
	Duration(ctx context.Context) (float64, error)
}

// SeekBy implements Seek as a position read followed by a write. The target
// is clamped so that seeking back past the start lands on zero.
func SeekBy(ctx context.Context, p Player, offset float64) error {
	pos, err := p.Position(ctx)
	if err != nil {
		return fmt.Errorf("failed to read position: %w", err)
	}
	return p.SetPosition(ctx, max(0, pos+offset))
}
