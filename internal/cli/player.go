package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thruflo/abloop/internal/config"
	"github.com/thruflo/abloop/internal/marker"
	"github.com/thruflo/abloop/internal/player"
)

// newPlayer builds the player for a config.
// It can be overridden in tests.
var newPlayer = func(cfg *config.Config) player.Player {
	return player.NewAppleScript(cfg.Player.App, nil)
}

var playerSeek string

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Check that the media player can be controlled",
	Long: `Queries the configured player for its playback state, position and
track duration. With --seek, moves playback to the given position first.`,
	Args: cobra.NoArgs,
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerSeek, "seek", "", "move playback to a position (MM:SS.CC or seconds)")
	rootCmd.AddCommand(playerCmd)
}

func runPlayer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := newPlayer(cfg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if playerSeek != "" {
		tc, err := marker.ParseTimecode(playerSeek)
		if err != nil {
			return err
		}
		if err := withTimeout(ctx, cfg.Player.Timeout, func(ctx context.Context) error {
			return p.SetPosition(ctx, tc.TotalSeconds())
		}); err != nil {
			return fmt.Errorf("failed to seek %s: %w", cfg.Player.App, err)
		}
	}

	var (
		playing  bool
		position float64
		duration float64
	)
	err = withTimeout(ctx, cfg.Player.Timeout, func(ctx context.Context) error {
		var err error
		if playing, err = p.IsPlaying(ctx); err != nil {
			return err
		}
		if position, err = p.Position(ctx); err != nil {
			return err
		}
		duration, err = p.Duration(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("cannot control %s: %w", cfg.Player.App, err)
	}

	state := "paused"
	if playing {
		state = "playing"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Player:    %s\n", cfg.Player.App)
	fmt.Fprintf(out, "State:     %s\n", state)
	fmt.Fprintf(out, "Position:  %s\n", marker.FormatSeconds(position))
	fmt.Fprintf(out, "Duration:  %s\n", marker.FormatSeconds(duration))
	return nil
}

func withTimeout(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}
