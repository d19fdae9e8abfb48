package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/thruflo/abloop/internal/config"
	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/logging"
	"github.com/thruflo/abloop/internal/loop"
	"github.com/thruflo/abloop/internal/player"
)

// startController creates a controller for cfg, starts it and applies the
// configured extra bindings and hotkey state. The returned stop func cancels
// the controller and waits for it to exit. It is safe to call more than once.
func startController(ctx context.Context, cfg *config.Config, p player.Player, src hotkey.Source) (*loop.Controller, func(), error) {
	ctrl := loop.New(loop.Options{
		Player:        p,
		Source:        src,
		Triggers:      cfg.TriggerOverrides(),
		PollInterval:  cfg.PollInterval,
		PlayerTimeout: cfg.Player.Timeout,
	})

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- ctrl.Run(ctx) }()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			if err := <-done; err != nil {
				logging.Error("controller stopped with error", "error", err)
			}
		})
	}

	if err := applyConfig(ctx, ctrl, cfg); err != nil {
		stop()
		return nil, nil, err
	}
	return ctrl, stop, nil
}

// applyConfig adds the extra bindings from cfg and disables hotkeys when
// configured.
func applyConfig(ctx context.Context, ctrl *loop.Controller, cfg *config.Config) error {
	for i, extra := range cfg.Hotkeys.Extra {
		action, err := hotkey.ParseAction(extra.Action)
		if err != nil {
			return fmt.Errorf("hotkeys.extra[%d]: %w", i, err)
		}
		b, err := ctrl.AddBinding(ctx, action, hotkey.Trigger(extra.Key))
		if err != nil {
			return fmt.Errorf("failed to add binding: %w", err)
		}
		if extra.Seconds > 0 && action.IsSeek() {
			if err := ctrl.SetMagnitude(ctx, b.ID, extra.Seconds); err != nil {
				return fmt.Errorf("failed to set magnitude: %w", err)
			}
		}
		logging.WithFields(map[string]interface{}{
			"id":     b.ID,
			"action": action.String(),
		}).Debug("extra binding added", "key", extra.Key)
	}

	if !cfg.Hotkeys.Enabled {
		if err := ctrl.SetHotkeysEnabled(ctx, false); err != nil {
			return fmt.Errorf("failed to disable hotkeys: %w", err)
		}
	}
	return nil
}
