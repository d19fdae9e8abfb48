package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thruflo/abloop/internal/logging"
	"github.com/thruflo/abloop/internal/tui"
)

var runBell bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the A-B loop controller",
	Long: `Starts the controller in the terminal. Press the bound keys to seek,
set markers A and B, toggle looping and clear the markers. While looping,
playback returns to the loop start whenever it reaches the loop end.

Tab turns the hotkeys off and on. [ and ] move marker A back or forward by
a tenth of a second, { and } do the same for marker B. These keys are
reserved and cannot be bound.

Press q or ctrl+c to quit. Run "abloop bindings" to list the keys.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runBell, "bell", false, "ring the terminal bell on every loop back")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	terminal := tui.NewTerminal(cmd.OutOrStdout())
	if !terminal.IsTerminal() {
		return errors.New("abloop run needs an interactive terminal")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	src := tui.NewKeySource()
	ctrl, stop, err := startController(ctx, cfg, newPlayer(cfg), src)
	if err != nil {
		return err
	}
	defer stop()

	events, unsubscribe, err := ctrl.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to controller: %w", err)
	}
	defer unsubscribe()

	if err := terminal.EnterRaw(); err != nil {
		return err
	}
	defer terminal.ExitRaw()

	log := logging.With("player", cfg.Player.App)
	log.Info("controller started", "poll_interval", cfg.PollInterval, "hotkeys", cfg.Hotkeys.Enabled)

	app := tui.NewApp(terminal, tui.AppOptions{Application: cfg.Player.App, Bell: runBell})
	appDone := make(chan error, 1)
	go func() { appDone <- app.Run(ctx, events) }()

	go tui.RunControls(ctx, ctrl, src.Controls())

	keyErr := make(chan error, 1)
	go func() { keyErr <- src.Run(ctx, tui.NewKeyReader(terminal)) }()

	select {
	case <-ctx.Done():
	case <-src.Quit():
		if err := <-keyErr; err != nil {
			log.Error("key input failed", "error", err)
		}
	}

	stop()
	<-appDone
	terminal.Clear()

	st := app.State()
	log.Info("controller stopped",
		"dispatched", st.Stats.Dispatched,
		"loop_backs", st.Stats.LoopBacks,
		"player_failures", st.Stats.PlayerFailures)
	return nil
}
