package tui

import (
	"context"
	"io"
	"sync"

	"github.com/thruflo/abloop/internal/loop"
)

// DefaultWidth is used when the terminal size cannot be read.
const DefaultWidth = 48

// App redraws the status view whenever the controller state changes.
type App struct {
	terminal *Terminal
	view     *StatusView
	bell     bool

	mu    sync.Mutex
	state loop.State
}

// AppOptions configures an App.
type AppOptions struct {
	Application string // Player application shown in the title
	Bell        bool   // Ring the terminal bell on every loop-back
}

// NewApp creates an App drawing on t.
func NewApp(t *Terminal, opts AppOptions) *App {
	return &App{
		terminal: t,
		view:     &StatusView{App: opts.Application},
		bell:     opts.Bell,
	}
}

// NewNopApp creates an App that discards all output.
func NewNopApp() *App {
	return NewApp(NewTerminal(io.Discard), AppOptions{})
}

// State returns the last rendered state.
func (a *App) State() loop.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Render clears the screen and draws st.
func (a *App) Render(st loop.State) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = st
	width, _, err := a.terminal.Size()
	if err != nil || width <= 0 {
		width = DefaultWidth
	}
	width = min(width, 72)

	a.terminal.Clear()
	a.terminal.HideCursor()
	a.terminal.WriteLines(a.view.Render(st, width))
}

// Run renders every event until events is closed or ctx is done.
func (a *App) Run(ctx context.Context, events <-chan loop.Event) error {
	defer a.terminal.ShowCursor()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == loop.EventLoopBack && a.bell {
				a.terminal.RingBell()
			}
			a.Render(ev.State)
		}
	}
}
