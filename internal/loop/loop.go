package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/thruflo/abloop/internal/hotkey"
	"github.com/thruflo/abloop/internal/logging"
	"github.com/thruflo/abloop/internal/marker"
	"github.com/thruflo/abloop/internal/player"
)

// Default timings.
const (
	DefaultPollInterval      = 100 * time.Millisecond
	DefaultPlayerTimeout     = 1500 * time.Millisecond
	DefaultHighlightDuration = 500 * time.Millisecond
)

var (
	// ErrStopped is returned by Controller methods after Run has returned.
	ErrStopped = errors.New("controller stopped")
	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("controller already running")
)

// Options holds configuration for creating a Controller.
type Options struct {
	Player player.Player
	Source hotkey.Source

	// Triggers overrides the keys of the default bindings by id.
	Triggers map[string]hotkey.Trigger

	PollInterval      time.Duration // Loop-back check period
	PlayerTimeout     time.Duration // Bound on each player call
	HighlightDuration time.Duration // How long LastTriggered stays set

	// Ticks replaces the poll ticker when set. Used by tests to drive polls.
	Ticks <-chan time.Time
}

// Controller owns the marker state and the binding set, dispatches fired
// triggers and loops playback between the markers.
type Controller struct {
	player  player.Player
	source  hotkey.Source
	markers *marker.Markers
	set     *hotkey.Set

	pollInterval      time.Duration
	playerTimeout     time.Duration
	highlightDuration time.Duration
	ticks             <-chan time.Time

	mailbox chan func()
	done    chan struct{}
	started atomic.Bool
	baseCtx context.Context

	// Owned by the Run goroutine.
	pollInFlight  bool
	lastTriggered string
	highlights    map[string]*highlight
	subscribers   map[int]chan Event
	nextSubID     int
	stats         Stats
}

type highlight struct {
	timer *time.Timer
	gen   int
}

// New creates a Controller and registers the default bindings with the
// source. Call Run to start processing.
func New(opts Options) *Controller {
	c := &Controller{
		player:            opts.Player,
		source:            opts.Source,
		markers:           marker.New(),
		set:               hotkey.NewSet(opts.Source),
		pollInterval:      opts.PollInterval,
		playerTimeout:     opts.PlayerTimeout,
		highlightDuration: opts.HighlightDuration,
		ticks:             opts.Ticks,
		mailbox:           make(chan func(), 64),
		done:              make(chan struct{}),
		baseCtx:           context.Background(),
		highlights:        make(map[string]*highlight),
		subscribers:       make(map[int]chan Event),
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.playerTimeout <= 0 {
		c.playerTimeout = DefaultPlayerTimeout
	}
	if c.highlightDuration <= 0 {
		c.highlightDuration = DefaultHighlightDuration
	}

	c.set.RegisterDefaultBindings(opts.Triggers)
	return c
}

// Run processes triggers, poll ticks and calls until ctx is cancelled.
// Subscriber channels are closed when it returns.
func (c *Controller) Run(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	c.baseCtx = ctx
	defer c.shutdown()

	ticks := c.ticks
	if ticks == nil {
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	triggered := c.source.Triggered()

	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-triggered:
			if !ok {
				logging.Warn("hotkey source closed")
				triggered = nil
				continue
			}
			c.dispatch(id)
		case <-ticks:
			c.poll()
		case fn := <-c.mailbox:
			fn()
		}
	}
}

func (c *Controller) shutdown() {
	for _, h := range c.highlights {
		h.timer.Stop()
	}
	for id, ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, id)
	}
	close(c.done)
}

// post queues fn to run on the owner goroutine. It drops fn once the
// controller has stopped.
func (c *Controller) post(fn func()) {
	select {
	case c.mailbox <- fn:
	case <-c.done:
	}
}

// do runs fn on the owner goroutine and waits for it to finish.
func (c *Controller) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		fn()
		close(finished)
	}

	select {
	case c.mailbox <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrStopped
	}
}

// call runs fn against the player in its own goroutine, bounded by the
// player timeout, and posts then(err) back to the owner goroutine.
func (c *Controller) call(fn func(ctx context.Context) error, then func(err error)) {
	ctx, cancel := context.WithTimeout(c.baseCtx, c.playerTimeout)
	go func() {
		defer cancel()
		err := fn(ctx)
		c.post(func() {
			if err != nil {
				c.stats.PlayerFailures++
			}
			then(err)
		})
	}()
}

// dispatch executes the effect of the binding with the given id.
// Unknown ids are ignored: the source may still deliver a trigger for a
// binding that was just removed.
func (c *Controller) dispatch(id string) {
	b, ok := c.set.Lookup(id)
	if !ok {
		c.stats.UnknownTriggers++
		logging.Debug("trigger for unknown binding", "id", id)
		return
	}
	c.stats.Dispatched++
	c.markTriggered(id)

	switch b.Action {
	case hotkey.ActionRewind, hotkey.ActionForward:
		offset := b.Offset()
		c.call(func(ctx context.Context) error {
			return c.player.Seek(ctx, offset)
		}, func(err error) {
			if err != nil {
				logging.Warn("seek skipped", "error", err, "id", id, "offset", offset)
			}
		})

	case hotkey.ActionSetMarkerA:
		c.readPosition(id, func(pos float64) {
			c.markers.SetMarkerA(pos)
			c.publish(EventMarkers)
		})

	case hotkey.ActionSetMarkerB:
		c.readPosition(id, func(pos float64) {
			c.markers.SetMarkerB(pos)
			c.publish(EventMarkers)
		})

	case hotkey.ActionToggleLoop:
		c.markers.ToggleLoop()
		c.publish(EventMarkers)

	case hotkey.ActionClearMarkers:
		c.markers.ClearMarkers()
		c.publish(EventMarkers)
	}
}

func (c *Controller) readPosition(id string, apply func(pos float64)) {
	var pos float64
	c.call(func(ctx context.Context) error {
		p, err := c.player.Position(ctx)
		pos = p
		return err
	}, func(err error) {
		if err != nil {
			logging.Warn("marker not set", "error", err, "id", id)
			return
		}
		apply(pos)
	})
}

// poll checks the playback position against the loop end and seeks back to
// the loop start when it has been reached. Only one check is in flight at a
// time; ticks that arrive meanwhile are skipped.
func (c *Controller) poll() {
	if !c.markers.Looping() || c.pollInFlight {
		return
	}
	c.pollInFlight = true

	var pos float64
	c.call(func(ctx context.Context) error {
		p, err := c.player.Position(ctx)
		pos = p
		return err
	}, func(err error) {
		c.stats.Polls++
		if err != nil {
			c.pollInFlight = false
			logging.Debug("poll skipped", "error", err)
			return
		}

		start, ok := c.markers.LoopStart()
		if !ok || !c.markers.ShouldLoopBack(pos) {
			c.pollInFlight = false
			return
		}

		c.stats.LoopBacks++
		c.publish(EventLoopBack)
		c.call(func(ctx context.Context) error {
			return c.player.SetPosition(ctx, start)
		}, func(err error) {
			c.pollInFlight = false
			if err != nil {
				logging.Warn("loop back skipped", "error", err, "position", pos, "start", start)
			}
		})
	})
}

// markTriggered sets the highlighted binding and schedules its clear. A newer
// trigger for the same id replaces the pending clear.
func (c *Controller) markTriggered(id string) {
	c.lastTriggered = id

	h, ok := c.highlights[id]
	if !ok {
		h = &highlight{}
		c.highlights[id] = h
	} else if h.timer != nil {
		h.timer.Stop()
	}
	h.gen++
	gen := h.gen
	h.timer = time.AfterFunc(c.highlightDuration, func() {
		c.post(func() { c.clearTriggered(id, gen) })
	})

	c.publish(EventTriggered)
}

func (c *Controller) clearTriggered(id string, gen int) {
	h, ok := c.highlights[id]
	if !ok || h.gen != gen {
		return
	}
	delete(c.highlights, id)
	if c.lastTriggered == id {
		c.lastTriggered = ""
		c.publish(EventTriggered)
	}
}
