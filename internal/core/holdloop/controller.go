package holdloop

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"holdpress/internal/core/gesture"
	"holdpress/internal/core/model"
	"holdpress/internal/core/progress"
	"holdpress/internal/logging"
)

// Options contains runtime collaborators for a Controller.
type Options struct {
	Clock  Clock
	Logger *slog.Logger
}

// Controller is the state machine behind one hold control. It samples the
// press on a repeating timer, classifies it, and fires at most one terminal
// callback per press cycle.
type Controller struct {
	mu         sync.Mutex
	config     model.GestureConfig
	clock      Clock
	logger     *slog.Logger
	dispatcher *Dispatcher
	animator   *progress.Animator
	growthEdge *gesture.EdgeTrigger
	running    bool
	closed     bool
	elapsed    time.Duration
	token      uint64
	loop       Handle
	stats      Stats
	events     []chan Event
}

// New creates a Controller. It fails with model.ErrInvalidConfig when the
// config is invalid or OnHeld is missing.
func New(config model.GestureConfig, handlers Handlers, options Options) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if handlers.OnHeld == nil {
		return nil, fmt.Errorf("%w: held handler is required", model.ErrInvalidConfig)
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	logger := logging.OrDiscard(options.Logger)

	return &Controller{
		config:     config,
		clock:      options.Clock,
		logger:     logger,
		dispatcher: newDispatcher(handlers, logger),
		animator:   progress.NewAnimator(config),
		growthEdge: gesture.NewEdgeTrigger(config.TapThreshold),
	}, nil
}

// Config returns the immutable gesture config.
func (controller *Controller) Config() model.GestureConfig {
	return controller.config
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	if controller.closed {
		close(ch)
	} else {
		controller.events = append(controller.events, ch)
	}
	controller.mu.Unlock()
	return ch
}

// PressBegan starts a press cycle. It is ignored while a cycle is running.
func (controller *Controller) PressBegan() {
	controller.mu.Lock()
	if controller.closed || controller.running {
		reason := "already running"
		if controller.closed {
			reason = "closed"
		}
		controller.emitLocked(Event{
			Type:    EventPressIgnored,
			Elapsed: controller.elapsed,
			Message: "press began: " + reason,
			At:      controller.clock.Now(),
		})
		controller.mu.Unlock()
		controller.logger.Debug("press began ignored", "reason", reason)
		return
	}

	now := controller.clock.Now()
	controller.running = true
	controller.elapsed = 0
	controller.token++
	token := controller.token
	controller.growthEdge.Reset()
	controller.animator.Begin(now)
	controller.loop = controller.clock.Every(controller.config.TickInterval, func() {
		controller.tick(token)
	})

	controller.emitLocked(Event{
		Type:     EventPressBegan,
		Phase:    gesture.PhaseWithinTapWindow,
		Snapshot: controller.animator.Snapshot(now, 0),
		At:       now,
	})
	controller.mu.Unlock()
}

// PressEnded finishes the running cycle, both for a normal release and a
// cancellation. It is ignored while idle.
func (controller *Controller) PressEnded() {
	controller.mu.Lock()
	if !controller.running {
		controller.emitLocked(Event{
			Type:    EventPressIgnored,
			Message: "press ended: idle",
			At:      controller.clock.Now(),
		})
		controller.mu.Unlock()
		controller.logger.Debug("press ended ignored", "reason", "idle")
		return
	}

	now := controller.clock.Now()
	elapsed := controller.elapsed
	outcome := gesture.ReleaseOutcome(elapsed, controller.config, controller.dispatcher.HandlesTap())
	controller.finishLocked(now, elapsed, outcome)
	controller.mu.Unlock()

	controller.dispatch(outcome, elapsed)
}

// Snapshot returns the render values at the current instant.
func (controller *Controller) Snapshot() progress.Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.animator.Snapshot(controller.clock.Now(), controller.elapsed)
}

// Running reports whether a press cycle is active.
func (controller *Controller) Running() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.running
}

// Elapsed returns the sampled press time of the active cycle.
func (controller *Controller) Elapsed() time.Duration {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.elapsed
}

// Stats returns the completed cycle counters.
func (controller *Controller) Stats() Stats {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.stats
}

// ResetStats zeroes the completed cycle counters.
func (controller *Controller) ResetStats() {
	controller.mu.Lock()
	controller.stats = Stats{}
	controller.mu.Unlock()
}

// Close stops any running cycle without dispatching and closes observers.
// Later signals are ignored.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	if controller.running {
		controller.stopLoopLocked(controller.clock.Now())
	}
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) tick(token uint64) {
	controller.mu.Lock()
	if !controller.running || token != controller.token {
		controller.mu.Unlock()
		return
	}

	now := controller.clock.Now()
	controller.elapsed += controller.config.TickInterval
	elapsed := controller.elapsed

	if controller.growthEdge.Observe(elapsed) && controller.animator.Grow(now) {
		controller.emitLocked(Event{
			Type:     EventGrowthStarted,
			Phase:    gesture.PhaseGrowingPress,
			Elapsed:  elapsed,
			Snapshot: controller.animator.Snapshot(now, elapsed),
			At:       now,
		})
	}

	phase := gesture.Classify(elapsed, controller.config)
	if phase == gesture.PhaseHeldConfirmed {
		controller.finishLocked(now, elapsed, gesture.OutcomeHeld)
		controller.mu.Unlock()
		controller.dispatch(gesture.OutcomeHeld, elapsed)
		return
	}

	controller.emitLocked(Event{
		Type:     EventProgress,
		Phase:    phase,
		Elapsed:  elapsed,
		Snapshot: controller.animator.Snapshot(now, elapsed),
		At:       now,
	})
	controller.mu.Unlock()
}

// finishLocked resets the cycle to idle and publishes the outcome. The
// callback is dispatched by the caller after unlocking.
func (controller *Controller) finishLocked(now time.Time, elapsed time.Duration, outcome gesture.Outcome) {
	controller.stopLoopLocked(now)
	controller.stats.record(outcome)
	controller.emitLocked(Event{
		Type:     EventOutcome,
		Phase:    gesture.Classify(elapsed, controller.config),
		Outcome:  outcome,
		Elapsed:  elapsed,
		Snapshot: controller.animator.Snapshot(now, 0),
		At:       now,
	})
}

func (controller *Controller) stopLoopLocked(now time.Time) {
	if controller.loop != nil {
		controller.loop.Stop()
		controller.loop = nil
	}
	controller.animator.Release(now)
	controller.elapsed = 0
	controller.running = false
}

func (controller *Controller) dispatch(outcome gesture.Outcome, elapsed time.Duration) {
	controller.logger.Debug("press cycle finished", "outcome", outcome.String(), "elapsed", elapsed)
	controller.dispatcher.Dispatch(outcome)
}

func (controller *Controller) emitLocked(event Event) {
	events := append([]chan Event(nil), controller.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
