package holdloop

import (
	"log/slog"

	"holdpress/internal/core/gesture"
)

// Handlers are the terminal callbacks of a hold control. OnHeld is required.
type Handlers struct {
	OnHeld   func()
	OnTapped func()
}

// Dispatcher invokes the callback matching a completed outcome.
type Dispatcher struct {
	handlers Handlers
	logger   *slog.Logger
}

func newDispatcher(handlers Handlers, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{handlers: handlers, logger: logger}
}

// HandlesTap reports whether a tap has somewhere to go.
func (dispatcher *Dispatcher) HandlesTap() bool {
	return dispatcher.handlers.OnTapped != nil
}

// Dispatch runs the callback for outcome and reports whether one ran.
// A panicking callback is logged and swallowed.
func (dispatcher *Dispatcher) Dispatch(outcome gesture.Outcome) (invoked bool) {
	var handler func()
	switch outcome {
	case gesture.OutcomeHeld:
		handler = dispatcher.handlers.OnHeld
	case gesture.OutcomeTapped:
		handler = dispatcher.handlers.OnTapped
	}
	if handler == nil {
		return false
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			dispatcher.logger.Error("gesture callback panicked", "outcome", outcome.String(), "panic", recovered)
		}
	}()
	invoked = true
	handler()
	return invoked
}
