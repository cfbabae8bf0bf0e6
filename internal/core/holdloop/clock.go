package holdloop

import (
	"sync"
	"time"
)

// Handle cancels a repeating timer registration.
type Handle interface {
	Stop()
}

// Clock provides the time source and the repeating timer driving ticks.
type Clock interface {
	Now() time.Time
	Every(interval time.Duration, fn func()) Handle
}

// SystemClock is the default Clock backed by time.Ticker.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Every(interval time.Duration, fn func()) Handle {
	handle := &tickerHandle{stopCh: make(chan struct{})}
	go handle.run(interval, fn)
	return handle
}

type tickerHandle struct {
	once   sync.Once
	stopCh chan struct{}
}

func (handle *tickerHandle) run(interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-handle.stopCh:
			return
		case <-ticker.C:
			fn()
		}
	}
}

func (handle *tickerHandle) Stop() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}

// ManualClock is a Clock that only moves when Advance is called. Timer
// callbacks run synchronously inside Advance, in due order.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock    *ManualClock
	interval time.Duration
	next     time.Time
	fn       func()
	stopped  bool
}

// NewManualClock creates a manual clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (clock *ManualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// Every registers fn to run each interval of manual time.
func (clock *ManualClock) Every(interval time.Duration, fn func()) Handle {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	timer := &manualTimer{
		clock:    clock,
		interval: interval,
		next:     clock.now.Add(interval),
		fn:       fn,
	}
	clock.timers = append(clock.timers, timer)
	return timer
}

// Advance moves time forward by delta, firing every timer that comes due.
func (clock *ManualClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(delta)
	for {
		timer := clock.nextDueLocked(target)
		if timer == nil {
			break
		}
		clock.now = timer.next
		timer.next = timer.next.Add(timer.interval)
		clock.mu.Unlock()
		timer.fn()
		clock.mu.Lock()
	}
	clock.now = target
	clock.mu.Unlock()
}

// Active returns the number of registrations that have not been stopped.
func (clock *ManualClock) Active() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.timers)
}

func (clock *ManualClock) nextDueLocked(target time.Time) *manualTimer {
	var due *manualTimer
	for _, timer := range clock.timers {
		if timer.next.After(target) {
			continue
		}
		if due == nil || timer.next.Before(due.next) {
			due = timer
		}
	}
	return due
}

func (timer *manualTimer) Stop() {
	clock := timer.clock
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if timer.stopped {
		return
	}
	timer.stopped = true
	for index, candidate := range clock.timers {
		if candidate == timer {
			clock.timers = append(clock.timers[:index], clock.timers[index+1:]...)
			break
		}
	}
}
