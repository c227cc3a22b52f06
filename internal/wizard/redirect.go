package wizard

import (
	"sync"
	"time"
)

// RedirectTimer auto-navigates away from the success screen after a fixed
// delay while ticking a countdown for display. Both schedules live in one
// goroutine and are cancelled together, exactly once, so neither can fire
// after teardown.
type RedirectTimer struct {
	navigate func()
	done     chan struct{}
	once     sync.Once
	navOnce  sync.Once
}

// StartRedirect begins the countdown. onTick receives the remaining whole
// seconds once per second; navigate runs when the delay elapses. Either
// callback may be nil.
func StartRedirect(delay time.Duration, onTick func(remaining int), navigate func()) *RedirectTimer {
	return startRedirect(delay, time.Second, onTick, navigate)
}

// startRedirect is the test seam: the tick interval scales down with the
// delay so tests do not wait wall-clock seconds.
func startRedirect(delay, tick time.Duration, onTick func(remaining int), navigate func()) *RedirectTimer {
	t := &RedirectTimer{
		navigate: navigate,
		done:     make(chan struct{}),
	}
	go t.run(delay, tick, onTick)
	return t
}

func (t *RedirectTimer) run(delay, tick time.Duration, onTick func(remaining int)) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	deadline := time.NewTimer(delay)
	defer deadline.Stop()

	remaining := int(delay / tick)
	for {
		select {
		case <-ticker.C:
			if remaining > 0 {
				remaining--
			}
			if onTick != nil {
				onTick(remaining)
			}
		case <-deadline.C:
			t.once.Do(func() { close(t.done) })
			t.fire()
			return
		case <-t.done:
			return
		}
	}
}

// Cancel tears the timer down. Safe to call more than once; after the first
// call neither callback fires again.
func (t *RedirectTimer) Cancel() {
	t.once.Do(func() { close(t.done) })
}

// GoNow navigates immediately and invalidates the pending schedules.
func (t *RedirectTimer) GoNow() {
	t.Cancel()
	t.fire()
}

// fire runs navigate at most once over the timer's lifetime, so a GoNow
// racing the deadline cannot navigate twice.
func (t *RedirectTimer) fire() {
	if t.navigate == nil {
		return
	}
	t.navOnce.Do(t.navigate)
}
