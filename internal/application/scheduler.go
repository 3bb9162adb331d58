package application

import (
	"context"
	"sync"
	"time"

	"github.com/prenaissance/steam-desktop-authenticator/internal/ports"
)

// RefreshPeriod is the one-time-password validity window. Windows are
// anchored to the Unix epoch, never to when a view happened to mount, so the
// countdown always agrees with the external code generator.
const RefreshPeriod = 30 * time.Second

// RefreshCycle is the presentation-facing countdown state for the current
// window.
type RefreshCycle struct {
	RemainingSeconds int
	ProgressPercent  float64
}

// Scheduler keeps a countdown/progress pair aligned to fixed epoch-anchored
// windows and invokes the refresh callback exactly once per window boundary.
//
// Boundary detection compares the newly computed progress with the previous
// one: progress only ever grows at a rollover, so an increase is the signal
// to refetch. Missed ticks (the host was suspended, the clock jumped) are
// harmless: the next tick re-derives the true window from wall-clock time.
type Scheduler struct {
	clock       ports.Clock
	granularity time.Duration
	onRefresh   func()

	mu           sync.Mutex
	lastProgress float64
	cycle        RefreshCycle
	cancel       context.CancelFunc
	done         chan struct{}
}

// NewScheduler builds a stopped scheduler. granularity <= 0 defaults to one
// second; finer granularity only smooths the progress value, it cannot move
// window boundaries.
func NewScheduler(clock ports.Clock, granularity time.Duration, onRefresh func()) *Scheduler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if granularity <= 0 {
		granularity = time.Second
	}
	return &Scheduler{
		clock:        clock,
		granularity:  granularity,
		onRefresh:    onRefresh,
		lastProgress: 100,
	}
}

// Tick recomputes the cycle from the clock and fires the refresh callback if
// a window boundary was crossed since the previous tick. Safe to call from a
// driving loop or directly from a rendering tick.
func (s *Scheduler) Tick() RefreshCycle {
	periodMs := RefreshPeriod.Milliseconds()
	elapsedMs := s.clock.Now().UnixMilli() % periodMs
	remainingMs := periodMs - elapsedMs
	progress := float64(remainingMs) / float64(periodMs) * 100

	cycle := RefreshCycle{
		RemainingSeconds: int((remainingMs + 999) / 1000),
		ProgressPercent:  progress,
	}

	s.mu.Lock()
	crossed := progress > s.lastProgress
	s.lastProgress = progress
	s.cycle = cycle
	callback := s.onRefresh
	s.mu.Unlock()

	if crossed && callback != nil {
		callback()
	}
	return cycle
}

// Cycle returns the most recently computed countdown state.
func (s *Scheduler) Cycle() RefreshCycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle
}

// Start fires one immediate refresh (a view should never wait a full window
// for its first code), computes a fresh baseline, and begins ticking at the
// configured granularity until Stop or context cancellation. Starting an
// already-running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	callback := s.onRefresh
	s.mu.Unlock()

	if callback != nil {
		callback()
	}
	s.Tick()

	go s.run(ctx, done)
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.granularity)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Stop halts the tick loop and waits for it to exit; no callback fires after
// Stop returns. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
