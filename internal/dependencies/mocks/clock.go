package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	tickers     []*MockTicker
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = t
}

// NewTicker returns a ticker that only fires when the test calls Fire
func (c *MockClock) NewTicker(d time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &MockTicker{
		ch:       make(chan time.Time),
		stopped:  make(chan struct{}),
		Interval: d,
		clock:    c,
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Tickers returns every ticker created so far, oldest first
func (c *MockClock) Tickers() []*MockTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]*MockTicker, len(c.tickers))
	copy(result, c.tickers)
	return result
}

// LastTicker returns the most recently created ticker, or nil
func (c *MockClock) LastTicker() *MockTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		return nil
	}
	return c.tickers[len(c.tickers)-1]
}

// MockTicker is a manually driven clock.Ticker
type MockTicker struct {
	mu       sync.Mutex
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
	Interval time.Duration
	clock    *MockClock
}

// C returns the tick channel
func (t *MockTicker) C() <-chan time.Time {
	return t.ch
}

// Stop marks the ticker stopped. Pending and future Fire calls return false.
func (t *MockTicker) Stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}

// Reset records the new interval
func (t *MockTicker) Reset(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Interval = d
}

// CurrentInterval returns the interval last set on the ticker
func (t *MockTicker) CurrentInterval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Interval
}

// Stopped reports whether Stop has been called
func (t *MockTicker) Stopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}

// Fire delivers one tick and blocks until it is received.
// Returns false if the ticker was stopped first.
func (t *MockTicker) Fire() bool {
	select {
	case <-t.stopped:
		return false
	default:
	}
	select {
	case t.ch <- t.clock.Now():
		return true
	case <-t.stopped:
		return false
	}
}
