package scheduler

import (
	"container/heap"
	"fmt"
	"sync"

	"github.com/zeusync/weather/internal/core/observability/log"
)

var _ Scheduler = (*Clock)(nil)

// Clock is a deterministic Scheduler advanced explicitly by Advance.
// Timers due on the same tick fire in registration order.
type Clock struct {
	mu     sync.Mutex
	exec   sync.Mutex // serializes Advance so callbacks never overlap
	now    Ticks
	seq    uint64
	timers timerHeap
	logger log.Log

	panics uint64
}

// NewClock creates a Clock at tick zero.
func NewClock(logger log.Log) *Clock {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Clock{logger: logger}
}

func (c *Clock) Now() Ticks {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Every(interval Ticks, fn func()) Handle {
	if interval == 0 {
		interval = 1
	}
	return c.schedule(interval, interval, fn)
}

func (c *Clock) After(delay Ticks, fn func()) Handle {
	return c.schedule(delay, 0, fn)
}

func (c *Clock) schedule(delay, interval Ticks, fn func()) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &timer{clock: c, id: c.seq, due: c.now + delay, interval: interval, fn: fn}
	heap.Push(&c.timers, t)
	return t
}

// Advance moves the clock forward n ticks, firing every timer that falls due.
func (c *Clock) Advance(n Ticks) {
	c.exec.Lock()
	defer c.exec.Unlock()

	for i := Ticks(0); i < n; i++ {
		c.mu.Lock()
		c.now++
		c.mu.Unlock()
		c.fireDue()
	}
}

// Pending returns the number of timers that can still fire.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Panics returns how many callbacks panicked and were recovered.
func (c *Clock) Panics() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panics
}

func (c *Clock) fireDue() {
	for {
		c.mu.Lock()
		if len(c.timers) == 0 || c.timers[0].due > c.now {
			c.mu.Unlock()
			return
		}
		t := heap.Pop(&c.timers).(*timer)
		if t.cancelled {
			c.mu.Unlock()
			continue
		}
		if t.interval > 0 {
			t.due += t.interval
			heap.Push(&c.timers, t)
		} else {
			t.fired = true
		}
		now := c.now
		c.mu.Unlock()

		c.invoke(t, now)
	}
}

// invoke runs one callback; a panic is logged and contained so other timers keep running.
func (c *Clock) invoke(t *timer, now Ticks) {
	defer func() {
		if r := recover(); r != nil {
			c.mu.Lock()
			c.panics++
			c.mu.Unlock()
			c.logger.Error("scheduled callback panicked",
				log.Uint64("timer", t.id),
				log.Uint64("tick", uint64(now)),
				log.Error(fmt.Errorf("%v", r)),
			)
		}
	}()
	t.fn()
}

type timer struct {
	clock     *Clock
	id        uint64
	due       Ticks
	interval  Ticks
	fn        func()
	cancelled bool
	fired     bool
	index     int
}

func (t *timer) Cancel() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.cancelled = true
}

func (t *timer) Active() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return !t.cancelled && !t.fired
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].id < h[j].id
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
