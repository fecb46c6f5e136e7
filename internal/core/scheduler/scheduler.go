package scheduler

// Ticks counts scheduler steps. One tick is one poll interval of the host
// (one second by default).
type Ticks uint64

// Handle controls a scheduled callback.
type Handle interface {
	// Cancel stops the callback from firing again. Safe to call more than once
	// and from inside the callback itself.
	Cancel()
	// Active reports whether the callback can still fire.
	Active() bool
}

// Scheduler registers cancellable periodic and one-shot callbacks.
// Callbacks run one at a time on a single execution context.
type Scheduler interface {
	// Every fires fn each interval ticks, first after one interval.
	Every(interval Ticks, fn func()) Handle
	// After fires fn once, delay ticks from now.
	After(delay Ticks, fn func()) Handle
	// Now returns the current tick.
	Now() Ticks
}
