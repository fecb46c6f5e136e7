package systems

import (
	"time"

	"github.com/zeusync/weather/internal/core/scheduler"
)

// System is an independently scheduled piece of game logic.
type System interface {
	Name() string

	// Start registers the system's timers on s.
	Start(s scheduler.Scheduler) error
	// Stop cancels every timer the system owns.
	Stop()

	// Tick runs one poll of the system.
	Tick()

	GetMetrics() Metrics
}

// Metrics provides runtime metrics for a system.
type Metrics struct {
	ExecutionCount     uint64        `json:"execution_count"`
	TotalExecutionTime time.Duration `json:"total_execution_time"`
	MaxExecutionTime   time.Duration `json:"max_execution_time"`
	LastExecutionTime  time.Time     `json:"last_execution_time"`
}

// Observe records one execution that began at start.
func (m *Metrics) Observe(start time.Time) {
	now := time.Now()
	d := now.Sub(start)
	m.ExecutionCount++
	m.TotalExecutionTime += d
	if d > m.MaxExecutionTime {
		m.MaxExecutionTime = d
	}
	m.LastExecutionTime = now
}

// AverageExecutionTime is TotalExecutionTime spread over ExecutionCount.
func (m Metrics) AverageExecutionTime() time.Duration {
	if m.ExecutionCount == 0 {
		return 0
	}
	return m.TotalExecutionTime / time.Duration(m.ExecutionCount)
}
