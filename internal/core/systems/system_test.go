package systems

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	var m Metrics
	assert.Equal(t, time.Duration(0), m.AverageExecutionTime())

	m.Observe(time.Now().Add(-2 * time.Millisecond))
	m.Observe(time.Now())

	assert.Equal(t, uint64(2), m.ExecutionCount)
	assert.GreaterOrEqual(t, m.MaxExecutionTime, 2*time.Millisecond)
	assert.GreaterOrEqual(t, m.TotalExecutionTime, m.MaxExecutionTime)
	assert.False(t, m.LastExecutionTime.IsZero())
	assert.Equal(t, m.TotalExecutionTime/2, m.AverageExecutionTime())
}
