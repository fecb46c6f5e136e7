//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/weather/internal/core/events/bus"
	"github.com/zeusync/weather/internal/core/observability/log"
)

func InitializeLogger(level log.Level) *log.Logger {
	wire.Build(log.New)
	return nil
}

func InitializeBus() bus.EventBus {
	wire.Build(bus.New)
	return nil
}
