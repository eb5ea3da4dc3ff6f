package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/zeuphys/internal/core/observability/log"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
	"github.com/zeusync/zeuphys/internal/viewer"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideWorld,
	ProvideFeed,
	wire.Struct(new(Runtime), "*"),
)

// Runtime is what a simulation process shares across its worlds.
type Runtime struct {
	Logger *log.Logger
	Feed   *viewer.Feed
}

func ProvideLogger(level log.Level) *log.Logger {
	return log.New(level)
}

func ProvideWorld(cfg physics.Config, logger log.Log) (*physics.World, error) {
	return physics.NewWorld(physics.WithConfig(cfg), physics.WithLogger(logger))
}

func ProvideFeed(logger log.Log) *viewer.Feed {
	return viewer.New(logger)
}
