//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/zeuphys/internal/core/observability/log"
	"github.com/zeusync/zeuphys/internal/core/systems/physics"
)

func InitializeWorld(level log.Level, cfg physics.Config) (*physics.World, error) {
	wire.Build(ProviderSet)
	return nil, nil
}

func InitializeRuntime(level log.Level) (*Runtime, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
