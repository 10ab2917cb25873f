//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"github.com/zeusync/sweepsensor/internal/core/sensor"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics/world"
)

func InitializeProbe(scene *world.Scene, file *sensor.File, logging log.Options, parallelism Parallelism) (*Probe, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
