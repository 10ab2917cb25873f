package injector

import (
	"fmt"

	"github.com/google/wire"
	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"github.com/zeusync/sweepsensor/internal/core/sensor"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics/world"
)

// Parallelism bounds how many sensors the manager scans at once.
type Parallelism int

// Probe is a loaded world with its sensors registered in a manager.
type Probe struct {
	Logger  *log.Logger
	World   *world.World
	Manager *sensor.Manager
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideWorld,
	ProvideManager,
	wire.Struct(new(Probe), "*"),
)

func ProvideLogger(opts log.Options) (*log.Logger, error) {
	return log.NewWithOptions(opts)
}

func ProvideWorld(scene *world.Scene, logger *log.Logger) (*world.World, error) {
	w, err := scene.Build(world.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return w, nil
}

func ProvideManager(file *sensor.File, w *world.World, logger *log.Logger, parallelism Parallelism) (*sensor.Manager, error) {
	sensors, err := file.Build(w, sensor.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("build sensors: %w", err)
	}

	m := sensor.NewManager(
		sensor.WithParallelism(int(parallelism)),
		sensor.WithManagerLogger(logger),
	)
	if err = m.Add(sensors...); err != nil {
		return nil, err
	}
	return m, nil
}
