package sensor

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
)

// Sensor owns a configuration and the result of its last scan.
//
// A Sensor is not safe for concurrent use. Confine each instance to the
// goroutine that drives its updates.
type Sensor struct {
	id      string
	name    string
	cfg     Config
	pose    physics.Pose
	backend physics.Backend
	last    Result
	scanned Config // configuration that produced last
	metrics Metrics
	logger  log.Log
}

// Metrics counts scans and their timing.
type Metrics struct {
	ExecutionCount       uint64
	HitCount             uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	MinExecutionTime     time.Duration
	LastExecutionTime    time.Time
}

type Option func(*Sensor)

func WithLogger(l log.Log) Option {
	return func(s *Sensor) { s.logger = l }
}

// New creates a sensor named name. The pose is read at every scan.
func New(name string, cfg Config, pose physics.Pose, backend physics.Backend, opts ...Option) (*Sensor, error) {
	if pose == nil {
		return nil, fmt.Errorf("%w: pose is required", ErrInvalidConfig)
	}
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Sensor{
		id:      uuid.NewString(),
		name:    name,
		cfg:     cfg,
		pose:    pose,
		backend: backend,
		logger:  log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(log.String("sensor", name), log.String("sensor_id", s.id))
	return s, nil
}

func (s *Sensor) ID() string               { return s.id }
func (s *Sensor) Name() string             { return s.name }
func (s *Sensor) Config() Config           { return s.cfg }
func (s *Sensor) Pose() physics.Pose       { return s.pose }
func (s *Sensor) Backend() physics.Backend { return s.backend }

// Configure replaces the configuration. It applies from the next scan; the
// last result is kept until then.
func (s *Sensor) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// SetPose replaces the pose provider.
func (s *Sensor) SetPose(pose physics.Pose) error {
	if pose == nil {
		return fmt.Errorf("%w: pose is required", ErrInvalidConfig)
	}
	s.pose = pose
	return nil
}

// Scan queries the world and reports whether anything was hit.
func (s *Sensor) Scan() bool {
	start := time.Now()
	s.scanned = s.cfg
	s.last = Scan(s.cfg, s.pose, s.backend)
	took := time.Since(start)

	s.observe(start, took)

	fields := []log.Field{
		log.Stringer("kind", s.last.Kind),
		log.Bool("hit", s.last.Hit),
		log.Duration("took", took),
	}
	if info, ok := s.last.Primary(); ok {
		fields = append(fields, log.Float64("distance", info.Distance), log.Vec3("point", info.Point))
	}
	if s.last.Kind == KindFullBoxCast {
		fields = append(fields, log.Int("hits", len(s.last.Hits)))
	}
	s.logger.Debug("sensor scan", fields...)

	return s.last.Hit
}

func (s *Sensor) observe(start time.Time, took time.Duration) {
	m := &s.metrics
	m.ExecutionCount++
	if s.last.Hit {
		m.HitCount++
	}
	m.TotalExecutionTime += took
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if took > m.MaxExecutionTime {
		m.MaxExecutionTime = took
	}
	if m.ExecutionCount == 1 || took < m.MinExecutionTime {
		m.MinExecutionTime = took
	}
	m.LastExecutionTime = start
}

// Hit reports whether the last scan hit anything.
func (s *Sensor) Hit() bool { return s.last.Hit }

// Result returns the last scan result. The Hits slice is a copy.
func (s *Sensor) Result() Result {
	r := s.last
	r.Hits = slices.Clone(r.Hits)
	return r
}

// Info returns the closest hit record of the last scan.
func (s *Sensor) Info() (physics.HitRecord, bool) { return s.last.Primary() }

// Hits returns a copy of every hit of the last FullBoxCast scan, closest first.
func (s *Sensor) Hits() []physics.HitRecord { return slices.Clone(s.last.Hits) }

// Percent reports how close the last hit is to the sensor, see Result.Percent.
func (s *Sensor) Percent() float64 { return s.last.Percent() }

// DistanceFromStart measures the last hit, see Result.DistanceFromStart.
func (s *Sensor) DistanceFromStart() (float64, error) { return s.last.DistanceFromStart() }

// Gizmos describes the last scan for a debug renderer, drawn with the
// configuration that produced it. Before the first scan the current
// configuration is drawn at the current pose.
func (s *Sensor) Gizmos() []Gizmo {
	if !s.last.Scanned {
		return Gizmos(s.cfg, physics.Snapshot(s.pose), s.last)
	}
	return Gizmos(s.scanned, s.last.Frame, s.last)
}

func (s *Sensor) Metrics() Metrics { return s.metrics }
