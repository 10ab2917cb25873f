package sensor

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"golang.org/x/sync/errgroup"
)

const defaultShardCount = 16

// Change reports a sensor whose hit state flipped during ScanAll.
type Change struct {
	Name   string
	Hit    bool
	Result Result
}

type ChangeListener func(Change)

// Entry pairs a sensor name with its last result.
type Entry struct {
	Name   string `json:"name"`
	Result Result `json:"result"`
}

type registryShard struct {
	mx      sync.RWMutex
	sensors map[string]*Sensor
}

// Manager holds named sensors and scans them together. Each sensor is
// scanned by at most one goroutine at a time.
type Manager struct {
	shards []registryShard

	// scanMx serializes ScanAll against readers of sensor results.
	scanMx sync.Mutex

	listenersMx sync.RWMutex
	listeners   []ChangeListener

	limit  int
	logger log.Log
}

type ManagerOption func(*Manager)

// WithParallelism bounds the number of sensors scanned at once. Values below 1 mean no bound.
func WithParallelism(n int) ManagerOption {
	return func(m *Manager) { m.limit = n }
}

func WithShardCount(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.shards = make([]registryShard, n)
		}
	}
}

func WithManagerLogger(l log.Log) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		shards: make([]registryShard, defaultShardCount),
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	for i := range m.shards {
		m.shards[i].sensors = make(map[string]*Sensor)
	}
	return m
}

func (m *Manager) shardIndex(name string) int {
	return int(xxhash.Sum64String(name) % uint64(len(m.shards)))
}

func (m *Manager) shard(name string) *registryShard {
	return &m.shards[m.shardIndex(name)]
}

// Add registers sensors under their names. Either every sensor is added or,
// when a name is taken or repeated, none is.
func (m *Manager) Add(sensors ...*Sensor) error {
	idx := make([]int, 0, len(sensors))
	for _, s := range sensors {
		idx = append(idx, m.shardIndex(s.Name()))
	}
	locked := slices.Compact(slices.Sorted(slices.Values(idx)))
	for _, i := range locked {
		m.shards[i].mx.Lock()
	}
	defer func() {
		for _, i := range locked {
			m.shards[i].mx.Unlock()
		}
	}()

	seen := make(map[string]struct{}, len(sensors))
	for i, s := range sensors {
		_, dup := seen[s.Name()]
		_, exists := m.shards[idx[i]].sensors[s.Name()]
		if dup || exists {
			return fmt.Errorf("%w: %s", ErrSensorExists, s.Name())
		}
		seen[s.Name()] = struct{}{}
	}

	for i, s := range sensors {
		m.shards[idx[i]].sensors[s.Name()] = s
		m.logger.Debug("sensor registered", log.String("sensor", s.Name()), log.Stringer("kind", s.Config().Kind()))
	}
	return nil
}

func (m *Manager) Remove(name string) error {
	sh := m.shard(name)
	sh.mx.Lock()
	defer sh.mx.Unlock()

	if _, ok := sh.sensors[name]; !ok {
		return fmt.Errorf("%w: %s", ErrSensorNotFound, name)
	}
	delete(sh.sensors, name)
	return nil
}

// Get returns a registered sensor. The caller must not scan it while ScanAll runs.
func (m *Manager) Get(name string) (*Sensor, bool) {
	sh := m.shard(name)
	sh.mx.RLock()
	defer sh.mx.RUnlock()

	s, ok := sh.sensors[name]
	return s, ok
}

// Names returns the registered names in sorted order.
func (m *Manager) Names() []string {
	var names []string
	for i := range m.shards {
		sh := &m.shards[i]
		sh.mx.RLock()
		for name := range sh.sensors {
			names = append(names, name)
		}
		sh.mx.RUnlock()
	}
	slices.Sort(names)
	return names
}

func (m *Manager) Len() int {
	n := 0
	for i := range m.shards {
		sh := &m.shards[i]
		sh.mx.RLock()
		n += len(sh.sensors)
		sh.mx.RUnlock()
	}
	return n
}

func (m *Manager) sorted() []*Sensor {
	names := m.Names()
	out := make([]*Sensor, 0, len(names))
	for _, name := range names {
		if s, ok := m.Get(name); ok {
			out = append(out, s)
		}
	}
	return out
}

// OnChange registers a listener called after ScanAll for every sensor whose
// hit state changed. Listeners run on the ScanAll goroutine, in name order.
func (m *Manager) OnChange(l ChangeListener) {
	m.listenersMx.Lock()
	defer m.listenersMx.Unlock()
	m.listeners = append(m.listeners, l)
}

// ScanAll scans every registered sensor. Sensors run in parallel with each
// other; a cancelled context stops sensors that have not started yet and is
// returned as the error.
func (m *Manager) ScanAll(ctx context.Context) error {
	m.scanMx.Lock()
	defer m.scanMx.Unlock()

	sensors := m.sorted()
	changed := make([]bool, len(sensors))

	g, gctx := errgroup.WithContext(ctx)
	if m.limit > 0 {
		g.SetLimit(m.limit)
	}
	for i, s := range sensors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			before := s.Hit()
			changed[i] = s.Scan() != before
			return nil
		})
	}
	err := g.Wait()

	m.listenersMx.RLock()
	listeners := slices.Clone(m.listeners)
	m.listenersMx.RUnlock()

	for i, s := range sensors {
		if !changed[i] {
			continue
		}
		c := Change{Name: s.Name(), Hit: s.Hit(), Result: s.Result()}
		m.logger.Info("sensor state changed", log.String("sensor", c.Name), log.Bool("hit", c.Hit))
		for _, l := range listeners {
			l(c)
		}
	}

	return err
}

// Snapshot returns the last result of every sensor, sorted by name.
func (m *Manager) Snapshot() []Entry {
	m.scanMx.Lock()
	defer m.scanMx.Unlock()

	sensors := m.sorted()
	out := make([]Entry, len(sensors))
	for i, s := range sensors {
		out[i] = Entry{Name: s.Name(), Result: s.Result()}
	}
	return out
}

// Frame is the debug view of one sensor: its last result and gizmos.
type Frame struct {
	Name   string  `json:"name"`
	Result Result  `json:"result"`
	Gizmos []Gizmo `json:"gizmos"`
}

// Frames returns the debug view of every sensor, sorted by name.
func (m *Manager) Frames() []Frame {
	m.scanMx.Lock()
	defer m.scanMx.Unlock()

	sensors := m.sorted()
	out := make([]Frame, len(sensors))
	for i, s := range sensors {
		out[i] = Frame{Name: s.Name(), Result: s.Result(), Gizmos: s.Gizmos()}
	}
	return out
}
