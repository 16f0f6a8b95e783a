package sim

import (
	"hash/fnv"
	"math/rand"
)

// RandomSource is the only source of non-determinism in a run.
// *rand.Rand satisfies it; tests inject scripted sources.
type RandomSource interface {
	Float64() float64 // uniform in [0, 1)
	Intn(n int) int   // uniform in [0, n)
}

// SimulationKey is the master seed of a run. Equal keys and equal configs
// give equal reports.
type SimulationKey int64

func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Named random streams. Each draws from its own *rand.Rand.
const (
	SubsystemArrival = "arrival" // per-tick arrival trial; seeded with the key itself
	SubsystemService = "service" // checkout durations
)

// PartitionedRNG hands out one seeded stream per subsystem, so the number of
// arrival trials never changes which durations get drawn.
// The service seed is key XOR fnv1a64("service"). Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	seed := int64(p.key)
	if name != SubsystemArrival {
		seed ^= fnv1a64(name)
	}
	r := rand.New(rand.NewSource(seed))
	p.streams[name] = r
	return r
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
