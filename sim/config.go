package sim

import (
	"math"

	"github.com/inference-sim/checkout-sim/sim/trace"
)

// MaxAverageCustomerTime bounds AverageCustomerTime so that the duration draw
// bound (2*avg) and per-line projected waits stay within int32 range.
const MaxAverageCustomerTime = math.MaxInt32 / 4

// SimConfig holds every input of a simulation run.
// Loaded from a scenario YAML file and/or CLI flags.
type SimConfig struct {
	InitialNumCashiers   int     `yaml:"initial_cashiers"`      // lines open at tick 0 (> 0)
	SimulationLength     int64   `yaml:"simulation_length"`     // number of ticks to simulate (> 0)
	ProbabilityOfArrival float64 `yaml:"arrival_probability"`   // per-tick arrival chance in [0, 1]
	AverageCustomerTime  int     `yaml:"average_customer_time"` // mean checkout duration in ticks (> 0)
	MaxCheckoutLines     int     `yaml:"max_checkout_lines"`    // upper bound on open lines (>= InitialNumCashiers)
	MaxWaitThreshold     int     `yaml:"max_wait_threshold"`    // shortest projected wait that triggers a new line (>= 0)
	Seed                 int64   `yaml:"seed"`
	TraceLevel           string  `yaml:"trace_level,omitempty"` // "none" (default) or "decisions"
}

// DefaultSimConfig returns the configuration used when neither a scenario file
// nor flags say otherwise.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		InitialNumCashiers:   1,
		SimulationLength:     60,
		ProbabilityOfArrival: 0.5,
		AverageCustomerTime:  3,
		MaxCheckoutLines:     10,
		MaxWaitThreshold:     5,
		Seed:                 42,
		TraceLevel:           string(trace.TraceLevelNone),
	}
}

// Validate checks every field and returns a single *ConfigError listing all
// problems, or nil.
func (c SimConfig) Validate() error {
	cerr := &ConfigError{}
	if c.InitialNumCashiers <= 0 {
		cerr.add("initial_cashiers must be positive, got %d", c.InitialNumCashiers)
	}
	if c.SimulationLength <= 0 {
		cerr.add("simulation_length must be positive, got %d", c.SimulationLength)
	}
	if math.IsNaN(c.ProbabilityOfArrival) || c.ProbabilityOfArrival < 0 || c.ProbabilityOfArrival > 1 {
		cerr.add("arrival_probability must be in [0, 1], got %f", c.ProbabilityOfArrival)
	}
	if c.AverageCustomerTime <= 0 {
		cerr.add("average_customer_time must be positive, got %d", c.AverageCustomerTime)
	} else if c.AverageCustomerTime > MaxAverageCustomerTime {
		cerr.add("average_customer_time must be <= %d, got %d", MaxAverageCustomerTime, c.AverageCustomerTime)
	}
	if c.MaxCheckoutLines < c.InitialNumCashiers {
		cerr.add("max_checkout_lines (%d) must be >= initial_cashiers (%d)", c.MaxCheckoutLines, c.InitialNumCashiers)
	}
	if c.MaxWaitThreshold < 0 {
		cerr.add("max_wait_threshold must be non-negative, got %d", c.MaxWaitThreshold)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		cerr.add("unknown trace_level %q; valid: none, decisions", c.TraceLevel)
	}
	if len(cerr.Problems) > 0 {
		return cerr
	}
	return nil
}

// maxCustomerDuration is the upper bound of the uniform checkout duration draw.
func (c SimConfig) maxCustomerDuration() int {
	return int(math.Round(2 * float64(c.AverageCustomerTime)))
}
