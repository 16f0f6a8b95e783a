package sim

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimConfig_Validate_Defaults(t *testing.T) {
	assert.NoError(t, DefaultSimConfig().Validate())
	assert.NoError(t, testConfig().Validate())
}

func TestSimConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimConfig)
		want   string
	}{
		{"zero cashiers", func(c *SimConfig) { c.InitialNumCashiers = 0 }, "initial_cashiers"},
		{"zero length", func(c *SimConfig) { c.SimulationLength = 0 }, "simulation_length"},
		{"negative probability", func(c *SimConfig) { c.ProbabilityOfArrival = -0.1 }, "arrival_probability"},
		{"probability above one", func(c *SimConfig) { c.ProbabilityOfArrival = 1.01 }, "arrival_probability"},
		{"NaN probability", func(c *SimConfig) { c.ProbabilityOfArrival = math.NaN() }, "arrival_probability"},
		{"zero customer time", func(c *SimConfig) { c.AverageCustomerTime = 0 }, "average_customer_time"},
		{"customer time above limit", func(c *SimConfig) { c.AverageCustomerTime = MaxAverageCustomerTime + 1 }, "average_customer_time"},
		{"customer time overflowing duration bound", func(c *SimConfig) { c.AverageCustomerTime = math.MaxInt64/2 + 1 }, "average_customer_time"},
		{"max lines below initial", func(c *SimConfig) { c.InitialNumCashiers = 3; c.MaxCheckoutLines = 2 }, "max_checkout_lines"},
		{"negative threshold", func(c *SimConfig) { c.MaxWaitThreshold = -1 }, "max_wait_threshold"},
		{"unknown trace level", func(c *SimConfig) { c.TraceLevel = "verbose" }, "trace_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr), "want *ConfigError, got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSimConfig_Validate_ReportsEveryProblemAtOnce(t *testing.T) {
	// GIVEN a config with three independent problems
	cfg := testConfig()
	cfg.SimulationLength = -5
	cfg.AverageCustomerTime = 0
	cfg.MaxWaitThreshold = -2

	// WHEN validated
	err := cfg.Validate()

	// THEN a single ConfigError lists all three
	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Len(t, cerr.Problems, 3)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid config: "))
}

func TestSimConfig_Validate_BoundaryValuesAccepted(t *testing.T) {
	cfg := testConfig()
	cfg.ProbabilityOfArrival = 0
	cfg.MaxWaitThreshold = 0
	cfg.MaxCheckoutLines = cfg.InitialNumCashiers
	assert.NoError(t, cfg.Validate())

	cfg.ProbabilityOfArrival = 1
	assert.NoError(t, cfg.Validate())
}

func TestSimConfig_MaxCustomerDuration(t *testing.T) {
	cfg := testConfig()
	cfg.AverageCustomerTime = 3
	assert.Equal(t, 6, cfg.maxCustomerDuration())
}

func TestSimConfig_AverageCustomerTimeLimit(t *testing.T) {
	// GIVEN the largest accepted average customer time
	cfg := testConfig()
	cfg.AverageCustomerTime = MaxAverageCustomerTime

	// THEN it validates and the duration draw bound stays positive
	require.NoError(t, cfg.Validate())
	assert.Greater(t, cfg.maxCustomerDuration(), 0)
}

func TestRunSimulation_HugeCustomerTime_ReturnsConfigError(t *testing.T) {
	// GIVEN an average that would overflow the duration draw
	cfg := testConfig()
	cfg.AverageCustomerTime = math.MaxInt64/2 + 1

	// WHEN run
	var report *Report
	var err error
	require.NotPanics(t, func() { report, err = RunSimulation(cfg) })

	// THEN validation rejects it before any tick
	var cerr *ConfigError
	assert.True(t, errors.As(err, &cerr))
	assert.Nil(t, report)
}
