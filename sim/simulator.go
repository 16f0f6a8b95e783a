// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/checkout-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, line state, and the tick loop.
type Simulator struct {
	Clock   int64
	Horizon int64
	Config  SimConfig
	// Lines are appended by OpenNewLine and never removed; a line's index is its cashier id.
	Lines []*Line
	// IdleEvents holds one entry per busy cashier, keyed by the tick it goes idle.
	IdleEvents *EventScheduler[IdleEvent]
	Metrics    *Metrics
	// Trace is nil unless the config asks for decision tracing.
	Trace *trace.SimulationTrace
	// Log receives every engine log line; callers may replace it to add fields such as a run ID.
	Log *logrus.Entry

	arrivalRNG     RandomSource
	serviceRNG     RandomSource
	nextCustomerID int
}

// NewSimulator validates cfg and creates a simulator whose randomness is
// derived from cfg.Seed.
func NewSimulator(cfg SimConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	return newSimulator(cfg, rng.ForSubsystem(SubsystemArrival), rng.ForSubsystem(SubsystemService)), nil
}

// NewSimulatorWithSource validates cfg and creates a simulator that draws both
// arrivals and checkout durations from src, in tick order.
func NewSimulatorWithSource(cfg SimConfig, src RandomSource) (*Simulator, error) {
	if src == nil {
		return nil, fmt.Errorf("random source must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSimulator(cfg, src, src), nil
}

func newSimulator(cfg SimConfig, arrivalRNG, serviceRNG RandomSource) *Simulator {
	s := &Simulator{
		Clock:      0,
		Horizon:    cfg.SimulationLength,
		Config:     cfg,
		Lines:      make([]*Line, 0, cfg.MaxCheckoutLines),
		IdleEvents: NewEventScheduler[IdleEvent](),
		Metrics:    NewMetrics(),
		Log:        logrus.NewEntry(logrus.StandardLogger()),
		arrivalRNG: arrivalRNG,
		serviceRNG: serviceRNG,
	}
	for i := 0; i < cfg.InitialNumCashiers; i++ {
		s.Lines = append(s.Lines, NewLine(i))
	}
	if trace.TraceLevel(cfg.TraceLevel) == trace.TraceLevelDecisions {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	}
	return s
}

// Run advances the simulation one tick at a time until the horizon.
// Idle events scheduled past the horizon are left pending and show up in the
// report as customers still being checked out.
func (sim *Simulator) Run() {
	for now := int64(0); now < sim.Horizon; now++ {
		sim.Step(now)
	}
	sim.Metrics.SimEndedTime = sim.Horizon
	sim.Log.Infof("[tick %07d] Simulation ended with %d lines", sim.Horizon, len(sim.Lines))
}

// Step simulates a single tick. Every phase completes before the next starts:
// decay, line opening, arrival, idle transitions, dispatch.
func (sim *Simulator) Step(now int64) {
	sim.Clock = now

	sim.decayProjectedWaits()

	if sim.CanOpenNewLine() && sim.ShouldOpenNewLine() {
		sim.OpenNewLine()
		sim.ShiftCustomersToNewLine(now)
	}

	if sim.customerArrived() {
		sim.AddCustomerToShortestLine(now)
	}

	sim.releaseIdleCashiers(now)
	sim.startCustomersAtIdleCashiers(now)

	queued := 0
	for _, l := range sim.Lines {
		queued += l.Queue.Len()
	}
	sim.Metrics.NumQueuedCustomers = append(sim.Metrics.NumQueuedCustomers, queued)
}

func (sim *Simulator) decayProjectedWaits() {
	for _, l := range sim.Lines {
		l.decay()
	}
}

// CanOpenNewLine reports whether another line fits under MaxCheckoutLines.
func (sim *Simulator) CanOpenNewLine() bool {
	return len(sim.Lines) < sim.Config.MaxCheckoutLines
}

// ShouldOpenNewLine returns true if even the shortest line's projected wait
// exceeds the wait threshold.
func (sim *Simulator) ShouldOpenNewLine() bool {
	shortest := sim.DetermineSmallestLine()
	return sim.Lines[shortest].ProjectedWait > sim.Config.MaxWaitThreshold
}

// OpenNewLine appends an empty line with an idle cashier and returns its index.
func (sim *Simulator) OpenNewLine() int {
	if !sim.CanOpenNewLine() {
		panic(fmt.Sprintf("OpenNewLine: already at max_checkout_lines (%d)", sim.Config.MaxCheckoutLines))
	}
	idx := len(sim.Lines)
	sim.Lines = append(sim.Lines, NewLine(idx))
	sim.Metrics.LinesOpened++
	sim.Log.Infof("[tick %07d] Opened line %d", sim.Clock, idx)
	return idx
}

// ShiftCustomersToNewLine redistributes customers onto the most recently
// opened line. See Rebalance for the algorithm.
func (sim *Simulator) ShiftCustomersToNewLine(now int64) RebalanceResult {
	newIdx := len(sim.Lines) - 1
	result := Rebalance(sim.Lines, newIdx, now)
	sim.Metrics.CustomersShifted += len(result.Shifts)
	sim.Log.Debugf("[tick %07d] Shifted %d customers to line %d (target line %d, wait=%d)",
		now, len(result.Shifts), newIdx, result.TargetLine, sim.Lines[newIdx].ProjectedWait)

	if sim.Trace != nil {
		record := trace.RebalanceRecord{
			Clock:      now,
			NewLine:    newIdx,
			TargetLine: result.TargetLine,
			NewWait:    sim.Lines[newIdx].ProjectedWait,
		}
		for _, s := range result.Shifts {
			record.Shifts = append(record.Shifts, trace.ShiftRecord{
				FromLine:   s.FromLine,
				CustomerID: s.CustomerID,
				Duration:   s.Duration,
			})
		}
		sim.Trace.RecordRebalance(record)
	}
	return result
}

// customerArrived runs the per-tick Bernoulli trial.
func (sim *Simulator) customerArrived() bool {
	return sim.arrivalRNG.Float64() < sim.Config.ProbabilityOfArrival
}

// AddCustomerToShortestLine creates a customer with a uniform checkout
// duration in [1, round(2*AverageCustomerTime)] and enqueues it at the line
// with the lowest projected wait.
func (sim *Simulator) AddCustomerToShortestLine(now int64) *Customer {
	c := &Customer{
		ID:        sim.nextCustomerID,
		Duration:  1 + sim.serviceRNG.Intn(sim.Config.maxCustomerDuration()),
		EntryTick: now,
	}
	sim.nextCustomerID++
	sim.Metrics.CustomersArrived++

	idx := sim.DetermineSmallestLine()
	sim.Lines[idx].Enqueue(c)
	sim.Log.Debugf("<< Arrival: customer %d (dur=%d) at %d ticks -> line %d", c.ID, c.Duration, now, idx)

	if sim.Trace != nil {
		sim.Trace.RecordArrival(trace.ArrivalRecord{
			CustomerID:    c.ID,
			Clock:         now,
			Line:          idx,
			Duration:      c.Duration,
			ProjectedWait: sim.Lines[idx].ProjectedWait,
		})
	}
	return c
}

// DetermineSmallestLine returns the index of the line with the lowest
// projected wait, the lowest index on ties.
func (sim *Simulator) DetermineSmallestLine() int {
	smallest := 0
	for i, l := range sim.Lines {
		if l.ProjectedWait < sim.Lines[smallest].ProjectedWait {
			smallest = i
		}
	}
	return smallest
}

// releaseIdleCashiers fires every idle event due at or before now.
func (sim *Simulator) releaseIdleCashiers(now int64) {
	for _, entry := range sim.IdleEvents.DrainReady(now) {
		entry.Value.Execute(sim)
	}
}

// startCustomersAtIdleCashiers hands the front customer of each non-empty line
// to its cashier if that cashier is idle, and schedules the cashier's next idle event.
func (sim *Simulator) startCustomersAtIdleCashiers(now int64) {
	for i, l := range sim.Lines {
		if !l.Idle || l.Queue.IsEmpty() {
			continue
		}
		c, err := l.Queue.RemoveFront()
		if err != nil {
			panic(fmt.Sprintf("startCustomersAtIdleCashiers: line %d: %v", i, err))
		}
		wait := now - c.EntryTick
		l.CumulativeWait += wait
		sim.Metrics.DispatchWaits = append(sim.Metrics.DispatchWaits, wait)
		l.Idle = false

		ev := IdleEvent{ReadyTick: now + int64(c.Duration) + 1, Line: i}
		sim.IdleEvents.Schedule(ev.Timestamp(), ev)
		sim.Log.Debugf("<< Dispatch: customer %d at line %d, waited %d ticks, idle at %d", c.ID, i, wait, ev.ReadyTick)
	}
}

// RunSimulation validates cfg, runs a seeded simulation to its horizon and
// returns the final report.
func RunSimulation(cfg SimConfig) (*Report, error) {
	s, err := NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	s.Run()
	return s.Report(), nil
}

// RunSimulationWithSource is RunSimulation with an injected random source.
func RunSimulationWithSource(cfg SimConfig, src RandomSource) (*Report, error) {
	s, err := NewSimulatorWithSource(cfg, src)
	if err != nil {
		return nil, err
	}
	s.Run()
	return s.Report(), nil
}
