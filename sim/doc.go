// Package sim provides the discrete-event simulation engine for checkout lines.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - customer.go: Customer and Line records, projected-wait bookkeeping
//   - scheduler.go: EventScheduler, the deterministic priority queue behind idle events
//   - simulator.go: the tick loop (decay, line opening, arrival, idle transitions, dispatch)
//   - rebalance.go: how customers move onto a newly opened line
//
// # Architecture
//
// A run is a single synchronous loop over ticks owned by one Simulator. The
// only randomness is the per-tick arrival trial and the checkout duration
// draw, both taken from a RandomSource (see rng.go), so a fixed seed yields
// an identical Report.
//
// Decision tracing lives in sim/trace/ and has no dependency on this package.
package sim
