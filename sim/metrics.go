// Tracks simulation-wide statistics and builds the end-of-run report.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Metrics aggregates run-wide statistics that are not owned by any single line.
type Metrics struct {
	CustomersArrived int   // Number of customers generated
	LinesOpened      int   // Lines opened after tick 0
	CustomersShifted int   // Customers moved by rebalancing
	SimEndedTime     int64 // Horizon reached, in ticks

	DispatchWaits      []int64 // queue wait of every dispatched customer, in dispatch order
	NumQueuedCustomers []int   // total customers waiting in line, sampled at the end of each tick
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		DispatchWaits:      make([]int64, 0),
		NumQueuedCustomers: make([]int, 0),
	}
}

// LineReport summarizes one checkout line at the end of a run.
type LineReport struct {
	Line                 int    `json:"line"`
	ServedCount          int    `json:"served_count"`
	RemainingQueueLength int    `json:"remaining_queue_length"`
	AverageWait          *int64 `json:"average_wait,omitempty"` // nil when no customer was served
}

// WaitPercentiles summarizes the distribution of dispatch waits.
type WaitPercentiles struct {
	Mean float64 `json:"mean"`
	P50  float64 `json:"p50"`
	P90  float64 `json:"p90"`
	P99  float64 `json:"p99"`
}

// Report is the result of a simulation run.
// Averages use integer (floor) division over whole ticks.
type Report struct {
	Lines                []LineReport     `json:"lines"`
	AggregateAverageWait *int64           `json:"aggregate_average_wait,omitempty"`
	InServiceCount       int              `json:"in_service_count"`
	CustomersArrived     int              `json:"customers_arrived"`
	LinesOpened          int              `json:"lines_opened"`
	CustomersShifted     int              `json:"customers_shifted"`
	SimEndedTime         int64            `json:"sim_ended_time"`
	DispatchWaits        *WaitPercentiles `json:"dispatch_wait_percentiles,omitempty"`
}

// Report builds the report from the simulator's current state.
func (sim *Simulator) Report() *Report {
	r := &Report{
		Lines:            make([]LineReport, 0, len(sim.Lines)),
		InServiceCount:   sim.IdleEvents.Len(),
		CustomersArrived: sim.Metrics.CustomersArrived,
		LinesOpened:      sim.Metrics.LinesOpened,
		CustomersShifted: sim.Metrics.CustomersShifted,
		SimEndedTime:     sim.Metrics.SimEndedTime,
	}

	var totalWait int64
	totalServed := 0
	for i, l := range sim.Lines {
		lr := LineReport{
			Line:                 i,
			ServedCount:          l.ServedCount,
			RemainingQueueLength: l.Queue.Len(),
			AverageWait:          averageWait(l.CumulativeWait, l.ServedCount),
		}
		r.Lines = append(r.Lines, lr)
		totalWait += l.CumulativeWait
		totalServed += l.ServedCount
	}
	r.AggregateAverageWait = averageWait(totalWait, totalServed)

	if len(sim.Metrics.DispatchWaits) > 0 {
		r.DispatchWaits = &WaitPercentiles{
			Mean: CalculateMean(sim.Metrics.DispatchWaits),
			P50:  CalculatePercentile(sim.Metrics.DispatchWaits, 50),
			P90:  CalculatePercentile(sim.Metrics.DispatchWaits, 90),
			P99:  CalculatePercentile(sim.Metrics.DispatchWaits, 99),
		}
	}
	return r
}

// averageWait returns total/served with floor division, or nil if nothing was served.
func averageWait(total int64, served int) *int64 {
	if served == 0 {
		return nil
	}
	avg := total / int64(served)
	return &avg
}

// Print writes a human-readable summary of the report.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Summary ===")
	for _, l := range r.Lines {
		fmt.Fprintf(w, "Cashier %d checked out %d customers with %d customers in their line at end of simulation.\n",
			l.Line, l.ServedCount, l.RemainingQueueLength)
		if l.AverageWait != nil {
			fmt.Fprintf(w, "Cashier %d average wait from line entry to checkout start: %d minutes\n", l.Line, *l.AverageWait)
		} else {
			fmt.Fprintf(w, "Cashier %d average wait: no customers served\n", l.Line)
		}
	}
	if r.AggregateAverageWait != nil {
		fmt.Fprintf(w, "Average wait for all served customers: %d minutes\n", *r.AggregateAverageWait)
	} else {
		fmt.Fprintln(w, "No customers were served!")
	}
	fmt.Fprintf(w, "Customers being checked out at end of simulation: %d\n", r.InServiceCount)
	fmt.Fprintf(w, "Customers arrived   : %d\n", r.CustomersArrived)
	fmt.Fprintf(w, "Lines opened        : %d\n", r.LinesOpened)
	fmt.Fprintf(w, "Customers shifted   : %d\n", r.CustomersShifted)
	if r.DispatchWaits != nil {
		fmt.Fprintf(w, "Dispatch wait mean    : %.2f minutes\n", r.DispatchWaits.Mean)
		fmt.Fprintf(w, "Dispatch wait p50/p90/p99: %.2f / %.2f / %.2f minutes\n",
			r.DispatchWaits.P50, r.DispatchWaits.P90, r.DispatchWaits.P99)
	}
}

// SaveResults writes the report as indented JSON to path.
func (r *Report) SaveResults(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
