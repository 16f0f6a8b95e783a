// Package trace provides decision-trace recording for checkout simulations.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// ArrivalRecord captures which line an arriving customer was sent to.
type ArrivalRecord struct {
	CustomerID    int
	Clock         int64
	Line          int
	Duration      int
	ProjectedWait int // chosen line's projected wait after the customer joined
}

// ShiftRecord captures one customer moved onto a newly opened line.
type ShiftRecord struct {
	FromLine   int
	CustomerID int
	Duration   int
}

// RebalanceRecord captures a line opening and the customers redistributed to it.
type RebalanceRecord struct {
	Clock      int64
	NewLine    int
	TargetLine int // line whose projected wait the new line was filled up to
	NewWait    int // new line's projected wait after shifting
	Shifts     []ShiftRecord
}
