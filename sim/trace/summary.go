package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalArrivals        int
	LinesOpened          int
	CustomersShifted     int
	MeanShiftsPerOpening float64
	MaxShiftsPerOpening  int
	ArrivalDistribution  map[int]int // line index → count of arrivals routed there
	UniqueArrivalTargets int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ArrivalDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalArrivals = len(st.Arrivals)
	for _, a := range st.Arrivals {
		summary.ArrivalDistribution[a.Line]++
	}
	summary.UniqueArrivalTargets = len(summary.ArrivalDistribution)

	summary.LinesOpened = len(st.Rebalances)
	for _, r := range st.Rebalances {
		summary.CustomersShifted += len(r.Shifts)
		if len(r.Shifts) > summary.MaxShiftsPerOpening {
			summary.MaxShiftsPerOpening = len(r.Shifts)
		}
	}
	if summary.LinesOpened > 0 {
		summary.MeanShiftsPerOpening = float64(summary.CustomersShifted) / float64(summary.LinesOpened)
	}

	return summary
}
