package sim

import "sort"

// Shift records one customer moved to a newly opened line.
type Shift struct {
	FromLine   int
	CustomerID int
	Duration   int
}

// RebalanceResult describes what a Rebalance call did.
type RebalanceResult struct {
	TargetLine int // line whose wait the new line was filled up to
	Shifts     []Shift
}

// Rebalance moves customers from the most congested lines onto lines[newIdx]
// until the new line's projected wait reaches the target line's.
//
// The target is the second line in (ProjectedWait, index) order across all
// lines, the new one included. It is chosen once, before anything moves, and
// is not re-ranked as shifts change the ordering; its wait is read live.
// Customers are taken from the rear of the donor queue and their EntryTick is
// reset to clock. Shifts move whole customers, so the new line may overshoot.
func Rebalance(lines []*Line, newIdx int, clock int64) RebalanceResult {
	ranked := rankLines(lines)
	if len(ranked) < 2 {
		return RebalanceResult{TargetLine: newIdx}
	}
	result := RebalanceResult{TargetLine: ranked[1]}
	target := lines[result.TargetLine]
	newLine := lines[newIdx]

	// Max-queue over lines keyed by projected wait: priorities are negated so
	// the min-scheduler pops the most congested line first.
	congestion := NewEventScheduler[int]()
	for i, l := range lines {
		congestion.Schedule(-int64(l.ProjectedWait), i)
	}

	for newLine.ProjectedWait < target.ProjectedWait {
		entry, err := congestion.PopMin()
		if err != nil || entry.Value == newIdx {
			break
		}
		donor := lines[entry.Value]
		c, err := donor.Queue.RemoveRear()
		if err != nil {
			// nothing left to redistribute
			break
		}
		c.EntryTick = clock
		newLine.Queue.AddRear(c)
		donor.ProjectedWait -= c.WaitContribution()
		newLine.ProjectedWait += c.WaitContribution()
		result.Shifts = append(result.Shifts, Shift{FromLine: entry.Value, CustomerID: c.ID, Duration: c.Duration})

		congestion.Schedule(-int64(donor.ProjectedWait), entry.Value)
	}
	return result
}

// rankLines returns line indices ordered by projected wait, lowest index first on ties.
func rankLines(lines []*Line) []int {
	idx := make([]int, len(lines))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return lines[idx[a]].ProjectedWait < lines[idx[b]].ProjectedWait
	})
	return idx
}
