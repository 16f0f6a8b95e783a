package sim

// scriptedSource is a RandomSource that replays fixed values.
// Float64 and Intn each cycle through their own list; an empty list yields 0.
type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	if v >= n {
		return n - 1
	}
	return v
}

// testConfig returns the configuration used by the end-to-end checkout scenario.
func testConfig() SimConfig {
	return SimConfig{
		InitialNumCashiers:   1,
		SimulationLength:     25,
		ProbabilityOfArrival: 0.5,
		AverageCustomerTime:  3,
		MaxCheckoutLines:     10,
		MaxWaitThreshold:     5,
		Seed:                 42,
	}
}

// mustNewSimulator builds a seeded simulator or panics.
func mustNewSimulator(cfg SimConfig) *Simulator {
	s, err := NewSimulator(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// enqueueDurations adds customers with the given durations to line, using
// consecutive entry ticks starting at firstEntry.
func enqueueDurations(line *Line, firstEntry int64, durations ...int) {
	for i, d := range durations {
		line.Enqueue(&Customer{ID: int(firstEntry) + i, Duration: d, EntryTick: firstEntry + int64(i)})
	}
}

// queuedContribution recomputes a line's wait from its raw queue contents.
func queuedContribution(line *Line) int {
	total := 0
	for _, c := range line.Queue.Items() {
		total += c.WaitContribution()
	}
	return total
}

// durationsOf lists the durations in a line's queue, front first.
func durationsOf(line *Line) []int {
	var out []int
	for _, c := range line.Queue.Items() {
		out = append(out, c.Duration)
	}
	return out
}
