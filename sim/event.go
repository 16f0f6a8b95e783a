package sim

// IdleEvent is scheduled when a cashier starts serving a customer and fires
// once the checkout is done, returning the cashier to the Idle state.
type IdleEvent struct {
	ReadyTick int64 // tick at which the cashier becomes idle
	Line      int   // index of the line whose cashier goes idle
}

// Timestamp returns the tick at which the event fires.
func (e IdleEvent) Timestamp() int64 {
	return e.ReadyTick
}

// Execute marks the cashier idle and counts the finished customer.
func (e IdleEvent) Execute(sim *Simulator) {
	line := sim.Lines[e.Line]
	line.Idle = true
	line.ServedCount++
	sim.Log.Debugf("<< Idle: line %d at %d ticks (served=%d)", e.Line, e.ReadyTick, line.ServedCount)
}
