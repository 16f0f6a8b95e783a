// Defines the Customer and Line records that model shoppers and checkout lines.

package sim

import "fmt"

// Customer models a single shopper waiting for, or receiving, checkout service.
type Customer struct {
	ID        int   // Arrival sequence number within a run
	Duration  int   // Checkout time in ticks (> 0)
	EntryTick int64 // Tick the customer joined its current line; reset when shifted
}

// WaitContribution is how much the customer adds to a line's projected wait.
// The extra tick covers the hand-off between two customers.
func (c *Customer) WaitContribution() int {
	return c.Duration + 1
}

func (c *Customer) String() string {
	return fmt.Sprintf("{id=%d dur=%d entry=%d}", c.ID, c.Duration, c.EntryTick)
}

// Line is one checkout queue served by exactly one cashier.
type Line struct {
	ID             int
	Queue          *LineQueue
	Idle           bool  // cashier state: true = Idle, false = Busy
	ServedCount    int   // customers whose checkout finished
	CumulativeWait int64 // sum of queue waits of dispatched customers
	// ProjectedWait is a running estimate of the time a newly enqueued customer
	// would wait. It is incremented on enqueue, decremented on shift, and decays
	// by one per tick while the front customer is being served.
	ProjectedWait int
}

// NewLine creates an empty line whose cashier is idle.
func NewLine(id int) *Line {
	return &Line{
		ID:    id,
		Queue: NewLineQueue(),
		Idle:  true,
	}
}

// Enqueue adds c at the rear of the line and accounts for it in ProjectedWait.
func (l *Line) Enqueue(c *Customer) {
	l.Queue.AddRear(c)
	l.ProjectedWait += c.WaitContribution()
}

// decay lowers the projected wait by one tick, never below zero.
func (l *Line) decay() {
	if l.ProjectedWait > 0 {
		l.ProjectedWait--
	}
}
