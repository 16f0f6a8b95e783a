// Implements the LineQueue, which holds the customers waiting in one checkout line.
// Customers are added at the rear on arrival and served from the front; the
// rebalancer takes customers off the rear when a new line opens.

package sim

import (
	"fmt"
	"strings"
)

const minQueueCapacity = 8

// LineQueue is a double-ended queue of customers backed by a ring buffer.
// All operations are O(1) amortized.
type LineQueue struct {
	buf   []*Customer
	head  int // index of the front customer
	count int
}

// NewLineQueue creates an empty queue.
func NewLineQueue() *LineQueue {
	return &LineQueue{buf: make([]*Customer, minQueueCapacity)}
}

// AddRear appends a customer at the back of the line.
func (q *LineQueue) AddRear(c *Customer) {
	if c == nil {
		panic("AddRear: customer must not be nil")
	}
	q.grow()
	q.buf[q.index(q.count)] = c
	q.count++
}

// AddFront inserts a customer at the head of the line.
func (q *LineQueue) AddFront(c *Customer) {
	if c == nil {
		panic("AddFront: customer must not be nil")
	}
	q.grow()
	q.head = (q.head - 1 + len(q.buf)) % len(q.buf)
	q.buf[q.head] = c
	q.count++
}

// RemoveFront removes and returns the customer at the head of the line.
func (q *LineQueue) RemoveFront() (*Customer, error) {
	if q.count == 0 {
		return nil, ErrEmptyStructure
	}
	c := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return c, nil
}

// RemoveRear removes and returns the customer at the back of the line.
func (q *LineQueue) RemoveRear() (*Customer, error) {
	if q.count == 0 {
		return nil, ErrEmptyStructure
	}
	i := q.index(q.count - 1)
	c := q.buf[i]
	q.buf[i] = nil
	q.count--
	return c, nil
}

// PeekFront returns the customer at the head of the line without removing it.
func (q *LineQueue) PeekFront() (*Customer, error) {
	if q.count == 0 {
		return nil, ErrEmptyStructure
	}
	return q.buf[q.head], nil
}

// PeekRear returns the customer at the back of the line without removing it.
func (q *LineQueue) PeekRear() (*Customer, error) {
	if q.count == 0 {
		return nil, ErrEmptyStructure
	}
	return q.buf[q.index(q.count-1)], nil
}

// Len returns the number of customers in the line.
func (q *LineQueue) Len() int {
	return q.count
}

// IsEmpty returns true if no customer is waiting.
func (q *LineQueue) IsEmpty() bool {
	return q.count == 0
}

// Items returns a copy of the queue contents, front first.
func (q *LineQueue) Items() []*Customer {
	items := make([]*Customer, q.count)
	for i := range items {
		items[i] = q.buf[q.index(i)]
	}
	return items
}

func (q *LineQueue) String() string {
	var sb strings.Builder
	sb.WriteString("(front)")
	for _, c := range q.Items() {
		sb.WriteString(" ")
		sb.WriteString(fmt.Sprint(c))
	}
	sb.WriteString(" (rear)")
	return sb.String()
}

func (q *LineQueue) index(offset int) int {
	return (q.head + offset) % len(q.buf)
}

// grow doubles the buffer when full, unrolling the ring so head lands at 0.
func (q *LineQueue) grow() {
	if len(q.buf) == 0 {
		q.buf = make([]*Customer, minQueueCapacity)
		q.head = 0
		return
	}
	if q.count < len(q.buf) {
		return
	}
	bigger := make([]*Customer, len(q.buf)*2)
	for i := 0; i < q.count; i++ {
		bigger[i] = q.buf[q.index(i)]
	}
	q.buf = bigger
	q.head = 0
}
