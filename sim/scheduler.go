package sim

import "container/heap"

// Entry is a single (priority, value) pair held by an EventScheduler.
type Entry[V any] struct {
	Priority int64
	Value    V
	seq      uint64 // insertion order, breaks priority ties
}

// entryHeap implements heap.Interface.
// Order by: priority → insertion sequence.
type entryHeap[V any] []Entry[V]

func (h entryHeap[V]) Len() int { return len(h) }

func (h entryHeap[V]) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap[V]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap[V]) Push(x any) {
	*h = append(*h, x.(Entry[V]))
}

func (h *entryHeap[V]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventScheduler is a min-priority queue with deterministic ordering.
// Entries with equal priority come out in the order they were scheduled.
//
// The simulator uses it for cashier idle events keyed by ready tick.
// Callers that need max-queue behavior schedule with a negated priority.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type EventScheduler[V any] struct {
	entries entryHeap[V]
	nextSeq uint64
}

// NewEventScheduler creates an empty scheduler.
func NewEventScheduler[V any]() *EventScheduler[V] {
	s := &EventScheduler[V]{
		entries: make(entryHeap[V], 0),
	}
	heap.Init(&s.entries)
	return s
}

// Schedule inserts value with the given priority.
func (s *EventScheduler[V]) Schedule(priority int64, value V) {
	heap.Push(&s.entries, Entry[V]{Priority: priority, Value: value, seq: s.nextSeq})
	s.nextSeq++
}

// PeekMin returns the lowest-priority entry without removing it.
// The boolean is false when the scheduler is empty.
func (s *EventScheduler[V]) PeekMin() (Entry[V], bool) {
	if s.IsEmpty() {
		return Entry[V]{}, false
	}
	return s.entries[0], true
}

// PopMin removes and returns the lowest-priority entry.
// Returns ErrEmptyQueue, leaving the scheduler untouched, when it is empty.
func (s *EventScheduler[V]) PopMin() (Entry[V], error) {
	if s.IsEmpty() {
		return Entry[V]{}, ErrEmptyQueue
	}
	return heap.Pop(&s.entries).(Entry[V]), nil
}

// DrainReady removes every entry with priority <= threshold and returns them
// in nondecreasing priority order, insertion order within equal priorities.
func (s *EventScheduler[V]) DrainReady(threshold int64) []Entry[V] {
	var ready []Entry[V]
	for !s.IsEmpty() && s.entries[0].Priority <= threshold {
		ready = append(ready, heap.Pop(&s.entries).(Entry[V]))
	}
	return ready
}

// Len returns the number of scheduled entries.
func (s *EventScheduler[V]) Len() int {
	return s.entries.Len()
}

// IsEmpty returns true if nothing is scheduled.
func (s *EventScheduler[V]) IsEmpty() bool {
	return s.entries.Len() == 0
}
