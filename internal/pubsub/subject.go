package pubsub

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Handler receives a published value
type Handler[T any] func(value T)

// Subject is a single-writer, multi-reader channel that caches the latest
// value and replays it to new subscribers. Every reader gets its own copy
// made by the copy function, so nobody can mutate what another reader sees.
type Subject[T any] struct {
	mutex       sync.RWMutex
	value       T
	copyFn      func(T) T
	subscribers map[uint64]Handler[T]
	counter     uint64
}

// NewSubject creates a subject holding initial. copyFn may be nil for
// value types that need no deep copy.
func NewSubject[T any](initial T, copyFn func(T) T) *Subject[T] {
	if copyFn == nil {
		copyFn = func(v T) T { return v }
	}
	return &Subject[T]{
		value:       copyFn(initial),
		copyFn:      copyFn,
		subscribers: make(map[uint64]Handler[T]),
	}
}

// Value returns a copy of the latest published value
func (s *Subject[T]) Value() T {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.copyFn(s.value)
}

// Subscribe registers handler, immediately replays the current value to it
// and returns a function that removes the subscription.
func (s *Subject[T]) Subscribe(handler Handler[T]) func() {
	if handler == nil {
		return func() {}
	}
	id := atomic.AddUint64(&s.counter, 1)
	s.mutex.Lock()
	s.subscribers[id] = handler
	current := s.copyFn(s.value)
	s.mutex.Unlock()

	handler(current)

	return func() {
		s.mutex.Lock()
		delete(s.subscribers, id)
		s.mutex.Unlock()
	}
}

// Publish stores value and pushes a copy of it to every subscriber in
// subscription order
func (s *Subject[T]) Publish(value T) {
	s.mutex.Lock()
	s.value = s.copyFn(value)
	handlers := make([]Handler[T], 0, len(s.subscribers))
	ids := make([]uint64, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, s.subscribers[id])
	}
	stored := s.value
	s.mutex.Unlock()

	for _, handler := range handlers {
		handler(s.copyFn(stored))
	}
}

// Len returns the number of active subscribers
func (s *Subject[T]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.subscribers)
}
