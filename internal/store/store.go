// Package store holds the authoritative in-process copy of each entity
// family. A Store is a dumb broadcast register: no merging logic lives here.
package store

import "sync"

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Store holds exactly one current value and notifies subscribers on every
// replacement. Notifications are delivered synchronously in set-call order.
// Subscribers must not call Set or Update from their callback.
type Store[T any] struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	value    T
	subs     []subscriber[T]
	nextID   int
}

// New builds a store seeded with initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the current value and notifies all subscribers.
func (s *Store[T]) Set(value T) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.value = value
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(value)
	}
}

// Update atomically replaces the current value with apply(current) and
// notifies all subscribers. Mutation commits go through Update so that a
// slow operation merges into the latest value instead of overwriting later
// commits wholesale.
func (s *Store[T]) Update(apply func(T) T) T {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	value := apply(s.value)
	s.value = value
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(value)
	}
	return value
}

// Subscribe registers fn to be called on every subsequent Set or Update.
// The returned function removes the registration.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
