// Package store provides the ordered in-memory collection backing every
// entity kind. Records are kept in insertion order, keyed by a unique
// identifier and bounded by an optional capacity.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/odyssey-erp/stockroom/internal/shared"
)

// Options configures a Store for one record type.
type Options[K comparable, T any] struct {
	// Name labels errors, e.g. "product".
	Name string
	// Capacity bounds the number of records; zero means unbounded.
	Capacity int
	// Key extracts the identifier from a record.
	Key func(T) K
	// WithKey returns a copy of the record carrying the given identifier.
	WithKey func(T, K) T
	// Validate reports why a record is malformed. Nil accepts everything.
	Validate func(T) error
}

// Store is an ordered, uniqueness-enforcing collection. Finders return copies;
// mutation only goes through Add, Update and Delete.
type Store[K comparable, T any] struct {
	mu    sync.RWMutex
	opts  Options[K, T]
	items []T
}

// New constructs an empty Store.
func New[K comparable, T any](opts Options[K, T]) *Store[K, T] {
	if opts.Key == nil {
		panic("store: key function required")
	}
	if opts.Name == "" {
		opts.Name = "record"
	}
	return &Store[K, T]{opts: opts}
}

// Name returns the label used in errors.
func (s *Store[K, T]) Name() string { return s.opts.Name }

// Capacity returns the configured bound, zero when unbounded.
func (s *Store[K, T]) Capacity() int { return s.opts.Capacity }

// Add appends record after checking capacity, uniqueness and validity, in that order.
func (s *Store[K, T]) Add(record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.Capacity > 0 && len(s.items) >= s.opts.Capacity {
		return fmt.Errorf("%s store: %w (limit %d)", s.opts.Name, shared.ErrCapacityExceeded, s.opts.Capacity)
	}
	key := s.opts.Key(record)
	if s.indexOf(key) >= 0 {
		return fmt.Errorf("%s %v: %w", s.opts.Name, key, shared.ErrDuplicateID)
	}
	if err := s.validate(record); err != nil {
		return err
	}
	s.items = append(s.items, record)
	return nil
}

// FindByID returns a copy of the record with id.
func (s *Store[K, T]) FindByID(id K) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return s.items[idx], true
}

// Exists reports whether id is present.
func (s *Store[K, T]) Exists(id K) bool {
	_, ok := s.FindByID(id)
	return ok
}

// FindBy collects up to limit records matching match, in store order.
// A limit of zero or less returns every match.
func (s *Store[K, T]) FindBy(match func(T) bool, limit int) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, item := range s.items {
		if limit > 0 && len(out) >= limit {
			break
		}
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Update overwrites every field of the record with id except the identifier.
// The candidate is validated first; an invalid candidate leaves the stored
// record untouched.
func (s *Store[K, T]) Update(id K, values T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%s %v: %w", s.opts.Name, id, shared.ErrNotFound)
	}
	candidate := values
	if s.opts.WithKey != nil {
		candidate = s.opts.WithKey(values, id)
	} else if s.opts.Key(values) != id {
		return fmt.Errorf("%s %v: identifier is immutable: %w", s.opts.Name, id, shared.ErrInvalidRecord)
	}
	if err := s.validate(candidate); err != nil {
		return err
	}
	s.items[idx] = candidate
	return nil
}

// Delete removes the record with id, shifting later records left.
func (s *Store[K, T]) Delete(id K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%s %v: %w", s.opts.Name, id, shared.ErrNotFound)
	}
	copy(s.items[idx:], s.items[idx+1:])
	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return nil
}

// List returns a snapshot of all records in store order.
func (s *Store[K, T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the number of records.
func (s *Store[K, T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Reset drops every record. Used before reloading from disk.
func (s *Store[K, T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *Store[K, T]) indexOf(id K) int {
	for i, item := range s.items {
		if s.opts.Key(item) == id {
			return i
		}
	}
	return -1
}

func (s *Store[K, T]) validate(record T) error {
	if s.opts.Validate == nil {
		return nil
	}
	err := s.opts.Validate(record)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrInvalidRecord) {
		err = fmt.Errorf("%w: %w", shared.ErrInvalidRecord, err)
	}
	return fmt.Errorf("%s %v: %w", s.opts.Name, s.opts.Key(record), err)
}
