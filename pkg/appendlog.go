// Package pkg provides reusable utilities for odoscan.
package pkg

import (
	"fmt"
	"sync"
)

// AppendLog is a generic append-only sequence of items of type T that is
// safe for concurrent appends. Items are never removed; the log lives for
// the duration of one run.
type AppendLog[T any] interface {
	Len() uint64
	Append(item T)
	AppendBatch(items []T)
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Snapshot() []T
}

type appendLogImpl[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewAppendLog creates an empty AppendLog.
func NewAppendLog[T any]() AppendLog[T] {
	return &appendLogImpl[T]{}
}

// Append implements AppendLog.
func (l *appendLogImpl[T]) Append(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append(l.items, item)
}

// AppendBatch implements AppendLog.
func (l *appendLogImpl[T]) AppendBatch(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = append(l.items, items...)
}

// Len implements AppendLog.
func (l *appendLogImpl[T]) Len() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return uint64(len(l.items))
}

// Get implements AppendLog.
func (l *appendLogImpl[T]) Get(index uint64) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	if index >= uint64(len(l.items)) {
		return zero, fmt.Errorf("index %d out of range (len %d)", index, len(l.items))
	}

	return l.items[index], nil
}

// Range calls f for each item in append order. It stops and returns the
// first error f reports. Appends from other goroutines during iteration are
// not observed; Range walks a snapshot.
func (l *appendLogImpl[T]) Range(f func(index uint64, item T) error) error {
	for i, item := range l.Snapshot() {
		if err := f(uint64(i), item); err != nil {
			return err
		}
	}

	return nil
}

// Snapshot returns a copy of the current contents in append order.
func (l *appendLogImpl[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, len(l.items))
	copy(out, l.items)

	return out
}
