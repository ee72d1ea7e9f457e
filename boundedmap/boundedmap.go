// Package boundedmap provides an insertion-ordered map with a hard size cap.
//
// The map is a pure capacity guard: it knows nothing about time or value
// lifecycle. Eviction is silent (there is no callback), so owners that care
// about a value's validity check the value itself after a lookup.
package boundedmap

import (
	"container/list"
	"errors"
)

// ErrMaxSize is returned by New when the requested capacity is below one.
var ErrMaxSize = errors.New("max size must be at least 1")

/*
Map keeps at most maxSize entries in insertion order. Inserting beyond the
cap removes the oldest entries until the map fits again. Lookups never
promote: eviction order is pure insertion order, so a key written once and
read constantly is still the first to go. Replacing an existing key keeps
its original position.

Map is not safe for concurrent use; the owner provides exclusion.
*/
type Map[K comparable, V any] struct {
	maxSize int
	index   map[K]*list.Element
	order   *list.List // front = oldest insertion, back = newest
}

type pair[K comparable, V any] struct {
	key   K
	value V
}

// Evicted is one entry removed by the capacity trim, handed back to the
// owner so it can release whatever bookkeeping it attached to the value.
type Evicted[K comparable, V any] struct {
	Key   K
	Value V
}

// New builds an empty map capped at maxSize entries.
func New[K comparable, V any](maxSize int) (*Map[K, V], error) {
	if maxSize < 1 {
		return nil, ErrMaxSize
	}
	return &Map[K, V]{
		maxSize: maxSize,
		index:   make(map[K]*list.Element),
		order:   list.New(),
	}, nil
}

// Put inserts or replaces key. A replace keeps the key's original position
// and returns the previous value. An insert may push the map over its cap,
// in which case the oldest entries are trimmed and returned, oldest first.
func (m *Map[K, V]) Put(key K, value V) (prev V, replaced bool, evicted []Evicted[K, V]) {
	if el, ok := m.index[key]; ok {
		p := el.Value.(*pair[K, V])
		prev = p.value
		p.value = value
		return prev, true, nil
	}

	m.index[key] = m.order.PushBack(&pair[K, V]{key: key, value: value})
	return prev, false, m.trim()
}

// trim removes oldest entries until the map is within its cap. A single Put
// grows the map by at most one, but the loop deliberately trims until the
// bound holds so bulk growth paths added later stay correct.
func (m *Map[K, V]) trim() []Evicted[K, V] {
	var evicted []Evicted[K, V]
	for m.order.Len() > m.maxSize {
		el := m.order.Front()
		p := el.Value.(*pair[K, V])
		m.order.Remove(el)
		delete(m.index, p.key)
		evicted = append(evicted, Evicted[K, V]{Key: p.key, Value: p.value})
	}
	return evicted
}

// Get returns the value stored under key. It does not refresh the key's
// position.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if el, ok := m.index[key]; ok {
		return el.Value.(*pair[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Remove deletes key and returns the value it held.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	el, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	m.order.Remove(el)
	delete(m.index, key)
	return el.Value.(*pair[K, V]).value, true
}

// Len returns the current entry count.
func (m *Map[K, V]) Len() int {
	return len(m.index)
}

// Range calls f for every entry, oldest insertion first, until f returns
// false. f must not mutate the map.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	for el := m.order.Front(); el != nil; el = el.Next() {
		p := el.Value.(*pair[K, V])
		if !f(p.key, p.value) {
			return
		}
	}
}

// Keys returns a snapshot of the keys, oldest insertion first.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.order.Len())
	for el := m.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*pair[K, V]).key)
	}
	return keys
}

// Clear drops every entry.
func (m *Map[K, V]) Clear() {
	m.index = make(map[K]*list.Element)
	m.order.Init()
}
