// Copyright (c) 2020 Blocknative Corporation. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store is the minimal in-memory key/value host the command
// layer binds a scalable Bloom filter to. The engine (package bloom)
// assumes serialized access per key; Store is what provides that
// serialization, standing in for a real host's command executor.
package store

import (
	"sync"

	"github.com/dataence/bloomd/internal/bloom"
)

// ValueKind tags what an Entry holds, so a key already bound to some
// other type can produce the host's wrong-type error instead of being
// silently reinterpreted as a bloom filter.
type ValueKind int

const (
	// KindBloom marks an Entry whose Bloom field is valid.
	KindBloom ValueKind = iota
	// KindOther marks any non-bloom value type the store happens to be
	// holding under a key; the store never constructs these itself, but
	// tests use it to exercise the wrong-type path.
	KindOther
)

// Entry is one keyspace slot.
type Entry struct {
	Kind  ValueKind
	Bloom *bloom.ScalableFilter
}

// KeyEvent is one keyspace notification, published once per BFADD call
// that updates the store.
type KeyEvent struct {
	Key   string
	Event string
}

// Store is a string-keyed map of Entry, safe for concurrent use. It
// serializes operations against the same key (and, for simplicity,
// against all keys) with a single RWMutex -- exactly the "host's command
// executor" spec.md §5 assumes without specifying.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	dirty   uint64
	events  chan KeyEvent
}

// New creates an empty store. eventBuffer is the buffer size of the
// notification channel; 0 uses a sensible default.
func New(eventBuffer int) *Store {
	if eventBuffer <= 0 {
		eventBuffer = 64
	}
	return &Store{
		entries: make(map[string]*Entry),
		events:  make(chan KeyEvent, eventBuffer),
	}
}

// Get looks up key without creating it.
func (s *Store) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

// GetOrCreateBloom returns the bloom entry bound to key, creating an
// empty one if key is absent. It returns ErrWrongType if key already
// holds a non-bloom value.
func (s *Store) GetOrCreateBloom(key string) (entry *Entry, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &Entry{Kind: KindBloom, Bloom: bloom.New()}
		s.entries[key] = e
		return e, true, nil
	}
	if e.Kind != KindBloom {
		return nil, false, ErrWrongType
	}
	return e, false, nil
}

// GetBloom returns the bloom entry bound to key without creating it.
// ok is false if the key is absent; err is ErrWrongType if key holds a
// non-bloom value.
func (s *Store) GetBloom(key string) (flt *bloom.ScalableFilter, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, present := s.entries[key]
	if !present {
		return nil, false, nil
	}
	if e.Kind != KindBloom {
		return nil, false, ErrWrongType
	}
	return e.Bloom, true, nil
}

// Delete removes key unconditionally. Used by tests to reset state
// between scenarios; no production command exercises it.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// MarkUpdated increments the dirty counter and publishes a keyspace
// event for key. Call once per BFADD that updated >= 1.
func (s *Store) MarkUpdated(key, event string) {
	s.mu.Lock()
	s.dirty++
	s.mu.Unlock()

	select {
	case s.events <- KeyEvent{Key: key, Event: event}:
	default:
		// Notification channel full: the host is free to drop events
		// rather than block the command path on a slow subscriber.
	}
}

// Dirty returns the number of updating BFADD calls observed so far.
func (s *Store) Dirty() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Notifications returns the channel keyspace events are published on.
func (s *Store) Notifications() <-chan KeyEvent {
	return s.events
}
