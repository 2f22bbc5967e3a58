// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package db

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb/iterator"

	"github.com/hollowoak/asyncldb/fault"
)

// registry - the set of live cursors a handle has produced
//
// entries do not own the consumer-facing Iterator: the consumer may
// drop its handle at any time and a finalizer signals the registry to
// prune.  Forced closure from DB.Close never depends on pruning (or
// on the garbage collector) having run.
type registry struct {
	sync.Mutex
	entries []*iterEntry
}

// one tracked cursor; shared by the registry and one Iterator
type iterEntry struct {
	sync.Mutex
	cur    iterator.Iterator // nil once closed
	closed bool
}

// run f against the live cursor, or fail if force-closed
func (e *iterEntry) do(f func(cur iterator.Iterator) error) error {
	e.Lock()
	defer e.Unlock()
	if e.closed {
		return fault.IteratorClosed
	}
	return f(e.cur)
}

// release the cursor; idempotent
//
// returns true on the first close
func (e *iterEntry) close() bool {
	e.Lock()
	defer e.Unlock()
	if e.closed {
		return false
	}
	e.cur.Release()
	e.cur = nil
	e.closed = true
	return true
}

func (e *iterEntry) isClosed() bool {
	e.Lock()
	defer e.Unlock()
	return e.closed
}

// register - append a tracking entry for a new cursor
func (r *registry) register(cur iterator.Iterator) *iterEntry {
	e := &iterEntry{cur: cur}
	r.Lock()
	r.entries = append(r.entries, e)
	r.Unlock()
	return e
}

// closeAll - force every live cursor closed and clear the registry
//
// called from DB.Close before the engine instance is destroyed;
// cursors must not survive the engine they came from
func (r *registry) closeAll() {
	r.Lock()
	entries := r.entries
	r.entries = nil
	r.Unlock()

	for _, e := range entries {
		e.close()
	}
}

// prune - drop entries that are already closed
//
// keeps live entries in arbitrary order; only bounds memory growth,
// correctness never depends on it
func (r *registry) prune() {
	r.Lock()
	live := r.entries[:0]
	for _, e := range r.entries {
		if !e.isClosed() {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = live
	r.Unlock()
}

// size - number of tracked entries
func (r *registry) size() int {
	r.Lock()
	defer r.Unlock()
	return len(r.entries)
}
