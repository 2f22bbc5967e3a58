// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package db

import (
	"runtime"

	ldb_iterator "github.com/syndtr/goleveldb/leveldb/iterator"
)

// Iterator - consumer handle for one engine cursor
//
// logically owned by the consumer, but the owning DB tracks it and
// will force it closed before the engine instance is destroyed.  An
// iterator never outlives the engine it was created from.  All
// operations after close fail with fault.IteratorClosed.
type Iterator struct {
	owner *DB
	entry *iterEntry
}

func (d *DB) newIteratorHandle(cur ldb_iterator.Iterator) *Iterator {
	it := &Iterator{
		owner: d,
		entry: d.reg.register(cur),
	}
	// liveness signal: a handle dropped without Close still releases
	// its cursor and lets the registry prune the entry
	runtime.SetFinalizer(it, (*Iterator).finalize)
	return it
}

func (it *Iterator) finalize() {
	it.entry.close()
	it.owner.reg.prune()
}

// move the cursor with one of the engine's positioning calls
func (it *Iterator) position(move func(cur ldb_iterator.Iterator) bool) (bool, error) {
	ok := false
	err := it.entry.do(func(cur ldb_iterator.Iterator) error {
		ok = move(cur)
		return nil
	})
	return ok, err
}

// First - move to the first key
func (it *Iterator) First() (bool, error) {
	return it.position(ldb_iterator.Iterator.First)
}

// Last - move to the last key
func (it *Iterator) Last() (bool, error) {
	return it.position(ldb_iterator.Iterator.Last)
}

// Seek - move to the first key at or after the given key
func (it *Iterator) Seek(key []byte) (bool, error) {
	return it.position(func(cur ldb_iterator.Iterator) bool {
		return cur.Seek(key)
	})
}

// Next - move forward one key
func (it *Iterator) Next() (bool, error) {
	return it.position(ldb_iterator.Iterator.Next)
}

// Prev - move back one key
func (it *Iterator) Prev() (bool, error) {
	return it.position(ldb_iterator.Iterator.Prev)
}

// Valid - true while positioned on a key; false after close
func (it *Iterator) Valid() bool {
	valid := false
	_ = it.entry.do(func(cur ldb_iterator.Iterator) error {
		valid = cur.Valid()
		return nil
	})
	return valid
}

// Key - copy of the current key
func (it *Iterator) Key() ([]byte, error) {
	var key []byte
	err := it.entry.do(func(cur ldb_iterator.Iterator) error {
		// cursor slices are only valid until the next move
		key = append([]byte(nil), cur.Key()...)
		return nil
	})
	return key, err
}

// Value - copy of the current value
func (it *Iterator) Value() ([]byte, error) {
	var value []byte
	err := it.entry.do(func(cur ldb_iterator.Iterator) error {
		value = append([]byte(nil), cur.Value()...)
		return nil
	})
	return value, err
}

// Err - any accumulated engine-side iteration error
func (it *Iterator) Err() error {
	var err error
	doErr := it.entry.do(func(cur ldb_iterator.Iterator) error {
		err = cur.Error()
		return nil
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// Closed - true once closed explicitly or forcibly
func (it *Iterator) Closed() bool {
	return it.entry.isClosed()
}

// Close - release the cursor; idempotent
func (it *Iterator) Close() error {
	runtime.SetFinalizer(it, nil)
	it.entry.close()
	it.owner.reg.prune()
	return nil
}
