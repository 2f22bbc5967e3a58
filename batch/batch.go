// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package batch

import (
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
)

// Batch - ordered Put/Delete mutations plus their copied byte storage
//
// the engine batch copies key and value bytes on append, so the
// consumer may reuse its buffers as soon as Put/Delete returns
type Batch struct {
	wb   leveldb.Batch
	refs int32
}

// New - an empty batch
func New() *Batch {
	return new(Batch)
}

// Put - append a put mutation
func (b *Batch) Put(key []byte, value []byte) {
	b.wb.Put(key, value)
}

// Delete - append a delete mutation
func (b *Batch) Delete(key []byte) {
	b.wb.Delete(key)
}

// Len - number of pending mutations
func (b *Batch) Len() int {
	return b.wb.Len()
}

// Reset - drop all pending mutations, the batch stays usable
func (b *Batch) Reset() {
	b.wb.Reset()
}

// Retain - count a reference for the duration of one write task
func (b *Batch) Retain() {
	atomic.AddInt32(&b.refs, 1)
}

// Release - drop the reference taken by Retain
func (b *Batch) Release() {
	if atomic.AddInt32(&b.refs, -1) < 0 {
		panic("batch: release without retain")
	}
}

// InFlight - true while at least one write task references the batch
func (b *Batch) InFlight() bool {
	return atomic.LoadInt32(&b.refs) > 0
}

// Native - the underlying engine batch
//
// only the write task's background step may apply it
func (b *Batch) Native() *leveldb.Batch {
	return &b.wb
}
