// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package db

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/hollowoak/asyncldb/batch"
	"github.com/hollowoak/asyncldb/dispatch"
	"github.com/hollowoak/asyncldb/engine"
	"github.com/hollowoak/asyncldb/fault"
	"github.com/hollowoak/asyncldb/status"
)

// DB - asynchronous handle over one engine instance
//
// constructed unopened; Open installs the engine, Close destroys it.
// several handles may share one dispatcher.
type DB struct {
	mu   sync.Mutex // serializes engine install, access and destroy
	eng  *engine.Instance
	reg  registry
	disp *dispatch.Dispatcher
	log  *logger.L
}

// New - an unopened handle using the given dispatcher
func New(disp *dispatch.Dispatcher, log *logger.L) *DB {
	return &DB{
		disp: disp,
		log:  log,
	}
}

// Version - engine major.minor, surfaced unchanged
func Version() string {
	return engine.Version()
}

// IsOpen - true while an engine instance is installed
func (d *DB) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eng != nil
}

// Open - open or create the database at path
//
// an already-open handle is closed first, so open-over-open is a
// transparent close-then-open, not an error.  The engine instance is
// installed by the background step; operations issued before the
// returned Pending resolves fail with fault.NotOpen.
func (d *DB) Open(path string, options *engine.Options) (*dispatch.Pending, error) {

	if path == "" {
		return nil, fault.InvalidPath
	}

	return d.disp.Submit(dispatch.Task{
		Background: func() status.Status {
			d.mu.Lock()
			defer d.mu.Unlock()

			// open called more than once: close the old engine,
			// forcing its iterators closed, before installing the new
			d.closeLocked()

			eng, err := engine.Open(path, options)
			if err != nil {
				return status.Error(err)
			}
			d.eng = eng
			d.log.Infof("opened: %q", path)
			return status.Ok()
		},
	}), nil
}

// Close - destroy the engine instance
//
// the force-close of iterators and the destruction of the engine
// happen synchronously on the caller's goroutine, so the next
// operation issued by the consumer observes the closed state.  A task
// is still submitted purely so a completion event fires.  Idempotent.
func (d *DB) Close() *dispatch.Pending {

	d.mu.Lock()
	d.closeLocked()
	d.mu.Unlock()

	return d.disp.Submit(dispatch.Task{})
}

// close iterators and engine; caller holds d.mu
//
// iterators must be closed first: cursors cannot survive the engine
// they came from
func (d *DB) closeLocked() {
	if d.eng == nil {
		return
	}
	d.reg.closeAll()
	if err := d.eng.Close(); err != nil {
		d.log.Errorf("engine close error: %s", err)
	}
	d.eng = nil
	d.log.Info("closed")
}

// Put - store one key/value pair
//
// implemented as an ephemeral one-mutation batch through the write
// path, exactly like Delete
func (d *DB) Put(key []byte, value []byte, options *engine.WriteOptions) (*dispatch.Pending, error) {

	if !d.IsOpen() {
		return nil, fault.NotOpen
	}
	if len(key) == 0 {
		return nil, fault.InvalidKey
	}

	wb := batch.New()
	wb.Put(key, value)
	return d.submitWrite(wb, true, options), nil
}

// Delete - remove one key
func (d *DB) Delete(key []byte, options *engine.WriteOptions) (*dispatch.Pending, error) {

	if !d.IsOpen() {
		return nil, fault.NotOpen
	}
	if len(key) == 0 {
		return nil, fault.InvalidKey
	}

	wb := batch.New()
	wb.Delete(key)
	return d.submitWrite(wb, true, options), nil
}

// Write - apply a consumer-owned batch atomically
//
// the batch is referenced, not copied, for the task's duration and
// stays owned by the consumer afterwards; it must not be mutated
// while the write is in flight
func (d *DB) Write(wb *batch.Batch, options *engine.WriteOptions) (*dispatch.Pending, error) {

	if wb == nil {
		return nil, fault.InvalidBatch
	}
	if !d.IsOpen() {
		return nil, fault.NotOpen
	}

	return d.submitWrite(wb, false, options), nil
}

// common write path for ephemeral and shared batches
func (d *DB) submitWrite(wb *batch.Batch, ephemeral bool, options *engine.WriteOptions) *dispatch.Pending {

	if !ephemeral {
		wb.Retain()
	}

	return d.disp.Submit(dispatch.Task{
		Background: func() status.Status {
			d.mu.Lock()
			defer d.mu.Unlock()
			if d.eng == nil {
				return status.Error(fault.NotOpen)
			}
			return status.FromError(d.eng.Write(wb.Native(), options))
		},
		Cleanup: func() {
			if ephemeral {
				// ephemeral batches die with their task
				wb.Reset()
			} else {
				wb.Release()
			}
		},
	})
}

// Get - read one value
//
// the key bytes are copied at submission, so the consumer may reuse
// its buffer immediately.  A missing key resolves to the NotFound
// outcome, not an error.
func (d *DB) Get(key []byte, options *engine.ReadOptions) (*dispatch.Pending, error) {

	if !d.IsOpen() {
		return nil, fault.NotOpen
	}
	if len(key) == 0 {
		return nil, fault.InvalidKey
	}

	k := append([]byte(nil), key...)

	return d.disp.Submit(dispatch.Task{
		Background: func() status.Status {
			d.mu.Lock()
			defer d.mu.Unlock()
			if d.eng == nil {
				return status.Error(fault.NotOpen)
			}
			value, err := d.eng.Get(k, options)
			if err != nil {
				return status.FromError(err)
			}
			return status.OkValue(value)
		},
	}), nil
}

// NewIterator - create and register an iterator
//
// synchronous: engine cursor creation is cheap and needs no
// background step
func (d *DB) NewIterator(options *engine.ReadOptions) (*Iterator, error) {

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.eng == nil {
		return nil, fault.NotOpen
	}
	return d.newIteratorHandle(d.eng.NewIterator(options)), nil
}

// LiveIterators - number of iterators currently tracked
func (d *DB) LiveIterators() int {
	return d.reg.size()
}

// DestroyData - remove the database at path; not tied to any handle
func DestroyData(path string, options *engine.Options) error {
	return engine.DestroyData(path, options)
}

// RepairData - recover the database at path; not tied to any handle
func RepairData(path string, options *engine.Options) error {
	return engine.RepairData(path, options)
}
