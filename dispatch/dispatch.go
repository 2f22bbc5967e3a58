// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/bitmark-inc/logger"

	"github.com/hollowoak/asyncldb/background"
	"github.com/hollowoak/asyncldb/fault"
	"github.com/hollowoak/asyncldb/status"
)

// completions queued but not yet delivered
const completionBacklog = 256

// Task - one unit of two phase work
//
// Background runs on a pool worker and produces the outcome; a nil
// Background is a no-op success.  Complete runs on the completion
// lane.  Cleanup always runs after Complete, even if Complete
// panicked, so resources retained for the task's duration are
// released in every case.
type Task struct {
	Background func() status.Status
	Complete   func(status.Status)
	Cleanup    func()
}

// internal per-submission state
type task struct {
	spec    Task
	st      status.Status
	pending *Pending
}

// Dispatcher - background pool plus a single completion lane
type Dispatcher struct {
	log         *logger.L
	pool        *ants.Pool
	completions chan *task
	processes   *background.T
	wg          sync.WaitGroup
	mu          sync.Mutex
	stopped     bool
}

// runs the completion lane as a background process
type completionLane struct {
	d *Dispatcher
}

// NewDispatcher - start a dispatcher with the given number of
// background workers
func NewDispatcher(workers int, log *logger.L) (*Dispatcher, error) {

	if workers <= 0 {
		return nil, fault.InvalidWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		log:         log,
		pool:        pool,
		completions: make(chan *task, completionBacklog),
	}

	processes := background.Processes{
		&completionLane{d: d},
	}
	d.processes = background.Start(processes, log)

	return d, nil
}

// Submit - schedule a task
//
// the returned Pending resolves after the completion step has run;
// a task submitted after Stop resolves immediately with an error
// outcome, still exactly once
func (d *Dispatcher) Submit(spec Task) *Pending {

	t := &task{
		spec:    spec,
		pending: newPending(),
	}

	d.mu.Lock()
	stopped := d.stopped
	if !stopped {
		d.wg.Add(1)
	}
	d.mu.Unlock()

	if stopped {
		t.st = status.Error(fault.DispatcherStopped)
		d.deliver(t)
		return t.pending
	}

	err := d.pool.Submit(func() {
		t.st = capture(t.spec.Background)
		d.completions <- t
	})
	if err != nil {
		t.st = status.Errorf("background submit failed: %s", err)
		d.deliver(t)
		d.wg.Done()
	}

	return t.pending
}

// Stop - wait for all in-flight tasks to complete, then shut down
//
// idempotent; submissions racing with Stop either run normally or
// resolve with a dispatcher-stopped error
func (d *Dispatcher) Stop() {

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	// every accepted task delivers its completion first
	d.wg.Wait()

	d.processes.Stop()
	d.pool.Release()
}

// run the background step, trapping panics into an Error status
func capture(step func() status.Status) (st status.Status) {
	defer func() {
		if r := recover(); r != nil {
			st = status.Errorf("background step panic: %v", r)
		}
	}()
	if step == nil {
		return status.Ok()
	}
	return step()
}

// run the completion step and cleanup, then resolve the pending
//
// a fault in consumer completion logic is logged and must not skip
// the cleanup or the resolution
func (d *Dispatcher) deliver(t *task) {

	if t.spec.Complete != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					d.log.Criticalf("completion step panic: %v", r)
				}
			}()
			t.spec.Complete(t.st)
		}()
	}

	if t.spec.Cleanup != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					d.log.Criticalf("cleanup panic: %v", r)
				}
			}()
			t.spec.Cleanup()
		}()
	}

	t.pending.resolve(t.st)
}

func (lane *completionLane) Run(args interface{}, shutdown <-chan struct{}) {

	d := lane.d

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case t := <-d.completions:
			d.deliver(t)
			d.wg.Done()
		}
	}

	// submitted tasks still run to completion after shutdown
	for {
		select {
		case t := <-d.completions:
			d.deliver(t)
			d.wg.Done()
		default:
			return
		}
	}
}
