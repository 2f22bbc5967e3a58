// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"sync"

	"github.com/hollowoak/asyncldb/status"
)

// Pending - a one-shot completion event
//
// resolved exactly once, after the task's completion step has run
type Pending struct {
	done chan struct{}
	once sync.Once
	st   status.Status
}

func newPending() *Pending {
	return &Pending{
		done: make(chan struct{}),
	}
}

func (p *Pending) resolve(st status.Status) {
	p.once.Do(func() {
		p.st = st
		close(p.done)
	})
}

// Done - closed once the outcome is available
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait - block until resolved and return the outcome
func (p *Pending) Wait() status.Status {
	<-p.done
	return p.st
}

// Outcome - the outcome without blocking
//
// the second value is false while the task is still in flight
func (p *Pending) Outcome() (status.Status, bool) {
	select {
	case <-p.done:
		return p.st, true
	default:
		return status.Status{}, false
	}
}
