// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/hollowoak/asyncldb/fault"
)

var (
	errInvalidOne  = fault.InvalidError("invalid one")
	errInvalidTwo  = fault.InvalidError("invalid two")
	errNotFoundOne = fault.NotFoundError("not found one")
	errNotFoundTwo = fault.NotFoundError("not found two")
	errProcessOne  = fault.ProcessError("process one")
	errProcessTwo  = fault.ProcessError("process two")
	errStateOne    = fault.StateError("state one")
	errStateTwo    = fault.StateError("state two")
)

// test that the error classes can be distinguished
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		invalid  bool
		notFound bool
		process  bool
		state    bool
	}{
		{errInvalidOne, true, false, false, false},
		{errInvalidTwo, true, false, false, false},
		{errNotFoundOne, false, true, false, false},
		{errNotFoundTwo, false, true, false, false},
		{errProcessOne, false, false, true, false},
		{errProcessTwo, false, false, true, false},
		{errStateOne, false, false, false, true},
		{errStateTwo, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrState(err) != e.state {
			t.Errorf("%d: expected 'state' == %v for err = %v", i, e.state, err)
		}
	}
}

// sentinel errors must compare equal by instance
func TestSentinelComparison(t *testing.T) {
	if fault.NotOpen != fault.StateError("database is not open") {
		t.Error("sentinel comparison failed for NotOpen")
	}
	var err error = fault.KeyNotFound
	if err != fault.KeyNotFound {
		t.Error("sentinel comparison failed through error interface")
	}
}
