// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package status

import (
	"fmt"

	"github.com/hollowoak/asyncldb/fault"
)

// Status - the outcome of a single engine call
//
// the zero value is Ok with no value
type Status struct {
	value    []byte
	notFound bool
	err      error
}

// Ok - success without a value
func Ok() Status {
	return Status{}
}

// OkValue - success with a value attached
func OkValue(value []byte) Status {
	return Status{value: value}
}

// NotFound - the key does not exist; a non-error outcome
func NotFound() Status {
	return Status{notFound: true}
}

// Error - failure carrying the engine's diagnostic
func Error(err error) Status {
	return Status{err: err}
}

// Errorf - failure with a formatted message
func Errorf(format string, arguments ...interface{}) Status {
	return Status{err: fault.ProcessError(fmt.Sprintf(format, arguments...))}
}

// FromError - classify an engine error
//
// a not-found sentinel becomes the distinguished NotFound outcome,
// nil becomes Ok, anything else is a failure
func FromError(err error) Status {
	switch {
	case err == nil:
		return Ok()
	case fault.IsErrNotFound(err):
		return NotFound()
	default:
		return Error(err)
	}
}

// IsOk - true for success, with or without a value
func (s Status) IsOk() bool {
	return s.err == nil && !s.notFound
}

// IsNotFound - true only for the distinguished absent-value outcome
func (s Status) IsNotFound() bool {
	return s.notFound
}

// IsError - true for failure
func (s Status) IsError() bool {
	return s.err != nil
}

// Value - the attached value; nil for NotFound and Error
func (s Status) Value() []byte {
	return s.value
}

// Err - the failure; nil for Ok and NotFound
func (s Status) Err() error {
	return s.err
}

func (s Status) String() string {
	switch {
	case s.err != nil:
		return "error: " + s.err.Error()
	case s.notFound:
		return "not found"
	case s.value != nil:
		return fmt.Sprintf("ok: %d bytes", len(s.value))
	default:
		return "ok"
	}
}
