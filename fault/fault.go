// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type StateError GenericError

// common errors - keep in alphabetic order
var (
	DispatcherStopped    = StateError("dispatcher is stopped")
	InvalidBatch         = StateError("batch is invalid")
	InvalidConfiguration = InvalidError("configuration must return a table")
	InvalidKey           = InvalidError("key is invalid")
	InvalidPath          = InvalidError("path is invalid")
	InvalidWorkers       = InvalidError("worker count is invalid")
	IteratorClosed       = StateError("iterator is closed")
	KeyNotFound          = NotFoundError("key not found")
	NotADatabase         = InvalidError("path is not a database")
	NotOpen              = StateError("database is not open")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e StateError) Error() string    { return string(e) }

// determine the class of an error
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrState(e error) bool    { _, ok := e.(StateError); return ok }
