// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package db - asynchronous database handle
//
// A DB owns one engine instance, its open/closed state and the
// registry of live iterators.  Operations validate synchronously on
// the caller's goroutine, then run the blocking engine call on a
// dispatcher worker and deliver the outcome through a Pending.
//
// Engine installation, every background engine access and the
// synchronous destruction performed by Close are serialized by a per
// handle mutex, so closing the database can never free the engine
// underneath an in-flight operation.
//
// Intended use is one consumer goroutine issuing operations; the
// handle itself is safe for that consumer plus the dispatcher's
// workers, but a shared write batch must not be mutated while a
// write referencing it is in flight.
package db
