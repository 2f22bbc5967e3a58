// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package batch - an ordered set of pending Put/Delete mutations
//
// A batch is either ephemeral (built internally for a single put or
// delete and discarded when that operation completes) or shared
// (built by the consumer, reference counted for the duration of every
// write task that uses it and owned by the consumer afterwards).
//
// A shared batch must not be mutated while a write referencing it is
// in flight; this package does not lock, the caller serializes.
package batch
