// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch - two phase execution of blocking engine calls
//
// A task has a background step that runs on a worker of a goroutine
// pool and a completion step that runs on a single completion lane,
// strictly after the background step has finished.  The completion
// step runs exactly once per submitted task, whether the background
// step succeeded, failed or panicked; a panic is captured as an Error
// status and never crosses the goroutine boundary.
//
// No ordering is guaranteed between independently submitted tasks.
// Callers that need serialized access to a shared resource must
// provide their own serialization inside the background steps.
//
// There is no cancellation: every submitted task runs to completion.
package dispatch
