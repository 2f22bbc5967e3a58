// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package status - three-way operation outcome
//
// Every engine call resolves to exactly one of: Ok (optionally
// carrying a value), NotFound (a non-error absent value, Get only) or
// Error (carrying the engine's diagnostic text).  Completion steps
// translate a Status into the consumer-visible outcome; nothing else
// crosses the background/consumer boundary.
package status
