// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package engine - boundary over the embedded storage engine
//
// Thin facade over goleveldb exposing only the calls the async layer
// needs: Open, Close, Get, Put, Delete, Write, NewIterator and the
// DestroyData/RepairData maintenance operations.  The option structs
// here are reduced to the engine's native option types before any
// background step touches them.
//
// The engine is treated as opaque: nothing above this package imports
// goleveldb types except the iterator cursor.
package engine
