// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
)

// Options - database level configuration
//
// all fields are optional; a nil *Options means defaults
type Options struct {
	ErrorIfMissing     bool // fail Open instead of creating a new database
	ErrorIfExist       bool // fail Open if the database already exists
	ReadOnly           bool
	NoSync             bool
	BlockCacheCapacity int // bytes, 0 means engine default
	WriteBuffer        int // bytes, 0 means engine default
}

// ReadOptions - per read configuration
type ReadOptions struct {
	DontFillCache bool
}

// WriteOptions - per write configuration
type WriteOptions struct {
	Sync         bool
	NoWriteMerge bool
}

// reduce to the engine's native option type
func (o *Options) native() *ldb_opt.Options {
	if o == nil {
		return nil
	}
	return &ldb_opt.Options{
		ErrorIfMissing:     o.ErrorIfMissing,
		ErrorIfExist:       o.ErrorIfExist,
		ReadOnly:           o.ReadOnly,
		NoSync:             o.NoSync,
		BlockCacheCapacity: o.BlockCacheCapacity,
		WriteBuffer:        o.WriteBuffer,
	}
}

func (o *ReadOptions) native() *ldb_opt.ReadOptions {
	if o == nil {
		return nil
	}
	return &ldb_opt.ReadOptions{
		DontFillCache: o.DontFillCache,
	}
}

func (o *WriteOptions) native() *ldb_opt.WriteOptions {
	if o == nil {
		return nil
	}
	return &ldb_opt.WriteOptions{
		Sync:         o.Sync,
		NoWriteMerge: o.NoWriteMerge,
	}
}
