// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"

	"github.com/hollowoak/asyncldb/fault"
)

// engine format version, LevelDB compatible
const (
	versionMajor = 1
	versionMinor = 23
)

// Version - engine major.minor as a read-only string
//
// surfaced unchanged to consumers at initialisation
func Version() string {
	return fmt.Sprintf("%d.%d", versionMajor, versionMinor)
}

// Instance - an open storage engine
//
// exclusively owned by one database handle; must only be used while
// the owner knows it is open
type Instance struct {
	ldb *leveldb.DB
}

// Open - open or create the database at path
func Open(path string, options *Options) (*Instance, error) {
	ldb, err := leveldb.OpenFile(path, options.native())
	if err != nil {
		return nil, err
	}
	return &Instance{ldb: ldb}, nil
}

// Close - release the engine; the instance is unusable afterwards
func (i *Instance) Close() error {
	return i.ldb.Close()
}

// Get - read one value
//
// a missing key is reported as fault.KeyNotFound
func (i *Instance) Get(key []byte, options *ReadOptions) ([]byte, error) {
	value, err := i.ldb.Get(key, options.native())
	if leveldb.ErrNotFound == err {
		return nil, fault.KeyNotFound
	}
	return value, err
}

// Put - store one key/value pair
func (i *Instance) Put(key []byte, value []byte, options *WriteOptions) error {
	return i.ldb.Put(key, value, options.native())
}

// Delete - remove one key
func (i *Instance) Delete(key []byte, options *WriteOptions) error {
	return i.ldb.Delete(key, options.native())
}

// Write - apply a batch of mutations atomically
func (i *Instance) Write(wb *leveldb.Batch, options *WriteOptions) error {
	return i.ldb.Write(wb, options.native())
}

// NewIterator - create a cursor over the whole key range
//
// the cursor must be released before the instance is closed
func (i *Instance) NewIterator(options *ReadOptions) iterator.Iterator {
	return i.ldb.NewIterator(nil, options.native())
}

// DestroyData - remove all files belonging to the database at path
//
// a missing path is not an error; an existing path that does not look
// like a database is refused rather than removed
func DestroyData(path string, options *Options) error {
	if path == "" {
		return fault.InvalidPath
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fault.NotADatabase
	}
	// a LevelDB directory always carries a CURRENT file
	if _, err := os.Stat(filepath.Join(path, "CURRENT")); err != nil {
		return fault.NotADatabase
	}
	return os.RemoveAll(path)
}

// RepairData - recover a damaged database at path
//
// rebuilds tables from whatever data files survive; the database is
// opened, recovered and closed again
func RepairData(path string, options *Options) error {
	if path == "" {
		return fault.InvalidPath
	}
	ldb, err := leveldb.RecoverFile(path, options.native())
	if err != nil {
		return err
	}
	return ldb.Close()
}
