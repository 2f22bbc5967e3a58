// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package db_test

import (
	"fmt"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowoak/asyncldb/batch"
	"github.com/hollowoak/asyncldb/db"
	"github.com/hollowoak/asyncldb/dispatch"
	"github.com/hollowoak/asyncldb/engine"
	"github.com/hollowoak/asyncldb/fault"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, engine.Version(), db.Version(), "version not surfaced unchanged")
}

// after put(k,v) completes, get(k) yields Ok(v)
func TestPutThenGet(t *testing.T) {
	d := openTestDB(t)
	defer closeTestDB(d)

	mustPut(t, d, "alpha", "one")

	pending, err := d.Get([]byte("alpha"), nil)
	require.NoError(t, err, "get submit error")
	st := pending.Wait()
	require.True(t, st.IsOk(), "get error: %s", st)
	assert.Equal(t, []byte("one"), st.Value(), "wrong value")
}

// after delete(k) completes, get(k) yields NotFound
func TestDeleteThenGet(t *testing.T) {
	d := openTestDB(t)
	defer closeTestDB(d)

	mustPut(t, d, "beta", "two")
	mustDelete(t, d, "beta")

	pending, err := d.Get([]byte("beta"), nil)
	require.NoError(t, err, "get submit error")
	st := pending.Wait()
	assert.True(t, st.IsNotFound(), "deleted key still present: %s", st)
	assert.False(t, st.IsError(), "missing key reported as error")
}

// a missing key is the distinguished NotFound outcome, not an error
func TestGetMissing(t *testing.T) {
	d := openTestDB(t)
	defer closeTestDB(d)

	pending, err := d.Get([]byte("never stored"), nil)
	require.NoError(t, err, "get submit error")
	st := pending.Wait()
	assert.True(t, st.IsNotFound(), "expected not found: %s", st)
}

// the consumer may reuse its key buffer as soon as the call returns
func TestGetKeyBufferReuse(t *testing.T) {
	d := openTestDB(t)
	defer closeTestDB(d)

	mustPut(t, d, "gamma", "three")

	key := []byte("gamma")
	pending, err := d.Get(key, nil)
	require.NoError(t, err, "get submit error")
	copy(key, "XXXXX")

	st := pending.Wait()
	require.True(t, st.IsOk(), "get error after buffer reuse: %s", st)
	assert.Equal(t, []byte("three"), st.Value(), "wrong value after buffer reuse")
}

// write([Put(k1,v1), Delete(k2)]) where k2 existed: afterwards
// get(k1)=Ok(v1) and get(k2)=NotFound; never partially visible
func TestWriteAtomic(t *testing.T) {
	d := openTestDB(t)
	defer closeTestDB(d)

	mustPut(t, d, "k2", "old")

	wb := batch.New()
	wb.Put([]byte("k1"), []byte("v1"))
	wb.Delete([]byte("k2"))

	pending, err := d.Write(wb, nil)
	require.NoError(t, err, "write submit error")
	st := pending.Wait()
	require.True(t, st.IsOk(), "write error: %s", st)

	pending, _ = d.Get([]byte("k1"), nil)
	st = pending.Wait()
	require.True(t, st.IsOk(), "k1 not written: %s", st)
	assert.Equal(t, []byte("v1"), st.Value(), "wrong k1 value")

	pending, _ = d.Get([]byte("k2"), nil)
	st = pending.Wait()
	assert.True(t, st.IsNotFound(), "k2 not deleted: %s", st)
}

// a shared batch survives its writes and stays owned by the consumer
func TestSharedBatchReuse(t *testing.T) {
	d := openTestDB(t)
	defer closeTestDB(d)

	wb := batch.New()
	wb.Put([]byte("shared"), []byte("first"))

	pending, err := d.Write(wb, nil)
	require.NoError(t, err, "first write submit error")
	require.True(t, pending.Wait().IsOk(), "first write failed")
	assert.False(t, wb.InFlight(), "batch still referenced after first write")

	// same batch, second write: applies the same mutations again
	pending, err = d.Write(wb, nil)
	require.NoError(t, err, "second write submit error")
	require.True(t, pending.Wait().IsOk(), "second write failed")
	assert.False(t, wb.InFlight(), "batch still referenced after second write")

	// the consumer still owns the mutation list
	assert.Equal(t, 1, wb.Len(), "batch contents destroyed by write")
}

func TestWriteNilBatch(t *testing.T) {
	d := openTestDB(t)
	defer closeTestDB(d)

	_, err := d.Write(nil, nil)
	assert.Equal(t, fault.InvalidBatch, err, "nil batch accepted")
}

// every operation before open (or after close) fails synchronously
// with a state error and submits no task
func TestOperationsWhileClosed(t *testing.T) {
	unopened := db.New(testDispatcher, logger.New("db-test"))

	_, err := unopened.Put([]byte("k"), []byte("v"), nil)
	assert.Equal(t, fault.NotOpen, err, "put accepted while closed")

	_, err = unopened.Delete([]byte("k"), nil)
	assert.Equal(t, fault.NotOpen, err, "delete accepted while closed")

	_, err = unopened.Write(batch.New(), nil)
	assert.Equal(t, fault.NotOpen, err, "write accepted while closed")

	_, err = unopened.Get([]byte("k"), nil)
	assert.Equal(t, fault.NotOpen, err, "get accepted while closed")

	_, err = unopened.NewIterator(nil)
	assert.Equal(t, fault.NotOpen, err, "iterator accepted while closed")

	assert.True(t, fault.IsErrState(err), "wrong error class")
}

func TestOpenEmptyPath(t *testing.T) {
	d := db.New(testDispatcher, logger.New("db-test"))
	_, err := d.Open("", nil)
	assert.Equal(t, fault.InvalidPath, err, "empty path accepted")
}

func TestOpenMissingWithErrorIfMissing(t *testing.T) {
	removeDatabase()
	d := db.New(testDispatcher, logger.New("db-test"))

	pending, err := d.Open(databaseDirName, &engine.Options{ErrorIfMissing: true})
	require.NoError(t, err, "open submit error")
	st := pending.Wait()
	assert.True(t, st.IsError(), "open of missing database succeeded")
	assert.False(t, d.IsOpen(), "failed open left handle open")
}

// close is idempotent and still fires a completion each time
func TestCloseIdempotent(t *testing.T) {
	d := openTestDB(t)
	defer removeDatabase()

	st := d.Close().Wait()
	assert.True(t, st.IsOk(), "first close failed: %s", st)
	st = d.Close().Wait()
	assert.True(t, st.IsOk(), "second close failed: %s", st)
	assert.False(t, d.IsOpen(), "handle still open after close")
}

// the handle is reusable: close then open again
func TestReopenAfterClose(t *testing.T) {
	d := openTestDB(t)
	defer closeTestDB(d)

	mustPut(t, d, "sticky", "value")
	d.Close().Wait()

	pending, err := d.Open(databaseDirName, nil)
	require.NoError(t, err, "reopen submit error")
	require.True(t, pending.Wait().IsOk(), "reopen failed")

	pending, _ = d.Get([]byte("sticky"), nil)
	st := pending.Wait()
	require.True(t, st.IsOk(), "get after reopen failed: %s", st)
	assert.Equal(t, []byte("value"), st.Value(), "data lost across close/open")
}

// open called twice: the first engine instance is closed, its
// iterators forced closed, before the second is installed
func TestOpenOverOpen(t *testing.T) {
	d := openTestDB(t)
	defer removeDatabase()

	mustPut(t, d, "first", "instance")
	it, err := d.NewIterator(nil)
	require.NoError(t, err, "iterator error")

	secondDirName := "testing/second.leveldb"
	defer func() {
		d.Close().Wait()
		_ = db.DestroyData(secondDirName, nil)
	}()

	pending, err := d.Open(secondDirName, nil)
	require.NoError(t, err, "second open submit error")
	require.True(t, pending.Wait().IsOk(), "second open failed")

	// no iterator from the first instance remains usable
	assert.True(t, it.Closed(), "iterator survived reopen")
	_, err = it.Next()
	assert.Equal(t, fault.IteratorClosed, err, "iterator traversal allowed after reopen")

	// the second instance is empty
	pending, _ = d.Get([]byte("first"), nil)
	assert.True(t, pending.Wait().IsNotFound(), "second instance has first instance data")
}

// destroyData(path) then open(path) yields a database with no keys
func TestDestroyThenOpen(t *testing.T) {
	d := openTestDB(t)
	mustPut(t, d, "doomed", "data")
	d.Close().Wait()

	err := db.DestroyData(databaseDirName, nil)
	require.NoError(t, err, "destroy error")

	d = openTestDB(t)
	defer closeTestDB(d)
	pending, _ := d.Get([]byte("doomed"), nil)
	assert.True(t, pending.Wait().IsNotFound(), "destroyed data still present")
}

func TestRepairData(t *testing.T) {
	d := openTestDB(t)
	mustPut(t, d, "salvage", "me")
	d.Close().Wait()

	require.NoError(t, db.RepairData(databaseDirName, nil), "repair error")

	d = reopenTestDB(t)
	defer closeTestDB(d)
	pending, _ := d.Get([]byte("salvage"), nil)
	st := pending.Wait()
	require.True(t, st.IsOk(), "get after repair failed: %s", st)
	assert.Equal(t, []byte("me"), st.Value(), "data lost by repair")
}

// close racing with in-flight operations: the engine must never be
// destroyed underneath a running background step; every task still
// resolves exactly once
func TestCloseDuringInFlightWrites(t *testing.T) {
	d := openTestDB(t)
	defer removeDatabase()

	pendings := make([]*dispatch.Pending, 0, 100)
	for i := 0; i < 100; i++ {
		key := []byte(fmt.Sprintf("key-%03d", i))
		pending, err := d.Put(key, []byte("value"), nil)
		if err != nil {
			// close already won the race
			assert.Equal(t, fault.NotOpen, err, "unexpected submit error")
			break
		}
		pendings = append(pendings, pending)

		if 50 == i {
			d.Close()
		}
	}
	d.Close().Wait()

	for _, pending := range pendings {
		<-pending.Done()
	}
}
