// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/hollowoak/asyncldb/batch"
	"github.com/hollowoak/asyncldb/configuration"
	"github.com/hollowoak/asyncldb/db"
	"github.com/hollowoak/asyncldb/dispatch"
)

// a configured but not yet opened database environment
type environment struct {
	cfg    *configuration.Configuration
	disp   *dispatch.Dispatcher
	handle *db.DB
}

func setup(c *cli.Context) (*environment, error) {

	configFile := c.GlobalString("config")
	if configFile == "" {
		return nil, errors.New("configuration file is required (--config=FILE)")
	}

	cfg, err := configuration.Parse(configFile)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Logging.Directory, 0700); err != nil {
		return nil, err
	}
	if err := logger.Initialise(cfg.Logging); err != nil {
		return nil, err
	}

	disp, err := dispatch.NewDispatcher(cfg.Workers, logger.New("dispatch"))
	if err != nil {
		logger.Finalise()
		return nil, err
	}

	return &environment{
		cfg:    cfg,
		disp:   disp,
		handle: db.New(disp, logger.New("db")),
	}, nil
}

func (e *environment) open() error {
	pending, err := e.handle.Open(e.cfg.Database, nil)
	if err != nil {
		return err
	}
	st := pending.Wait()
	if st.IsError() {
		return st.Err()
	}
	return nil
}

func (e *environment) teardown() {
	e.handle.Close().Wait()
	e.disp.Stop()
	logger.Finalise()
}

// decode one argument according to the --hex flag
func decodeArg(c *cli.Context, s string) ([]byte, error) {
	if c.GlobalBool("hex") {
		return hex.DecodeString(s)
	}
	return []byte(s), nil
}

func formatBytes(c *cli.Context, b []byte) string {
	if c.GlobalBool("hex") {
		return hex.EncodeToString(b)
	}
	return string(b)
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "tool: %s  engine: %s\n", version, db.Version())
	return nil
}

func runGet(c *cli.Context) error {
	if 1 != c.NArg() {
		return errors.New("get: exactly one key argument is required")
	}
	key, err := decodeArg(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.teardown()
	if err := env.open(); err != nil {
		return err
	}

	pending, err := env.handle.Get(key, nil)
	if err != nil {
		return err
	}
	st := pending.Wait()
	switch {
	case st.IsNotFound():
		fmt.Fprintf(c.App.Writer, "not found\n")
	case st.IsError():
		return st.Err()
	default:
		fmt.Fprintf(c.App.Writer, "%s\n", formatBytes(c, st.Value()))
	}
	return nil
}

func runPut(c *cli.Context) error {
	if 2 != c.NArg() {
		return errors.New("put: key and value arguments are required")
	}
	key, err := decodeArg(c, c.Args().Get(0))
	if err != nil {
		return err
	}
	value, err := decodeArg(c, c.Args().Get(1))
	if err != nil {
		return err
	}

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.teardown()
	if err := env.open(); err != nil {
		return err
	}

	pending, err := env.handle.Put(key, value, nil)
	if err != nil {
		return err
	}
	if st := pending.Wait(); st.IsError() {
		return st.Err()
	}
	return nil
}

func runDelete(c *cli.Context) error {
	if 1 != c.NArg() {
		return errors.New("delete: exactly one key argument is required")
	}
	key, err := decodeArg(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.teardown()
	if err := env.open(); err != nil {
		return err
	}

	pending, err := env.handle.Delete(key, nil)
	if err != nil {
		return err
	}
	if st := pending.Wait(); st.IsError() {
		return st.Err()
	}
	return nil
}

// read "put KEY VALUE" / "del KEY" lines and apply them atomically
func runBatch(c *cli.Context) error {

	wb := batch.New()
	scanner := bufio.NewScanner(os.Stdin)
	line := 0
	for scanner.Scan() {
		line += 1
		fields := strings.Fields(scanner.Text())
		if 0 == len(fields) || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "put":
			if 3 != len(fields) {
				return fmt.Errorf("batch: line %d: put needs KEY VALUE", line)
			}
			key, err := decodeArg(c, fields[1])
			if err != nil {
				return err
			}
			value, err := decodeArg(c, fields[2])
			if err != nil {
				return err
			}
			wb.Put(key, value)
		case "del":
			if 2 != len(fields) {
				return fmt.Errorf("batch: line %d: del needs KEY", line)
			}
			key, err := decodeArg(c, fields[1])
			if err != nil {
				return err
			}
			wb.Delete(key)
		default:
			return fmt.Errorf("batch: line %d: unknown operation: %q", line, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if 0 == wb.Len() {
		return errors.New("batch: no operations")
	}

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.teardown()
	if err := env.open(); err != nil {
		return err
	}

	pending, err := env.handle.Write(wb, nil)
	if err != nil {
		return err
	}
	if st := pending.Wait(); st.IsError() {
		return st.Err()
	}
	fmt.Fprintf(c.App.Writer, "applied %d operations\n", wb.Len())
	return nil
}

func runDump(c *cli.Context) error {

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.teardown()
	if err := env.open(); err != nil {
		return err
	}

	it, err := env.handle.NewIterator(nil)
	if err != nil {
		return err
	}
	defer it.Close()

	n := 0
	ok, err := it.First()
	for ok {
		key, keyErr := it.Key()
		if keyErr != nil {
			return keyErr
		}
		value, valueErr := it.Value()
		if valueErr != nil {
			return valueErr
		}
		fmt.Fprintf(c.App.Writer, "%s → %s\n", formatBytes(c, key), formatBytes(c, value))
		n += 1
		ok, err = it.Next()
	}
	if err != nil {
		return err
	}
	if err := it.Err(); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "total: %d\n", n)
	return nil
}

func runDestroy(c *cli.Context) error {
	cfg, err := parseOnly(c)
	if err != nil {
		return err
	}
	return db.DestroyData(cfg.Database, nil)
}

func runRepair(c *cli.Context) error {
	cfg, err := parseOnly(c)
	if err != nil {
		return err
	}
	return db.RepairData(cfg.Database, nil)
}

// maintenance operations need the configuration but no open handle
func parseOnly(c *cli.Context) (*configuration.Configuration, error) {
	configFile := c.GlobalString("config")
	if configFile == "" {
		return nil, errors.New("configuration file is required (--config=FILE)")
	}
	return configuration.Parse(configFile)
}
