// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/hollowoak/asyncldb/fault"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from the configuration file)
const (
	defaultDatabase     = "data.leveldb"
	defaultWorkers      = 4
	defaultLogDirectory = "log"
	defaultLogFile      = "asyncldb.log"
	defaultLogCount     = 10          // number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when log file exceeds this size
)

// Configuration - the tool configuration
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      string               `gluamapper:"database" json:"database"`
	Workers       int                  `gluamapper:"workers" json:"workers"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// Parse - read, execute and verify a configuration file
//
// relative paths are resolved against the data directory, which
// itself defaults to the directory holding the configuration file
func Parse(fileName string) (*Configuration, error) {

	fileName, err := filepath.Abs(filepath.Clean(fileName))
	if err != nil {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(fileName)

	options := &Configuration{
		DataDirectory: dataDirectory,
		Database:      defaultDatabase,
		Workers:       defaultWorkers,
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "error",
			},
		},
	}

	if err := parseLuaFile(fileName, options); err != nil {
		return nil, err
	}

	if options.Workers <= 0 {
		return nil, fault.InvalidWorkers
	}

	// resolve any relative paths
	options.DataDirectory = ensureAbsolute(dataDirectory, options.DataDirectory)
	options.Database = ensureAbsolute(options.DataDirectory, options.Database)
	options.Logging.Directory = ensureAbsolute(options.DataDirectory, options.Logging.Directory)

	return options, nil
}

// execute a Lua file and map the resulting table onto config
func parseLuaFile(fileName string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()

	L.OpenLibs()

	// create the global "arg" table
	// arg[0] = config file
	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	// execute configuration
	if err := L.DoFile(fileName); err != nil {
		return err
	}

	mapperOption := gluamapper.Option{
		NameFunc: func(s string) string {
			return s
		},
		TagName: "gluamapper",
	}
	mapper := gluamapper.Mapper{Option: mapperOption}
	table, ok := L.Get(L.GetTop()).(*lua.LTable)
	if !ok {
		return fault.InvalidConfiguration
	}
	return mapper.Map(table, config)
}

func ensureAbsolute(directory string, file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Clean(filepath.Join(directory, file))
}
