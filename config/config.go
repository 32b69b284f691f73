// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"
	"github.com/ava-labs/hypervault/pebble"
	"github.com/ava-labs/hypervault/trace"
	"github.com/ava-labs/hypervault/vault"
)

const (
	MemDB  = "memdb"
	Pebble = "pebble"
)

var (
	ErrUnknownBackend      = errors.New("unknown database backend")
	ErrMissingDatabasePath = errors.New("database path required")
)

type Database struct {
	Backend   string `json:"backend"   yaml:"backend"`
	Path      string `json:"path"      yaml:"path"`
	Sync      bool   `json:"sync"      yaml:"sync"`
	CacheSize int64  `json:"cacheSize" yaml:"cacheSize"`
}

type Allocation struct {
	Address string `json:"address" yaml:"address"`
	Balance uint64 `json:"balance" yaml:"balance"`
}

type Config struct {
	// Base58 or 0x-prefixed hex.
	ProgramID string `json:"programID" yaml:"programID"`

	LogLevel      string `json:"logLevel"      yaml:"logLevel"`
	LogFile       string `json:"logFile"       yaml:"logFile"`
	LogMaxSize    int    `json:"logMaxSize"    yaml:"logMaxSize"` // megabytes
	LogMaxBackups int    `json:"logMaxBackups" yaml:"logMaxBackups"`

	Rent     ledger.Rent  `json:"rent"     yaml:"rent"`
	Database Database     `json:"database" yaml:"database"`
	Trace    trace.Config `json:"trace"    yaml:"trace"`

	Genesis []Allocation `json:"genesis" yaml:"genesis"`
}

// New parses a JSON or YAML config on top of the defaults. An empty input
// yields the defaults.
func New(b []byte) (*Config, error) {
	c := &Config{
		ProgramID:     vault.DefaultProgramID.String(),
		LogLevel:      logging.Info.String(),
		LogMaxSize:    64,
		LogMaxBackups: 4,
		Rent:          ledger.DefaultRent(),
		Database: Database{
			Backend:   MemDB,
			Sync:      true,
			CacheSize: pebble.NewDefaultConfig().CacheSize,
		},
		Trace: trace.NewDefaultConfig(),
	}

	b = bytes.TrimSpace(b)
	if len(b) > 0 {
		var err error
		if b[0] == '{' {
			err = json.Unmarshal(b, c)
		} else {
			err = yaml.UnmarshalStrict(b, c)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := c.verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) verify() error {
	switch c.Database.Backend {
	case MemDB:
	case Pebble:
		if len(c.Database.Path) == 0 {
			return ErrMissingDatabasePath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Database.Backend)
	}
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	if _, err := c.GetProgramID(); err != nil {
		return err
	}
	_, err := c.GetGenesis()
	return err
}

func (c *Config) GetLogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}

func (c *Config) GetProgramID() (codec.Address, error) {
	id, err := codec.ParseAddress(c.ProgramID)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("invalid program id %q: %w", c.ProgramID, err)
	}
	return id, nil
}

func (c *Config) GetGenesis() (*ledger.Genesis, error) {
	g := &ledger.Genesis{Allocations: make([]*ledger.Allocation, 0, len(c.Genesis))}
	for _, alloc := range c.Genesis {
		addr, err := codec.ParseAddress(alloc.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis address %q: %w", alloc.Address, err)
		}
		g.Allocations = append(g.Allocations, &ledger.Allocation{Address: addr, Balance: alloc.Balance})
	}
	return g, nil
}

func (c *Config) GetPebbleConfig() pebble.Config {
	cfg := pebble.NewDefaultConfig()
	cfg.Sync = c.Database.Sync
	if c.Database.CacheSize > 0 {
		cfg.CacheSize = c.Database.CacheSize
	}
	return cfg
}
