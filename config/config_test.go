// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"
	"github.com/ava-labs/hypervault/vault"
)

const testOwner = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)

	level, err := c.GetLogLevel()
	require.NoError(err)
	require.Equal(logging.Info, level)

	id, err := c.GetProgramID()
	require.NoError(err)
	require.Equal(vault.DefaultProgramID, id)

	require.Equal(ledger.DefaultRent(), c.Rent)
	require.Equal(MemDB, c.Database.Backend)
	require.False(c.Trace.Enabled)
	require.True(c.GetPebbleConfig().Sync)
}

func TestNew(t *testing.T) {
	tests := map[string]struct {
		input string
		err   error
		check func(require *require.Assertions, c *Config)
	}{
		"json": {
			input: `{
				"logLevel": "debug",
				"rent": {"lamportsPerByteYear": 10, "exemptionThreshold": 1},
				"database": {"backend": "pebble", "path": "/tmp/vault", "sync": false},
				"genesis": [{"address": "` + testOwner + `", "balance": 1000}]
			}`,
			check: func(require *require.Assertions, c *Config) {
				level, err := c.GetLogLevel()
				require.NoError(err)
				require.Equal(logging.Debug, level)
				require.Equal(ledger.Rent{LamportsPerByteYear: 10, ExemptionThreshold: 1}, c.Rent)
				require.Equal(Pebble, c.Database.Backend)
				require.False(c.GetPebbleConfig().Sync)

				g, err := c.GetGenesis()
				require.NoError(err)
				require.Len(g.Allocations, 1)
				require.Equal(codec.MustParseAddress(testOwner), g.Allocations[0].Address)
				require.Equal(uint64(1000), g.Allocations[0].Balance)
			},
		},
		"yaml": {
			input: `
programID: "0x0101010101010101010101010101010101010101010101010101010101010101"
logFile: /var/log/vault.log
trace:
  enabled: true
  traceSampleRate: 0.5
database:
  cacheSize: 1024
genesis:
  - address: ` + testOwner + `
    balance: 5
`,
			check: func(require *require.Assertions, c *Config) {
				id, err := c.GetProgramID()
				require.NoError(err)
				expected := codec.Address{}
				for i := range expected {
					expected[i] = 1
				}
				require.Equal(expected, id)
				require.Equal("/var/log/vault.log", c.LogFile)
				require.True(c.Trace.Enabled)
				require.Equal(0.5, c.Trace.TraceSampleRate)
				require.Equal(int64(1024), c.GetPebbleConfig().CacheSize)
				require.Equal(MemDB, c.Database.Backend)
			},
		},
		"unknown backend": {
			input: `{"database": {"backend": "leveldb"}}`,
			err:   ErrUnknownBackend,
		},
		"pebble without path": {
			input: `database: {backend: pebble}`,
			err:   ErrMissingDatabasePath,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			c, err := New([]byte(tt.input))
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				return
			}
			tt.check(require, c)
		})
	}
}

func TestNewInvalid(t *testing.T) {
	tests := map[string]string{
		"bad log level":       `{"logLevel": "loud"}`,
		"bad program id":      `{"programID": "not-an-address"}`,
		"bad genesis address": `{"genesis": [{"address": "0x01", "balance": 1}]}`,
		"unknown yaml field":  `colour: blue`,
		"malformed json":      `{"logLevel": }`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New([]byte(input))
			require.Error(t, err)
		})
	}
}
