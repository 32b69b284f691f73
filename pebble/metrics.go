// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics track account reads and the batches the ledger commits one per
// transaction.
type metrics struct {
	delayStart time.Time
	writeStall metric.Averager

	getLatency metric.Averager

	batchWrites  prometheus.Counter
	batchBytes   prometheus.Counter
	batchDeletes prometheus.Counter
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	writeStall, err := metric.NewAverager(
		"pebble_write_stall",
		"time spent waiting for disk write",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	getLatency, err := metric.NewAverager(
		"pebble_read_latency",
		"time spent waiting for db get",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	m := &metrics{
		writeStall: writeStall,
		getLatency: getLatency,
		batchWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "batch_writes",
			Help:      "number of committed batches",
		}),
		batchBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "batch_bytes",
			Help:      "key and value bytes written through batches",
		}),
		batchDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "batch_deletes",
			Help:      "keys removed through committed batches",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.batchWrites),
		r.Register(m.batchBytes),
		r.Register(m.batchDeletes),
	)
	return r, m, errs.Err
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.delayStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.writeStall.Observe(float64(time.Since(db.metrics.delayStart)))
}
