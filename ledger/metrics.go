// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	txsExecuted  prometheus.Counter
	txsFailed    prometheus.Counter
	instructions prometheus.Counter
	cpiCalls     prometheus.Counter

	stateChanges prometheus.Counter

	executeLatency metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	executeLatency, err := metric.NewAverager(
		"ledger_execute",
		"time spent executing a transaction",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		executeLatency: executeLatency,
		txsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "txs_executed",
			Help:      "number of transactions committed",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "txs_failed",
			Help:      "number of transactions rejected",
		}),
		instructions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "instructions",
			Help:      "number of program invocations including nested calls",
		}),
		cpiCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "cpi_calls",
			Help:      "number of cross-program invocations",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "state_changes",
			Help:      "number of account writes committed",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsExecuted),
		r.Register(m.txsFailed),
		r.Register(m.instructions),
		r.Register(m.cpiCalls),
		r.Register(m.stateChanges),
	)
	return m, errs.Err
}
