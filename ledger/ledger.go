// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/state"

	htrace "github.com/ava-labs/hypervault/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type Option func(*Ledger)

func WithTracer(t trace.Tracer) Option {
	return func(l *Ledger) {
		l.tracer = t
	}
}

// WithRegisterer registers the ledger metrics with [r] instead of a
// private registry.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(l *Ledger) {
		l.registerer = r
	}
}

// Result describes a committed transaction.
type Result struct {
	Sequence     uint64
	Instructions int
	Changed      []codec.Address
}

// Ledger executes transactions against accounts stored in a
// [state.Database]. Each transaction is applied atomically: either every
// account change it makes is committed or none is.
type Ledger struct {
	log        logging.Logger
	db         state.Database
	rent       RentSchedule
	tracer     trace.Tracer
	registerer prometheus.Registerer
	metrics    *metrics

	programs map[codec.Address]Program
	sequence atomic.Uint64

	lock sync.Mutex
}

// New returns a ledger with the system program registered.
func New(log logging.Logger, db state.Database, rent RentSchedule, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		log:        log,
		db:         db,
		rent:       rent,
		tracer:     htrace.Noop,
		registerer: prometheus.NewRegistry(),
		programs:   map[codec.Address]Program{},
	}
	for _, opt := range opts {
		opt(l)
	}
	m, err := newMetrics(l.registerer)
	if err != nil {
		return nil, err
	}
	l.metrics = m
	if err := l.Register(SystemProgramID, SystemProgram{}); err != nil {
		return nil, err
	}
	return l, nil
}

// Register makes [program] callable at [id].
func (l *Ledger) Register(id codec.Address, program Program) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, ok := l.programs[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProgram, id)
	}
	l.programs[id] = program
	l.log.Info("registered program", zap.Stringer("programID", id))
	return nil
}

func (l *Ledger) Rent() RentSchedule {
	return l.rent
}

// GetAccount returns the committed state of [addr].
func (l *Ledger) GetAccount(ctx context.Context, addr codec.Address) (*Account, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return GetAccount(ctx, state.NewSimpleMutable(l.db), addr)
}

// Execute verifies the signatures of [tx] and runs its instructions in
// order. The first failing instruction aborts the transaction and its error
// is returned with the instruction index attached.
func (l *Ledger) Execute(ctx context.Context, tx *Transaction) (*Result, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		l.metrics.executeLatency.Observe(float64(time.Since(start)))
	}()
	ctx, span := l.tracer.Start(
		ctx, "Ledger.Execute",
		oteltrace.WithAttributes(
			attribute.Int("instructions", len(tx.Message.Instructions)),
			attribute.Int("signatures", len(tx.Signatures)),
		),
	)
	defer span.End()

	result, err := l.execute(ctx, tx)
	if err != nil {
		l.metrics.txsFailed.Inc()
		l.log.Debug("transaction failed", zap.Error(err))
		return nil, err
	}
	l.metrics.txsExecuted.Inc()
	return result, nil
}

func (l *Ledger) execute(ctx context.Context, tx *Transaction) (*Result, error) {
	if err := tx.Verify(); err != nil {
		return nil, err
	}

	mu := state.NewSimpleMutable(l.db)
	e := &executor{
		l:        l,
		accounts: make(map[codec.Address]*Account),
	}
	loaded := make(map[codec.Address]snapshot)
	for _, key := range tx.Message.AccountKeys() {
		if _, ok := l.programs[key]; ok {
			e.accounts[key] = &Account{Lamports: 1, Owner: NativeLoaderID, Executable: true}
			continue
		}
		acct, err := GetAccount(ctx, mu, key)
		if err != nil {
			return nil, err
		}
		e.accounts[key] = acct
		loaded[key] = takeSnapshot(acct)
	}

	for i, ix := range tx.Message.Instructions {
		infos := make([]*AccountInfo, len(ix.Accounts))
		for j, meta := range ix.Accounts {
			infos[j] = NewAccountInfo(meta.Address, meta.IsSigner, meta.IsWritable, e.accounts[meta.Address])
		}
		if err := e.process(ctx, ix.ProgramID, infos, ix.Data); err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
	}

	// Only accounts loaded from state are written back. Program accounts
	// are synthesized on every load.
	keys := maps.Keys(loaded)
	slices.SortFunc(keys, func(a, b codec.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	changed := []codec.Address{}
	for _, key := range keys {
		acct := e.accounts[key]
		if !loaded[key].changed(acct) {
			continue
		}
		if err := SetAccount(ctx, mu, key, acct); err != nil {
			return nil, err
		}
		changed = append(changed, key)
	}
	changes := mu.Changes()
	if err := mu.Commit(ctx); err != nil {
		return nil, err
	}
	l.metrics.stateChanges.Add(float64(changes))
	return &Result{
		Sequence:     l.sequence.Inc(),
		Instructions: len(tx.Message.Instructions),
		Changed:      changed,
	}, nil
}
