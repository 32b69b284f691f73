// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"io"
	"os"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/config"
	"github.com/ava-labs/hypervault/crypto/ed25519"
	"github.com/ava-labs/hypervault/ledger"
	"github.com/ava-labs/hypervault/pebble"
	"github.com/ava-labs/hypervault/state"
	"github.com/ava-labs/hypervault/vault"

	htrace "github.com/ava-labs/hypervault/trace"
)

const Name = "hypervault"

// VM hosts the vault program on a ledger backed by the configured database.
type VM struct {
	config    *config.Config
	programID codec.Address
	rent      ledger.RentSchedule

	log       logging.Logger
	logWriter io.Closer
	tracer    trace.Tracer
	gatherer  prometheus.Gatherers

	db     state.Database
	ledger *ledger.Ledger
}

func New(ctx context.Context, cfg *config.Config, opts ...Option) (*VM, error) {
	vm := &VM{config: cfg, rent: cfg.Rent}
	for _, opt := range opts {
		opt(vm)
	}

	programID, err := cfg.GetProgramID()
	if err != nil {
		return nil, err
	}
	vm.programID = programID

	if vm.log == nil {
		if err := vm.initLogger(); err != nil {
			return nil, err
		}
	}

	ledgerRegistry := prometheus.NewRegistry()
	vm.gatherer = prometheus.Gatherers{ledgerRegistry}
	switch cfg.Database.Backend {
	case config.Pebble:
		db, registry, err := pebble.New(cfg.Database.Path, cfg.GetPebbleConfig())
		if err != nil {
			return nil, vm.closeOnError(err)
		}
		vm.db = db
		vm.gatherer = append(vm.gatherer, registry)
	default:
		vm.db = memdb.New()
	}

	vm.tracer, err = htrace.New(cfg.Trace)
	if err != nil {
		return nil, vm.closeOnError(err)
	}

	vm.ledger, err = ledger.New(
		vm.log,
		vm.db,
		vm.rent,
		ledger.WithTracer(vm.tracer),
		ledger.WithRegisterer(ledgerRegistry),
	)
	if err != nil {
		return nil, vm.closeOnError(err)
	}
	if err := vm.ledger.Register(programID, vault.NewProcessor(programID)); err != nil {
		return nil, vm.closeOnError(err)
	}

	if err := vm.loadGenesis(ctx); err != nil {
		return nil, vm.closeOnError(err)
	}
	vm.log.Info("initialized vm",
		zap.Stringer("programID", programID),
		zap.String("database", cfg.Database.Backend),
	)
	return vm, nil
}

func (vm *VM) initLogger() error {
	level, err := vm.config.GetLogLevel()
	if err != nil {
		return err
	}
	var w io.WriteCloser = os.Stdout
	if len(vm.config.LogFile) > 0 {
		lj := &lumberjack.Logger{
			Filename:   vm.config.LogFile,
			MaxSize:    vm.config.LogMaxSize,
			MaxBackups: vm.config.LogMaxBackups,
		}
		vm.logWriter = lj
		w = lj
	}
	vm.log = logging.NewLogger(
		Name,
		logging.NewWrappedCore(level, w, logging.Plain.ConsoleEncoder()),
	)
	return nil
}

func (vm *VM) loadGenesis(ctx context.Context) error {
	loaded, err := ledger.GenesisLoaded(ctx, state.NewSimpleMutable(vm.db))
	if err != nil {
		return err
	}
	if loaded {
		vm.log.Info("genesis already loaded")
		return nil
	}
	g, err := vm.config.GetGenesis()
	if err != nil {
		return err
	}
	if err := g.Load(ctx, vm.db); err != nil {
		return err
	}
	vm.log.Info("loaded genesis", zap.Int("allocations", len(g.Allocations)))
	return nil
}

func (vm *VM) closeOnError(err error) error {
	if closeErr := vm.Close(); closeErr != nil {
		vm.log.Warn("failed to close vm", zap.Error(closeErr))
	}
	return err
}

func (vm *VM) ProgramID() codec.Address {
	return vm.programID
}

func (vm *VM) Logger() logging.Logger {
	return vm.log
}

func (vm *VM) Gatherer() prometheus.Gatherer {
	return vm.gatherer
}

// VaultAddress returns the vault of [owner].
func (vm *VM) VaultAddress(owner codec.Address) (codec.Address, error) {
	addr, _, err := vault.DeriveVaultAddress(vm.programID, owner)
	return addr, err
}

func (vm *VM) GetAccount(ctx context.Context, addr codec.Address) (*ledger.Account, error) {
	return vm.ledger.GetAccount(ctx, addr)
}

func (vm *VM) GetBalance(ctx context.Context, addr codec.Address) (uint64, error) {
	acct, err := vm.ledger.GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}
	return acct.Lamports, nil
}

func (vm *VM) Execute(ctx context.Context, tx *ledger.Transaction) (*ledger.Result, error) {
	return vm.ledger.Execute(ctx, tx)
}

// ExecuteBytes parses a serialized transaction and executes it.
func (vm *VM) ExecuteBytes(ctx context.Context, b []byte) (*ledger.Result, error) {
	tx, err := ledger.UnmarshalTransaction(b)
	if err != nil {
		return nil, err
	}
	return vm.ledger.Execute(ctx, tx)
}

// Deposit moves [amount] from [owner] into its vault, creating the vault if
// needed.
func (vm *VM) Deposit(ctx context.Context, owner ed25519.PrivateKey, amount uint64) (*ledger.Result, error) {
	ix, err := vault.NewDepositInstruction(vm.programID, owner.Address(), amount)
	if err != nil {
		return nil, err
	}
	return vm.signAndExecute(ctx, owner, ix)
}

// Withdraw returns everything above the reserve in [owner]'s vault.
func (vm *VM) Withdraw(ctx context.Context, owner ed25519.PrivateKey) (*ledger.Result, error) {
	ix, err := vault.NewWithdrawInstruction(vm.programID, owner.Address())
	if err != nil {
		return nil, err
	}
	return vm.signAndExecute(ctx, owner, ix)
}

func (vm *VM) signAndExecute(ctx context.Context, key ed25519.PrivateKey, ix ledger.Instruction) (*ledger.Result, error) {
	tx := ledger.NewTransaction(ix)
	if err := tx.Sign(key); err != nil {
		return nil, err
	}
	return vm.ledger.Execute(ctx, tx)
}

func (vm *VM) Close() error {
	errs := wrappers.Errs{}
	if vm.tracer != nil {
		errs.Add(vm.tracer.Close())
	}
	if vm.db != nil {
		errs.Add(vm.db.Close())
	}
	if vm.logWriter != nil {
		errs.Add(vm.logWriter.Close())
	}
	return errs.Err
}
