// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/hypervault/ledger"
)

type Option func(*VM)

// WithRentSchedule overrides the rent configured in [config.Config].
func WithRentSchedule(rent ledger.RentSchedule) Option {
	return func(vm *VM) {
		vm.rent = rent
	}
}

// WithLogger replaces the logger built from the config.
func WithLogger(log logging.Logger) Option {
	return func(vm *VM) {
		vm.log = log
	}
}
