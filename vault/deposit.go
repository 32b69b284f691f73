// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"

	"go.uber.org/zap"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"
)

func deposit(
	ctx context.Context,
	ic ledger.InvokeContext,
	programID codec.Address,
	owner *ledger.AccountInfo,
	vault *ledger.AccountInfo,
	amount uint64,
) error {
	if err := requireSigner(owner); err != nil {
		return err
	}
	if err := ensureVault(ctx, ic, programID, owner, vault); err != nil {
		return err
	}
	if err := ic.Invoke(ctx, ledger.Transfer(owner.Key(), vault.Key(), amount)); err != nil {
		return err
	}
	ic.Log().Info("deposited",
		zap.Stringer("vault", vault.Key()),
		zap.Uint64("amount", amount),
	)
	return nil
}
