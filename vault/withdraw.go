// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// withdraw moves every lamport above the reserve from [vault] to [owner].
// Both balances are computed before either is written.
func withdraw(
	_ context.Context,
	ic ledger.InvokeContext,
	programID codec.Address,
	owner *ledger.AccountInfo,
	vault *ledger.AccountInfo,
) error {
	if err := requireSigner(owner); err != nil {
		return err
	}
	if err := requireOwnedBy(vault, programID); err != nil {
		return err
	}
	if err := requireVaultOf(programID, owner, vault); err != nil {
		return err
	}

	reserve := ic.Rent().MinimumBalance(uint64(vault.DataLen()))
	balance := vault.Lamports()
	if balance <= reserve {
		return fmt.Errorf("%w: balance %d does not exceed reserve %d", ledger.ErrInsufficientFunds, balance, reserve)
	}
	amount := balance - reserve

	remaining, err := smath.Sub(balance, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrInsufficientFunds, err)
	}
	credited, err := smath.Add(owner.Lamports(), amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrInsufficientFunds, ledger.ErrArithmeticOverflow)
	}
	vault.SetLamports(remaining)
	owner.SetLamports(credited)

	ic.Log().Info("withdrawn",
		zap.Stringer("vault", vault.Key()),
		zap.Uint64("amount", amount),
	)
	return nil
}
